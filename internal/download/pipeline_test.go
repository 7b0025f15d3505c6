package download

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/handiism/bing-wallpaper-downloader/internal/bing"
	"github.com/handiism/bing-wallpaper-downloader/internal/model"
)

func imageServer(t *testing.T, contentType string, body []byte) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", contentType)
		w.Write(body)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestPipeline_Success(t *testing.T) {
	srv := imageServer(t, "image/jpeg", jpegBytes(t))
	dir := t.TempDir()

	resolver := new(MockResolver)
	tagger := new(MockTagger)
	rec := &model.WallpaperRecord{ImageURL: srv.URL, Description: "Sunset (© Jane Doe)", EndDate: "20240101"}
	want := filepath.Join(dir, "20240101.jpg")

	resolver.On("Resolve", mock.Anything, 2).Return(rec, nil)
	tagger.On("Tag", want, model.ParsedDescription{Title: "Sunset", Copyright: "Jane Doe"}).Return(nil)

	res := NewPipelineWith(resolver, newTestFetcher(dir), tagger, quietLogger()).Run(context.Background(), 2)

	assert.Equal(t, SavedOutcome(want), res.Outcome)
	assert.Equal(t, "image downloaded, saved to: "+want, res.Outcome)
	assert.Equal(t, 2, res.Index)
	assert.True(t, res.Transfer.OK())
	assert.NoError(t, res.TagErr)
	assert.FileExists(t, want)
	resolver.AssertExpectations(t)
	tagger.AssertExpectations(t)
}

func TestPipeline_RecordFetchFailed(t *testing.T) {
	dir := t.TempDir()
	resolver := new(MockResolver)
	tagger := new(MockTagger)
	resolver.On("Resolve", mock.Anything, 0).Return(nil, bing.ErrNoRecord)

	res := NewPipelineWith(resolver, newTestFetcher(dir), tagger, quietLogger()).Run(context.Background(), 0)

	assert.Equal(t, OutcomeRecordFailed, res.Outcome)
	assert.Nil(t, res.Record)
	assert.Empty(t, dirEntries(t, dir))
	tagger.AssertNotCalled(t, "Tag", mock.Anything, mock.Anything)
}

func TestPipeline_NoImageURL(t *testing.T) {
	dir := t.TempDir()
	resolver := new(MockResolver)
	tagger := new(MockTagger)
	resolver.On("Resolve", mock.Anything, 1).
		Return(&model.WallpaperRecord{Description: "Sunset (© Jane Doe)", EndDate: "20240101"}, nil)

	res := NewPipelineWith(resolver, newTestFetcher(dir), tagger, quietLogger()).Run(context.Background(), 1)

	assert.Equal(t, OutcomeNoImageURL, res.Outcome)
	assert.Empty(t, dirEntries(t, dir))
	tagger.AssertNotCalled(t, "Tag", mock.Anything, mock.Anything)
}

func TestPipeline_TransferFailed(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	resolver := new(MockResolver)
	tagger := new(MockTagger)
	resolver.On("Resolve", mock.Anything, 0).
		Return(&model.WallpaperRecord{ImageURL: srv.URL, Description: "Sunset", EndDate: "20240101"}, nil)

	res := NewPipelineWith(resolver, newTestFetcher(t.TempDir()), tagger, quietLogger()).Run(context.Background(), 0)

	assert.Equal(t, OutcomeDownloadFailed, res.Outcome)
	assert.False(t, res.Transfer.OK())
	assert.ErrorIs(t, res.Transfer.Err, ErrTransfer)
	tagger.AssertNotCalled(t, "Tag", mock.Anything, mock.Anything)
}

func TestPipeline_TaggingFailureIsSwallowed(t *testing.T) {
	srv := imageServer(t, "image/webp", []byte("not really webp"))
	dir := t.TempDir()

	resolver := new(MockResolver)
	tagger := new(MockTagger)
	resolver.On("Resolve", mock.Anything, 0).
		Return(&model.WallpaperRecord{ImageURL: srv.URL, Description: "Sunset", EndDate: "20240101"}, nil)
	tagger.On("Tag", mock.Anything, mock.Anything).Return(errors.New("corrupt file"))

	res := NewPipelineWith(resolver, newTestFetcher(dir), tagger, quietLogger()).Run(context.Background(), 0)

	want := filepath.Join(dir, "20240101.webp")
	assert.Equal(t, SavedOutcome(want), res.Outcome)
	assert.True(t, res.Transfer.OK())
	assert.EqualError(t, res.TagErr, "corrupt file")
	assert.FileExists(t, want)
}

func TestPipeline_PanicBecomesFailure(t *testing.T) {
	resolver := new(MockResolver)
	resolver.On("Resolve", mock.Anything, 0).Panic("resolver exploded")

	res := NewPipelineWith(resolver, newTestFetcher(t.TempDir()), new(MockTagger), quietLogger()).Run(context.Background(), 0)

	assert.Equal(t, OutcomeDownloadFailed, res.Outcome)
	assert.ErrorIs(t, res.Transfer.Err, ErrTransfer)
}
