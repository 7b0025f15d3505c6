package download

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/jpeg"
	"io"
	"os"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/handiism/bing-wallpaper-downloader/internal/http"
	ioutils "github.com/handiism/bing-wallpaper-downloader/internal/io"
	"github.com/handiism/bing-wallpaper-downloader/internal/model"
)

func quietLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func newTestFetcher(dir string) *Fetcher {
	client := http.NewClient("", time.Second)
	return NewFetcher(client, ioutils.NewAllocator(dir), http.DefaultChunkSize, quietLogger())
}

func jpegBytes(t *testing.T) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 32, 18))
	for x := 0; x < 32; x++ {
		img.Set(x, x%18, color.RGBA{R: 250, G: 120, A: 255})
	}
	var buf bytes.Buffer
	require.NoError(t, jpeg.Encode(&buf, img, nil))
	return buf.Bytes()
}

func dirEntries(t *testing.T, dir string) []string {
	t.Helper()
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name())
	}
	return names
}

type MockResolver struct {
	mock.Mock
}

func (m *MockResolver) Resolve(ctx context.Context, index int) (*model.WallpaperRecord, error) {
	args := m.Called(ctx, index)
	rec, _ := args.Get(0).(*model.WallpaperRecord)
	return rec, args.Error(1)
}

type MockTagger struct {
	mock.Mock
}

func (m *MockTagger) Tag(path string, desc model.ParsedDescription) error {
	args := m.Called(path, desc)
	return args.Error(0)
}
