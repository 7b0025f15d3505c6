package download

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/sirupsen/logrus"

	"github.com/handiism/bing-wallpaper-downloader/internal/http"
	ioutils "github.com/handiism/bing-wallpaper-downloader/internal/io"
	"github.com/handiism/bing-wallpaper-downloader/internal/model"
)

// ErrTransfer wraps every failure to get image bytes onto disk.
var ErrTransfer = errors.New("image transfer failed")

// ProgressFunc receives the bytes written so far and the expected total
// (-1 when the server sent no Content-Length).
type ProgressFunc func(written, total int64)

// FetcherOption configures a Fetcher.
type FetcherOption func(*Fetcher)

// WithProgress reports bytes written to disk after every chunk.
func WithProgress(fn ProgressFunc) FetcherOption {
	return func(f *Fetcher) {
		f.onProgress = fn
	}
}

// Fetcher streams images into an output directory.
type Fetcher struct {
	client     *http.Client
	allocator  *ioutils.Allocator
	chunkSize  int
	onProgress ProgressFunc
	log        *logrus.Logger
}

// NewFetcher creates a Fetcher writing through allocator in chunks of chunkSize bytes.
func NewFetcher(client *http.Client, allocator *ioutils.Allocator, chunkSize int, log *logrus.Logger, opts ...FetcherOption) *Fetcher {
	f := &Fetcher{
		client:    client,
		allocator: allocator,
		chunkSize: chunkSize,
		log:       log,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Root returns the directory images are saved in.
func (f *Fetcher) Root() string {
	return f.allocator.Root()
}

// Fetch downloads imageURL to <root>/<base><ext>, where ext comes from the
// response Content-Type and a _N suffix is added if the name is taken.
//
// The body is written as it arrives. On failure the outcome carries an
// error wrapping ErrTransfer; a partially written file is left on disk.
func (f *Fetcher) Fetch(ctx context.Context, imageURL, base string) model.FetchOutcome {
	fetchLog := f.log.WithField("url", imageURL)

	resp, err := f.client.Stream(ctx, imageURL)
	if err != nil {
		fetchLog.WithError(err).Warn("Image request failed")
		return model.Failure(fmt.Errorf("%w: %v", ErrTransfer, err))
	}
	defer resp.Body.Close()

	ext := ioutils.ExtensionForContentType(resp.ContentType)
	path, err := f.allocator.Allocate(base, ext)
	if err != nil {
		fetchLog.WithError(err).Warn("Could not allocate file name")
		return model.Failure(fmt.Errorf("%w: %v", ErrTransfer, err))
	}

	fetchLog = fetchLog.WithFields(logrus.Fields{"path": path, "content_type": resp.ContentType})

	// O_EXCL: an allocated name that appeared meanwhile is never overwritten.
	file, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
	if err != nil {
		fetchLog.WithError(err).Warn("Could not create image file")
		return model.Failure(fmt.Errorf("%w: %v", ErrTransfer, err))
	}

	pw := &http.ProgressWriter{Writer: file, Total: resp.ContentLength, OnUpdate: f.onProgress}
	_, err = http.CopyChunks(pw, resp.Body, f.chunkSize)
	if cerr := file.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		fetchLog.WithError(err).WithField("written", pw.Written).Warn("Image transfer interrupted")
		return model.Failure(fmt.Errorf("%w: %v", ErrTransfer, err))
	}

	fetchLog.WithField("bytes", pw.Written).Debug("Image saved")
	return model.Success(path)
}
