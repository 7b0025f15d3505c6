package http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"sync/atomic"
	"time"
)

// DefaultUserAgent mimics a desktop browser. The provider refuses
// requests carrying Go's default User-Agent.
const DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36"

// DefaultTimeout bounds connecting, waiting for response headers, and
// each wait for more body data. It never caps a whole transfer.
const DefaultTimeout = 10 * time.Second

// DefaultChunkSize is the size of each write when streaming a body to disk.
const DefaultChunkSize = 1024

// ErrStatus is returned (wrapped) when the server answers with anything
// other than 200 OK.
var ErrStatus = errors.New("unexpected HTTP status")

// ErrIdleTimeout is returned (wrapped) when a response body stops
// delivering data for longer than the client's timeout.
var ErrIdleTimeout = errors.New("no data received within timeout")

// Client wraps HTTP operations with provider-specific configuration.
//
// Client provides:
//   - Configured User-Agent header
//   - Connect, header and idle-read timeouts
//   - JSON decoding
//   - Streaming responses for large downloads
//
// Example usage:
//
//	client := NewClient(DefaultUserAgent, DefaultTimeout)
//
//	var rec recordJSON
//	err := client.GetJSON(ctx, metadataURL, &rec)
//
//	resp, err := client.Stream(ctx, rec.URL)
type Client struct {
	httpClient *http.Client
	userAgent  string
	timeout    time.Duration
}

// NewClient creates a new HTTP client.
//
// An empty userAgent falls back to DefaultUserAgent and a non-positive
// timeout to DefaultTimeout.
func NewClient(userAgent string, timeout time.Duration) *Client {
	if userAgent == "" {
		userAgent = DefaultUserAgent
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	dialer := &net.Dialer{Timeout: timeout, KeepAlive: 30 * time.Second}
	transport := &http.Transport{
		Proxy:                 http.ProxyFromEnvironment,
		DialContext:           dialer.DialContext,
		TLSHandshakeTimeout:   timeout,
		ResponseHeaderTimeout: timeout,
		IdleConnTimeout:       90 * time.Second,
	}
	return &Client{
		httpClient: &http.Client{Transport: transport},
		userAgent:  userAgent,
		timeout:    timeout,
	}
}

// ProgressWriter wraps a writer to track download progress.
//
// Example:
//
//	pw := &ProgressWriter{
//	    Writer: file,
//	    Total:  contentLength,
//	    OnUpdate: func(written, total int64) {
//	        fmt.Printf("%d / %d bytes\n", written, total)
//	    },
//	}
type ProgressWriter struct {
	// Writer is the underlying writer to write data to.
	Writer io.Writer

	// Total is the expected total bytes (from Content-Length header).
	// -1 when unknown.
	Total int64

	// Written is the current number of bytes written.
	Written int64

	// OnUpdate is called after each Write with current progress.
	OnUpdate func(written, total int64)
}

// Write implements io.Writer, tracking progress and calling OnUpdate.
func (pw *ProgressWriter) Write(p []byte) (int, error) {
	n, err := pw.Writer.Write(p)
	pw.Written += int64(n)
	if pw.OnUpdate != nil {
		pw.OnUpdate(pw.Written, pw.Total)
	}
	return n, err
}

// Response is an open streaming response. The caller must close Body.
type Response struct {
	Body          io.ReadCloser
	ContentType   string
	ContentLength int64
}

// do sends a GET and returns the response once headers are in. Its body
// is wrapped so that every read must make progress within c.timeout.
func (c *Client) do(ctx context.Context, url string) (*http.Response, error) {
	ctx, cancel := context.WithCancel(ctx)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		cancel()
		return nil, err
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		cancel()
		return nil, err
	}

	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		cancel()
		return nil, fmt.Errorf("%w: HTTP %d: %s", ErrStatus, resp.StatusCode, resp.Status)
	}

	resp.Body = newIdleBody(resp.Body, c.timeout, cancel)
	return resp, nil
}

// idleBody cancels its request when no read completes for timeout.
type idleBody struct {
	body    io.ReadCloser
	timeout time.Duration
	timer   *time.Timer
	cancel  context.CancelFunc
	expired atomic.Bool
}

func newIdleBody(body io.ReadCloser, timeout time.Duration, cancel context.CancelFunc) *idleBody {
	b := &idleBody{body: body, timeout: timeout, cancel: cancel}
	b.timer = time.AfterFunc(timeout, func() {
		b.expired.Store(true)
		cancel()
	})
	return b
}

func (b *idleBody) Read(p []byte) (int, error) {
	n, err := b.body.Read(p)
	if err != nil && b.expired.Load() {
		return n, fmt.Errorf("%w (%s): %v", ErrIdleTimeout, b.timeout, err)
	}
	if n > 0 {
		b.timer.Reset(b.timeout)
	}
	return n, err
}

func (b *idleBody) Close() error {
	b.timer.Stop()
	err := b.body.Close()
	b.cancel()
	return err
}

// GetJSON performs a GET request and decodes the JSON body into v.
//
// Returns an error if:
//   - The request fails
//   - The response status is not 200 OK
//   - The body is not valid JSON for v
func (c *Client) GetJSON(ctx context.Context, url string, v any) error {
	resp, err := c.do(ctx, url)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return fmt.Errorf("decode JSON from %s: %w", url, err)
	}
	return nil
}

// Stream performs a GET request and returns the open body without
// reading it, so large files can be written to disk incrementally.
//
// Example:
//
//	resp, err := client.Stream(ctx, imageURL)
//	if err != nil {
//	    return err
//	}
//	defer resp.Body.Close()
//	ext := ioutils.ExtensionForContentType(resp.ContentType)
func (c *Client) Stream(ctx context.Context, url string) (*Response, error) {
	resp, err := c.do(ctx, url)
	if err != nil {
		return nil, err
	}

	return &Response{
		Body:          resp.Body,
		ContentType:   resp.Header.Get("Content-Type"),
		ContentLength: resp.ContentLength,
	}, nil
}

// CopyChunks copies src to dst in reads of at most chunkSize bytes,
// skipping empty reads. It returns the number of bytes written.
func CopyChunks(dst io.Writer, src io.Reader, chunkSize int) (int64, error) {
	if chunkSize <= 0 {
		chunkSize = DefaultChunkSize
	}

	buf := make([]byte, chunkSize)
	var written int64
	for {
		n, rerr := src.Read(buf)
		if n > 0 {
			wn, werr := dst.Write(buf[:n])
			written += int64(wn)
			if werr != nil {
				return written, werr
			}
			if wn != n {
				return written, io.ErrShortWrite
			}
		}
		if rerr == io.EOF {
			return written, nil
		}
		if rerr != nil {
			return written, rerr
		}
	}
}
