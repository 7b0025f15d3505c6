// Package http provides an HTTP client configured for the wallpaper provider.
//
// The Client in this package handles:
//   - A browser-like User-Agent (the provider rejects empty/default ones)
//   - Connect and header timeouts, and an idle timeout on each body read
//     (a slow but steady download is never cut off)
//   - JSON decoding of metadata responses
//   - Streaming image bodies in fixed-size chunks
//
// # Basic Usage
//
//	client := http.NewClient(http.DefaultUserAgent, 10*time.Second)
//
//	// Decode a JSON document
//	var payload map[string]any
//	err := client.GetJSON(ctx, "https://bing.biturl.top/?format=json", &payload)
//
//	// Stream an image
//	resp, err := client.Stream(ctx, imageURL)
//	defer resp.Body.Close()
//	n, err := http.CopyChunks(file, resp.Body, 1024)
//
// # Progress Tracking
//
// The ProgressWriter type can be used to wrap any io.Writer for progress tracking:
//
//	pw := &http.ProgressWriter{
//	    Writer:   file,
//	    Total:    resp.ContentLength,
//	    OnUpdate: func(written, total int64) { /* update UI */ },
//	}
package http
