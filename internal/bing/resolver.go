package bing

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strconv"

	"github.com/sirupsen/logrus"

	"github.com/handiism/bing-wallpaper-downloader/internal/bing/dto"
	"github.com/handiism/bing-wallpaper-downloader/internal/http"
	"github.com/handiism/bing-wallpaper-downloader/internal/model"
)

// DefaultEndpoint is the provider's JSON API.
const DefaultEndpoint = "https://bing.biturl.top/"

// ErrNoRecord means no usable record could be fetched for an index.
// It is an expected outcome, not a programming error.
var ErrNoRecord = errors.New("no wallpaper record")

// Query holds the fixed query parameters sent with every request.
type Query struct {
	Resolution string
	Format     string
	Market     string
}

// DefaultQuery asks for the UHD image as JSON for the en-US market.
func DefaultQuery() Query {
	return Query{Resolution: "UHD", Format: "json", Market: "en-US"}
}

// Resolver fetches wallpaper records for day-indices.
//
// Each Resolve call issues exactly one request; there is no caching and
// no retry.
type Resolver struct {
	client   *http.Client
	endpoint string
	query    Query
	log      *logrus.Logger
}

// NewResolver creates a Resolver querying endpoint with q.
func NewResolver(client *http.Client, endpoint string, q Query, log *logrus.Logger) *Resolver {
	return &Resolver{
		client:   client,
		endpoint: endpoint,
		query:    q,
		log:      log,
	}
}

// URL returns the request URL for a day-index.
func (r *Resolver) URL(index int) (string, error) {
	u, err := url.Parse(r.endpoint)
	if err != nil {
		return "", fmt.Errorf("parse endpoint %q: %w", r.endpoint, err)
	}

	q := u.Query()
	q.Set("resolution", r.query.Resolution)
	q.Set("format", r.query.Format)
	q.Set("mkt", r.query.Market)
	q.Set("index", strconv.Itoa(index))
	u.RawQuery = q.Encode()

	return u.String(), nil
}

// Resolve fetches and decodes the record for a day-index.
//
// Any transport error, non-200 status, body that is not a JSON object, or
// empty object yields an error wrapping ErrNoRecord. A record whose url
// field is missing is still returned; callers check HasImage.
func (r *Resolver) Resolve(ctx context.Context, index int) (*model.WallpaperRecord, error) {
	target, err := r.URL(index)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNoRecord, err)
	}

	reqLog := r.log.WithFields(logrus.Fields{"index": index, "url": target})

	var raw json.RawMessage
	if err := r.client.GetJSON(ctx, target, &raw); err != nil {
		reqLog.WithError(err).Warn("Failed to fetch wallpaper record")
		return nil, fmt.Errorf("%w: %v", ErrNoRecord, err)
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		reqLog.WithError(err).Warn("Wallpaper record is not a JSON object")
		return nil, fmt.Errorf("%w: %v", ErrNoRecord, err)
	}
	if len(fields) == 0 {
		reqLog.Warn("Provider returned an empty record")
		return nil, fmt.Errorf("%w: empty document", ErrNoRecord)
	}

	var payload dto.JSONWallpaper
	if err := json.Unmarshal(raw, &payload); err != nil {
		reqLog.WithError(err).Warn("Wallpaper record has unexpected field types")
		return nil, fmt.Errorf("%w: %v", ErrNoRecord, err)
	}

	reqLog.WithField("end_date", payload.EndDate).Debug("Resolved wallpaper record")
	return payload.ToRecord(), nil
}
