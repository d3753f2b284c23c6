// Package fetch retrieves the item list from the remote catalog API.
//
// A Fetcher performs one HTTP GET per call and decodes the JSON array into
// catalog.Item values. It does not retry; every failure is reported as a
// *LoadError so callers can treat transport, status and decode problems alike.
package fetch

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/go-faster/errors"

	"github.com/abelbrown/catalog/internal/catalog"
)

// DefaultEndpoint is the sample API the catalog was built against.
const DefaultEndpoint = "https://api.sampleapis.com/beers/ale"

// maxBodyBytes caps the response size read from the endpoint.
const maxBodyBytes = 16 << 20

// Fetcher retrieves items from a single JSON endpoint.
type Fetcher struct {
	client    *http.Client
	endpoint  string
	userAgent string
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithClient replaces the HTTP client. The client's Timeout is left as-is.
func WithClient(c *http.Client) Option {
	return func(f *Fetcher) { f.client = c }
}

// WithUserAgent sets the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(f *Fetcher) { f.userAgent = ua }
}

// NewFetcher creates a Fetcher for endpoint with the given HTTP client timeout.
func NewFetcher(endpoint string, timeout time.Duration, opts ...Option) *Fetcher {
	f := &Fetcher{
		client:    &http.Client{Timeout: timeout},
		endpoint:  endpoint,
		userAgent: "catalog/0.1",
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Endpoint returns the URL this fetcher reads from.
func (f *Fetcher) Endpoint() string {
	return f.endpoint
}

// Load fetches and decodes the item list. It respects context cancellation
// before and during the request.
func (f *Fetcher) Load(ctx context.Context) ([]catalog.Item, error) {
	if err := ctx.Err(); err != nil {
		return nil, loadError(0, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.endpoint, nil)
	if err != nil {
		return nil, loadError(0, errors.Wrap(err, "create request"))
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", f.userAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, loadError(0, errors.Wrap(err, "fetch items"))
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		// Drain a little so the connection can be reused.
		_, _ = io.CopyN(io.Discard, resp.Body, 4<<10)
		return nil, loadError(resp.StatusCode, errors.Errorf("HTTP error: %s", resp.Status))
	}

	var items []catalog.Item
	dec := json.NewDecoder(io.LimitReader(resp.Body, maxBodyBytes))
	if err := dec.Decode(&items); err != nil {
		return nil, loadError(resp.StatusCode, errors.Wrap(err, "decode items"))
	}
	if items == nil {
		// A literal JSON null is not a list.
		return nil, loadError(resp.StatusCode, errors.New("decode items: response is not a JSON array"))
	}

	return items, nil
}
