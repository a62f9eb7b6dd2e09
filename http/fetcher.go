// Package http provides an HTTP-based implementation of pagex.Fetcher
// for pages that don't require JavaScript rendering.
package http

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"

	"github.com/fwojciec/pagex"
	"golang.org/x/net/html/charset"
)

// DefaultFetchTimeout is the default total timeout for one request.
const DefaultFetchTimeout = 15 * time.Second

// Ensure Fetcher implements pagex.Fetcher at compile time.
var _ pagex.Fetcher = (*Fetcher)(nil)

// Fetcher retrieves page markup with a single GET request.
// Fetcher is safe for concurrent use by multiple goroutines.
type Fetcher struct {
	client  *http.Client
	timeout time.Duration
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithTimeout sets the total timeout for HTTP requests.
// Defaults to DefaultFetchTimeout (15s) if not specified.
func WithTimeout(d time.Duration) Option {
	return func(f *Fetcher) {
		f.timeout = d
	}
}

// WithClient sets the underlying HTTP client. Its Timeout is overridden.
func WithClient(c *http.Client) Option {
	return func(f *Fetcher) {
		f.client = c
	}
}

// NewFetcher creates a new HTTP-based Fetcher.
func NewFetcher(opts ...Option) *Fetcher {
	f := &Fetcher{
		timeout: DefaultFetchTimeout,
	}
	for _, opt := range opts {
		opt(f)
	}

	if f.client == nil {
		f.client = &http.Client{}
	}
	f.client.Timeout = f.timeout

	return f
}

// Fetch retrieves the page at url. Non-200 responses, transport errors and
// timeouts produce failed outcomes with a descriptive status.
func (f *Fetcher) Fetch(ctx context.Context, url string) pagex.FetchOutcome {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return pagex.FetchFailure(fmt.Sprintf("Invalid request: %v", err))
	}
	req.Header.Set("User-Agent", pagex.UserAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		return pagex.FetchFailure(f.describeError(err))
	}
	defer resp.Body.Close()

	status := pagex.StatusDescription(resp.StatusCode)
	if resp.StatusCode != http.StatusOK {
		return pagex.FetchFailure(status)
	}

	body, err := charset.NewReader(resp.Body, resp.Header.Get("Content-Type"))
	if err != nil {
		return pagex.FetchFailure(fmt.Sprintf("Unsupported encoding: %v", err))
	}
	b, err := io.ReadAll(body)
	if err != nil {
		return pagex.FetchFailure(f.describeError(err))
	}

	return pagex.FetchOutcome{HTML: string(b), Status: status}
}

func (f *Fetcher) describeError(err error) string {
	var netErr net.Error
	if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &netErr) && netErr.Timeout()) {
		return fmt.Sprintf("Request timed out after %s", f.timeout)
	}
	return fmt.Sprintf("Request failed: %v", err)
}

// Close releases resources. For HTTP fetcher this is a no-op since
// http.Client doesn't require explicit cleanup.
func (f *Fetcher) Close() error {
	return nil
}
