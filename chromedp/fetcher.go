// Package chromedp provides a browser-based implementation of pagex.Fetcher
// using chromedp. It is an alternative to the rod driver with the same
// isolation and scrolling behavior.
package chromedp

import (
	"context"
	"fmt"
	"time"

	"github.com/fwojciec/pagex"
)

// DefaultFetchTimeout bounds a single browser fetch, including the settle
// and scroll delays.
const DefaultFetchTimeout = 60 * time.Second

// Ensure Fetcher implements pagex.Fetcher at compile time.
var _ pagex.Fetcher = (*Fetcher)(nil)

// session is one isolated browser instance.
type session interface {
	// Render navigates to url, scrolls, and returns the page markup and
	// the main document's HTTP status code (0 if unknown).
	Render(ctx context.Context, url string) (html string, status int, err error)

	// Teardown closes the browser and releases its allocator.
	Teardown() error
}

// Fetcher retrieves rendered markup by starting a fresh headless Chrome
// per call.
type Fetcher struct {
	cfg        pagex.BrowserConfig
	timeout    time.Duration
	newSession func(cfg pagex.BrowserConfig) session
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithBrowserConfig sets the settle, scroll and final delays.
func WithBrowserConfig(cfg pagex.BrowserConfig) Option {
	return func(f *Fetcher) {
		f.cfg = cfg
	}
}

// WithFetchTimeout sets the timeout for a single fetch.
func WithFetchTimeout(d time.Duration) Option {
	return func(f *Fetcher) {
		f.timeout = d
	}
}

// NewFetcher creates a new Fetcher.
func NewFetcher(opts ...Option) *Fetcher {
	f := &Fetcher{
		cfg:        pagex.DefaultConfig().Browser,
		timeout:    DefaultFetchTimeout,
		newSession: newBrowserSession,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Fetch renders the page at url in a new browser, which is torn down
// exactly once before returning.
func (f *Fetcher) Fetch(ctx context.Context, url string) (out pagex.FetchOutcome) {
	if err := ctx.Err(); err != nil {
		return pagex.FetchFailure(fmt.Sprintf("Browser fetch canceled: %v", err))
	}

	s := f.newSession(f.cfg)
	defer func() {
		_ = s.Teardown()
	}()
	defer func() {
		if r := recover(); r != nil {
			out = pagex.FetchFailure(fmt.Sprintf("Browser crashed: %v", r))
		}
	}()

	ctx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	html, code, err := s.Render(ctx, url)
	if err != nil {
		return pagex.FetchFailure(fmt.Sprintf("Browser render failed: %v", err))
	}
	if code >= 400 {
		return pagex.FetchFailure(pagex.StatusDescription(code))
	}

	status := "Rendered in browser"
	if code != 0 {
		status = pagex.StatusDescription(code)
	}
	return pagex.FetchOutcome{HTML: html, Status: status}
}

// Close is a no-op; browsers do not outlive a single Fetch.
func (f *Fetcher) Close() error {
	return nil
}
