// Package rod provides a browser-based implementation of pagex.Fetcher
// using go-rod. Every fetch runs in its own headless browser.
package rod

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
	// Render navigates to url, scrolls, and returns the page markup.
	Render(ctx context.Context, url string) (string, error)

	// Teardown closes the browser and kills its process.
	Teardown() error
}

// Fetcher retrieves rendered markup by launching a fresh headless browser
// per call. Fetcher is safe for concurrent use by multiple goroutines, but
// callers should bound concurrency since each call holds a browser.
type Fetcher struct {
	cfg        pagex.BrowserConfig
	timeout    time.Duration
	newSession func(cfg pagex.BrowserConfig) (session, error)
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
// Defaults to DefaultFetchTimeout (60s) if not specified.
func WithFetchTimeout(d time.Duration) Option {
	return func(f *Fetcher) {
		f.timeout = d
	}
}

// NewFetcher creates a new Fetcher. No browser is started until Fetch.
func NewFetcher(opts ...Option) *Fetcher {
	f := &Fetcher{
		cfg:        pagex.DefaultConfig().Browser,
		timeout:    DefaultFetchTimeout,
		newSession: launch,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Fetch renders the page at url. The browser is torn down exactly once
// whether rendering succeeds, fails or panics.
func (f *Fetcher) Fetch(ctx context.Context, url string) (out pagex.FetchOutcome) {
	if err := ctx.Err(); err != nil {
		return pagex.FetchFailure(fmt.Sprintf("Browser fetch canceled: %v", err))
	}

	s, err := f.newSession(f.cfg)
	if err != nil {
		return pagex.FetchFailure(fmt.Sprintf("Browser failed to start: %v", err))
	}
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

	html, err := s.Render(ctx, url)
	if err != nil {
		return pagex.FetchFailure(fmt.Sprintf("Browser render failed: %v", err))
	}
	return pagex.FetchOutcome{HTML: html, Status: "Rendered in browser"}
}

// Close is a no-op; browsers do not outlive a single Fetch.
func (f *Fetcher) Close() error {
	return nil
}

// sleep waits for d or until ctx is done.
func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
