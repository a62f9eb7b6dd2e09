package chromedp

import "github.com/fwojciec/pagex"

// Session exposes the session seam to external tests.
type Session = session

// NewFetcherWithSessions creates a Fetcher that uses newSession instead of
// starting Chrome.
func NewFetcherWithSessions(newSession func(pagex.BrowserConfig) Session, opts ...Option) *Fetcher {
	f := NewFetcher(opts...)
	f.newSession = newSession
	return f
}
