package rod

import "github.com/fwojciec/pagex"

// Session exposes the session seam to external tests.
type Session = session

// NewFetcherWithSessions creates a Fetcher that uses newSession instead of
// launching Chrome.
func NewFetcherWithSessions(newSession func(pagex.BrowserConfig) (Session, error), opts ...Option) *Fetcher {
	f := NewFetcher(opts...)
	f.newSession = newSession
	return f
}
