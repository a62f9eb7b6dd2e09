package mock

import (
	"context"

	"github.com/fwojciec/pagex"
)

var _ pagex.Fetcher = (*Fetcher)(nil)

// Fetcher is a mock implementation of pagex.Fetcher.
type Fetcher struct {
	FetchFn func(ctx context.Context, url string) pagex.FetchOutcome
	CloseFn func() error
}

func (f *Fetcher) Fetch(ctx context.Context, url string) pagex.FetchOutcome {
	return f.FetchFn(ctx, url)
}

func (f *Fetcher) Close() error {
	return f.CloseFn()
}
