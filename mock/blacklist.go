package mock

import (
	"context"

	"github.com/fwojciec/pagex"
)

var _ pagex.Blacklist = (*Blacklist)(nil)

// Blacklist is a mock implementation of pagex.Blacklist.
type Blacklist struct {
	ContainsFn func(ctx context.Context, urlOrDomain string) (bool, error)
	AppendFn   func(ctx context.Context, list, entry string) error
}

func (b *Blacklist) Contains(ctx context.Context, urlOrDomain string) (bool, error) {
	return b.ContainsFn(ctx, urlOrDomain)
}

func (b *Blacklist) Append(ctx context.Context, list, entry string) error {
	return b.AppendFn(ctx, list, entry)
}
