package mock

import "github.com/fwojciec/pagex"

var _ pagex.Cleaner = (*Cleaner)(nil)

// Cleaner is a mock implementation of pagex.Cleaner.
type Cleaner struct {
	CleanFn func(rawHTML string) (string, error)
}

func (c *Cleaner) Clean(rawHTML string) (string, error) {
	return c.CleanFn(rawHTML)
}
