package mock

import "github.com/fwojciec/pagex"

var _ pagex.Converter = (*Converter)(nil)

// Converter is a mock implementation of pagex.Converter.
type Converter struct {
	ConvertFn func(html string) (string, error)
}

func (c *Converter) Convert(html string) (string, error) {
	return c.ConvertFn(html)
}
