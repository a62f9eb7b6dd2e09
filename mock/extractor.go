package mock

import "github.com/fwojciec/pagex"

var _ pagex.Extractor = (*Extractor)(nil)

// Extractor is a mock implementation of pagex.Extractor.
type Extractor struct {
	ExtractFn func(rawHTML string, ignoreWords []string) (*pagex.ExtractResult, error)
}

func (e *Extractor) Extract(rawHTML string, ignoreWords []string) (*pagex.ExtractResult, error) {
	return e.ExtractFn(rawHTML, ignoreWords)
}
