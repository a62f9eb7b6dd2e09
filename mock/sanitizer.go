package mock

import "github.com/fwojciec/pagex"

var _ pagex.Sanitizer = (*Sanitizer)(nil)

// Sanitizer is a mock implementation of pagex.Sanitizer.
type Sanitizer struct {
	SanitizeFn func(fragment, baseURL string) (*pagex.SanitizeResult, error)
}

func (s *Sanitizer) Sanitize(fragment, baseURL string) (*pagex.SanitizeResult, error) {
	return s.SanitizeFn(fragment, baseURL)
}
