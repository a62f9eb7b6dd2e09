// Package readability provides a pagex.Cleaner backed by go-readability.
package readability

import (
	"strings"

	"github.com/fwojciec/pagex"
	"github.com/go-shiori/go-readability"
)

// Ensure Cleaner implements pagex.Cleaner at compile time.
var _ pagex.Cleaner = (*Cleaner)(nil)

// Cleaner wraps go-readability to strip boilerplate from a page.
type Cleaner struct{}

// NewCleaner creates a new Cleaner.
func NewCleaner() *Cleaner {
	return &Cleaner{}
}

// Clean returns the readable article of rawHTML as an HTML fragment.
func (c *Cleaner) Clean(rawHTML string) (string, error) {
	if strings.TrimSpace(rawHTML) == "" {
		return "", pagex.Errorf(pagex.EINVALID, "empty HTML input")
	}

	article, err := readability.FromReader(strings.NewReader(rawHTML), nil)
	if err != nil {
		return "", err
	}

	return article.Content, nil
}
