// Package trafilatura provides a pagex.Cleaner backed by go-trafilatura.
package trafilatura

import (
	"bytes"
	"strings"

	"github.com/fwojciec/pagex"
	"github.com/markusmobius/go-trafilatura"
	"golang.org/x/net/html"
)

// Ensure Cleaner implements pagex.Cleaner at compile time.
var _ pagex.Cleaner = (*Cleaner)(nil)

// Cleaner wraps go-trafilatura to strip boilerplate from a page. Images
// are kept so that the merge extractor can de-duplicate against them.
type Cleaner struct {
	opts trafilatura.Options
}

// NewCleaner creates a new Cleaner.
func NewCleaner() *Cleaner {
	return &Cleaner{
		opts: trafilatura.Options{
			EnableFallback: true,
			IncludeImages:  true,
		},
	}
}

// Clean returns the main content of rawHTML as an HTML fragment. A page
// without detectable content yields an empty fragment.
func (c *Cleaner) Clean(rawHTML string) (string, error) {
	if strings.TrimSpace(rawHTML) == "" {
		return "", pagex.Errorf(pagex.EINVALID, "empty HTML input")
	}

	result, err := trafilatura.Extract(strings.NewReader(rawHTML), c.opts)
	if err != nil {
		return "", err
	}
	if result.ContentNode == nil {
		return "", nil
	}

	return renderNode(result.ContentNode)
}

// renderNode converts an html.Node to a string.
func renderNode(n *html.Node) (string, error) {
	var buf bytes.Buffer
	if err := html.Render(&buf, n); err != nil {
		return "", err
	}
	return buf.String(), nil
}
