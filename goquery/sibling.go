package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/pagex"
)

// Ensure SiblingExtractor implements pagex.Extractor at compile time.
var _ pagex.Extractor = (*SiblingExtractor)(nil)

// SiblingExtractor keeps the first <h1> and the element siblings that
// follow it on the same level, stopping at the first sibling whose text
// contains an ignore word.
type SiblingExtractor struct{}

// NewSiblingExtractor creates a new SiblingExtractor.
func NewSiblingExtractor() *SiblingExtractor {
	return &SiblingExtractor{}
}

// Extract returns the heading markup followed by the accepted siblings.
func (e *SiblingExtractor) Extract(rawHTML string, ignoreWords []string) (*pagex.ExtractResult, error) {
	doc, err := parseDocument(rawHTML)
	if err != nil {
		return nil, pagex.Errorf(pagex.EEXTRACT, "failed to parse HTML: %v", err)
	}

	h1 := doc.Find("h1").First()
	if h1.Length() == 0 {
		return &pagex.ExtractResult{Title: pagex.NoTitle}, nil
	}

	var b strings.Builder
	b.WriteString(renderNode(h1.Get(0)))

	h1.NextAll().EachWithBreak(func(_ int, sib *goquery.Selection) bool {
		if hasStopPhrase(sib.Get(0), ignoreWords) {
			return false
		}
		b.WriteString(renderNode(sib.Get(0)))
		return true
	})

	return &pagex.ExtractResult{
		Title:       titleOrDefault(headingTitle(h1)),
		ContentHTML: b.String(),
	}, nil
}

func titleOrDefault(title string) string {
	if title == "" {
		return pagex.NoTitle
	}
	return title
}
