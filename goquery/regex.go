package goquery

import (
	"html"
	"regexp"
	"strings"

	"github.com/fwojciec/pagex"
)

// Ensure RegexExtractor implements pagex.Extractor at compile time.
var _ pagex.Extractor = (*RegexExtractor)(nil)

var (
	headingAndRest = regexp.MustCompile(`(?s)(<h1[^>]*>.*?</h1>)(.*)`)
	trailingTag    = regexp.MustCompile(`(?s)<[^>]*>[^<]*$`)
)

// RegexExtractor works on the rendered markup rather than the tree: it
// keeps everything after the first <h1> and cuts it at each ignore word in
// turn, trimming back so no partial tag is left at the end.
type RegexExtractor struct{}

// NewRegexExtractor creates a new RegexExtractor.
func NewRegexExtractor() *RegexExtractor {
	return &RegexExtractor{}
}

// Extract returns the heading markup followed by the trimmed remainder.
func (e *RegexExtractor) Extract(rawHTML string, ignoreWords []string) (*pagex.ExtractResult, error) {
	doc, err := parseDocument(rawHTML)
	if err != nil {
		return nil, pagex.Errorf(pagex.EEXTRACT, "failed to parse HTML: %v", err)
	}
	rendered, err := doc.Html()
	if err != nil {
		return nil, pagex.Errorf(pagex.EEXTRACT, "failed to render HTML: %v", err)
	}

	m := headingAndRest.FindStringSubmatch(rendered)
	if m == nil {
		return &pagex.ExtractResult{Title: pagex.NoTitle}, nil
	}

	tail := m[2]
	for _, word := range ignoreWords {
		tail = cutAtPhrase(tail, word)
	}

	return &pagex.ExtractResult{
		Title:       titleOrDefault(headingTitle(doc.Find("h1").First())),
		ContentHTML: m[1] + tail,
	}, nil
}

// cutAtPhrase removes everything from the first case-insensitive
// occurrence of phrase, in raw or entity-escaped form. A phrase inside a
// tag drops that tag; otherwise the cut trims back to the last complete
// tag boundary. s is returned unchanged when the phrase
// does not occur.
func cutAtPhrase(s, phrase string) string {
	if strings.TrimSpace(phrase) == "" {
		return s
	}
	re := phrasePattern(phrase)
	loc := re.FindStringIndex(s)
	if loc == nil {
		return s
	}
	s = s[:loc[0]]

	// Inside an unterminated tag: dropping the tag is enough.
	if lt := strings.LastIndex(s, "<"); lt > strings.LastIndex(s, ">") {
		return s[:lt]
	}
	if loc := trailingTag.FindStringIndex(s); loc != nil {
		s = s[:loc[0]]
	}
	return s
}

func phrasePattern(phrase string) *regexp.Regexp {
	raw := regexp.QuoteMeta(phrase)
	escaped := regexp.QuoteMeta(html.EscapeString(phrase))
	if raw == escaped {
		return regexp.MustCompile(`(?i)` + raw)
	}
	return regexp.MustCompile(`(?i)(?:` + raw + `|` + escaped + `)`)
}
