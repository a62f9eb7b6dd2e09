package pagex

import "strings"

// Strategy selects the boundary extractor used for a request.
type Strategy string

const (
	// StrategySiblings keeps the heading and its following siblings.
	StrategySiblings Strategy = "siblings"

	// StrategyRegex cuts the rendered markup after the heading with patterns.
	StrategyRegex Strategy = "regex"

	// StrategyReadability merges a boilerplate-free article with page images.
	StrategyReadability Strategy = "readability"
)

// Strategies lists all strategies in their legacy numeric order.
var Strategies = []Strategy{StrategySiblings, StrategyRegex, StrategyReadability}

// ParseStrategy converts a name or legacy numeric code ("0", "1", "2")
// into a Strategy.
func ParseStrategy(s string) (Strategy, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for i, st := range Strategies {
		if s == string(st) || s == string(rune('0'+i)) {
			return st, nil
		}
	}
	return "", Errorf(EINVALID, "unknown strategy %q", s)
}

// FetchMode selects how pages are acquired.
type FetchMode string

const (
	FetchModeHTTP    FetchMode = "http"
	FetchModeBrowser FetchMode = "browser"
)

// ParseFetchMode converts a name into a FetchMode.
func ParseFetchMode(s string) (FetchMode, error) {
	switch m := FetchMode(strings.ToLower(strings.TrimSpace(s))); m {
	case FetchModeHTTP, FetchModeBrowser:
		return m, nil
	}
	return "", Errorf(EINVALID, "unknown fetch mode %q", s)
}

// Unbounded disables the upper bound of the acceptance gate.
const Unbounded = -1

// ParseRequest describes how a single URL is fetched, extracted and gated.
// Treat it as immutable; use WithURL to derive per-URL copies.
type ParseRequest struct {
	URL         string
	IgnoreWords []string
	Strategy    Strategy
	FetchMode   FetchMode
	MinChars    int
	MaxChars    int
}

// NewParseRequest returns a request template with the ignore words
// normalized into an ordered set.
func NewParseRequest(strategy Strategy, mode FetchMode, ignoreWords []string, minChars, maxChars int) *ParseRequest {
	return &ParseRequest{
		IgnoreWords: NormalizeIgnoreWords(ignoreWords),
		Strategy:    strategy,
		FetchMode:   mode,
		MinChars:    minChars,
		MaxChars:    maxChars,
	}
}

// Validate returns an error if the request contains invalid fields.
func (r *ParseRequest) Validate() error {
	switch r.Strategy {
	case StrategySiblings, StrategyRegex, StrategyReadability:
	default:
		return Errorf(EINVALID, "unknown strategy %q", r.Strategy)
	}
	switch r.FetchMode {
	case FetchModeHTTP, FetchModeBrowser:
	default:
		return Errorf(EINVALID, "unknown fetch mode %q", r.FetchMode)
	}
	if r.MinChars < 0 {
		return Errorf(EINVALID, "min chars must not be negative")
	}
	if r.MaxChars != Unbounded && r.MaxChars < r.MinChars {
		return Errorf(EINVALID, "max chars %d is below min chars %d", r.MaxChars, r.MinChars)
	}
	return nil
}

// WithURL returns a copy of the request bound to url.
func (r *ParseRequest) WithURL(url string) *ParseRequest {
	c := *r
	c.URL = url
	c.IgnoreWords = append([]string(nil), r.IgnoreWords...)
	return &c
}

// Accepts reports whether content with n visible characters passes the
// acceptance gate. Both bounds are inclusive.
func (r *ParseRequest) Accepts(n int) bool {
	if n < r.MinChars {
		return false
	}
	return r.MaxChars == Unbounded || n <= r.MaxChars
}

// NormalizeIgnoreWords trims phrases, drops blanks and removes
// case-insensitive duplicates while keeping the first occurrence's position.
func NormalizeIgnoreWords(words []string) []string {
	seen := make(map[string]bool, len(words))
	out := make([]string, 0, len(words))
	for _, w := range words {
		w = strings.TrimSpace(w)
		if w == "" {
			continue
		}
		key := strings.ToLower(w)
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, w)
	}
	return out
}
