package pagex

// SanitizeResult holds a cleaned fragment and the image URLs seen before
// and after rewriting.
type SanitizeResult struct {
	HTML            string
	ImagesOriginal  []string
	ImagesRewritten []string

	// TextLength is the number of visible characters in HTML, counting
	// each run of whitespace as one character.
	TextLength int
}

// Sanitizer removes disallowed markup and rewrites image URLs to absolute
// form. Sanitizing an already sanitized fragment returns it unchanged.
type Sanitizer interface {
	Sanitize(fragment, baseURL string) (*SanitizeResult, error)
}
