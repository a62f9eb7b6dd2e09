package pagex

// NoTitle is the title reported when a page has no primary heading.
const NoTitle = "No Title"

// ExtractResult holds the content fragment found beneath a page's heading.
type ExtractResult struct {
	// Title is the stripped text of the first <h1>, or NoTitle.
	Title string

	// ContentHTML is the heading markup followed by the content that
	// precedes the first stop phrase. Empty when the page has no heading.
	ContentHTML string
}

// Extractor finds the main content region anchored at the first <h1>.
type Extractor interface {
	// Extract processes raw page HTML. Content at or after the first
	// case-insensitive occurrence of any ignore word is excluded.
	Extract(rawHTML string, ignoreWords []string) (*ExtractResult, error)
}

// Cleaner strips boilerplate from a full page and returns the article
// as an HTML fragment.
type Cleaner interface {
	Clean(rawHTML string) (string, error)
}
