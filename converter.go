package pagex

// Converter converts HTML to Markdown.
type Converter interface {
	// Convert transforms a sanitized content fragment into Markdown.
	Convert(html string) (string, error)
}
