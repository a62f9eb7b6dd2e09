// Package htmltomarkdown renders extracted article content as Markdown
// and exports datasets as Markdown files.
package htmltomarkdown

import (
	"strings"

	"github.com/JohannesKaufmann/html-to-markdown/v2/converter"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/base"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/commonmark"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/table"
	"github.com/fwojciec/pagex"
)

// Ensure Converter implements pagex.Converter at compile time.
var _ pagex.Converter = (*Converter)(nil)

// Converter renders record content as CommonMark with GFM tables.
//
// Input is the sanitized article fragment stored on a record: a heading
// followed by body blocks, with image sources already rewritten, and no
// html or body wrapper.
type Converter struct {
	conv *converter.Converter
}

// NewConverter creates a new Converter.
func NewConverter() *Converter {
	conv := converter.NewConverter(
		converter.WithPlugins(
			base.NewBasePlugin(),
			commonmark.NewCommonmarkPlugin(),
			table.NewTablePlugin(),
		),
	)
	return &Converter{conv: conv}
}

// Convert renders one record's content fragment as Markdown.
//
// Blank input returns EINVALID. A failure inside html-to-markdown returns
// ECONVERT; the Markdown exporter treats that code as recoverable and
// writes the fragment as inline HTML instead.
func (c *Converter) Convert(html string) (string, error) {
	if strings.TrimSpace(html) == "" {
		return "", pagex.Errorf(pagex.EINVALID, "empty HTML input")
	}

	result, err := c.conv.ConvertString(html)
	if err != nil {
		return "", pagex.Errorf(pagex.ECONVERT, "convert to markdown: %v", err)
	}
	return result, nil
}
