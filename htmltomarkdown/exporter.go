package htmltomarkdown

import (
	"context"
	"fmt"
	"strings"

	"github.com/fwojciec/pagex"
	"github.com/fwojciec/pagex/fs"
	"gopkg.in/yaml.v3"
)

// ArchiveName is the base name of the ZIP written for multi-record
// datasets.
const ArchiveName = "parsed_content_md"

// Ensure Exporter implements pagex.Exporter at compile time.
var _ pagex.Exporter = (*Exporter)(nil)

// Exporter writes one Markdown file with YAML front matter per accepted
// record. Several files are bundled into a single ZIP archive.
type Exporter struct {
	conv pagex.Converter
}

// NewExporter creates an Exporter that renders content with conv.
func NewExporter(conv pagex.Converter) *Exporter {
	return &Exporter{conv: conv}
}

// frontMatter is the metadata block at the top of each file.
type frontMatter struct {
	ID       string   `yaml:"id"`
	Title    string   `yaml:"title"`
	Source   string   `yaml:"source"`
	Response string   `yaml:"response,omitempty"`
	Parsed   string   `yaml:"parsed,omitempty"`
	Images   []string `yaml:"images,omitempty"`
}

// Export converts every record and publishes the result in dir.
func (e *Exporter) Export(ctx context.Context, ds *pagex.Dataset, dir string) ([]string, error) {
	if ds.Empty() {
		return nil, pagex.NoDataError()
	}

	b := fs.NewBundle(dir, ArchiveName)
	for _, r := range ds.Records {
		if err := ctx.Err(); err != nil {
			_ = b.Abort()
			return nil, err
		}
		doc, err := e.format(ds, r)
		if err != nil {
			_ = b.Abort()
			return nil, err
		}
		if err := b.Save(fs.RecordFileName(r.ID, r.SourceURL, "md"), []byte(doc)); err != nil {
			_ = b.Abort()
			return nil, err
		}
	}
	return b.Commit()
}

// format renders one record as front matter followed by its Markdown body.
func (e *Exporter) format(ds *pagex.Dataset, r *pagex.ParseRecord) (string, error) {
	fm := frontMatter{
		ID:       r.ID,
		Title:    r.Title,
		Source:   r.SourceURL,
		Response: r.ResponseDescription,
		Images:   r.ImagesRewritten,
	}
	if !ds.CreatedAt.IsZero() {
		fm.Parsed = ds.CreatedAt.Format("2006-01-02")
	}
	meta, err := yaml.Marshal(fm)
	if err != nil {
		return "", fmt.Errorf("marshal front matter for %s: %w", r.SourceURL, err)
	}

	var body string
	if strings.TrimSpace(r.Content) != "" {
		body, err = e.conv.Convert(r.Content)
		switch {
		case pagex.ErrorCode(err) == pagex.ECONVERT:
			// Inline HTML is valid Markdown.
			body = r.Content
		case err != nil:
			return "", fmt.Errorf("convert %s: %w", r.SourceURL, err)
		}
	}

	var sb strings.Builder
	sb.WriteString("---\n")
	sb.Write(meta)
	sb.WriteString("---\n\n")
	sb.WriteString(body)
	if body != "" && !strings.HasSuffix(body, "\n") {
		sb.WriteString("\n")
	}
	return sb.String(), nil
}
