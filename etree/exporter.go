package etree

import (
	"context"

	"github.com/fwojciec/pagex"
	"github.com/fwojciec/pagex/fs"
)

// ArchiveName is the base name of the ZIP written for multi-record
// datasets.
const ArchiveName = "parsed_content_xml"

// Ensure Exporter implements pagex.Exporter at compile time.
var _ pagex.Exporter = (*Exporter)(nil)

// Exporter writes one XML file per accepted record. Several files are
// bundled into a single ZIP archive.
type Exporter struct{}

// NewExporter creates a new Exporter.
func NewExporter() *Exporter {
	return &Exporter{}
}

// Export converts every record's content and publishes the result in dir.
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
		name := fs.RecordFileName(r.ID, r.SourceURL, "xml")
		if err := b.Save(name, []byte(ConvertHTML(r.Content))); err != nil {
			_ = b.Abort()
			return nil, err
		}
	}
	return b.Commit()
}
