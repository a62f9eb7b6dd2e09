// Package csv exports datasets as UTF-8 CSV files.
package csv

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"

	"github.com/fwojciec/pagex"
)

// FileName is the name of the written file.
const FileName = "parsed_content.csv"

// Ensure Exporter implements pagex.Exporter at compile time.
var _ pagex.Exporter = (*Exporter)(nil)

// Exporter writes accepted records as one CSV file with a header row.
type Exporter struct {
	cleaned bool
}

// Option configures an Exporter.
type Option func(*Exporter)

// WithCleaned collapses line breaks inside cells into single spaces.
func WithCleaned(cleaned bool) Option {
	return func(e *Exporter) {
		e.cleaned = cleaned
	}
}

// NewExporter creates a new Exporter.
func NewExporter(opts ...Option) *Exporter {
	e := &Exporter{}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Export writes FileName into dir.
func (e *Exporter) Export(ctx context.Context, ds *pagex.Dataset, dir string) (_ []string, err error) {
	if ds.Empty() {
		return nil, pagex.NoDataError()
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	path := filepath.Join(dir, FileName)
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("create csv: %w", err)
	}
	defer func() {
		if cerr := f.Close(); err == nil && cerr != nil {
			err = fmt.Errorf("close csv: %w", cerr)
		}
	}()

	w := csv.NewWriter(f)
	if err := w.Write(pagex.Columns); err != nil {
		return nil, fmt.Errorf("write csv header: %w", err)
	}
	if err := w.WriteAll(ds.Rows(e.cleaned)); err != nil {
		return nil, fmt.Errorf("write csv rows: %w", err)
	}
	return []string{path}, nil
}
