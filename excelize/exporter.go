// Package excelize exports datasets as XLSX workbooks using excelize.
package excelize

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/fwojciec/pagex"
	"github.com/xuri/excelize/v2"
)

const (
	// FileName is the name of the written workbook.
	FileName = "parsed_content.xlsx"

	// SheetName is the only sheet in the workbook.
	SheetName = "Parsed"
)

// Ensure Exporter implements pagex.Exporter at compile time.
var _ pagex.Exporter = (*Exporter)(nil)

// Exporter writes accepted records to a single-sheet workbook.
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

// Export writes FileName into dir. Cells longer than the XLSX limit are
// truncated.
func (e *Exporter) Export(ctx context.Context, ds *pagex.Dataset, dir string) (_ []string, err error) {
	if ds.Empty() {
		return nil, pagex.NoDataError()
	}

	f := excelize.NewFile()
	defer func() {
		if cerr := f.Close(); err == nil && cerr != nil {
			err = fmt.Errorf("close workbook: %w", cerr)
		}
	}()

	if err := f.SetSheetName(f.GetSheetName(0), SheetName); err != nil {
		return nil, fmt.Errorf("name sheet: %w", err)
	}
	sw, err := f.NewStreamWriter(SheetName)
	if err != nil {
		return nil, fmt.Errorf("open sheet: %w", err)
	}

	if err := writeRow(sw, 1, pagex.Columns); err != nil {
		return nil, err
	}
	for i, row := range ds.Rows(e.cleaned) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if err := writeRow(sw, i+2, row); err != nil {
			return nil, err
		}
	}
	if err := sw.Flush(); err != nil {
		return nil, fmt.Errorf("flush sheet: %w", err)
	}

	path := filepath.Join(dir, FileName)
	if err := f.SaveAs(path); err != nil {
		return nil, fmt.Errorf("save workbook: %w", err)
	}
	return []string{path}, nil
}

func writeRow(sw *excelize.StreamWriter, n int, cells []string) error {
	cell, err := excelize.CoordinatesToCellName(1, n)
	if err != nil {
		return fmt.Errorf("row %d: %w", n, err)
	}
	values := make([]any, len(cells))
	for i, c := range cells {
		values[i] = truncate(c)
	}
	if err := sw.SetRow(cell, values); err != nil {
		return fmt.Errorf("write row %d: %w", n, err)
	}
	return nil
}

// truncate caps s at excelize.TotalCellChars characters.
func truncate(s string) string {
	if len(s) <= excelize.TotalCellChars {
		return s
	}
	r := []rune(s)
	if len(r) <= excelize.TotalCellChars {
		return s
	}
	return string(r[:excelize.TotalCellChars])
}
