package pagex

import (
	"context"
	"strings"
)

// Format names an export file format.
type Format string

const (
	FormatCSV      Format = "csv"
	FormatXLSX     Format = "xlsx"
	FormatXML      Format = "xml"
	FormatMarkdown Format = "md"
)

// ParseFormat converts a name into a Format. "spreadsheet" and "excel"
// are accepted as aliases of xlsx.
func ParseFormat(s string) (Format, error) {
	switch f := strings.ToLower(strings.TrimSpace(s)); f {
	case "csv":
		return FormatCSV, nil
	case "xlsx", "excel", "spreadsheet":
		return FormatXLSX, nil
	case "xml":
		return FormatXML, nil
	case "md", "markdown":
		return FormatMarkdown, nil
	}
	return "", Errorf(EINVALID, "unknown export format %q", s)
}

// Exporter writes a dataset to files in dir and returns the paths written.
type Exporter interface {
	Export(ctx context.Context, ds *Dataset, dir string) ([]string, error)
}

// NoDataMessage is reported when a dataset has no accepted records.
const NoDataMessage = "No data available"

// NoDataError returns the ENOTFOUND error exporters return for an empty
// dataset.
func NoDataError() error {
	return Errorf(ENOTFOUND, "%s", NoDataMessage)
}
