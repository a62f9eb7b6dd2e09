package pagex

import (
	"regexp"
	"strings"
	"time"
)

// Status reports whether a URL produced an accepted record.
type Status string

const (
	StatusSuccess Status = "Success"
	StatusFailure Status = "Failure"
)

// Columns is the fixed field order of tabular exports.
var Columns = []string{
	"Status",
	"ID",
	"Title",
	"Content",
	"URL",
	"ResponseDescription",
	"ImageUrlsOriginal",
	"ImageUrlsRewritten",
}

// imageSeparator joins image URLs within a single cell.
const imageSeparator = " \n"

// ParseRecord is one URL's extraction outcome.
type ParseRecord struct {
	// ID is "1.N" with N starting at 2. Only accepted records carry one.
	ID                  string
	Status              Status
	Title               string
	Content             string
	SourceURL           string
	ResponseDescription string
	ImagesOriginal      []string
	ImagesRewritten     []string

	// TextLength is the visible character count used by the acceptance gate.
	TextLength int
}

// NewFailureRecord returns a placeholder record for a URL that failed or
// was rejected. It never carries content or images.
func NewFailureRecord(url, description string) *ParseRecord {
	return &ParseRecord{
		Status:              StatusFailure,
		Title:               NoTitle,
		SourceURL:           url,
		ResponseDescription: description,
	}
}

// Row returns the record's cells in Columns order.
func (r *ParseRecord) Row() []string {
	return []string{
		string(r.Status),
		r.ID,
		r.Title,
		r.Content,
		r.SourceURL,
		r.ResponseDescription,
		strings.Join(r.ImagesOriginal, imageSeparator),
		strings.Join(r.ImagesRewritten, imageSeparator),
	}
}

var lineBreaks = regexp.MustCompile(`[\r\n]+`)

// CleanCell collapses runs of line breaks into a single space.
func CleanCell(s string) string {
	return lineBreaks.ReplaceAllString(s, " ")
}

// CleanRow applies CleanCell to every cell of row.
func CleanRow(row []string) []string {
	out := make([]string, len(row))
	for i, c := range row {
		out[i] = CleanCell(c)
	}
	return out
}

// Dataset is the result of one batch run. A new run produces a new
// Dataset; existing ones are never modified.
type Dataset struct {
	ID        string
	CreatedAt time.Time
	Request   ParseRequest

	// Records holds accepted records in completion order.
	Records []*ParseRecord

	// Failed holds failures and rejections, kept for reporting only.
	Failed []*ParseRecord
}

// Empty reports whether the run accepted no records.
func (d *Dataset) Empty() bool {
	return d == nil || len(d.Records) == 0
}

// Rows returns the cells of all accepted records, optionally cleaned.
func (d *Dataset) Rows(cleaned bool) [][]string {
	rows := make([][]string, 0, len(d.Records))
	for _, r := range d.Records {
		row := r.Row()
		if cleaned {
			row = CleanRow(row)
		}
		rows = append(rows, row)
	}
	return rows
}
