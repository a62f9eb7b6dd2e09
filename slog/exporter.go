package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/pagex"
)

// Ensure LoggingExporter implements pagex.Exporter.
var _ pagex.Exporter = (*LoggingExporter)(nil)

// LoggingExporter wraps an Exporter with logging.
type LoggingExporter struct {
	next   pagex.Exporter
	format pagex.Format
	logger *slog.Logger
}

// NewLoggingExporter creates a new LoggingExporter.
func NewLoggingExporter(next pagex.Exporter, format pagex.Format, logger *slog.Logger) *LoggingExporter {
	return &LoggingExporter{next: next, format: format, logger: logger}
}

// Export delegates to the wrapped exporter and logs the written paths.
func (e *LoggingExporter) Export(ctx context.Context, ds *pagex.Dataset, dir string) (paths []string, err error) {
	defer func(begin time.Time) {
		records := 0
		if ds != nil {
			records = len(ds.Records)
		}
		e.logger.Info("export",
			"format", e.format,
			"records", records,
			"paths", paths,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return e.next.Export(ctx, ds, dir)
}
