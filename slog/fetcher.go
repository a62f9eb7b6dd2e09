// Package slog provides logging decorators for pagex services.
package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/pagex"
)

// Ensure LoggingFetcher implements pagex.Fetcher.
var _ pagex.Fetcher = (*LoggingFetcher)(nil)

// LoggingFetcher wraps a Fetcher and logs every attempt.
type LoggingFetcher struct {
	next   pagex.Fetcher
	mode   pagex.FetchMode
	logger *slog.Logger
}

// NewLoggingFetcher creates a new LoggingFetcher. mode is recorded with
// each log line.
func NewLoggingFetcher(next pagex.Fetcher, mode pagex.FetchMode, logger *slog.Logger) *LoggingFetcher {
	return &LoggingFetcher{next: next, mode: mode, logger: logger}
}

// Fetch delegates to the wrapped fetcher and logs the outcome.
func (f *LoggingFetcher) Fetch(ctx context.Context, url string) (out pagex.FetchOutcome) {
	defer func(begin time.Time) {
		f.logger.Info("fetch",
			"url", url,
			"mode", f.mode,
			"status", out.Status,
			"bytes", len(out.HTML),
			"duration", time.Since(begin),
			"err", out.Err,
		)
	}(time.Now())
	return f.next.Fetch(ctx, url)
}

// Close delegates to the wrapped fetcher.
func (f *LoggingFetcher) Close() error {
	return f.next.Close()
}
