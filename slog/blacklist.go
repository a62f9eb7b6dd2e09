package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/pagex"
)

// Ensure LoggingBlacklist implements pagex.Blacklist.
var _ pagex.Blacklist = (*LoggingBlacklist)(nil)

// LoggingBlacklist wraps a Blacklist. Hits and appends are logged at Info,
// misses at Debug.
type LoggingBlacklist struct {
	next   pagex.Blacklist
	logger *slog.Logger
}

// NewLoggingBlacklist creates a new LoggingBlacklist.
func NewLoggingBlacklist(next pagex.Blacklist, logger *slog.Logger) *LoggingBlacklist {
	return &LoggingBlacklist{next: next, logger: logger}
}

// Contains delegates to the wrapped blacklist and logs the lookup.
func (b *LoggingBlacklist) Contains(ctx context.Context, urlOrDomain string) (listed bool, err error) {
	defer func(begin time.Time) {
		level := slog.LevelDebug
		if listed || err != nil {
			level = slog.LevelInfo
		}
		b.logger.Log(ctx, level, "blacklist lookup",
			"entry", urlOrDomain,
			"listed", listed,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return b.next.Contains(ctx, urlOrDomain)
}

// Append delegates to the wrapped blacklist and logs the write.
func (b *LoggingBlacklist) Append(ctx context.Context, list, entry string) (err error) {
	defer func(begin time.Time) {
		b.logger.Info("blacklist append",
			"list", list,
			"entry", entry,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return b.next.Append(ctx, list, entry)
}
