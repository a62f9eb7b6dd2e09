package batch

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/fwojciec/pagex"
	"golang.org/x/sync/errgroup"
)

// Runner processes a batch of URLs and assembles the accepted records.
type Runner struct {
	Pipeline  *Pipeline
	Blacklist pagex.Blacklist
	Logger    *slog.Logger
}

// ProgressEvent reports progress during a run.
type ProgressEvent struct {
	Type      ProgressType
	Completed int
	Total     int
	URL       string
	ID        string
	Err       error
}

// ProgressType indicates the type of progress event.
type ProgressType int

const (
	ProgressStarted ProgressType = iota
	ProgressSkipped
	ProgressAccepted
	ProgressRejected
	ProgressFailed
	ProgressFinished
)

// ProgressFunc is a callback for reporting run progress.
type ProgressFunc func(event ProgressEvent)

// Run processes every URL not on the blacklist concurrently. Accepted
// records get IDs in the order they complete. Failed and rejected URLs are
// reported in Dataset.Failed and never abort the run; only cancellation of
// ctx or a blacklist lookup failure is returned as an error.
func (r *Runner) Run(ctx context.Context, urls []string, req *pagex.ParseRequest, progress ProgressFunc) (*pagex.Dataset, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	if progress == nil {
		progress = func(ProgressEvent) {}
	}
	logger := r.logger()

	var queue []string
	for _, u := range urls {
		u = strings.TrimSpace(u)
		if u == "" {
			continue
		}
		listed, err := r.Blacklist.Contains(ctx, u)
		if err != nil {
			return nil, fmt.Errorf("blacklist lookup %s: %w", u, err)
		}
		if listed {
			logger.Info("skipping blacklisted url", "url", u)
			progress(ProgressEvent{Type: ProgressSkipped, URL: u})
			continue
		}
		queue = append(queue, u)
	}

	total := len(queue)
	progress(ProgressEvent{Type: ProgressStarted, Total: total})

	ds := &pagex.Dataset{
		CreatedAt: time.Now().UTC(),
		Request:   *req,
	}

	resultCh := make(chan Result, total)
	g, gctx := errgroup.WithContext(ctx)
	go func() {
		for _, u := range queue {
			g.Go(func() error {
				resultCh <- r.Pipeline.Process(gctx, *req.WithURL(u))
				return nil
			})
		}
		_ = g.Wait()
		close(resultCh)
	}()

	ids := NewIDSequence()
	completed := 0
	for res := range resultCh {
		completed++
		ev := ProgressEvent{
			Completed: completed,
			Total:     total,
			URL:       res.Record.SourceURL,
		}

		switch {
		case res.Err != nil:
			ds.Failed = append(ds.Failed, res.Record)
			if pagex.ErrorCode(res.Err) == pagex.EFETCH {
				r.report(ctx, pagex.ListUnreachable, pagex.Host(res.Record.SourceURL))
			}
			ev.Type, ev.Err = ProgressFailed, res.Err
		case !req.Accepts(res.Record.TextLength):
			err := rejection(req, res.Record.TextLength)
			rejected := pagex.NewFailureRecord(res.Record.SourceURL, pagex.ErrorMessage(err))
			ds.Failed = append(ds.Failed, rejected)
			r.report(ctx, pagex.ListRejected, res.Record.SourceURL)
			ev.Type, ev.Err = ProgressRejected, err
		default:
			res.Record.ID = ids.Next()
			ds.Records = append(ds.Records, res.Record)
			ev.Type, ev.ID = ProgressAccepted, res.Record.ID
		}
		progress(ev)
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	progress(ProgressEvent{Type: ProgressFinished, Completed: total, Total: total})
	logger.Info("batch finished",
		"total", total,
		"accepted", len(ds.Records),
		"failed", len(ds.Failed),
	)
	return ds, nil
}

// report appends entry to list. Blacklist write failures are logged and do
// not fail the run.
func (r *Runner) report(ctx context.Context, list, entry string) {
	if entry == "" {
		return
	}
	if err := r.Blacklist.Append(ctx, list, entry); err != nil {
		r.logger().Warn("blacklist append failed", "list", list, "entry", entry, "error", err)
	}
}

func (r *Runner) logger() *slog.Logger {
	if r.Logger != nil {
		return r.Logger
	}
	return slog.New(slog.DiscardHandler)
}

// rejection describes content of n characters failing the acceptance gate.
func rejection(req *pagex.ParseRequest, n int) error {
	upper := "unbounded"
	if req.MaxChars != pagex.Unbounded {
		upper = strconv.Itoa(req.MaxChars)
	}
	return pagex.Errorf(pagex.EREJECTED, "Rejected: %d characters outside [%d, %s]", n, req.MinChars, upper)
}
