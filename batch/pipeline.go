package batch

import (
	"context"
	"fmt"

	"github.com/fwojciec/pagex"
)

// Pipeline fetches, extracts and sanitizes a single URL.
type Pipeline struct {
	Fetchers   map[pagex.FetchMode]pagex.Fetcher
	Extractors map[pagex.Strategy]pagex.Extractor
	Sanitizer  pagex.Sanitizer
}

// Result is the outcome of processing one URL. Record is always set. Err is
// nil for a successful record, EFETCH when the page could not be fetched
// and EEXTRACT when extraction or sanitizing failed.
type Result struct {
	Record *pagex.ParseRecord
	Err    error
}

// Process runs the pipeline for req.URL. Failures are reported in the
// result and never returned as panics.
func (p *Pipeline) Process(ctx context.Context, req pagex.ParseRequest) (res Result) {
	fetcher, ok := p.Fetchers[req.FetchMode]
	if !ok {
		err := pagex.Errorf(pagex.EINVALID, "no fetcher for mode %q", req.FetchMode)
		return Result{Record: pagex.NewFailureRecord(req.URL, pagex.ErrorMessage(err)), Err: err}
	}
	extractor, ok := p.Extractors[req.Strategy]
	if !ok {
		err := pagex.Errorf(pagex.EINVALID, "no extractor for strategy %q", req.Strategy)
		return Result{Record: pagex.NewFailureRecord(req.URL, pagex.ErrorMessage(err)), Err: err}
	}

	out := fetcher.Fetch(ctx, req.URL)
	if !out.Succeeded() {
		return Result{Record: pagex.NewFailureRecord(req.URL, out.Status), Err: out.Err}
	}

	defer func() {
		if r := recover(); r != nil {
			res = extractFailure(req.URL, fmt.Errorf("panic: %v", r))
		}
	}()

	extracted, err := extractor.Extract(out.HTML, req.IgnoreWords)
	if err != nil {
		return extractFailure(req.URL, err)
	}
	clean, err := p.Sanitizer.Sanitize(extracted.ContentHTML, req.URL)
	if err != nil {
		return extractFailure(req.URL, err)
	}

	return Result{Record: &pagex.ParseRecord{
		Status:              pagex.StatusSuccess,
		Title:               extracted.Title,
		Content:             clean.HTML,
		SourceURL:           req.URL,
		ResponseDescription: out.Status,
		ImagesOriginal:      clean.ImagesOriginal,
		ImagesRewritten:     clean.ImagesRewritten,
		TextLength:          clean.TextLength,
	}}
}

func extractFailure(url string, err error) Result {
	return Result{
		Record: pagex.NewFailureRecord(url, fmt.Sprintf("Extraction failed: %v", err)),
		Err:    pagex.Errorf(pagex.EEXTRACT, "extract %s: %v", url, err),
	}
}
