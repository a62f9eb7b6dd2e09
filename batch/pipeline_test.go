package batch_test

import (
	"context"
	"errors"
	"testing"

	"github.com/fwojciec/pagex"
	"github.com/fwojciec/pagex/batch"
	"github.com/fwojciec/pagex/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func staticFetcher(html string) *mock.Fetcher {
	return &mock.Fetcher{
		FetchFn: func(context.Context, string) pagex.FetchOutcome {
			return pagex.FetchOutcome{HTML: html, Status: "Response code: 200 - OK"}
		},
		CloseFn: func() error { return nil },
	}
}

func passthroughSanitizer() *mock.Sanitizer {
	return &mock.Sanitizer{
		SanitizeFn: func(fragment, _ string) (*pagex.SanitizeResult, error) {
			return &pagex.SanitizeResult{
				HTML:            fragment,
				ImagesOriginal:  []string{"a.png"},
				ImagesRewritten: []string{"https://example.com/a.png"},
				TextLength:      len(fragment),
			}, nil
		},
	}
}

func pipelineWith(f pagex.Fetcher, e pagex.Extractor, s pagex.Sanitizer) *batch.Pipeline {
	return &batch.Pipeline{
		Fetchers:   map[pagex.FetchMode]pagex.Fetcher{pagex.FetchModeHTTP: f},
		Extractors: map[pagex.Strategy]pagex.Extractor{pagex.StrategySiblings: e},
		Sanitizer:  s,
	}
}

func request(url string) pagex.ParseRequest {
	return *pagex.NewParseRequest(pagex.StrategySiblings, pagex.FetchModeHTTP, []string{"Related"}, 0, pagex.Unbounded).WithURL(url)
}

func TestPipeline_Process(t *testing.T) {
	t.Parallel()

	t.Run("builds a success record", func(t *testing.T) {
		t.Parallel()

		var gotWords []string
		extractor := &mock.Extractor{ExtractFn: func(raw string, words []string) (*pagex.ExtractResult, error) {
			gotWords = words
			return &pagex.ExtractResult{Title: "Title", ContentHTML: "<h1>Title</h1>"}, nil
		}}
		p := pipelineWith(staticFetcher("<html></html>"), extractor, passthroughSanitizer())

		res := p.Process(context.Background(), request("https://example.com/a"))

		require.NoError(t, res.Err)
		assert.Equal(t, []string{"Related"}, gotWords)
		assert.Equal(t, &pagex.ParseRecord{
			Status:              pagex.StatusSuccess,
			Title:               "Title",
			Content:             "<h1>Title</h1>",
			SourceURL:           "https://example.com/a",
			ResponseDescription: "Response code: 200 - OK",
			ImagesOriginal:      []string{"a.png"},
			ImagesRewritten:     []string{"https://example.com/a.png"},
			TextLength:          len("<h1>Title</h1>"),
		}, res.Record)
	})

	t.Run("reports fetch failures without extracting", func(t *testing.T) {
		t.Parallel()

		fetcher := &mock.Fetcher{FetchFn: func(context.Context, string) pagex.FetchOutcome {
			return pagex.FetchFailure("Response code: 404 - Not Found")
		}}
		extractor := &mock.Extractor{ExtractFn: func(string, []string) (*pagex.ExtractResult, error) {
			t.Fatal("extract called after failed fetch")
			return nil, nil
		}}
		p := pipelineWith(fetcher, extractor, passthroughSanitizer())

		res := p.Process(context.Background(), request("https://example.com/a"))

		assert.Equal(t, pagex.EFETCH, pagex.ErrorCode(res.Err))
		assert.Equal(t, pagex.StatusFailure, res.Record.Status)
		assert.Equal(t, pagex.NoTitle, res.Record.Title)
		assert.Equal(t, "Response code: 404 - Not Found", res.Record.ResponseDescription)
		assert.Empty(t, res.Record.ID)
	})

	t.Run("reports extraction errors", func(t *testing.T) {
		t.Parallel()

		extractor := &mock.Extractor{ExtractFn: func(string, []string) (*pagex.ExtractResult, error) {
			return nil, errors.New("bad markup")
		}}
		p := pipelineWith(staticFetcher("<html></html>"), extractor, passthroughSanitizer())

		res := p.Process(context.Background(), request("https://example.com/a"))

		assert.Equal(t, pagex.EEXTRACT, pagex.ErrorCode(res.Err))
		assert.Equal(t, pagex.StatusFailure, res.Record.Status)
		assert.Contains(t, res.Record.ResponseDescription, "bad markup")
	})

	t.Run("recovers extractor panics", func(t *testing.T) {
		t.Parallel()

		extractor := &mock.Extractor{ExtractFn: func(string, []string) (*pagex.ExtractResult, error) {
			panic("nil node")
		}}
		p := pipelineWith(staticFetcher("<html></html>"), extractor, passthroughSanitizer())

		res := p.Process(context.Background(), request("https://example.com/a"))

		assert.Equal(t, pagex.EEXTRACT, pagex.ErrorCode(res.Err))
		assert.Contains(t, res.Record.ResponseDescription, "nil node")
	})

	t.Run("reports sanitizer errors", func(t *testing.T) {
		t.Parallel()

		extractor := &mock.Extractor{ExtractFn: func(string, []string) (*pagex.ExtractResult, error) {
			return &pagex.ExtractResult{Title: "T", ContentHTML: "<h1>T</h1>"}, nil
		}}
		sanitizer := &mock.Sanitizer{SanitizeFn: func(string, string) (*pagex.SanitizeResult, error) {
			return nil, pagex.Errorf(pagex.EINVALID, "invalid base URL")
		}}
		p := pipelineWith(staticFetcher("<html></html>"), extractor, sanitizer)

		res := p.Process(context.Background(), request("https://example.com/a"))

		assert.Equal(t, pagex.EEXTRACT, pagex.ErrorCode(res.Err))
	})

	t.Run("rejects unknown fetch modes", func(t *testing.T) {
		t.Parallel()

		p := &batch.Pipeline{}
		req := request("https://example.com/a")
		req.FetchMode = pagex.FetchModeBrowser

		res := p.Process(context.Background(), req)

		assert.Equal(t, pagex.EINVALID, pagex.ErrorCode(res.Err))
		assert.Equal(t, pagex.StatusFailure, res.Record.Status)
	})
}
