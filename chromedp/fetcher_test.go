package chromedp_test

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/fwojciec/pagex"
	"github.com/fwojciec/pagex/chromedp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSession struct {
	renderFn  func(ctx context.Context, url string) (string, int, error)
	teardowns atomic.Int32
}

func (s *fakeSession) Render(ctx context.Context, url string) (string, int, error) {
	return s.renderFn(ctx, url)
}

func (s *fakeSession) Teardown() error {
	s.teardowns.Add(1)
	return nil
}

func fetcherFor(s *fakeSession, opts ...chromedp.Option) *chromedp.Fetcher {
	return chromedp.NewFetcherWithSessions(func(pagex.BrowserConfig) chromedp.Session {
		return s
	}, opts...)
}

func TestFetcher_Fetch(t *testing.T) {
	t.Parallel()

	t.Run("returns rendered markup with the document status", func(t *testing.T) {
		t.Parallel()

		s := &fakeSession{renderFn: func(_ context.Context, url string) (string, int, error) {
			return "<html>" + url + "</html>", 200, nil
		}}

		out := fetcherFor(s).Fetch(context.Background(), "https://example.com")

		require.True(t, out.Succeeded())
		assert.Equal(t, "<html>https://example.com</html>", out.HTML)
		assert.Equal(t, "Response code: 200 - OK", out.Status)
		assert.EqualValues(t, 1, s.teardowns.Load())
	})

	t.Run("falls back to a generic status when none was observed", func(t *testing.T) {
		t.Parallel()

		s := &fakeSession{renderFn: func(context.Context, string) (string, int, error) {
			return "<html></html>", 0, nil
		}}

		out := fetcherFor(s).Fetch(context.Background(), "https://example.com")

		require.True(t, out.Succeeded())
		assert.Equal(t, "Rendered in browser", out.Status)
	})

	t.Run("fails on an error document status", func(t *testing.T) {
		t.Parallel()

		s := &fakeSession{renderFn: func(context.Context, string) (string, int, error) {
			return "<html>not here</html>", 404, nil
		}}

		out := fetcherFor(s).Fetch(context.Background(), "https://example.com/missing")

		require.False(t, out.Succeeded())
		assert.Empty(t, out.HTML)
		assert.Equal(t, "Response code: 404 - Not Found", out.Status)
		assert.Equal(t, pagex.EFETCH, pagex.ErrorCode(out.Err))
		assert.EqualValues(t, 1, s.teardowns.Load())
	})

	t.Run("tears down once when rendering fails", func(t *testing.T) {
		t.Parallel()

		s := &fakeSession{renderFn: func(context.Context, string) (string, int, error) {
			return "", 0, errors.New("net::ERR_NAME_NOT_RESOLVED")
		}}

		out := fetcherFor(s).Fetch(context.Background(), "https://nope.invalid")

		require.False(t, out.Succeeded())
		assert.Contains(t, out.Status, "ERR_NAME_NOT_RESOLVED")
		assert.EqualValues(t, 1, s.teardowns.Load())
	})

	t.Run("recovers from panics and still tears down", func(t *testing.T) {
		t.Parallel()

		s := &fakeSession{renderFn: func(context.Context, string) (string, int, error) {
			panic("target closed")
		}}

		out := fetcherFor(s).Fetch(context.Background(), "https://example.com")

		require.False(t, out.Succeeded())
		assert.Contains(t, out.Status, "target closed")
		assert.EqualValues(t, 1, s.teardowns.Load())
	})

	t.Run("bounds rendering with the fetch timeout", func(t *testing.T) {
		t.Parallel()

		s := &fakeSession{renderFn: func(ctx context.Context, _ string) (string, int, error) {
			<-ctx.Done()
			return "", 0, ctx.Err()
		}}

		out := fetcherFor(s, chromedp.WithFetchTimeout(10*time.Millisecond)).
			Fetch(context.Background(), "https://example.com")

		require.False(t, out.Succeeded())
		assert.Contains(t, out.Status, context.DeadlineExceeded.Error())
		assert.EqualValues(t, 1, s.teardowns.Load())
	})

	t.Run("does not start a browser for a canceled context", func(t *testing.T) {
		t.Parallel()

		var started atomic.Bool
		f := chromedp.NewFetcherWithSessions(func(pagex.BrowserConfig) chromedp.Session {
			started.Store(true)
			return &fakeSession{}
		})
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		out := f.Fetch(ctx, "https://example.com")

		assert.False(t, out.Succeeded())
		assert.False(t, started.Load())
	})
}
