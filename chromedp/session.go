package chromedp

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/chromedp/cdproto/network"
	"github.com/chromedp/chromedp"
	"github.com/fwojciec/pagex"
)

// browserSession owns one exec allocator and its browser tab.
type browserSession struct {
	cfg         pagex.BrowserConfig
	cancelAlloc context.CancelFunc
	taskCtx     context.Context
	cancelTask  context.CancelFunc
}

func newBrowserSession(cfg pagex.BrowserConfig) session {
	return &browserSession{cfg: cfg}
}

// allocatorOptions mirrors the flags used by the rod driver.
func allocatorOptions() []chromedp.ExecAllocatorOption {
	return append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.Flag("disable-extensions", true),
		chromedp.Flag("disable-popup-blocking", true),
		chromedp.UserAgent(pagex.UserAgent),
	)
}

// Render starts the browser, navigates, waits, scrolls and captures the
// document markup.
func (s *browserSession) Render(ctx context.Context, url string) (string, int, error) {
	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, allocatorOptions()...)
	s.cancelAlloc = cancelAlloc
	s.taskCtx, s.cancelTask = chromedp.NewContext(allocCtx)

	var status atomic.Int64
	chromedp.ListenTarget(s.taskCtx, func(ev any) {
		if e, ok := ev.(*network.EventResponseReceived); ok &&
			e.Type == network.ResourceTypeDocument && e.Response != nil {
			status.CompareAndSwap(0, e.Response.Status)
		}
	})

	var html string
	err := chromedp.Run(s.taskCtx,
		network.Enable(),
		chromedp.Navigate(url),
		chromedp.WaitReady("body", chromedp.ByQuery),
		chromedp.Sleep(s.cfg.SettleDelay),
		chromedp.ActionFunc(s.scroll),
		chromedp.Sleep(s.cfg.FinalDelay),
		chromedp.OuterHTML("html", &html, chromedp.ByQuery),
	)
	if err != nil {
		return "", int(status.Load()), fmt.Errorf("chromedp run: %w", err)
	}
	return html, int(status.Load()), nil
}

// scroll moves the viewport down by ScrollStep pixels every ScrollPause
// until ScrollDuration has elapsed.
func (s *browserSession) scroll(ctx context.Context) error {
	deadline := time.Now().Add(s.cfg.ScrollDuration)
	js := fmt.Sprintf("window.scrollBy(0, %d); window.scrollY", s.cfg.ScrollStep)
	for time.Now().Before(deadline) {
		var y float64
		if err := chromedp.Evaluate(js, &y).Do(ctx); err != nil {
			return err
		}
		if err := chromedp.Sleep(s.cfg.ScrollPause).Do(ctx); err != nil {
			return err
		}
	}
	return nil
}

// Teardown closes the browser gracefully, then cancels the allocator so
// the Chrome process exits.
func (s *browserSession) Teardown() error {
	if s.cancelTask == nil {
		return nil
	}
	err := chromedp.Cancel(s.taskCtx)
	s.cancelTask()
	s.cancelAlloc()
	return err
}
