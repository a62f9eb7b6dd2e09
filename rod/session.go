package rod

import (
	"context"
	"fmt"
	"time"

	"github.com/fwojciec/pagex"
	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
)

// browserSession drives one launched Chrome process.
type browserSession struct {
	cfg      pagex.BrowserConfig
	launcher *launcher.Launcher
	browser  *rod.Browser
}

// launch starts an isolated headless browser.
func launch(cfg pagex.BrowserConfig) (session, error) {
	l := launcher.New().
		Set("disable-gpu").
		Set("no-sandbox").
		Set("disable-dev-shm-usage").
		Set("disable-extensions").
		Set("disable-popup-blocking").
		Set("user-agent", pagex.UserAgent).
		Leakless(true).
		Headless(true)

	u, err := l.Launch()
	if err != nil {
		return nil, fmt.Errorf("launching browser: %w", err)
	}

	browser := rod.New().ControlURL(u)
	if err := browser.Connect(); err != nil {
		l.Kill()
		return nil, fmt.Errorf("connecting to browser: %w", err)
	}

	return &browserSession{cfg: cfg, launcher: l, browser: browser}, nil
}

// Render navigates, waits for the page to settle, scrolls to trigger lazy
// content, and captures the document markup.
func (s *browserSession) Render(ctx context.Context, url string) (string, error) {
	page, err := s.browser.Page(proto.TargetCreateTarget{})
	if err != nil {
		return "", err
	}
	page = page.Context(ctx)

	if err := page.Navigate(url); err != nil {
		return "", err
	}
	if err := page.WaitLoad(); err != nil {
		return "", err
	}
	if err := sleep(ctx, s.cfg.SettleDelay); err != nil {
		return "", err
	}

	deadline := time.Now().Add(s.cfg.ScrollDuration)
	for time.Now().Before(deadline) {
		if _, err := page.Eval(`(d) => window.scrollBy(0, d)`, s.cfg.ScrollStep); err != nil {
			return "", err
		}
		if err := sleep(ctx, s.cfg.ScrollPause); err != nil {
			return "", err
		}
	}

	if err := sleep(ctx, s.cfg.FinalDelay); err != nil {
		return "", err
	}

	return page.HTML()
}

// Teardown closes the browser and kills the launched process.
func (s *browserSession) Teardown() error {
	err := s.browser.Close()
	s.launcher.Kill()
	return err
}
