package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/fwojciec/pagex"
	"github.com/fwojciec/pagex/batch"
)

// maxURLDisplay is the width URLs are truncated to in progress lines.
const maxURLDisplay = 60

// Run executes the parse command.
func (c *ParseCmd) Run(deps *Dependencies) error {
	req, err := c.request(deps.Config)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", pagex.ErrorMessage(err))
		return err
	}

	urls, err := c.urls()
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", pagex.ErrorMessage(err))
		return err
	}

	progress := func(event batch.ProgressEvent) {
		switch event.Type {
		case batch.ProgressStarted:
			fmt.Fprintf(deps.Stdout, "Parsing %d URLs (%s, %s)\n", event.Total, req.Strategy, req.FetchMode)
		case batch.ProgressSkipped:
			fmt.Fprintf(deps.Stdout, "  skip %s (blacklisted)\n", batch.TruncateURL(event.URL, maxURLDisplay))
		case batch.ProgressAccepted:
			fmt.Fprintf(deps.Stdout, "  [%d/%d] %s %s\n", event.Completed, event.Total, event.ID, batch.TruncateURL(event.URL, maxURLDisplay))
		case batch.ProgressRejected, batch.ProgressFailed:
			fmt.Fprintf(deps.Stderr, "  [%d/%d] %s: %s\n", event.Completed, event.Total, batch.TruncateURL(event.URL, maxURLDisplay), pagex.ErrorMessage(event.Err))
		}
	}

	ds, err := deps.Runner.Run(deps.Ctx, urls, req, progress)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", pagex.ErrorMessage(err))
		return err
	}

	if err := deps.Datasets.CreateDataset(deps.Ctx, ds); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", pagex.ErrorMessage(err))
		return err
	}

	size := 0
	for _, r := range ds.Records {
		size += len(r.Content)
	}
	fmt.Fprintf(deps.Stdout, "Run %s: %d accepted (%s), %d failed\n",
		ds.ID, len(ds.Records), batch.FormatBytes(size), len(ds.Failed))

	if c.Format == "" {
		return nil
	}
	return exportDataset(deps, ds, c.Format, c.Dir)
}

// request builds the parse request from flags, falling back to config.
func (c *ParseCmd) request(cfg *pagex.Config) (*pagex.ParseRequest, error) {
	strategy, err := pagex.ParseStrategy(c.Strategy)
	if err != nil {
		return nil, err
	}
	mode, err := pagex.ParseFetchMode(c.Mode)
	if err != nil {
		return nil, err
	}

	minChars, maxChars := cfg.MinChars, cfg.MaxChars
	if c.Min != nil {
		minChars = *c.Min
	}
	if c.Max != nil {
		maxChars = *c.Max
	}
	words := cfg.IgnoreWords
	if len(c.Ignore) > 0 {
		words = c.Ignore
	}

	req := pagex.NewParseRequest(strategy, mode, words, minChars, maxChars)
	if err := req.Validate(); err != nil {
		return nil, err
	}
	return req, nil
}

// urls returns the URL arguments followed by the lines of --file.
func (c *ParseCmd) urls() ([]string, error) {
	urls := append([]string(nil), c.URLs...)
	if c.File != "" {
		lines, err := readLines(c.File)
		if err != nil {
			return nil, err
		}
		urls = append(urls, lines...)
	}
	for _, u := range urls {
		if strings.TrimSpace(u) != "" {
			return urls, nil
		}
	}
	return nil, pagex.Errorf(pagex.EINVALID, "no URLs given")
}

func readLines(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open url file: %w", err)
	}
	defer f.Close()

	var lines []string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		if line := strings.TrimSpace(sc.Text()); line != "" {
			lines = append(lines, line)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read url file: %w", err)
	}
	return lines, nil
}
