package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/pagex"
	"github.com/fwojciec/pagex/batch"
	pxchromedp "github.com/fwojciec/pagex/chromedp"
	pxcsv "github.com/fwojciec/pagex/csv"
	pxetree "github.com/fwojciec/pagex/etree"
	pagexcel "github.com/fwojciec/pagex/excelize"
	"github.com/fwojciec/pagex/fs"
	"github.com/fwojciec/pagex/goquery"
	"github.com/fwojciec/pagex/htmltomarkdown"
	pxhttp "github.com/fwojciec/pagex/http"
	"github.com/fwojciec/pagex/readability"
	"github.com/fwojciec/pagex/rod"
	pxslog "github.com/fwojciec/pagex/slog"
	"github.com/fwojciec/pagex/sqlite"
	"github.com/fwojciec/pagex/trafilatura"
	"github.com/fwojciec/pagex/yaml"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Config is loaded during Run from --config or PAGEX_CONFIG, falling
	// back to pagex.DefaultConfig.
	Config *pagex.Config

	// SQLite database used by SQLite service implementations.
	DB *sqlite.DB

	// Services for end-to-end testing.
	DatasetService pagex.DatasetService

	closers []io.Closer
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{}
}

// Close gracefully stops the program.
func (m *Main) Close() error {
	var first error
	for i := len(m.closers) - 1; i >= 0; i-- {
		if err := m.closers[i].Close(); err != nil && first == nil {
			first = err
		}
	}
	m.closers = nil
	if m.DB != nil {
		if err := m.DB.Close(); err != nil && first == nil {
			first = err
		}
		m.DB = nil
	}
	return first
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("pagex"),
		kong.Description("Extract the main content of web pages and export it"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}),
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'pagex --help' to see available commands")
	}

	cmd := args[0]
	if cmd == "help" || cmd == "--help" || cmd == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	if err := m.loadConfig(cli.Config); err != nil {
		fmt.Fprintf(stderr, "error: %s\n", pagex.ErrorMessage(err))
		return err
	}
	deps.Config = m.Config
	defer m.Close()

	logger, err := m.openLogger(stderr, cli.Verbose)
	if err != nil {
		return fmt.Errorf("failed to open log file %q: %w", m.Config.LogFile, err)
	}
	deps.Logger = logger

	dbPath := dbPath(cli.DB, m.Config)
	m.DB = sqlite.NewDB(dbPath)
	if err := m.DB.Open(); err != nil {
		fmt.Fprintf(stderr, "Hint: Set PAGEX_DB to use a different database path\n")
		return fmt.Errorf("failed to open database at %q: %w", dbPath, err)
	}

	m.DatasetService = sqlite.NewDatasetService(m.DB)
	deps.Datasets = m.DatasetService
	deps.Blacklist = pxslog.NewLoggingBlacklist(fs.NewBlacklist(m.Config.Blacklist.Dir), logger)
	deps.Exporters = newExporters(m.Config, logger)

	if strings.HasPrefix(kongCtx.Command(), "parse") {
		deps.Runner = m.newRunner(deps.Blacklist, logger)
	}

	return kongCtx.Run(deps)
}

func (m *Main) loadConfig(path string) error {
	if path == "" {
		m.Config = pagex.DefaultConfig()
		return nil
	}
	cfg, err := yaml.LoadConfig(path)
	if err != nil {
		return err
	}
	m.Config = cfg
	return nil
}

// openLogger writes to log_file when configured. Without a log file only
// warnings reach stderr so they do not drown the progress output.
func (m *Main) openLogger(stderr io.Writer, verbose bool) (*slog.Logger, error) {
	var w io.Writer = stderr
	level := slog.LevelWarn
	if m.Config.LogFile != "" {
		f, err := os.OpenFile(m.Config.LogFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
		if err != nil {
			return nil, err
		}
		m.closers = append(m.closers, f)
		w, level = f, slog.LevelInfo
	}
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})), nil
}

// newRunner wires both fetch modes, every strategy and the sanitizer.
// Browser fetches go through a worker pool that is closed with Main.
func (m *Main) newRunner(blacklist pagex.Blacklist, logger *slog.Logger) *batch.Runner {
	cfg := m.Config

	httpFetcher := pxhttp.NewFetcher(pxhttp.WithTimeout(cfg.Timeout))
	pool := batch.NewPool(
		pxslog.NewLoggingFetcher(newBrowserFetcher(cfg.Browser), pagex.FetchModeBrowser, logger),
		cfg.Browser.Workers,
	)
	m.closers = append(m.closers, httpFetcher, pool)

	return &batch.Runner{
		Pipeline: &batch.Pipeline{
			Fetchers: map[pagex.FetchMode]pagex.Fetcher{
				pagex.FetchModeHTTP:    pxslog.NewLoggingFetcher(httpFetcher, pagex.FetchModeHTTP, logger),
				pagex.FetchModeBrowser: pool,
			},
			Extractors: map[pagex.Strategy]pagex.Extractor{
				pagex.StrategySiblings:    goquery.NewSiblingExtractor(),
				pagex.StrategyRegex:       goquery.NewRegexExtractor(),
				pagex.StrategyReadability: goquery.NewMergeExtractor(newCleaner(cfg.Readability.Engine)),
			},
			Sanitizer: goquery.NewSanitizer(
				goquery.WithTagsToDelete(cfg.TagsToDelete...),
				goquery.WithTagsToRemove(cfg.TagsToRemove...),
				goquery.WithStyleStripping(cfg.RemoveStyleAttributes),
				goquery.WithKeepAttributes(cfg.KeepAttributes...),
			),
		},
		Blacklist: blacklist,
		Logger:    logger,
	}
}

func newBrowserFetcher(cfg pagex.BrowserConfig) pagex.Fetcher {
	if cfg.Driver == "chromedp" {
		return pxchromedp.NewFetcher(pxchromedp.WithBrowserConfig(cfg))
	}
	return rod.NewFetcher(rod.WithBrowserConfig(cfg))
}

func newCleaner(engine string) pagex.Cleaner {
	if engine == "trafilatura" {
		return trafilatura.NewCleaner()
	}
	return readability.NewCleaner()
}

func newExporters(cfg *pagex.Config, logger *slog.Logger) map[pagex.Format]pagex.Exporter {
	exporters := map[pagex.Format]pagex.Exporter{
		pagex.FormatCSV:      pxcsv.NewExporter(pxcsv.WithCleaned(cfg.CleanedDataSave)),
		pagex.FormatXLSX:     pagexcel.NewExporter(pagexcel.WithCleaned(cfg.CleanedDataSave)),
		pagex.FormatXML:      pxetree.NewExporter(),
		pagex.FormatMarkdown: htmltomarkdown.NewExporter(htmltomarkdown.NewConverter()),
	}
	for format, exp := range exporters {
		exporters[format] = pxslog.NewLoggingExporter(exp, format, logger)
	}
	return exporters
}

// dbPath resolves the database location: flag or PAGEX_DB, then db_path,
// then ~/.pagex/pagex.db.
func dbPath(flag string, cfg *pagex.Config) string {
	if flag != "" {
		return flag
	}
	if cfg.DBPath != "" {
		return cfg.DBPath
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "pagex.db"
	}
	return filepath.Join(home, ".pagex", "pagex.db")
}
