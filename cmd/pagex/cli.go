package main

import (
	"context"
	"io"
	"log/slog"

	"github.com/fwojciec/pagex"
	"github.com/fwojciec/pagex/batch"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx       context.Context
	Stdout    io.Writer
	Stderr    io.Writer
	Config    *pagex.Config
	Logger    *slog.Logger
	Datasets  pagex.DatasetService
	Blacklist pagex.Blacklist
	Runner    *batch.Runner
	Exporters map[pagex.Format]pagex.Exporter
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Config  string `type:"path" env:"PAGEX_CONFIG" help:"YAML config file"`
	DB      string `name:"db" type:"path" env:"PAGEX_DB" help:"SQLite database path"`
	Verbose bool   `short:"v" help:"Log at debug level"`

	Parse     ParseCmd     `cmd:"" help:"Fetch pages and extract their main content"`
	Export    ExportCmd    `cmd:"" help:"Export a stored run"`
	Runs      RunsCmd      `cmd:"" help:"List stored runs"`
	Blacklist BlacklistCmd `cmd:"" help:"Inspect and edit blacklists"`
}

// ParseCmd is the "parse" subcommand.
type ParseCmd struct {
	URLs     []string `arg:"" optional:"" name:"url" help:"Page URLs"`
	File     string   `short:"f" type:"path" help:"Read URLs from a file, one per line"`
	Strategy string   `short:"s" default:"siblings" help:"Extraction strategy: siblings (0), regex (1), readability (2)"`
	Mode     string   `short:"m" default:"http" help:"Fetch mode: http or browser"`
	Min      *int     `help:"Minimum visible characters (default min_chars)"`
	Max      *int     `help:"Maximum visible characters, -1 for no limit (default max_chars)"`
	Ignore   []string `short:"i" help:"Stop phrase, repeatable (default ignore_words)"`
	Format   string   `short:"o" help:"Export the run when done: csv, xlsx, xml or md"`
	Dir      string   `short:"d" type:"path" help:"Export directory (default output_dir)"`
}

// ExportCmd is the "export" subcommand.
type ExportCmd struct {
	ID     string `arg:"" optional:"" help:"Run ID (default latest run)"`
	Format string `short:"o" required:"" help:"Export format: csv, xlsx, xml or md"`
	Dir    string `short:"d" type:"path" help:"Export directory (default output_dir)"`
}

// RunsCmd is the "runs" subcommand.
type RunsCmd struct {
	Limit int `short:"n" default:"20" help:"Number of runs to show"`
}

// BlacklistCmd groups the blacklist subcommands.
type BlacklistCmd struct {
	Check BlacklistCheckCmd `cmd:"" help:"Report whether URLs or domains are blacklisted"`
	Add   BlacklistAddCmd   `cmd:"" help:"Append an entry to a blacklist"`
}

// BlacklistCheckCmd is the "blacklist check" subcommand.
type BlacklistCheckCmd struct {
	Entries []string `arg:"" name:"entry" help:"URLs or domains"`
}

// BlacklistAddCmd is the "blacklist add" subcommand.
type BlacklistAddCmd struct {
	List  string `arg:"" help:"List name, e.g. unreachable or rejected"`
	Entry string `arg:"" help:"URL or domain"`
}
