package main

import (
	"context"
	"io"
	"log/slog"

	"github.com/mzagorski/trawl"
	"github.com/mzagorski/trawl/crawl"
	"github.com/mzagorski/trawl/sqlite"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx    context.Context
	Stdout io.Writer
	Stderr io.Writer
	Logger *slog.Logger

	Config    *Config
	DB        *sqlite.DB
	Pages     trawl.PageService
	Fetcher   trawl.Fetcher
	Extractor trawl.LinkExtractor
	Seeds     trawl.SeedSource
	Frontier  *crawl.Frontier
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Run     RunCmd     `cmd:"" help:"Run a crawl described by a config file"`
	Pages   PagesCmd   `cmd:"" help:"Count recorded pages for a run"`
	Version VersionCmd `cmd:"" help:"Print the version"`
}

// RunCmd is the "run" subcommand.
type RunCmd struct {
	Config string `short:"c" default:"config.json" help:"Path to the crawl config file"`
}

// PagesCmd is the "pages" subcommand.
type PagesCmd struct {
	Config string `short:"c" default:"config.json" help:"Path to the crawl config file"`
	RunID  string `arg:"" help:"Run ID to count pages for"`
}

// VersionCmd is the "version" subcommand.
type VersionCmd struct{}
