package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/alecthomas/kong"
	"github.com/mzagorski/trawl/crawl"
	"github.com/mzagorski/trawl/goquery"
	trawlhttp "github.com/mzagorski/trawl/http"
	"github.com/mzagorski/trawl/robotstxt"
	trawlslog "github.com/mzagorski/trawl/slog"
	"github.com/mzagorski/trawl/sqlite"
)

const version = "0.1.0"

func main() {
	ctx := context.Background()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// SQLite database used by SQLite service implementations.
	DB *sqlite.DB
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{}
}

// Close gracefully stops the program.
func (m *Main) Close() error {
	if m.DB != nil {
		return m.DB.Close()
	}
	return nil
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("trawl"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'trawl --help' to see available commands")
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

	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
		Logger: slog.New(slog.NewTextHandler(stderr, nil)),
	}

	if cmd == "version" {
		return kongCtx.Run(deps)
	}

	configPath := cli.Run.Config
	if cmd == "pages" {
		configPath = cli.Pages.Config
	}

	cfg, err := LoadConfig(configPath)
	if err != nil {
		return err
	}
	deps.Config = cfg
	deps.Logger = slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{
		Level: parseLogLevel(cfg.LogLevel),
	}))

	m.DB = sqlite.NewDB(cfg.Storage.SQLitePath)
	if err := m.DB.Open(); err != nil {
		return fmt.Errorf("failed to open database at %q: %w", cfg.Storage.SQLitePath, err)
	}
	defer m.Close()

	deps.DB = m.DB
	deps.Pages = sqlite.NewPageService(m.DB)

	if cmd == "run" {
		deps.Fetcher = buildFetcher(cfg, deps.Logger)
		deps.Extractor = goquery.NewLinkExtractor()
		deps.Seeds = trawlhttp.NewSitemapSeeds(nil)
		deps.Frontier = crawl.NewFrontier(cfg.AllowedDomains)
	}

	return kongCtx.Run(deps)
}

// buildFetcher assembles the politeness stack described by the config.
func buildFetcher(cfg *Config, logger *slog.Logger) *trawlslog.LoggingFetcher {
	limiter := crawl.NewDomainLimiter(time.Duration(cfg.PerDomainDelayMs) * time.Millisecond)
	backoff := crawl.NewBackoff(
		time.Duration(cfg.BackoffInitialMs)*time.Millisecond,
		time.Duration(cfg.BackoffMaxMs)*time.Millisecond,
	)

	opts := []trawlhttp.Option{
		trawlhttp.WithMaxRetries(cfg.MaxRetries),
		trawlhttp.WithTimeout(time.Duration(cfg.RequestTimeoutMs) * time.Millisecond),
	}
	if cfg.RespectRobotsTxt {
		opts = append(opts, trawlhttp.WithRobotsPolicy(robotstxt.NewCache()))
	}
	if len(cfg.UserAgents) > 0 {
		opts = append(opts, trawlhttp.WithUserAgents(cfg.UserAgents))
	}
	if len(cfg.Proxies) > 0 {
		opts = append(opts, trawlhttp.WithProxyPool(
			trawlhttp.NewProxyPool(cfg.Proxies, cfg.ProxyFailThreshold)))
	}

	return trawlslog.NewLoggingFetcher(trawlhttp.NewFetcher(limiter, backoff, opts...), logger)
}

func parseLogLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
