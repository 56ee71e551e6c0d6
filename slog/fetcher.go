// Package slog provides logging decorators for trawl services.
package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/mzagorski/trawl"
)

// Ensure LoggingFetcher implements trawl.Fetcher.
var _ trawl.Fetcher = (*LoggingFetcher)(nil)

// LoggingFetcher wraps a Fetcher with structured logging of every
// fetch outcome.
type LoggingFetcher struct {
	next   trawl.Fetcher
	logger *slog.Logger
}

// NewLoggingFetcher creates a new LoggingFetcher.
func NewLoggingFetcher(next trawl.Fetcher, logger *slog.Logger) *LoggingFetcher {
	return &LoggingFetcher{next: next, logger: logger}
}

// Fetch delegates to the wrapped fetcher and logs the result.
func (f *LoggingFetcher) Fetch(ctx context.Context, url string) (*trawl.Result, error) {
	begin := time.Now()
	res, err := f.next.Fetch(ctx, url)
	duration := time.Since(begin)

	if err != nil {
		f.logger.Error("fetch",
			slog.String("url", url),
			slog.Duration("duration", duration),
			slog.Any("err", err),
		)
		return nil, err
	}

	level := slog.LevelInfo
	if !res.OK() {
		level = slog.LevelWarn
	}
	f.logger.Log(ctx, level, "fetch",
		slog.String("url", url),
		slog.Int("status", res.StatusCode),
		slog.Int("bytes", len(res.Body)),
		slog.Duration("duration", duration),
	)

	return res, nil
}
