package slog_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/mzagorski/trawl"
	"github.com/mzagorski/trawl/mock"
	trawlslog "github.com/mzagorski/trawl/slog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoggingFetcher_Fetch(t *testing.T) {
	t.Parallel()

	t.Run("logs fetch with status bytes and duration", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		inner := &mock.Fetcher{
			FetchFn: func(ctx context.Context, url string) (*trawl.Result, error) {
				return &trawl.Result{StatusCode: 200, Body: "<html>content</html>"}, nil
			},
		}

		fetcher := trawlslog.NewLoggingFetcher(inner, logger)
		res, err := fetcher.Fetch(context.Background(), "https://site.example/docs")

		require.NoError(t, err)
		assert.Equal(t, 200, res.StatusCode)
		output := buf.String()
		assert.Contains(t, output, "level=INFO")
		assert.Contains(t, output, "fetch")
		assert.Contains(t, output, "url=https://site.example/docs")
		assert.Contains(t, output, "status=200")
		assert.Contains(t, output, "bytes=20")
		assert.Contains(t, output, "duration=")
	})

	t.Run("logs non-success statuses as warnings", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		inner := &mock.Fetcher{
			FetchFn: func(ctx context.Context, url string) (*trawl.Result, error) {
				return &trawl.Result{StatusCode: trawl.StatusRetriesExhausted}, nil
			},
		}

		fetcher := trawlslog.NewLoggingFetcher(inner, logger)
		_, err := fetcher.Fetch(context.Background(), "https://site.example/docs")

		require.NoError(t, err)
		output := buf.String()
		assert.Contains(t, output, "level=WARN")
		assert.Contains(t, output, "status=599")
	})

	t.Run("logs error on failure", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		inner := &mock.Fetcher{
			FetchFn: func(ctx context.Context, url string) (*trawl.Result, error) {
				return nil, errors.New("network error")
			},
		}

		fetcher := trawlslog.NewLoggingFetcher(inner, logger)
		_, err := fetcher.Fetch(context.Background(), "https://site.example/docs")

		require.Error(t, err)
		output := buf.String()
		assert.Contains(t, output, "level=ERROR")
		assert.Contains(t, output, "err=\"network error\"")
	})
}
