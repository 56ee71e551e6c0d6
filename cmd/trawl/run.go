package main

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/mzagorski/trawl"
	"github.com/mzagorski/trawl/crawl"
)

// Run executes the run command: seed the frontier, crawl to completion,
// print a summary.
func (c *RunCmd) Run(deps *Dependencies) error {
	cfg := deps.Config
	runID := uuid.New().String()

	scheduler := crawl.NewScheduler(
		deps.Frontier,
		newPageHandler(deps, runID),
		crawl.WithLogger(deps.Logger),
	)

	seeded, err := seedScheduler(deps, scheduler)
	if err != nil {
		return err
	}
	if seeded == 0 {
		return trawl.Errorf(trawl.EINVALID, "no seed URLs survived scoping and deduplication")
	}

	deps.Logger.Info("crawl starting",
		"run_id", runID,
		"seeds", seeded,
		"concurrency", cfg.MaxConcurrency,
	)
	begin := time.Now()

	if err := scheduler.Run(deps.Ctx, cfg.MaxConcurrency); err != nil {
		return fmt.Errorf("crawl failed: %w", err)
	}

	count, err := deps.Pages.CountPages(deps.Ctx, runID)
	if err != nil {
		return fmt.Errorf("failed to count pages: %w", err)
	}

	fmt.Fprintf(deps.Stdout, "Run %s finished: %d pages in %s\n",
		runID, count, time.Since(begin).Round(time.Millisecond))
	return nil
}

// seedScheduler enqueues every configured seed: the static list, the
// keyword expansion, and sitemap discovery. Returns how many URLs were
// accepted.
func seedScheduler(deps *Dependencies, scheduler *crawl.Scheduler) (int, error) {
	cfg := deps.Config
	seeded := 0

	for _, seed := range cfg.Seeds {
		if scheduler.Enqueue(seed) {
			seeded++
		}
	}

	keywordSeeds, err := cfg.KeywordSeedURLs()
	if err != nil {
		return 0, err
	}
	for _, seed := range keywordSeeds {
		if scheduler.Enqueue(seed) {
			seeded++
		}
	}

	for _, site := range cfg.SitemapSeeds {
		urls, err := deps.Seeds.Discover(deps.Ctx, site)
		if err != nil {
			deps.Logger.Warn("sitemap discovery failed", "site", site, "error", err)
			continue
		}
		for _, u := range urls {
			if scheduler.Enqueue(u) {
				seeded++
			}
		}
	}

	return seeded, nil
}

// newPageHandler builds the per-URL handler: fetch, record, extract.
// Fetch sentinel statuses are recorded like any other outcome; the
// handler only errors when persistence fails.
func newPageHandler(deps *Dependencies, runID string) trawl.Handler {
	cfg := deps.Config
	return trawl.HandlerFunc(func(ctx context.Context, url string) ([]string, error) {
		res, err := deps.Fetcher.Fetch(ctx, url)
		if err != nil {
			return nil, err
		}

		page := &trawl.Page{
			RunID:      runID,
			URL:        url,
			StatusCode: res.StatusCode,
		}
		if res.OK() && cfg.Storage.SavePageHTML {
			page.Body = res.Body
		}
		if err := deps.Pages.RecordPage(ctx, page); err != nil {
			return nil, fmt.Errorf("failed to record page %s: %w", url, err)
		}

		if !res.OK() {
			return nil, nil
		}
		links, err := deps.Extractor.Extract(res.Body, url)
		if err != nil {
			return nil, fmt.Errorf("failed to extract links from %s: %w", url, err)
		}
		return links, nil
	})
}
