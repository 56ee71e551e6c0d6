package trawl

import (
	"context"
	"time"
)

// Page records the outcome of fetching one URL during a crawl run.
type Page struct {
	ID          string    `json:"id"`
	RunID       string    `json:"runId"`
	URL         string    `json:"url"`
	StatusCode  int       `json:"statusCode"`
	Body        string    `json:"body"`
	ContentHash string    `json:"contentHash"`
	FetchedAt   time.Time `json:"fetchedAt"`
}

// Validate returns an error if the page contains invalid fields.
func (p *Page) Validate() error {
	if p.URL == "" {
		return Errorf(EINVALID, "page URL required")
	}
	if p.RunID == "" {
		return Errorf(EINVALID, "page run ID required")
	}
	return nil
}

// PageService persists fetch outcomes. Implementations define the
// storage format; the crawler core only depends on this boundary.
type PageService interface {
	// RecordPage inserts or replaces the record for the page's URL.
	RecordPage(ctx context.Context, page *Page) error

	// FindPageByURL retrieves a page record by URL.
	// Returns ENOTFOUND if no record exists.
	FindPageByURL(ctx context.Context, url string) (*Page, error)

	// CountPages returns the number of recorded pages for a run.
	CountPages(ctx context.Context, runID string) (int, error)
}
