package sqlite

import (
	"context"
	"database/sql"
	"encoding/binary"
	"encoding/hex"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/google/uuid"
	"github.com/mzagorski/trawl"
)

// Compile-time interface verification.
var _ trawl.PageService = (*PageService)(nil)

// PageService implements trawl.PageService using SQLite.
type PageService struct {
	db *DB
}

// NewPageService creates a new PageService.
func NewPageService(db *DB) *PageService {
	return &PageService{db: db}
}

// hashContent computes xxHash of content and returns hex string.
func hashContent(content string) string {
	b := make([]byte, 8)
	binary.BigEndian.PutUint64(b, xxhash.Sum64String(content))
	return hex.EncodeToString(b)
}

// RecordPage inserts the page, replacing any earlier record for the
// same URL. The ID, content hash and fetch timestamp are assigned here.
func (s *PageService) RecordPage(ctx context.Context, page *trawl.Page) error {
	if err := page.Validate(); err != nil {
		return err
	}

	page.ID = uuid.New().String()
	page.FetchedAt = time.Now().UTC()
	page.ContentHash = hashContent(page.Body)

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO pages (id, run_id, url, status_code, body, content_hash, fetched_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(url) DO UPDATE SET
			id = excluded.id,
			run_id = excluded.run_id,
			status_code = excluded.status_code,
			body = excluded.body,
			content_hash = excluded.content_hash,
			fetched_at = excluded.fetched_at
	`, page.ID, page.RunID, page.URL, page.StatusCode, page.Body, page.ContentHash,
		page.FetchedAt.Format(time.RFC3339))

	return err
}

// FindPageByURL retrieves a page record by URL.
func (s *PageService) FindPageByURL(ctx context.Context, url string) (*trawl.Page, error) {
	var page trawl.Page
	var fetchedAt string

	err := s.db.QueryRowContext(ctx, `
		SELECT id, run_id, url, status_code, body, content_hash, fetched_at
		FROM pages
		WHERE url = ?
	`, url).Scan(&page.ID, &page.RunID, &page.URL, &page.StatusCode, &page.Body,
		&page.ContentHash, &fetchedAt)

	if err == sql.ErrNoRows {
		return nil, trawl.Errorf(trawl.ENOTFOUND, "page not found")
	}
	if err != nil {
		return nil, err
	}

	page.FetchedAt, err = parseRFC3339(fetchedAt, "fetched_at")
	if err != nil {
		return nil, err
	}

	return &page, nil
}

// CountPages returns the number of recorded pages for a run.
func (s *PageService) CountPages(ctx context.Context, runID string) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM pages WHERE run_id = ?
	`, runID).Scan(&count)
	if err != nil {
		return 0, err
	}
	return count, nil
}
