// Package mock provides function-field mock implementations of the
// trawl interfaces for use in tests.
package mock

import (
	"context"
	"time"

	"github.com/mzagorski/trawl"
)

var _ trawl.Fetcher = (*Fetcher)(nil)

// Fetcher is a mock implementation of trawl.Fetcher.
type Fetcher struct {
	FetchFn func(ctx context.Context, url string) (*trawl.Result, error)
}

func (f *Fetcher) Fetch(ctx context.Context, url string) (*trawl.Result, error) {
	return f.FetchFn(ctx, url)
}

var _ trawl.RobotsPolicy = (*RobotsPolicy)(nil)

// RobotsPolicy is a mock implementation of trawl.RobotsPolicy.
type RobotsPolicy struct {
	AllowedFn func(ctx context.Context, url string) bool
}

func (p *RobotsPolicy) Allowed(ctx context.Context, url string) bool {
	return p.AllowedFn(ctx, url)
}

var _ trawl.DomainLimiter = (*DomainLimiter)(nil)

// DomainLimiter is a mock implementation of trawl.DomainLimiter.
type DomainLimiter struct {
	WaitFn func(ctx context.Context, domain string) error
}

func (l *DomainLimiter) Wait(ctx context.Context, domain string) error {
	return l.WaitFn(ctx, domain)
}

var _ trawl.BackoffStrategy = (*BackoffStrategy)(nil)

// BackoffStrategy is a mock implementation of trawl.BackoffStrategy.
type BackoffStrategy struct {
	DelayFn func(attempt int) time.Duration
}

func (b *BackoffStrategy) Delay(attempt int) time.Duration {
	return b.DelayFn(attempt)
}

var _ trawl.ProxyPool = (*ProxyPool)(nil)

// ProxyPool is a mock implementation of trawl.ProxyPool.
type ProxyPool struct {
	NextFn        func() (string, bool)
	MarkFailureFn func(proxy string)
	MarkSuccessFn func(proxy string)
}

func (p *ProxyPool) Next() (string, bool) {
	return p.NextFn()
}

func (p *ProxyPool) MarkFailure(proxy string) {
	p.MarkFailureFn(proxy)
}

func (p *ProxyPool) MarkSuccess(proxy string) {
	p.MarkSuccessFn(proxy)
}

var _ trawl.Frontier = (*Frontier)(nil)

// Frontier is a mock implementation of trawl.Frontier.
type Frontier struct {
	PushFn func(url string) bool
	PopFn  func() (string, bool)
	LenFn  func() int
	SeenFn func(url string) bool
}

func (f *Frontier) Push(url string) bool {
	return f.PushFn(url)
}

func (f *Frontier) Pop() (string, bool) {
	return f.PopFn()
}

func (f *Frontier) Len() int {
	return f.LenFn()
}

func (f *Frontier) Seen(url string) bool {
	return f.SeenFn(url)
}

var _ trawl.Handler = (*Handler)(nil)

// Handler is a mock implementation of trawl.Handler.
type Handler struct {
	HandleFn func(ctx context.Context, url string) ([]string, error)
}

func (h *Handler) Handle(ctx context.Context, url string) ([]string, error) {
	return h.HandleFn(ctx, url)
}

var _ trawl.LinkExtractor = (*LinkExtractor)(nil)

// LinkExtractor is a mock implementation of trawl.LinkExtractor.
type LinkExtractor struct {
	ExtractFn func(html string, baseURL string) ([]string, error)
}

func (e *LinkExtractor) Extract(html string, baseURL string) ([]string, error) {
	return e.ExtractFn(html, baseURL)
}

var _ trawl.PageService = (*PageService)(nil)

// PageService is a mock implementation of trawl.PageService.
type PageService struct {
	RecordPageFn    func(ctx context.Context, page *trawl.Page) error
	FindPageByURLFn func(ctx context.Context, url string) (*trawl.Page, error)
	CountPagesFn    func(ctx context.Context, runID string) (int, error)
}

func (s *PageService) RecordPage(ctx context.Context, page *trawl.Page) error {
	return s.RecordPageFn(ctx, page)
}

func (s *PageService) FindPageByURL(ctx context.Context, url string) (*trawl.Page, error) {
	return s.FindPageByURLFn(ctx, url)
}

func (s *PageService) CountPages(ctx context.Context, runID string) (int, error) {
	return s.CountPagesFn(ctx, runID)
}

var _ trawl.SeedSource = (*SeedSource)(nil)

// SeedSource is a mock implementation of trawl.SeedSource.
type SeedSource struct {
	DiscoverFn func(ctx context.Context, siteURL string) ([]string, error)
}

func (s *SeedSource) Discover(ctx context.Context, siteURL string) ([]string, error) {
	return s.DiscoverFn(ctx, siteURL)
}
