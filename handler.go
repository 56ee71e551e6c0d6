package trawl

import "context"

// Handler processes a single URL popped from the frontier. It is
// expected to fetch the page, persist whatever it needs, and return the
// URLs it discovered; the scheduler enqueues them.
//
// A handler error never terminates the worker pool: the scheduler logs
// it and moves on to the next URL.
type Handler interface {
	Handle(ctx context.Context, url string) ([]string, error)
}

// HandlerFunc adapts a function to the Handler interface.
type HandlerFunc func(ctx context.Context, url string) ([]string, error)

// Handle calls f(ctx, url).
func (f HandlerFunc) Handle(ctx context.Context, url string) ([]string, error) {
	return f(ctx, url)
}

// LinkExtractor pulls followable URLs out of an HTML document.
// Relative hrefs are resolved against the base URL.
type LinkExtractor interface {
	Extract(html string, baseURL string) ([]string, error)
}

// SeedSource discovers initial URLs for a crawl, e.g. from a sitemap.
type SeedSource interface {
	Discover(ctx context.Context, siteURL string) ([]string, error)
}
