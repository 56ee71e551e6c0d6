package trawl

import "context"

// Frontier manages the crawl queue: normalization, domain scoping,
// deduplication, and FIFO ordering. Once a URL is seen it is never
// re-enqueued, even if its fetch later fails permanently.
type Frontier interface {
	// Push adds a URL to the frontier. It returns false when the URL is
	// out of scope, already seen, or unparseable; pushing a duplicate is
	// a silent no-op, never an error.
	Push(url string) bool

	// Pop returns the next URL in FIFO order.
	// The bool result is false when the queue is empty.
	Pop() (string, bool)

	// Len returns the number of URLs waiting in the queue.
	Len() int

	// Seen reports whether the URL has ever been enqueued.
	Seen(url string) bool
}

// DomainLimiter enforces minimum inter-request spacing per domain.
// Distinct domains proceed fully in parallel.
type DomainLimiter interface {
	// Wait blocks until it is safe to issue the next request for the
	// domain. Returns an error only if the context is canceled.
	Wait(ctx context.Context, domain string) error
}
