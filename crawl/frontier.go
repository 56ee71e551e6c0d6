// Package crawl provides the frontier, scheduler, and politeness
// primitives that drive a crawl run: URL queueing with deduplication and
// domain scoping, a bounded worker pool, per-domain rate limiting, and
// retry backoff.
package crawl

import (
	"sync"

	"github.com/bits-and-blooms/bloom/v3"
	"github.com/mzagorski/trawl"
)

// Frontier sizing defaults.
const (
	// frontierExpectedURLs is the expected number of URLs for Bloom filter sizing.
	frontierExpectedURLs = 100000
	// frontierFalsePositiveRate is the acceptable false positive rate for deduplication.
	frontierFalsePositiveRate = 0.001
)

// Compile-time interface verification.
var _ trawl.Frontier = (*Frontier)(nil)

// Frontier is an in-memory FIFO URL frontier with Bloom filter
// deduplication and allowed-domain scoping.
// It is safe for concurrent use by multiple goroutines.
type Frontier struct {
	mu      sync.Mutex
	seen    *bloom.BloomFilter
	queue   []string
	domains []string
}

// FrontierOption configures a Frontier.
type FrontierOption func(*frontierConfig)

type frontierConfig struct {
	expectedURLs uint
	fpRate       float64
}

// WithCapacity sizes the deduplication filter for n expected URLs with
// the given false positive rate.
func WithCapacity(n uint, fpRate float64) FrontierOption {
	return func(c *frontierConfig) {
		c.expectedURLs = n
		c.fpRate = fpRate
	}
}

// NewFrontier creates a Frontier scoped to the given allowed domains.
// An empty or nil domain list disables scoping and admits every domain.
func NewFrontier(allowedDomains []string, opts ...FrontierOption) *Frontier {
	cfg := &frontierConfig{
		expectedURLs: frontierExpectedURLs,
		fpRate:       frontierFalsePositiveRate,
	}
	for _, opt := range opts {
		opt(cfg)
	}
	return &Frontier{
		seen:    bloom.NewWithEstimates(cfg.expectedURLs, cfg.fpRate),
		domains: allowedDomains,
	}
}

// Push adds a URL to the frontier after normalizing it. The ordering is
// load-bearing: scope filter before dedup, dedup before enqueue, so
// out-of-scope URLs never occupy a seen-set slot. Returns false when the
// URL is dropped for any reason.
func (f *Frontier) Push(rawURL string) bool {
	url, err := trawl.NormalizeURL(rawURL)
	if err != nil {
		return false
	}
	if len(f.domains) > 0 && !trawl.HostWithinDomains(url, f.domains) {
		return false
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	if f.seen.TestString(url) {
		return false
	}
	f.seen.AddString(url)
	f.queue = append(f.queue, url)
	return true
}

// Pop returns the next URL in FIFO order.
// The bool result is false when the queue is empty.
func (f *Frontier) Pop() (string, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if len(f.queue) == 0 {
		return "", false
	}
	url := f.queue[0]
	f.queue = f.queue[1:]
	return url, true
}

// Len returns the number of URLs waiting in the queue.
func (f *Frontier) Len() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.queue)
}

// Seen reports whether the URL has ever been enqueued. The URL is
// normalized before checking, so fragments do not defeat deduplication.
func (f *Frontier) Seen(rawURL string) bool {
	url, err := trawl.NormalizeURL(rawURL)
	if err != nil {
		return false
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	return f.seen.TestString(url)
}
