package crawl

import (
	"context"
	"sync"
	"time"

	"github.com/mzagorski/trawl"
	"golang.org/x/time/rate"
)

var _ trawl.DomainLimiter = (*DomainLimiter)(nil)

// DomainLimiter enforces a minimum interval between requests to the same
// domain using per-domain token buckets with a burst of 1. The bucket's
// reservation happens under its own lock, so two workers hitting the
// same domain cannot both observe a near-zero wait and fire together.
// Distinct domains are limited independently and proceed in parallel.
type DomainLimiter struct {
	mu       sync.Mutex
	limiters map[string]*rate.Limiter
	interval time.Duration
}

// NewDomainLimiter creates a limiter that spaces requests to each domain
// at least `interval` apart. A non-positive interval disables limiting.
func NewDomainLimiter(interval time.Duration) *DomainLimiter {
	return &DomainLimiter{
		limiters: make(map[string]*rate.Limiter),
		interval: interval,
	}
}

// Wait blocks until the spacing requirement for the domain is satisfied.
// Returns an error only if the context is canceled before then.
func (d *DomainLimiter) Wait(ctx context.Context, domain string) error {
	if d.interval <= 0 {
		return ctx.Err()
	}

	d.mu.Lock()
	limiter, ok := d.limiters[domain]
	if !ok {
		limiter = rate.NewLimiter(rate.Every(d.interval), 1)
		d.limiters[domain] = limiter
	}
	d.mu.Unlock()

	return limiter.Wait(ctx)
}
