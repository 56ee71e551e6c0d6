package crawl

import (
	"math/rand/v2"
	"time"

	"github.com/mzagorski/trawl"
)

// Default backoff bounds, matching the fetch pipeline's retry defaults.
const (
	DefaultBackoffInitial = 500 * time.Millisecond
	DefaultBackoffMax     = 8 * time.Second
)

var _ trawl.BackoffStrategy = (*Backoff)(nil)

// Backoff computes exponential retry delays with multiplicative jitter:
// min(initial * 2^(attempt-1), max), scaled by a uniform draw in
// [0.8, 1.2]. The jitter comes from math/rand/v2, never from the clock,
// so concurrent callers do not produce correlated delays.
type Backoff struct {
	initial time.Duration
	max     time.Duration
}

// NewBackoff creates a Backoff with the given initial and maximum
// delays. Non-positive values fall back to the defaults.
func NewBackoff(initial, max time.Duration) *Backoff {
	if initial <= 0 {
		initial = DefaultBackoffInitial
	}
	if max <= 0 {
		max = DefaultBackoffMax
	}
	return &Backoff{initial: initial, max: max}
}

// Delay returns the jittered delay before the given attempt.
// Attempt numbering starts at 1; values below 1 are treated as 1.
func (b *Backoff) Delay(attempt int) time.Duration {
	if attempt < 1 {
		attempt = 1
	}

	base := b.initial
	for i := 1; i < attempt && base < b.max; i++ {
		base *= 2
	}
	if base > b.max {
		base = b.max
	}

	jitter := 0.8 + 0.4*rand.Float64()
	return time.Duration(float64(base) * jitter)
}
