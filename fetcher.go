package trawl

import (
	"context"
	"time"
)

// Sentinel status codes returned by Fetcher for outcomes that do not
// correspond to a server response. Callers should compare against these
// names rather than raw numbers.
const (
	// StatusBlockedByRobots is returned when robots.txt disallows the
	// URL. The request never reaches the network.
	StatusBlockedByRobots = 451

	// StatusUnexpectedError is returned for unclassified failures that
	// are deliberately not retried.
	StatusUnexpectedError = 520

	// StatusRetriesExhausted is returned when every attempt hit a
	// retryable condition and the retry budget ran out.
	StatusRetriesExhausted = 599
)

// Result holds the outcome of fetching a single URL. Network-layer
// failures are encoded in StatusCode, never raised as errors.
type Result struct {
	StatusCode int
	Body       string
}

// Blocked reports whether the fetch was denied by robots.txt.
func (r *Result) Blocked() bool { return r.StatusCode == StatusBlockedByRobots }

// OK reports whether the fetch produced a 2xx response.
func (r *Result) OK() bool { return r.StatusCode >= 200 && r.StatusCode < 300 }

// Fetcher retrieves URLs politely: robots compliance and per-domain rate
// limiting before the network call, retry with backoff and proxy
// rotation during it.
//
// The error return is reserved for context cancellation; every other
// outcome, including retry exhaustion and robots denial, is encoded in
// the Result status.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (*Result, error)
}

// RobotsPolicy decides whether a URL may be fetched. Implementations
// must not fail: on any robots.txt fetch or parse problem they degrade
// to a documented default rather than returning an error.
type RobotsPolicy interface {
	Allowed(ctx context.Context, url string) bool
}

// BackoffStrategy computes the delay before a retry attempt.
// Attempt numbering starts at 1.
type BackoffStrategy interface {
	Delay(attempt int) time.Duration
}

// ProxyPool hands out proxies round-robin and circuit-breaks the ones
// that keep failing.
type ProxyPool interface {
	// Next returns the next eligible proxy URL. ok is false when every
	// proxy is tripped or the pool is empty; callers fall back to a
	// direct connection.
	Next() (proxy string, ok bool)

	// MarkFailure increments the proxy's consecutive-failure count.
	MarkFailure(proxy string)

	// MarkSuccess resets the proxy's consecutive-failure count to zero.
	MarkSuccess(proxy string)
}
