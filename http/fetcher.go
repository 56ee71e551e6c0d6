// Package http provides the HTTP fetch pipeline: retrying GET execution
// with proxy rotation, randomized headers, and the politeness hooks
// (robots policy, per-domain rate limiting) applied before every
// network attempt. It also implements the round-robin proxy pool and
// sitemap-based seed discovery.
package http

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/mzagorski/trawl"
)

// DefaultFetchTimeout bounds every individual network attempt.
const DefaultFetchTimeout = 30 * time.Second

// retryableStatuses are the response codes that trigger backoff and
// proxy rotation. Everything else returns immediately.
var retryableStatuses = map[int]bool{
	http.StatusForbidden:           true, // 403
	http.StatusTooManyRequests:     true, // 429
	http.StatusInternalServerError: true, // 500
	http.StatusBadGateway:          true, // 502
	http.StatusServiceUnavailable:  true, // 503
}

// Ensure Fetcher implements trawl.Fetcher at compile time.
var _ trawl.Fetcher = (*Fetcher)(nil)

// Fetcher executes HTTP GETs with retry, backoff, and proxy rotation.
// Robots denial, retry exhaustion, and unclassified failures are
// reported through sentinel statuses on the Result; the error return
// fires only on context cancellation.
type Fetcher struct {
	robots     trawl.RobotsPolicy
	limiter    trawl.DomainLimiter
	backoff    trawl.BackoffStrategy
	proxies    trawl.ProxyPool
	userAgents []string
	maxRetries int
	timeout    time.Duration

	mu      sync.Mutex
	clients map[string]*http.Client // keyed by proxy URL; "" is direct
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithRobotsPolicy enables robots.txt compliance. A nil policy (the
// default) disables the check entirely.
func WithRobotsPolicy(p trawl.RobotsPolicy) Option {
	return func(f *Fetcher) { f.robots = p }
}

// WithProxyPool sets the proxy rotation source. Without a pool every
// request uses a direct connection.
func WithProxyPool(p trawl.ProxyPool) Option {
	return func(f *Fetcher) { f.proxies = p }
}

// WithUserAgents replaces the built-in User-Agent pool.
func WithUserAgents(agents []string) Option {
	return func(f *Fetcher) { f.userAgents = agents }
}

// WithMaxRetries sets the retry budget: maxRetries+1 total attempts.
func WithMaxRetries(n int) Option {
	return func(f *Fetcher) { f.maxRetries = n }
}

// WithTimeout bounds each network attempt.
// Defaults to DefaultFetchTimeout (30s) if not specified.
func WithTimeout(d time.Duration) Option {
	return func(f *Fetcher) { f.timeout = d }
}

// NewFetcher creates a Fetcher using the given rate limiter and backoff
// strategy. Both are consulted on every attempt: the limiter before the
// request, the backoff after a retryable failure.
func NewFetcher(limiter trawl.DomainLimiter, backoff trawl.BackoffStrategy, opts ...Option) *Fetcher {
	f := &Fetcher{
		limiter:    limiter,
		backoff:    backoff,
		maxRetries: 3,
		timeout:    DefaultFetchTimeout,
		clients:    make(map[string]*http.Client),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Fetch retrieves a URL politely. See the package documentation for the
// retry taxonomy: retryable statuses and transport errors rotate the
// proxy and back off; unclassified failures fail fast with
// StatusUnexpectedError; exhaustion returns StatusRetriesExhausted.
func (f *Fetcher) Fetch(ctx context.Context, rawURL string) (*trawl.Result, error) {
	if f.robots != nil && !f.robots.Allowed(ctx, rawURL) {
		return &trawl.Result{
			StatusCode: trawl.StatusBlockedByRobots,
			Body:       "blocked by robots.txt",
		}, nil
	}

	domain := trawl.Host(rawURL)

	var proxy string
	var hasProxy bool
	for attempt := 0; attempt <= f.maxRetries; attempt++ {
		// The limiter gates every attempt, not just the first: a retry
		// on a fresh proxy is still a request against the same domain.
		if err := f.limiter.Wait(ctx, domain); err != nil {
			return nil, err
		}

		if !hasProxy && f.proxies != nil {
			proxy, hasProxy = f.proxies.Next()
		}

		status, body, err := f.do(ctx, rawURL, proxy)
		switch {
		case err != nil && ctx.Err() != nil:
			return nil, ctx.Err()

		case err != nil && !isTransportError(err):
			// Unclassified failure: fail fast rather than mask a
			// programming error as network flakiness.
			return &trawl.Result{
				StatusCode: trawl.StatusUnexpectedError,
				Body:       err.Error(),
			}, nil

		case err != nil || retryableStatuses[status]:
			if hasProxy {
				f.proxies.MarkFailure(proxy)
			}
			proxy, hasProxy = "", false
			// No point backing off after the final attempt.
			if attempt < f.maxRetries {
				if err := f.sleep(ctx, f.backoff.Delay(attempt+1)); err != nil {
					return nil, err
				}
			}

		default:
			if hasProxy {
				f.proxies.MarkSuccess(proxy)
			}
			return &trawl.Result{StatusCode: status, Body: body}, nil
		}
	}

	return &trawl.Result{
		StatusCode: trawl.StatusRetriesExhausted,
		Body:       "max retries exceeded",
	}, nil
}

// do executes a single GET attempt through the given proxy ("" for a
// direct connection). Redirects are followed by the client.
func (f *Fetcher) do(ctx context.Context, rawURL, proxy string) (int, string, error) {
	client, err := f.client(proxy)
	if err != nil {
		return 0, "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return 0, "", &unexpectedError{err}
	}
	req.Header = randomHeaders(f.userAgents)

	resp, err := client.Do(req)
	if err != nil {
		return 0, "", err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, "", &unexpectedError{err}
	}

	return resp.StatusCode, string(body), nil
}

// client returns the cached http.Client for a proxy, building it on
// first use. Clients are reused across attempts and URLs so connection
// pools survive proxy rotation.
func (f *Fetcher) client(proxy string) (*http.Client, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if c, ok := f.clients[proxy]; ok {
		return c, nil
	}

	transport := http.DefaultTransport.(*http.Transport).Clone()
	if proxy != "" {
		proxyURL, err := url.Parse(proxy)
		if err != nil {
			return nil, &unexpectedError{err}
		}
		transport.Proxy = http.ProxyURL(proxyURL)
	}

	c := &http.Client{
		Timeout:   f.timeout,
		Transport: transport,
	}
	f.clients[proxy] = c
	return c, nil
}

// sleep waits for the backoff delay or until the context is canceled.
func (f *Fetcher) sleep(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// unexpectedError marks failures outside the network layer: request
// construction, proxy URL parsing, body reads. These are never retried.
type unexpectedError struct{ err error }

func (e *unexpectedError) Error() string { return e.err.Error() }
func (e *unexpectedError) Unwrap() error { return e.err }

// isTransportError classifies an attempt failure. Errors surfaced by
// http.Client.Do are network-level (connection refused, timeout, DNS,
// TLS) and retryable; anything wrapped in unexpectedError is not.
func isTransportError(err error) bool {
	var ue *unexpectedError
	return !errors.As(err, &ue)
}
