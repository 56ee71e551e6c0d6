// Package robotstxt implements robots.txt compliance for the crawler:
// a per-host fetch-once cache of parsed rulesets with a fail-open
// default.
package robotstxt

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/mzagorski/trawl"
	"github.com/temoto/robotstxt"
	"golang.org/x/sync/singleflight"
)

// maxRobotsSize caps how much of a robots.txt file is read.
const maxRobotsSize = 500 * 1024

// Ensure Cache implements trawl.RobotsPolicy at compile time.
var _ trawl.RobotsPolicy = (*Cache)(nil)

// Cache answers robots.txt permission checks. Each host's robots file
// is fetched and parsed at most once per Cache lifetime; concurrent
// first queries for the same host share a single fetch. A fetch or
// parse failure caches a permissive ruleset, so the check never blocks
// the crawl and never returns an error.
type Cache struct {
	client      *http.Client
	userAgent   string
	denyOnError bool

	group singleflight.Group
	mu    sync.RWMutex
	// nil entry means "allow all": the fail-open sentinel.
	rules map[string]*robotstxt.RobotsData
}

// CacheOption configures a Cache.
type CacheOption func(*Cache)

// WithHTTPClient sets the client used to fetch robots.txt files.
func WithHTTPClient(client *http.Client) CacheOption {
	return func(c *Cache) { c.client = client }
}

// WithUserAgent sets the agent name matched against robots.txt groups.
// Defaults to "*".
func WithUserAgent(agent string) CacheOption {
	return func(c *Cache) { c.userAgent = agent }
}

// WithDenyOnError flips the failure policy from fail-open to
// fail-closed: hosts whose robots.txt cannot be fetched or parsed deny
// everything instead of allowing everything. This is the single switch
// controlling failure semantics.
func WithDenyOnError() CacheOption {
	return func(c *Cache) { c.denyOnError = true }
}

// NewCache creates an empty robots cache. The cache's lifetime is one
// crawl run; construct a fresh one per run to keep runs isolated.
func NewCache(opts ...CacheOption) *Cache {
	c := &Cache{
		client:    &http.Client{Timeout: 10 * time.Second},
		userAgent: "*",
		rules:     make(map[string]*robotstxt.RobotsData),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Allowed reports whether the URL may be fetched according to its
// host's robots.txt. Unparseable URLs follow the failure policy.
func (c *Cache) Allowed(ctx context.Context, rawURL string) bool {
	u, err := url.Parse(rawURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return !c.denyOnError
	}

	rules, ok := c.lookup(u.Host)
	if !ok {
		rules = c.load(ctx, u)
	}
	if rules == nil {
		// Fetch or parse failed for this host.
		return !c.denyOnError
	}

	group := rules.FindGroup(c.userAgent)
	if group == nil {
		return true
	}
	return group.Test(u.Path)
}

func (c *Cache) lookup(host string) (*robotstxt.RobotsData, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	rules, ok := c.rules[host]
	return rules, ok
}

// load fetches and parses robots.txt for the URL's host, caching the
// outcome (including failures) for the lifetime of the cache.
// Concurrent callers for one host collapse into a single fetch.
func (c *Cache) load(ctx context.Context, u *url.URL) *robotstxt.RobotsData {
	v, _, _ := c.group.Do(u.Host, func() (any, error) {
		rules := c.fetch(ctx, u)
		c.mu.Lock()
		c.rules[u.Host] = rules
		c.mu.Unlock()
		return rules, nil
	})
	rules, _ := v.(*robotstxt.RobotsData)
	return rules
}

// fetch retrieves and parses one robots.txt. A nil return records the
// failure sentinel.
func (c *Cache) fetch(ctx context.Context, u *url.URL) *robotstxt.RobotsData {
	robotsURL := u.Scheme + "://" + u.Host + "/robots.txt"
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, robotsURL, nil)
	if err != nil {
		return nil
	}
	if c.userAgent != "*" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxRobotsSize))
	if err != nil {
		return nil
	}

	// A server error on robots.txt is a failed fetch, subject to the
	// deny-on-error policy rather than the library's disallow-all rule.
	if resp.StatusCode >= 500 {
		return nil
	}

	rules, err := robotstxt.FromStatusAndBytes(resp.StatusCode, body)
	if err != nil {
		return nil
	}
	return rules
}
