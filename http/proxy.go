package http

import (
	"sync"

	"github.com/mzagorski/trawl"
)

// DefaultFailThreshold is the consecutive-failure count at which a proxy
// is circuit-broken out of the rotation.
const DefaultFailThreshold = 3

var _ trawl.ProxyPool = (*ProxyPool)(nil)

// ProxyPool hands out proxies round-robin and skips any proxy whose
// consecutive-failure count has reached the threshold. A tripped proxy
// re-enters the rotation only after a success resets its counter, which
// can happen when every proxy is tripped and the caller fell back to a
// direct connection, or when the same proxy was still held by another
// in-flight attempt that succeeded.
// Failure counts are heuristic, not correctness-critical; the lock here
// only keeps the rotation index and map consistent.
type ProxyPool struct {
	mu        sync.Mutex
	proxies   []string
	failures  map[string]int
	threshold int
	idx       int
}

// NewProxyPool creates a pool over the given proxy URLs. A non-positive
// threshold falls back to DefaultFailThreshold.
func NewProxyPool(proxies []string, threshold int) *ProxyPool {
	if threshold <= 0 {
		threshold = DefaultFailThreshold
	}
	return &ProxyPool{
		proxies:   proxies,
		failures:  make(map[string]int, len(proxies)),
		threshold: threshold,
	}
}

// Next returns the next eligible proxy, starting from the slot after the
// last selection. ok is false when the pool is empty or a full cycle
// found every proxy tripped; callers then degrade to a direct
// connection rather than looping forever.
func (p *ProxyPool) Next() (string, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if len(p.proxies) == 0 {
		return "", false
	}

	start := p.idx
	for {
		proxy := p.proxies[p.idx]
		p.idx = (p.idx + 1) % len(p.proxies)
		if p.failures[proxy] < p.threshold {
			return proxy, true
		}
		if p.idx == start {
			return "", false
		}
	}
}

// MarkFailure increments the proxy's consecutive-failure count.
// Unknown or empty proxies are ignored.
func (p *ProxyPool) MarkFailure(proxy string) {
	if proxy == "" {
		return
	}
	p.mu.Lock()
	p.failures[proxy]++
	p.mu.Unlock()
}

// MarkSuccess resets the proxy's consecutive-failure count to zero.
// One success fully recovers a proxy; there is no partial healing.
func (p *ProxyPool) MarkSuccess(proxy string) {
	if proxy == "" {
		return
	}
	p.mu.Lock()
	p.failures[proxy] = 0
	p.mu.Unlock()
}
