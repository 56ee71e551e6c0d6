package http_test

import (
	"testing"

	trawlhttp "github.com/mzagorski/trawl/http"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProxyPool_Next_is_round_robin(t *testing.T) {
	t.Parallel()

	pool := trawlhttp.NewProxyPool([]string{"http://p1:8080", "http://p2:8080", "http://p3:8080"}, 3)

	var got []string
	for i := 0; i < 6; i++ {
		proxy, ok := pool.Next()
		require.True(t, ok)
		got = append(got, proxy)
	}

	assert.Equal(t, []string{
		"http://p1:8080", "http://p2:8080", "http://p3:8080",
		"http://p1:8080", "http://p2:8080", "http://p3:8080",
	}, got)
}

func TestProxyPool_Next_skips_tripped_proxies(t *testing.T) {
	t.Parallel()

	pool := trawlhttp.NewProxyPool([]string{"http://p1:8080", "http://p2:8080"}, 3)

	for i := 0; i < 3; i++ {
		pool.MarkFailure("http://p1:8080")
	}

	// p1 has hit the threshold: only p2 should come back while p2 stays
	// eligible.
	for i := 0; i < 4; i++ {
		proxy, ok := pool.Next()
		require.True(t, ok)
		assert.Equal(t, "http://p2:8080", proxy)
	}
}

func TestProxyPool_Next_returns_none_when_all_tripped(t *testing.T) {
	t.Parallel()

	pool := trawlhttp.NewProxyPool([]string{"http://p1:8080", "http://p2:8080"}, 2)

	for i := 0; i < 2; i++ {
		pool.MarkFailure("http://p1:8080")
		pool.MarkFailure("http://p2:8080")
	}

	_, ok := pool.Next()
	assert.False(t, ok, "a full fruitless cycle reports no proxy rather than looping")
}

func TestProxyPool_Next_returns_none_for_empty_pool(t *testing.T) {
	t.Parallel()

	pool := trawlhttp.NewProxyPool(nil, 3)

	_, ok := pool.Next()
	assert.False(t, ok)
}

func TestProxyPool_MarkSuccess_fully_recovers_a_proxy(t *testing.T) {
	t.Parallel()

	pool := trawlhttp.NewProxyPool([]string{"http://p1:8080"}, 3)

	pool.MarkFailure("http://p1:8080")
	pool.MarkFailure("http://p1:8080")
	pool.MarkSuccess("http://p1:8080")

	// The counter reset to zero, so two more failures still leave it
	// under the threshold.
	pool.MarkFailure("http://p1:8080")
	pool.MarkFailure("http://p1:8080")

	proxy, ok := pool.Next()
	require.True(t, ok)
	assert.Equal(t, "http://p1:8080", proxy)
}

func TestProxyPool_threshold_defaults_when_nonpositive(t *testing.T) {
	t.Parallel()

	pool := trawlhttp.NewProxyPool([]string{"http://p1:8080"}, 0)

	for i := 0; i < trawlhttp.DefaultFailThreshold-1; i++ {
		pool.MarkFailure("http://p1:8080")
	}
	_, ok := pool.Next()
	assert.True(t, ok, "below the default threshold the proxy stays eligible")

	pool.MarkFailure("http://p1:8080")
	_, ok = pool.Next()
	assert.False(t, ok)
}

func TestProxyPool_empty_proxy_marks_are_ignored(t *testing.T) {
	t.Parallel()

	pool := trawlhttp.NewProxyPool([]string{"http://p1:8080"}, 1)

	pool.MarkFailure("")
	pool.MarkSuccess("")

	proxy, ok := pool.Next()
	require.True(t, ok)
	assert.Equal(t, "http://p1:8080", proxy)
}
