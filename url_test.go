package trawl_test

import (
	"testing"

	"github.com/mzagorski/trawl"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeURL_strips_fragment(t *testing.T) {
	t.Parallel()

	got, err := trawl.NormalizeURL("http://a.example/docs/page#section-2")
	require.NoError(t, err)
	assert.Equal(t, "http://a.example/docs/page", got)
}

func TestNormalizeURL_preserves_query(t *testing.T) {
	t.Parallel()

	got, err := trawl.NormalizeURL("http://a.example/search?q=go&page=2")
	require.NoError(t, err)
	assert.Equal(t, "http://a.example/search?q=go&page=2", got)
}

func TestNormalizeURL_lowercases_host(t *testing.T) {
	t.Parallel()

	got, err := trawl.NormalizeURL("http://A.Example/Path")
	require.NoError(t, err)
	assert.Equal(t, "http://a.example/Path", got)
}

func TestNormalizeURL_rejects_relative_URLs(t *testing.T) {
	t.Parallel()

	_, err := trawl.NormalizeURL("/docs/page")
	assert.Equal(t, trawl.EINVALID, trawl.ErrorCode(err))

	_, err = trawl.NormalizeURL("not a url\x7f://")
	assert.Error(t, err)
}

func TestNormalizeURL_is_idempotent(t *testing.T) {
	t.Parallel()

	once, err := trawl.NormalizeURL("http://A.example/x?b=1#frag")
	require.NoError(t, err)
	twice, err := trawl.NormalizeURL(once)
	require.NoError(t, err)
	assert.Equal(t, once, twice)
}

func TestHost(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "a.example", trawl.Host("http://a.example/x"))
	assert.Equal(t, "a.example:8080", trawl.Host("http://A.Example:8080/x"))
	assert.Equal(t, "", trawl.Host("://bad"))
}

func TestHostWithinDomains(t *testing.T) {
	t.Parallel()

	domains := []string{"a.example", "B.Example"}

	assert.True(t, trawl.HostWithinDomains("http://a.example/x", domains))
	assert.True(t, trawl.HostWithinDomains("http://news.a.example/x", domains), "subdomain should match via suffix")
	assert.True(t, trawl.HostWithinDomains("http://b.example/x", domains), "matching is case-insensitive")
	assert.True(t, trawl.HostWithinDomains("http://a.example:8080/x", domains), "port is ignored for scope")
	assert.False(t, trawl.HostWithinDomains("http://c.example/x", domains))
	assert.False(t, trawl.HostWithinDomains("http://a.example/x", nil), "empty list matches nothing")
}
