package trawl

import (
	"net/url"
	"strings"
)

// NormalizeURL returns the canonical form of a URL used for frontier
// deduplication: fragment stripped, host lowercased, query preserved.
// It returns EINVALID for URLs that cannot be parsed or that lack a
// scheme or host.
func NormalizeURL(rawURL string) (string, error) {
	u, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil {
		return "", Errorf(EINVALID, "unparseable URL %q", rawURL)
	}
	if u.Scheme == "" || u.Host == "" {
		return "", Errorf(EINVALID, "URL %q is not absolute", rawURL)
	}
	u.Fragment = ""
	u.Host = strings.ToLower(u.Host)
	return u.String(), nil
}

// Host extracts the host (netloc, including any port) from a URL.
// Returns an empty string for unparseable URLs.
func Host(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	return strings.ToLower(u.Host)
}

// HostWithinDomains reports whether the URL's host falls under any of
// the given domains, using case-insensitive suffix matching so that
// subdomains are covered (news.example.com is within example.com).
// An empty domain list matches nothing.
func HostWithinDomains(rawURL string, domains []string) bool {
	host := Host(rawURL)
	if host == "" {
		return false
	}
	// Ignore the port for scope decisions.
	if i := strings.LastIndex(host, ":"); i != -1 && !strings.Contains(host[i:], "]") {
		host = host[:i]
	}
	for _, d := range domains {
		d = strings.ToLower(strings.TrimSpace(d))
		if d == "" {
			continue
		}
		if strings.HasSuffix(host, d) {
			return true
		}
	}
	return false
}
