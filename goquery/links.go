// Package goquery implements HTML link extraction using the goquery
// library.
package goquery

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/mzagorski/trawl"
)

// Ensure LinkExtractor implements trawl.LinkExtractor at compile time.
var _ trawl.LinkExtractor = (*LinkExtractor)(nil)

// LinkExtractor pulls anchor targets out of HTML documents. Relative
// links are resolved against the page URL, fragments are dropped, and
// pagination links (a page= query parameter) are skipped.
type LinkExtractor struct{}

// NewLinkExtractor creates a link extractor.
func NewLinkExtractor() *LinkExtractor {
	return &LinkExtractor{}
}

// Extract returns the absolute HTTP URLs linked from the document in
// document order, deduplicated. It fails only when the HTML cannot be
// parsed or the base URL is invalid.
func (e *LinkExtractor) Extract(html string, baseURL string) ([]string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, trawl.Errorf(trawl.EINVALID, "parse html: %v", err)
	}

	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, trawl.Errorf(trawl.EINVALID, "parse base url %q: %v", baseURL, err)
	}

	links := []string{}
	seen := make(map[string]struct{})

	doc.Find("a[href]").Each(func(_ int, sel *goquery.Selection) {
		href, _ := sel.Attr("href")
		href = strings.TrimSpace(href)
		if href == "" {
			return
		}

		ref, err := url.Parse(href)
		if err != nil {
			return
		}

		abs := base.ResolveReference(ref)
		if abs.Scheme != "http" && abs.Scheme != "https" {
			return
		}
		abs.Fragment = ""

		if isPagination(abs) {
			return
		}

		link := abs.String()
		if _, ok := seen[link]; ok {
			return
		}
		seen[link] = struct{}{}
		links = append(links, link)
	})

	return links, nil
}

// isPagination reports whether the URL is a paginated listing variant.
func isPagination(u *url.URL) bool {
	return u.Query().Has("page")
}
