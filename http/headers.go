package http

import (
	"math/rand/v2"
	"net/http"
)

// defaultUserAgents is the built-in User-Agent pool, used when the
// configuration does not supply one.
var defaultUserAgents = []string{
	"Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/119.0 Safari/537.36",
	"Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/16.0 Safari/605.1.15",
	"Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/118.0 Safari/537.36",
}

var acceptLanguages = []string{
	"en-US,en;q=0.9",
	"en-GB,en;q=0.9",
	"de-DE,de;q=0.8,en;q=0.6",
}

// randomHeaders builds request headers with a random User-Agent, a
// randomized Accept-Language, and a probabilistic DNT header. Identical
// headers across requests are themselves a detection signal, so each
// attempt gets a fresh draw.
func randomHeaders(userAgents []string) http.Header {
	pool := userAgents
	if len(pool) == 0 {
		pool = defaultUserAgents
	}

	h := http.Header{}
	h.Set("User-Agent", pool[rand.IntN(len(pool))])
	h.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	h.Set("Accept-Language", acceptLanguages[rand.IntN(len(acceptLanguages))])
	h.Set("Cache-Control", "no-cache")
	h.Set("Pragma", "no-cache")
	if rand.Float64() < 0.5 {
		h.Set("DNT", []string{"1", "0"}[rand.IntN(2)])
	}
	return h
}
