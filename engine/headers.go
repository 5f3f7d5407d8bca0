package engine

import (
	"math/rand"
	"net/url"
	"strings"
)

// userAgents is the pool of browser identities rotated across fetches.
var userAgents = []string{
	"Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36",
	"Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36",
	"Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36",
}

// randomUserAgent draws one identity from the pool.
func randomUserAgent() string {
	return userAgents[rand.Intn(len(userAgents))]
}

// NaturalHeaders builds a browser-like header set for the target URL.
//
// Marketplaces with aggressive bot detection (etsy, gumroad) get a Google
// referer so the visit looks like organic search traffic; everything else
// is presented as a direct navigation (Sec-Fetch-Site: none).
func NaturalHeaders(targetURL string) map[string]string {
	headers := map[string]string{
		"Accept":                    "text/html,application/xhtml+xml,application/xml;q=0.9,image/avif,image/webp,*/*;q=0.8",
		"Accept-Language":           "es-ES,es;q=0.9,en;q=0.8",
		"Accept-Encoding":           "gzip, deflate, br",
		"Connection":                "keep-alive",
		"Upgrade-Insecure-Requests": "1",
		"Sec-Fetch-Dest":            "document",
		"Sec-Fetch-Mode":            "navigate",
		"Sec-Fetch-User":            "?1",
	}

	host := hostOf(targetURL)
	if strings.Contains(host, "etsy.com") || strings.Contains(host, "gumroad.com") {
		headers["Referer"] = "https://www.google.com/"
		headers["Sec-Fetch-Site"] = "cross-site"
	} else {
		headers["Sec-Fetch-Site"] = "none"
	}

	return headers
}

// hostOf extracts the lowercased host from a URL string, or "" when the
// URL does not parse.
func hostOf(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	return strings.ToLower(u.Host)
}
