package engine

import "strings"

// defaultJSDomains lists hosts known to serve empty shells without
// JavaScript execution. Matched by substring against the URL host.
var defaultJSDomains = []string{
	"etsy.com",
	"amazon.com",
	"ebay.com",
	"shopify.com",
	"bigcommerce.com",
}

// blockSignatures are substrings whose presence marks a response as a
// challenge or rejection page. Matching is case-insensitive. This is a
// heuristic: false positives and negatives are accepted.
var blockSignatures = []string{
	"please enable js and disable any ad blocker",
	"captcha-delivery.com",
	"cloudflare",
	"just a moment",
	"checking your browser",
	"ddos protection by cloudflare",
	"access denied",
	"blocked",
}

// Selector decides which fetch strategy a URL needs.
type Selector struct {
	jsDomains []string
}

// NewSelector creates a Selector. An empty domain list selects the
// built-in defaults.
func NewSelector(jsDomains []string) *Selector {
	if len(jsDomains) == 0 {
		jsDomains = defaultJSDomains
	}
	return &Selector{jsDomains: jsDomains}
}

// NeedsRendering reports whether the URL's host belongs to a site that
// requires JavaScript execution to produce usable content.
func (s *Selector) NeedsRendering(targetURL string) bool {
	host := hostOf(targetURL)
	for _, d := range s.jsDomains {
		if strings.Contains(host, d) {
			return true
		}
	}
	return false
}

// IsBlockedContent reports whether the body looks like a soft block:
// empty, or carrying any known challenge signature.
func IsBlockedContent(content string) bool {
	if content == "" {
		return true
	}
	lower := strings.ToLower(content)
	for _, sig := range blockSignatures {
		if strings.Contains(lower, sig) {
			return true
		}
	}
	return false
}
