package engine

import (
	"strings"
	"testing"
)

func TestNeedsRendering_DefaultDomains(t *testing.T) {
	s := NewSelector(nil)

	tests := []struct {
		name string
		url  string
		want bool
	}{
		{"etsy", "https://www.etsy.com/listing/12345", true},
		{"amazon", "https://amazon.com/dp/B000", true},
		{"ebay", "https://www.ebay.com/itm/999", true},
		{"shopify storefront", "https://shop.myshopify.com/products/x", true},
		{"shopify root", "https://shopify.com/pricing", true},
		{"bigcommerce", "https://store.bigcommerce.com/", true},
		{"plain site", "https://example.com/", false},
		{"news site", "https://www.theguardian.com/world", false},
		{"subdomain of js site", "https://render.etsy.com/x", true},
		{"unparseable", "://nope", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := s.NeedsRendering(tt.url); got != tt.want {
				t.Errorf("NeedsRendering(%q) = %v, want %v", tt.url, got, tt.want)
			}
		})
	}
}

func TestNeedsRendering_CustomDomains(t *testing.T) {
	s := NewSelector([]string{"example.org"})

	if !s.NeedsRendering("https://www.example.org/page") {
		t.Error("custom domain should require rendering")
	}
	if s.NeedsRendering("https://www.etsy.com/listing/1") {
		t.Error("default list must not apply when a custom list is set")
	}
}

func TestIsBlockedContent_Signatures(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    bool
	}{
		{"empty", "", true},
		{"cloudflare interstitial", "<html><title>Just a moment...</title></html>", true},
		{"mixed case", "<p>CHECKING YOUR BROWSER before accessing</p>", true},
		{"datadome", `<script src="https://captcha-delivery.com/c.js"></script>`, true},
		{"access denied", "Access Denied - you don't have permission", true},
		{"adblock warning", "Please enable JS and disable any ad blocker", true},
		{"generic blocked", "Your IP has been blocked", true},
		{"cloudflare lowercase", "ddos protection by cloudflare", true},
		{"ordinary page", "<html><body><h1>Product catalog</h1></body></html>", false},
		{"long clean html", "<html>" + strings.Repeat("<p>hello world</p>", 50) + "</html>", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsBlockedContent(tt.content); got != tt.want {
				t.Errorf("IsBlockedContent(%q) = %v, want %v", tt.content, got, tt.want)
			}
		})
	}
}
