package engine

import (
	"strings"
	"testing"
)

func TestNaturalHeaders_DefaultSite(t *testing.T) {
	headers := NaturalHeaders("https://example.com/page")

	if got := headers["Sec-Fetch-Site"]; got != "none" {
		t.Errorf("Sec-Fetch-Site = %q, want %q", got, "none")
	}
	if _, ok := headers["Referer"]; ok {
		t.Error("plain sites must not get a Referer")
	}
	if !strings.HasPrefix(headers["Accept-Language"], "es-ES") {
		t.Errorf("Accept-Language = %q, want Spanish locale", headers["Accept-Language"])
	}
	if headers["Sec-Fetch-Mode"] != "navigate" {
		t.Errorf("Sec-Fetch-Mode = %q, want navigate", headers["Sec-Fetch-Mode"])
	}
}

func TestNaturalHeaders_SearchRefererDomains(t *testing.T) {
	for _, url := range []string{
		"https://www.etsy.com/listing/1",
		"https://creator.gumroad.com/l/thing",
	} {
		headers := NaturalHeaders(url)
		if headers["Referer"] != "https://www.google.com/" {
			t.Errorf("%s: Referer = %q, want google homepage", url, headers["Referer"])
		}
		if headers["Sec-Fetch-Site"] != "cross-site" {
			t.Errorf("%s: Sec-Fetch-Site = %q, want cross-site", url, headers["Sec-Fetch-Site"])
		}
	}
}

func TestRandomUserAgent_DrawsFromPool(t *testing.T) {
	for i := 0; i < 20; i++ {
		ua := randomUserAgent()
		found := false
		for _, candidate := range userAgents {
			if ua == candidate {
				found = true
				break
			}
		}
		if !found {
			t.Fatalf("user agent %q not in pool", ua)
		}
	}
}
