package cache

import (
	"fmt"
	"testing"
	"time"

	"github.com/hvilla/scrapeproxy/models"
)

func result(url string) *models.FetchResult {
	return &models.FetchResult{Success: true, StatusCode: 200, URL: url, Method: models.MethodLightweight}
}

func TestNew_ZeroTTLDisablesCache(t *testing.T) {
	c := New(10, 0)
	if c != nil {
		t.Fatal("zero TTL should return a nil cache")
	}

	// nil cache is a safe no-op.
	c.Set("k", result("https://example.com"))
	if _, hit := c.Get("k"); hit {
		t.Error("nil cache must never hit")
	}
}

func TestCache_SetGet(t *testing.T) {
	c := New(10, time.Minute)
	key := Key("https://example.com", false)

	c.Set(key, result("https://example.com"))

	got, hit := c.Get(key)
	if !hit {
		t.Fatal("expected cache hit")
	}
	if got.URL != "https://example.com" {
		t.Errorf("got %+v", got)
	}
}

func TestCache_Expiry(t *testing.T) {
	c := New(10, 10*time.Millisecond)
	key := Key("https://example.com", false)

	c.Set(key, result("https://example.com"))
	time.Sleep(30 * time.Millisecond)

	if _, hit := c.Get(key); hit {
		t.Error("entry older than TTL must not hit")
	}
}

func TestCache_CapacityEviction(t *testing.T) {
	c := New(2, time.Minute)

	keys := make([]string, 3)
	for i := range keys {
		url := fmt.Sprintf("https://example.com/%d", i)
		keys[i] = Key(url, false)
		c.Set(keys[i], result(url))
	}

	hits := 0
	for _, k := range keys {
		if _, hit := c.Get(k); hit {
			hits++
		}
	}
	if hits != 2 {
		t.Errorf("got %d hits after overflow, want 2 (one entry evicted)", hits)
	}
}

func TestKey_DistinguishesForceFlag(t *testing.T) {
	if Key("https://example.com", false) == Key("https://example.com", true) {
		t.Error("force flag must change the key")
	}
	if Key("https://a.example.com", false) == Key("https://b.example.com", false) {
		t.Error("different URLs must not collide")
	}
}
