package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all application configuration.
type Config struct {
	Server    ServerConfig
	Browser   BrowserConfig
	Fetch     FetchConfig
	Auth      AuthConfig
	RateLimit RateLimitConfig
	Cache     CacheConfig
	Log       LogConfig
}

// ServerConfig controls the HTTP server.
type ServerConfig struct {
	Host string // default: "0.0.0.0"
	Port int    // default: 8080; PORT takes precedence for PaaS deploys
	Mode string // "debug", "release", "test"; default: "release"
}

// BrowserConfig controls the headless browser engine.
type BrowserConfig struct {
	// Headless controls whether the browser runs headless.
	Headless bool // default: true

	// NoSandbox disables Chrome's sandbox (needed in Docker).
	NoSandbox bool // default: false

	// Bin overrides the Chromium binary path.
	Bin string
}

// FetchConfig controls per-strategy fetch behavior.
type FetchConfig struct {
	// Timeout is the per-strategy deadline. The lightweight and the
	// rendering attempt each get this budget independently, so a request
	// that falls back can take up to twice this long.
	Timeout time.Duration // default: 30s

	// SettleDelay is the fixed wait after DOMContentLoaded on the
	// rendering path, giving deferred scripts time to run.
	SettleDelay time.Duration // default: 3s

	// JSDomains overrides the set of hosts routed to the rendering path.
	// Empty means the built-in default list.
	JSDomains []string
}

// AuthConfig controls API key authentication.
type AuthConfig struct {
	// APIKeys is the list of valid API keys. Empty disables auth.
	APIKeys []string
}

// RateLimitConfig controls per-client rate limiting of the API itself.
type RateLimitConfig struct {
	// Enabled toggles the middleware. Off by default: most deployments
	// sit behind a gateway that already does this.
	Enabled bool // default: false

	// RequestsPerSecond is the sustained rate per client.
	RequestsPerSecond float64 // default: 5

	// Burst is the maximum burst size per client.
	Burst int // default: 10
}

// CacheConfig controls the single-fetch response cache.
type CacheConfig struct {
	// TTL is how long a successful result may be served from cache.
	// Zero disables caching entirely.
	TTL time.Duration // default: 0 (disabled)

	// MaxEntries is the maximum number of cached results.
	MaxEntries int // default: 1000
}

// LogConfig controls structured logging.
type LogConfig struct {
	Level  string // default: "info"
	Format string // "json" or "text"; default: "json"
}

// Load reads configuration from environment variables with sane defaults.
func Load() *Config {
	return &Config{
		Server: ServerConfig{
			Host: envOr("SCRAPEPROXY_HOST", "0.0.0.0"),
			Port: envIntOr("PORT", envIntOr("SCRAPEPROXY_PORT", 8080)),
			Mode: envOr("SCRAPEPROXY_MODE", "release"),
		},
		Browser: BrowserConfig{
			Headless:  envBoolOr("SCRAPEPROXY_HEADLESS", true),
			NoSandbox: envBoolOr("SCRAPEPROXY_NO_SANDBOX", false),
			Bin:       os.Getenv("SCRAPEPROXY_BROWSER_BIN"),
		},
		Fetch: FetchConfig{
			Timeout:     envDurationOr("SCRAPEPROXY_FETCH_TIMEOUT", 30*time.Second),
			SettleDelay: envDurationOr("SCRAPEPROXY_SETTLE_DELAY", 3*time.Second),
			JSDomains:   envSliceOr("SCRAPEPROXY_JS_DOMAINS", nil),
		},
		Auth: AuthConfig{
			APIKeys: envSliceOr("SCRAPEPROXY_API_KEYS", nil),
		},
		RateLimit: RateLimitConfig{
			Enabled:           envBoolOr("SCRAPEPROXY_RATE_ENABLED", false),
			RequestsPerSecond: envFloatOr("SCRAPEPROXY_RATE_RPS", 5.0),
			Burst:             envIntOr("SCRAPEPROXY_RATE_BURST", 10),
		},
		Cache: CacheConfig{
			TTL:        envDurationOr("SCRAPEPROXY_CACHE_TTL", 0),
			MaxEntries: envIntOr("SCRAPEPROXY_CACHE_MAX_ENTRIES", 1000),
		},
		Log: LogConfig{
			Level:  envOr("SCRAPEPROXY_LOG_LEVEL", "info"),
			Format: envOr("SCRAPEPROXY_LOG_FORMAT", "json"),
		},
	}
}

// --- helper functions ---

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envIntOr(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return fallback
}

func envBoolOr(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}

func envFloatOr(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}

func envDurationOr(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}

func envSliceOr(key string, fallback []string) []string {
	if v := os.Getenv(key); v != "" {
		parts := strings.Split(v, ",")
		result := make([]string, 0, len(parts))
		for _, p := range parts {
			if trimmed := strings.TrimSpace(p); trimmed != "" {
				result = append(result, trimmed)
			}
		}
		return result
	}
	return fallback
}
