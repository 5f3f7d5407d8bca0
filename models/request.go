package models

// ScrapeRequest is the payload for POST /scrape.
type ScrapeRequest struct {
	// URL is the target page to fetch. Required.
	URL string `json:"url"`

	// ForcePlaywright forces the rendering (headless browser) path even
	// when the strategy selector would choose the lightweight path.
	// The field name is kept for wire compatibility with existing callers.
	ForcePlaywright bool `json:"force_playwright"`
}

// BatchRequest is the payload for POST /batch-scrape.
type BatchRequest struct {
	// URLs is the list of target pages to fetch. Required, non-empty,
	// at most MaxBatchURLs entries.
	URLs []string `json:"urls"`

	// ForcePlaywright applies to every URL in the batch.
	ForcePlaywright bool `json:"force_playwright"`
}

// MaxBatchURLs is the hard cap on URLs per batch request. Kept low because
// every batch member may occupy a browser context for up to two 30-second
// strategy attempts.
const MaxBatchURLs = 5
