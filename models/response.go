package models

// Fetch method tags reported in FetchResult.Method.
const (
	MethodLightweight = "lightweight"
	MethodRendering   = "rendering"
	MethodError       = "error"
)

// FetchResult is the outcome of one fetch attempt, and the JSON body
// returned by POST /scrape. It is produced exactly once per attempt and
// never mutated afterwards; a fallback attempt produces its own result.
type FetchResult struct {
	// Success is false only for transport or rendering failures.
	// HTTP-level error codes (4xx/5xx) are NOT failures: callers read
	// StatusCode to learn about those.
	Success bool `json:"success"`

	// StatusCode is the target's HTTP status, or 0 on failure.
	StatusCode int `json:"status_code"`

	// Content is the page body, verbatim. Rendered HTML on the rendering
	// path, raw response body on the lightweight path.
	Content string `json:"content,omitempty"`

	// Headers holds the target's response headers (lightweight path only).
	Headers map[string]string `json:"headers,omitempty"`

	// URL is the final URL after following all redirects.
	URL string `json:"url,omitempty"`

	// Title is the page title when one could be extracted.
	Title string `json:"title,omitempty"`

	// Method identifies which strategy produced this result.
	Method string `json:"method"`

	// Error describes the failure when Success is false.
	Error string `json:"error,omitempty"`
}

// BatchResponse is the JSON body returned by POST /batch-scrape.
//
// Results is keyed by the *requested* URL string, so a batch containing the
// same URL twice collapses to a single entry (Total still reports the
// requested count). Existing callers depend on this shape; do not "fix" it.
type BatchResponse struct {
	Results map[string]*FetchResult `json:"results"`
	Total   int                     `json:"total"`
}

// HealthResponse is the response for GET /health.
type HealthResponse struct {
	Status   string   `json:"status"`
	Service  string   `json:"service"`
	Features []string `json:"features"`
	Uptime   string   `json:"uptime"`
}
