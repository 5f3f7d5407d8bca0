package engine

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/hvilla/scrapeproxy/models"
)

// Fetcher is a single fetch strategy. Implementations report failures
// inside the FetchResult rather than as errors.
type Fetcher interface {
	Fetch(ctx context.Context, targetURL string) *models.FetchResult
}

// Orchestrator picks a fetch strategy per URL and falls back to the other
// one when the first attempt fails or looks blocked. At most one fallback
// per request: no retry loops, no backoff. Worst case is two sequential
// attempts, each bounded by the per-strategy timeout.
type Orchestrator struct {
	lightweight Fetcher
	rendering   Fetcher
	selector    *Selector
}

// NewOrchestrator wires the two strategies and the selector together.
func NewOrchestrator(lightweight, rendering Fetcher, selector *Selector) *Orchestrator {
	return &Orchestrator{
		lightweight: lightweight,
		rendering:   rendering,
		selector:    selector,
	}
}

// Fetch executes the strategy decision tree:
//
//   - Rendering path (forced, or the selector knows the host needs JS):
//     run the rendering fetcher; if it fails, try the lightweight fetcher
//     once and return its result when it succeeds. The result keeps
//     Method="lightweight": existing callers depend on seeing which
//     strategy actually produced the content. When the fallback also
//     fails, the original rendering failure is returned. Block detection
//     is never applied to rendered content.
//
//   - Lightweight path (everything else): run the lightweight fetcher; if
//     it fails at the transport level, or the body matches a block
//     signature, run the rendering fetcher and return its result whatever
//     the outcome.
//
// A panic anywhere below is converted into a Method="error" result; the
// service boundary never sees an exception from a fetch.
func (o *Orchestrator) Fetch(ctx context.Context, targetURL string, forceRendering bool) (result *models.FetchResult) {
	defer func() {
		if r := recover(); r != nil {
			slog.Error("fetch panicked", "url", targetURL, "panic", r)
			result = &models.FetchResult{
				Success:    false,
				StatusCode: 0,
				Method:     models.MethodError,
				Error:      fmt.Sprint(r),
			}
		}
	}()

	if forceRendering || o.selector.NeedsRendering(targetURL) {
		result = o.rendering.Fetch(ctx, targetURL)
		if !result.Success {
			slog.Info("rendering failed, trying lightweight fallback",
				"url", targetURL, "error", result.Error)
			if fallback := o.lightweight.Fetch(ctx, targetURL); fallback.Success {
				return fallback
			}
		}
		return result
	}

	result = o.lightweight.Fetch(ctx, targetURL)
	if !result.Success || IsBlockedContent(result.Content) {
		slog.Info("lightweight fetch blocked or failed, escalating to rendering",
			"url", targetURL, "success", result.Success)
		return o.rendering.Fetch(ctx, targetURL)
	}
	return result
}
