package engine

import (
	"context"
	"log/slog"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/proto"
	"github.com/go-rod/stealth"
	"github.com/ysmood/gson"

	"github.com/hvilla/scrapeproxy/models"
)

// RodEngine is the rendering fetcher: it loads pages through the shared
// headless browser so the target's JavaScript actually runs.
type RodEngine struct {
	browser *Browser
	timeout time.Duration
	settle  time.Duration
}

// NewRodEngine creates a RodEngine on top of the shared browser manager.
// settle is the fixed wait after DOMContentLoaded before extraction.
func NewRodEngine(browser *Browser, timeout, settle time.Duration) *RodEngine {
	return &RodEngine{browser: browser, timeout: timeout, settle: settle}
}

// Fetch renders the URL in an isolated incognito context and returns the
// fully serialized HTML, title and final URL.
//
// Lifecycle:
//
//  1. Lazy engine start    – shared Chrome process, launched at most once
//  2. Incognito context    – per-fetch cookie/cache/storage isolation
//  3. DEFER: dispose       – the context is closed on every exit path
//  4. Stealth + identity   – stealth JS, random UA, 1920×1080 viewport,
//     natural headers (all BEFORE navigation, or they don't apply)
//  5. Navigate             – wait for DOMContentLoaded, not network idle
//  6. Settle               – fixed delay for deferred script execution
//  7. Extract              – HTML, title, location, navigation status
//
// Any failure is folded into a FetchResult with Success=false; this method
// never returns an error to the orchestrator.
func (e *RodEngine) Fetch(ctx context.Context, targetURL string) *models.FetchResult {
	browser, err := e.browser.Get()
	if err != nil {
		return renderingFailure(err)
	}

	ctx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	// Incognito gives this fetch its own browser context; closing it
	// disposes only the context, never the shared engine process.
	ictx, err := browser.Incognito()
	if err != nil {
		return renderingFailure(err)
	}
	defer func() {
		if closeErr := ictx.Close(); closeErr != nil {
			slog.Warn("failed to dispose browser context", "error", closeErr)
		}
	}()

	page, err := ictx.Page(proto.TargetCreateTarget{})
	if err != nil {
		return renderingFailure(err)
	}

	p := page.Context(ctx)

	if _, evalErr := p.EvalOnNewDocument(stealth.JS); evalErr != nil {
		slog.Warn("stealth injection failed, proceeding without stealth",
			"error", evalErr,
		)
	}

	if err := p.SetUserAgent(&proto.NetworkSetUserAgentOverride{
		UserAgent: randomUserAgent(),
	}); err != nil {
		return renderingFailure(err)
	}

	if err := p.SetViewport(&proto.EmulationSetDeviceMetricsOverride{
		Width:             1920,
		Height:            1080,
		DeviceScaleFactor: 1,
	}); err != nil {
		return renderingFailure(err)
	}

	_ = proto.NetworkSetExtraHTTPHeaders{
		Headers: toHeadersMap(NaturalHeaders(targetURL)),
	}.Call(p)

	// The listener must exist before Navigate or the event is missed.
	waitDOM := p.WaitEvent(&proto.PageDomContentEventFired{})

	if err := p.Navigate(targetURL); err != nil {
		return renderingFailure(err)
	}
	waitDOM()

	if !sleepWithContext(ctx, e.settle) {
		return renderingFailure(ctx.Err())
	}

	content, err := p.HTML()
	if err != nil {
		return renderingFailure(err)
	}

	title := evalStringOrEmpty(p, `() => document.title`)
	finalURL := evalStringOrEmpty(p, `() => window.location.href`)
	if finalURL == "" {
		finalURL = targetURL
	}

	return &models.FetchResult{
		Success:    true,
		StatusCode: navigationStatus(p),
		Content:    content,
		URL:        finalURL,
		Title:      title,
		Method:     models.MethodRendering,
	}
}

func renderingFailure(err error) *models.FetchResult {
	msg := "rendering failed"
	if err != nil {
		msg = err.Error()
	}
	return &models.FetchResult{
		Success:    false,
		StatusCode: 0,
		Method:     models.MethodRendering,
		Error:      msg,
	}
}

// navigationStatus reads the navigation's HTTP status via the Performance
// API. Navigation responses aren't always observable (same-document
// navigations, cache hits on older Chromium), so 200 is assumed when the
// entry reports nothing.
func navigationStatus(p *rod.Page) int {
	status := 0
	if res, err := p.Eval(`() => {
		try {
			const entries = performance.getEntriesByType("navigation");
			if (entries.length > 0) return entries[0].responseStatus || 0;
		} catch (e) {}
		return 0;
	}`); err == nil {
		status = res.Value.Int()
	}
	if status == 0 {
		status = 200
	}
	return status
}

// evalStringOrEmpty evaluates a JS expression and returns the string
// result, swallowing any errors (used for optional metadata).
func evalStringOrEmpty(p *rod.Page, js string) string {
	res, err := p.Eval(js)
	if err != nil {
		return ""
	}
	return res.Value.Str()
}

// sleepWithContext waits for d or until the context is cancelled.
// Reports whether the full delay elapsed.
func sleepWithContext(ctx context.Context, d time.Duration) bool {
	select {
	case <-time.After(d):
		return true
	case <-ctx.Done():
		return false
	}
}

// toHeadersMap converts a plain string map to the proto.NetworkHeaders
// type (map[string]gson.JSON) required by NetworkSetExtraHTTPHeaders.
func toHeadersMap(headers map[string]string) proto.NetworkHeaders {
	m := make(proto.NetworkHeaders, len(headers))
	for k, v := range headers {
		m[k] = gson.New(v)
	}
	return m
}
