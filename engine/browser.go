package engine

import (
	"log/slog"
	"sync"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/launcher/flags"

	"github.com/hvilla/scrapeproxy/config"
)

// Browser owns the single headless Chrome process shared by all rendering
// fetches. The process is expensive, so it is launched lazily on first use
// and kept alive for the service's lifetime; each fetch isolates itself in
// its own incognito browser context.
type Browser struct {
	cfg config.BrowserConfig

	mu      sync.Mutex
	browser *rod.Browser
}

// NewBrowser creates the manager without launching anything.
func NewBrowser(cfg config.BrowserConfig) *Browser {
	return &Browser{cfg: cfg}
}

// Get returns the shared engine, launching it on first call. The mutex
// guarantees at most one launch even under concurrent first use; a failed
// launch is not cached, so a later call retries.
func (b *Browser) Get() (*rod.Browser, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.browser != nil {
		return b.browser, nil
	}

	l := launcher.New().
		Headless(b.cfg.Headless).
		NoSandbox(b.cfg.NoSandbox)

	if b.cfg.Bin != "" {
		l = l.Bin(b.cfg.Bin)
	}

	l.Set(flags.Flag("disable-blink-features"), "AutomationControlled")
	l.Delete(flags.Flag("enable-automation"))
	l.Set(flags.Flag("disable-dev-shm-usage"))
	l.Set(flags.Flag("disable-gpu"))
	l.Set(flags.Flag("no-first-run"))
	l.Set(flags.Flag("disable-extensions"))
	l.Set(flags.Flag("disable-default-apps"))
	l.Set(flags.Flag("disable-component-update"))

	controlURL, err := l.Launch()
	if err != nil {
		return nil, err
	}

	browser := rod.New().ControlURL(controlURL)
	if err := browser.Connect(); err != nil {
		return nil, err
	}

	slog.Info("browser launched", "controlURL", controlURL)
	b.browser = browser
	return browser, nil
}

// Close kills the browser process if it was ever launched. Call on
// shutdown to prevent zombie Chrome processes.
func (b *Browser) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.browser == nil {
		return
	}
	slog.Info("closing browser")
	if err := b.browser.Close(); err != nil {
		slog.Warn("browser close failed", "error", err)
	}
	b.browser = nil
}
