package harness

import (
	"fmt"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
)

// BrowserConfig configures Chrome launch options for a test session.
type BrowserConfig struct {
	Headless     bool          // run without a visible window (default: true)
	Timeout      time.Duration // default wait timeout for page operations (default: 5s)
	WindowWidth  int           // fixed viewport width (default: 1280)
	WindowHeight int           // fixed viewport height (default: 720)
}

// DefaultBrowserConfig returns sensible defaults for E2E testing.
func DefaultBrowserConfig() BrowserConfig {
	return BrowserConfig{
		Headless:     true,
		Timeout:      5 * time.Second,
		WindowWidth:  1280,
		WindowHeight: 720,
	}
}

// Browser is one isolated Chrome instance. Each test gets its own so no
// cookies or storage carry over between tests.
type Browser struct {
	browser  *rod.Browser
	launcher *launcher.Launcher
	timeout  time.Duration
}

// NewBrowser launches a headless Chrome with a fixed window size.
func NewBrowser(cfg BrowserConfig) (*Browser, error) {
	l := launcher.New().
		Headless(cfg.Headless).
		Set("no-sandbox").
		Set("disable-gpu").
		Set("window-size", fmt.Sprintf("%d,%d", cfg.WindowWidth, cfg.WindowHeight))

	url, err := l.Launch()
	if err != nil {
		return nil, fmt.Errorf("launch Chrome: %w", err)
	}

	browser := rod.New().ControlURL(url)
	if err := browser.Connect(); err != nil {
		l.Kill()
		l.Cleanup()
		return nil, fmt.Errorf("connect to Chrome: %w", err)
	}

	return &Browser{
		browser:  browser,
		launcher: l,
		timeout:  cfg.Timeout,
	}, nil
}

// Open navigates a new page to url and waits for it to load.
func (b *Browser) Open(url string) (*Page, error) {
	page, err := b.browser.Page(proto.TargetCreateTarget{})
	if err != nil {
		return nil, fmt.Errorf("open page: %w", err)
	}
	if err := page.Timeout(b.timeout).Navigate(url); err != nil {
		return nil, fmt.Errorf("navigate to %s: %w", url, err)
	}
	if err := page.Timeout(b.timeout).WaitLoad(); err != nil {
		return nil, fmt.Errorf("load %s: %w", url, err)
	}
	return &Page{Page: page, timeout: b.timeout}, nil
}

// Close shuts down the browser and kills the Chrome process. Always call
// this (via defer or t.Cleanup) to prevent orphaned Chrome processes.
func (b *Browser) Close() {
	if b.browser != nil {
		_ = b.browser.Close()
	}
	if b.launcher != nil {
		b.launcher.Kill()
		b.launcher.Cleanup()
	}
}
