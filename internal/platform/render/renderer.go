// Package render produces JavaScript-rendered HTML for pages whose content
// is injected client side.
package render

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/chromedp/chromedp"
	"github.com/riskibarqy/matchday-intel/internal/platform/logging"
)

var ErrRenderDisabled = errors.New("javascript rendering is disabled")

type Renderer interface {
	Enabled() bool
	Render(ctx context.Context, url string) (string, error)
}

// Disabled never renders. The fetcher falls back to static HTML.
type Disabled struct{}

func (Disabled) Enabled() bool { return false }

func (Disabled) Render(context.Context, string) (string, error) {
	return "", ErrRenderDisabled
}

type ChromeConfig struct {
	UserAgent   string
	UserDataDir string
	Timeout     time.Duration
	// Settle is how long to wait after the load event for late XHR content.
	Settle time.Duration
	Logger *logging.Logger
}

// ChromeRenderer drives a shared headless Chrome; every Render opens a tab.
type ChromeRenderer struct {
	cfg    ChromeConfig
	logger *logging.Logger

	once        sync.Once
	allocCtx    context.Context
	allocCancel context.CancelFunc
}

func NewChromeRenderer(cfg ChromeConfig) *ChromeRenderer {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 15 * time.Second
	}
	if cfg.Settle < 0 {
		cfg.Settle = 0
	}
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}
	return &ChromeRenderer{cfg: cfg, logger: logger}
}

func (r *ChromeRenderer) Enabled() bool { return true }

func (r *ChromeRenderer) allocator() context.Context {
	r.once.Do(func() {
		opts := append(chromedp.DefaultExecAllocatorOptions[:],
			chromedp.Flag("headless", true),
			chromedp.Flag("disable-gpu", true),
			chromedp.Flag("disable-dev-shm-usage", true),
			chromedp.Flag("no-sandbox", true),
			chromedp.Flag("disable-blink-features", "AutomationControlled"),
			chromedp.Flag("blink-settings", "imagesEnabled=false"),
			chromedp.WindowSize(1280, 800),
		)
		if r.cfg.UserAgent != "" {
			opts = append(opts, chromedp.UserAgent(r.cfg.UserAgent))
		}
		if r.cfg.UserDataDir != "" {
			opts = append(opts, chromedp.UserDataDir(r.cfg.UserDataDir))
		}
		r.allocCtx, r.allocCancel = chromedp.NewExecAllocator(context.Background(), opts...)
	})
	return r.allocCtx
}

// Render navigates to url and returns the document's outer HTML once the
// page has loaded and settled. The caller's ctx bounds the whole call.
func (r *ChromeRenderer) Render(ctx context.Context, url string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	tabCtx, cancelTab := chromedp.NewContext(r.allocator(), chromedp.WithLogf(func(format string, args ...any) {
		r.logger.Debug("chromedp", "message", fmt.Sprintf(format, args...))
	}))
	defer cancelTab()
	stop := context.AfterFunc(ctx, cancelTab)
	defer stop()

	tabCtx, cancelTimeout := context.WithTimeout(tabCtx, r.cfg.Timeout)
	defer cancelTimeout()

	var html string
	actions := []chromedp.Action{chromedp.Navigate(url)}
	if r.cfg.Settle > 0 {
		actions = append(actions, chromedp.Sleep(r.cfg.Settle))
	}
	actions = append(actions, chromedp.OuterHTML("html", &html, chromedp.ByQuery))

	started := time.Now()
	if err := chromedp.Run(tabCtx, actions...); err != nil {
		if ctx.Err() != nil {
			return "", ctx.Err()
		}
		return "", fmt.Errorf("render %s: %w", url, err)
	}
	r.logger.DebugContext(ctx, "page rendered", "url", url, "bytes", len(html), "latency_ms", time.Since(started).Milliseconds())
	return html, nil
}

// Close shuts the browser down. Safe to call when nothing was rendered.
func (r *ChromeRenderer) Close() {
	r.once.Do(func() {})
	if r.allocCancel != nil {
		r.allocCancel()
	}
}
