// Package scrape fetches public web pages politely: one token bucket and one
// circuit breaker per host, bounded retries and a capped body size.
package scrape

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/riskibarqy/matchday-intel/internal/domain/extraction"
	"github.com/riskibarqy/matchday-intel/internal/platform/logging"
	"github.com/riskibarqy/matchday-intel/internal/platform/render"
	"github.com/riskibarqy/matchday-intel/internal/platform/resilience"
	"github.com/valyala/bytebufferpool"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"golang.org/x/time/rate"
)

const (
	maxBodyBytes          = 6 << 20
	defaultUserAgent      = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/122.0.0.0 Safari/537.36"
	defaultAcceptLanguage = "es-ES,es;q=0.9,en;q=0.8"
)

type Config struct {
	HTTPClient     *http.Client
	UserAgent      string
	AcceptLanguage string
	Timeout        time.Duration
	RatePerSecond  float64
	Burst          int
	MaxRetries     int
	RetryBackoff   time.Duration
	CircuitBreaker resilience.CircuitBreakerConfig
	Renderer       render.Renderer
	Logger         *logging.Logger
}

type Fetcher struct {
	client         *http.Client
	userAgent      string
	acceptLanguage string
	limit          rate.Limit
	burst          int
	maxRetries     int
	backoff        time.Duration
	breakers       *resilience.BreakerSet
	renderer       render.Renderer
	logger         *logging.Logger
	flight         resilience.Group[[]byte]
	loadTimeout    time.Duration

	mu       sync.Mutex
	limiters map[string]*rate.Limiter
}

func NewFetcher(cfg Config) *Fetcher {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}

	client := cfg.HTTPClient
	if client == nil {
		client = &http.Client{
			Timeout:   cfg.Timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		}
	}
	if client.Timeout <= 0 {
		client.Timeout = 15 * time.Second
	}

	limit := rate.Inf
	if cfg.RatePerSecond > 0 {
		limit = rate.Limit(cfg.RatePerSecond)
	}
	burst := cfg.Burst
	if burst < 1 {
		burst = 1
	}
	backoff := cfg.RetryBackoff
	if backoff <= 0 {
		backoff = 500 * time.Millisecond
	}
	renderer := cfg.Renderer
	if renderer == nil {
		renderer = render.Disabled{}
	}

	maxRetries := max(cfg.MaxRetries, 0)
	// Every attempt at the client timeout plus the linear backoff between them.
	loadTimeout := time.Duration(maxRetries+1)*client.Timeout +
		time.Duration(maxRetries*(maxRetries+1)/2)*backoff

	return &Fetcher{
		client:         client,
		loadTimeout:    loadTimeout,
		userAgent:      firstNonEmpty(cfg.UserAgent, defaultUserAgent),
		acceptLanguage: firstNonEmpty(cfg.AcceptLanguage, defaultAcceptLanguage),
		limit:          limit,
		burst:          burst,
		maxRetries:     maxRetries,
		backoff:        backoff,
		breakers:       resilience.NewBreakerSet(cfg.CircuitBreaker),
		renderer:       renderer,
		logger:         logger,
		limiters:       make(map[string]*rate.Limiter),
	}
}

type options struct {
	javaScript bool
}

type Option func(*options)

// WithJavaScript renders the page in a headless browser when one is
// configured, falling back to the static HTML otherwise.
func WithJavaScript() Option {
	return func(o *options) { o.javaScript = true }
}

// HTML returns the raw page body. Failures are marked with the extraction
// soft failure classes: 404 as NoMatchFound, everything else as
// SourceUnreachable.
func (f *Fetcher) HTML(ctx context.Context, rawURL string, opts ...Option) ([]byte, error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	parsed, err := url.Parse(rawURL)
	if err != nil || parsed.Host == "" {
		return nil, extraction.Unreachable(fmt.Errorf("invalid url %q", rawURL), "fetch")
	}
	host := parsed.Host

	breaker := f.breakers.For(host)
	if err := breaker.Allow(); err != nil {
		return nil, extraction.Unreachable(err, "fetch %s", host)
	}

	key := rawURL
	if o.javaScript {
		key = "js:" + rawURL
	}
	// The shared fetch outlives any one caller; each caller waits on its own ctx.
	body, err, _ := f.flight.DoContext(ctx, key, func() ([]byte, error) {
		loadCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), f.loadTimeout)
		defer cancel()

		if err := f.limiter(host).Wait(loadCtx); err != nil {
			return nil, extraction.Unreachable(err, "rate limit wait for %s", host)
		}
		if o.javaScript && f.renderer.Enabled() {
			html, renderErr := f.renderer.Render(loadCtx, rawURL)
			if renderErr == nil {
				return []byte(html), nil
			}
			f.logger.DebugContext(loadCtx, "render failed, using static html", "url", rawURL, "error", renderErr)
		}
		return f.get(loadCtx, rawURL)
	})
	switch {
	case err == nil:
		breaker.Record(false)
		return body, nil
	case ctx.Err() != nil:
		// The caller gave up; that says nothing about the host.
		breaker.Release()
		return nil, extraction.Unreachable(ctx.Err(), "fetch %s", rawURL)
	default:
		breaker.Record(countsAsFailure(err))
		return nil, err
	}
}

// Document parses the page with goquery.
func (f *Fetcher) Document(ctx context.Context, rawURL string, opts ...Option) (*goquery.Document, error) {
	body, err := f.HTML(ctx, rawURL, opts...)
	if err != nil {
		return nil, err
	}
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return nil, extraction.StructureChanged("parse %s: %v", rawURL, err)
	}
	return doc, nil
}

// Text returns the visible text of the page with whitespace collapsed.
func (f *Fetcher) Text(ctx context.Context, rawURL string, opts ...Option) (string, error) {
	doc, err := f.Document(ctx, rawURL, opts...)
	if err != nil {
		return "", err
	}
	return VisibleText(doc), nil
}

func (f *Fetcher) get(ctx context.Context, rawURL string) ([]byte, error) {
	var lastErr error
	for attempt := 0; attempt <= f.maxRetries; attempt++ {
		body, status, err := f.do(ctx, rawURL)
		switch {
		case err != nil:
			lastErr = extraction.Unreachable(err, "get %s", rawURL)
		case status >= 200 && status < 300:
			return body, nil
		case status == http.StatusNotFound:
			return nil, extraction.NoMatch("get %s: status %d", rawURL, status)
		case isRetryableStatus(status):
			lastErr = extraction.Unreachable(fmt.Errorf("status %d", status), "get %s", rawURL)
		default:
			return nil, extraction.Unreachable(fmt.Errorf("status %d", status), "get %s", rawURL)
		}

		if attempt == f.maxRetries {
			break
		}
		timer := time.NewTimer(time.Duration(attempt+1) * f.backoff)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, extraction.Unreachable(ctx.Err(), "get %s", rawURL)
		case <-timer.C:
		}
	}

	f.logger.WarnContext(ctx, "page fetch failed", "url", rawURL, "error", lastErr)
	return nil, lastErr
}

func (f *Fetcher) do(ctx context.Context, rawURL string) ([]byte, int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, 0, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("User-Agent", f.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Language", f.acceptLanguage)

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, 0, err
	}
	defer resp.Body.Close()

	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)
	if _, err := buf.ReadFrom(io.LimitReader(resp.Body, maxBodyBytes)); err != nil {
		return nil, resp.StatusCode, fmt.Errorf("read body: %w", err)
	}
	return append([]byte(nil), buf.B...), resp.StatusCode, nil
}

func (f *Fetcher) limiter(host string) *rate.Limiter {
	f.mu.Lock()
	defer f.mu.Unlock()
	l, ok := f.limiters[host]
	if !ok {
		l = rate.NewLimiter(f.limit, f.burst)
		f.limiters[host] = l
	}
	return l
}

// BreakerStates reports the breaker state per host seen so far.
func (f *Fetcher) BreakerStates() map[string]resilience.CircuitState {
	return f.breakers.States()
}

// countsAsFailure keeps "page not found" from tripping a host's breaker.
func countsAsFailure(err error) bool {
	return extraction.OutcomeOf(err) == extraction.OutcomeSourceUnreachable
}

func isRetryableStatus(code int) bool {
	return code == http.StatusTooManyRequests || code >= 500
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return ""
}
