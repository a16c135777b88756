package app

import (
	"github.com/riskibarqy/matchday-intel/external/sportmonks"
	"github.com/riskibarqy/matchday-intel/internal/config"
	"github.com/riskibarqy/matchday-intel/internal/domain/league"
	"github.com/riskibarqy/matchday-intel/internal/domain/source"
	"github.com/riskibarqy/matchday-intel/internal/infrastructure/source/scraper"
	smadapter "github.com/riskibarqy/matchday-intel/internal/infrastructure/source/sportmonks"
	"github.com/riskibarqy/matchday-intel/internal/platform/logging"
	"github.com/riskibarqy/matchday-intel/internal/platform/render"
	"github.com/riskibarqy/matchday-intel/internal/platform/scrape"
)

// newSourceTable binds one web adapter per league. SportMonks, when enabled,
// is appended to every league chain and leads the Generic chain, which has no
// web lineup source.
func newSourceTable(cfg config.Config, logger *logging.Logger) (*source.Table, func()) {
	var renderer render.Renderer = render.Disabled{}
	closeRenderer := func() {}
	if cfg.RenderEnabled {
		chrome := render.NewChromeRenderer(render.ChromeConfig{
			UserAgent:   cfg.ScrapeUserAgent,
			UserDataDir: cfg.ChromeUserDataDir,
			Timeout:     cfg.RenderTimeout,
			Logger:      logger,
		})
		renderer = chrome
		closeRenderer = chrome.Close
	}

	fetcher := scrape.NewFetcher(scrape.Config{
		UserAgent:      cfg.ScrapeUserAgent,
		AcceptLanguage: cfg.ScrapeAcceptLanguage,
		Timeout:        cfg.ScrapeTimeout,
		RatePerSecond:  cfg.ScrapeRatePerSecond,
		Burst:          cfg.ScrapeBurst,
		MaxRetries:     cfg.ScrapeMaxRetries,
		CircuitBreaker: cfg.ScrapeCircuit,
		Renderer:       renderer,
		Logger:         logger,
	})

	var feed source.Adapter
	if cfg.SportMonksEnabled {
		feed = smadapter.NewAdapter(sportmonks.NewClient(sportmonks.ClientConfig{
			BaseURL:        cfg.SportMonksBaseURL,
			Token:          cfg.SportMonksToken,
			Timeout:        cfg.SportMonksTimeout,
			MaxRetries:     cfg.SportMonksMaxRetries,
			Logger:         logger,
			CircuitBreaker: cfg.SportMonksCircuit,
		}))
	}

	endpoints := scraper.DefaultEndpoints()
	bindings := make([]source.Binding, 0, len(league.All()))
	for _, l := range league.All() {
		web := scraper.ForLeague(l, fetcher, endpoints, logger)
		adapters := []source.Adapter{web}
		if feed != nil {
			if l == league.Generic {
				adapters = []source.Adapter{feed, web}
			} else {
				adapters = append(adapters, feed)
			}
		}
		bindings = append(bindings, source.Binding{League: l, Adapters: adapters})
	}
	return source.NewTable(bindings...), closeRenderer
}
