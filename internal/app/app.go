package app

import (
	"context"
	"fmt"
	"net/http"

	"github.com/riskibarqy/matchday-intel/internal/config"
	"github.com/riskibarqy/matchday-intel/internal/domain/lineup"
	"github.com/riskibarqy/matchday-intel/internal/domain/referee"
	"github.com/riskibarqy/matchday-intel/internal/interfaces/httpapi"
	"github.com/riskibarqy/matchday-intel/internal/platform/cache"
	idgen "github.com/riskibarqy/matchday-intel/internal/platform/id"
	"github.com/riskibarqy/matchday-intel/internal/platform/logging"
	"github.com/riskibarqy/matchday-intel/internal/platform/metrics"
	"github.com/riskibarqy/matchday-intel/internal/usecase"
)

// NewHTTPServer builds the API server. The returned cleanup releases the
// browser and database handles and must run after the server has stopped.
func NewHTTPServer(ctx context.Context, cfg config.Config, logger *logging.Logger) (*http.Server, func(), error) {
	if cfg.HTTPAddr == "" {
		return nil, nil, fmt.Errorf("http server addr cannot be empty")
	}

	var cleanups []func()
	cleanup := func() {
		for i := len(cleanups) - 1; i >= 0; i-- {
			cleanups[i]()
		}
	}

	rosters, closeRosters, err := newRosterRepository(ctx, cfg, logger)
	if err != nil {
		return nil, nil, err
	}
	cleanups = append(cleanups, closeRosters)

	pools, err := loadRefereePools(cfg)
	if err != nil {
		cleanup()
		return nil, nil, err
	}

	table, closeSources := newSourceTable(cfg, logger)
	cleanups = append(cleanups, closeSources)

	ids := idgen.NewUUIDGenerator()
	opts := []usecase.ResolutionOption{usecase.WithRunIDs(ids)}

	var cascadeMetrics *metrics.Cascade
	if cfg.MetricsEnabled {
		cascadeMetrics = metrics.NewCascade()
		opts = append(opts, usecase.WithCascadeMetrics(cascadeMetrics))
	}
	if cfg.CacheEnabled {
		opts = append(opts, usecase.WithResultCache(
			cache.NewStore[lineup.Resolved](cfg.CacheTTL, cache.WithLoadTimeout(cfg.ResolveTimeout)),
			cache.NewStore[referee.Resolved](cfg.CacheTTL, cache.WithLoadTimeout(cfg.ResolveTimeout)),
		))
	}

	resolver := usecase.NewResolutionService(table, rosters, pools, usecase.ResolutionConfig{
		ConfirmedThreshold: cfg.ConfirmedThreshold,
		AdapterTimeout:     cfg.AdapterTimeout,
		ResolveTimeout:     cfg.ResolveTimeout,
		Parallel:           cfg.ResolveParallel,
	}, logger, opts...)
	// One budget covers a whole matchday batch so it answers inside the write timeout.
	matchdaySvc := usecase.NewMatchdayService(resolver, cfg.MatchdayWorkers, logger, usecase.WithBatchBudget(cfg.ResolveTimeout))
	leagueSvc := usecase.NewLeagueService(table)
	rosterSvc := usecase.NewRosterService(rosters)

	routerOpts := httpapi.RouterOptions{
		CORSAllowedOrigins: cfg.CORSAllowedOrigins,
		SwaggerEnabled:     cfg.SwaggerEnabled,
		RequestIDs:         ids,
	}
	if cascadeMetrics != nil {
		routerOpts.Metrics = cascadeMetrics.Handler()
	}

	handler := httpapi.NewHandler(resolver, matchdaySvc, leagueSvc, rosterSvc, logger)
	router := httpapi.NewRouter(handler, logger, routerOpts)

	logger.Info("resolution pipeline ready",
		"roster_backend", cfg.RosterBackend,
		"parallel", cfg.ResolveParallel,
		"render_enabled", cfg.RenderEnabled,
		"sportmonks_enabled", cfg.SportMonksEnabled,
		"cache_enabled", cfg.CacheEnabled,
	)

	return &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}, cleanup, nil
}
