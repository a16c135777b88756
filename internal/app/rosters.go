package app

import (
	"context"
	"fmt"

	"github.com/riskibarqy/matchday-intel/internal/config"
	"github.com/riskibarqy/matchday-intel/internal/domain/referee"
	"github.com/riskibarqy/matchday-intel/internal/domain/roster"
	rostercache "github.com/riskibarqy/matchday-intel/internal/infrastructure/repository/cache"
	"github.com/riskibarqy/matchday-intel/internal/infrastructure/repository/memory"
	"github.com/riskibarqy/matchday-intel/internal/infrastructure/repository/postgres"
	"github.com/riskibarqy/matchday-intel/internal/infrastructure/rosterfile"
	"github.com/riskibarqy/matchday-intel/internal/platform/cache"
	"github.com/riskibarqy/matchday-intel/internal/platform/database"
	"github.com/riskibarqy/matchday-intel/internal/platform/logging"
)

func newRosterRepository(ctx context.Context, cfg config.Config, logger *logging.Logger) (roster.Repository, func(), error) {
	switch cfg.RosterBackend {
	case config.RosterBackendPostgres:
		db, err := database.Open(ctx, database.Config{
			URL:                         cfg.DBURL,
			DisablePreparedBinaryResult: cfg.DBDisablePreparedBinary,
			ServiceName:                 cfg.ServiceName,
		})
		if err != nil {
			return nil, nil, err
		}
		repo := rostercache.NewRosterRepository(
			postgres.NewRosterRepository(db),
			cache.NewStore[[]roster.Team](cfg.CacheTTL),
			cache.NewStore[[]roster.Player](cfg.CacheTTL),
			cache.NewStore[[]string](cfg.CacheTTL),
		)
		closeDB := func() {
			if err := db.Close(); err != nil {
				logger.Warn("close database failed", "error", err)
			}
		}
		return repo, closeDB, nil
	default:
		if cfg.RosterFile == "" {
			return memory.NewSeededRosterRepository(), func() {}, nil
		}
		doc, err := rosterfile.LoadRoster(cfg.RosterFile)
		if err != nil {
			return nil, nil, fmt.Errorf("load roster file: %w", err)
		}
		return memory.NewRosterRepository(doc.RosterTeams(), doc.RosterPlayers(), doc.LastKnownLineups()), func() {}, nil
	}
}

// loadRefereePools overlays the optional pools file on the built-in pools.
func loadRefereePools(cfg config.Config) (referee.Pools, error) {
	pools := referee.DefaultPools()
	if cfg.RefereePoolsFile == "" {
		return pools, nil
	}
	overrides, err := rosterfile.LoadPools(cfg.RefereePoolsFile)
	if err != nil {
		return nil, fmt.Errorf("load referee pools: %w", err)
	}
	return pools.Merge(overrides), nil
}
