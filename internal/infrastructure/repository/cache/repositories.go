package cache

import (
	"context"
	"slices"

	"github.com/riskibarqy/matchday-intel/internal/domain/roster"
	basecache "github.com/riskibarqy/matchday-intel/internal/platform/cache"
	"github.com/riskibarqy/matchday-intel/internal/platform/textnorm"
)

// RosterRepository caches reads of the next repository. Writes go through
// and drop the cached entries of the teams they touch.
type RosterRepository struct {
	next      roster.Repository
	teams     *basecache.Store[[]roster.Team]
	players   *basecache.Store[[]roster.Player]
	lastKnown *basecache.Store[[]string]
}

func NewRosterRepository(next roster.Repository, teams *basecache.Store[[]roster.Team], players *basecache.Store[[]roster.Player], lastKnown *basecache.Store[[]string]) *RosterRepository {
	return &RosterRepository{next: next, teams: teams, players: players, lastKnown: lastKnown}
}

func (r *RosterRepository) Teams(ctx context.Context) ([]roster.Team, error) {
	items, err := r.teams.GetOrLoad(ctx, "roster:teams", func(ctx context.Context) ([]roster.Team, bool, error) {
		items, err := r.next.Teams(ctx)
		if err != nil {
			return nil, false, err
		}
		return slices.Clone(items), true, nil
	})
	if err != nil {
		return nil, err
	}
	return slices.Clone(items), nil
}

func (r *RosterRepository) Roster(ctx context.Context, team string) ([]roster.Player, error) {
	key := "roster:players:" + textnorm.Key(team)
	items, err := r.players.GetOrLoad(ctx, key, func(ctx context.Context) ([]roster.Player, bool, error) {
		items, err := r.next.Roster(ctx, team)
		if err != nil {
			return nil, false, err
		}
		return slices.Clone(items), true, nil
	})
	if err != nil {
		return nil, err
	}
	return slices.Clone(items), nil
}

func (r *RosterRepository) LastKnownLineup(ctx context.Context, team string) ([]string, error) {
	key := "roster:last_known:" + textnorm.Key(team)
	items, err := r.lastKnown.GetOrLoad(ctx, key, func(ctx context.Context) ([]string, bool, error) {
		items, err := r.next.LastKnownLineup(ctx, team)
		if err != nil {
			return nil, false, err
		}
		return slices.Clone(items), true, nil
	})
	if err != nil {
		return nil, err
	}
	return slices.Clone(items), nil
}

// Invalidate drops every cached entry, e.g. after an import.
func (r *RosterRepository) Invalidate(ctx context.Context) {
	r.teams.DeletePrefix(ctx, "roster:")
	r.players.DeletePrefix(ctx, "roster:")
	r.lastKnown.DeletePrefix(ctx, "roster:")
}
