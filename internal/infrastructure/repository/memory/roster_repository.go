package memory

import (
	"context"
	"slices"
	"sync"

	"github.com/riskibarqy/matchday-intel/internal/domain/roster"
	"github.com/riskibarqy/matchday-intel/internal/platform/textnorm"
)

// RosterRepository keeps canonical teams, players and last known lineups in
// memory. Team lookups ignore case and accents.
type RosterRepository struct {
	mu        sync.RWMutex
	teams     []roster.Team
	players   map[string][]roster.Player
	lastKnown map[string][]string
}

func NewRosterRepository(teams []roster.Team, players []roster.Player, lastKnown map[string][]string) *RosterRepository {
	r := &RosterRepository{
		players:   make(map[string][]roster.Player),
		lastKnown: make(map[string][]string),
	}
	ctx := context.Background()
	_ = r.UpsertTeams(ctx, teams)
	_ = r.UpsertPlayers(ctx, players)
	for team, names := range lastKnown {
		_ = r.SaveLastKnownLineup(ctx, team, names)
	}
	return r
}

// NewSeededRosterRepository returns a repository loaded with the built-in
// sample rosters.
func NewSeededRosterRepository() *RosterRepository {
	return NewRosterRepository(SeedTeams(), SeedPlayers(), SeedLastKnownLineups())
}

func (r *RosterRepository) Teams(_ context.Context) ([]roster.Team, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return slices.Clone(r.teams), nil
}

func (r *RosterRepository) Roster(_ context.Context, team string) ([]roster.Player, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return slices.Clone(r.players[textnorm.Key(team)]), nil
}

func (r *RosterRepository) LastKnownLineup(_ context.Context, team string) ([]string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return slices.Clone(r.lastKnown[textnorm.Key(team)]), nil
}

func (r *RosterRepository) UpsertTeams(_ context.Context, teams []roster.Team) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, t := range teams {
		key := textnorm.Key(t.Name)
		idx := slices.IndexFunc(r.teams, func(existing roster.Team) bool {
			return textnorm.Key(existing.Name) == key
		})
		if idx >= 0 {
			r.teams[idx] = t
			continue
		}
		r.teams = append(r.teams, t)
	}
	return nil
}

func (r *RosterRepository) UpsertPlayers(_ context.Context, players []roster.Player) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, p := range players {
		if err := p.Validate(); err != nil {
			return err
		}
		key := textnorm.Key(p.Team)
		current := r.players[key]
		idx := slices.IndexFunc(current, func(existing roster.Player) bool { return existing.ID == p.ID })
		if idx >= 0 {
			current[idx] = p
			continue
		}
		r.players[key] = append(current, p)
	}
	return nil
}

func (r *RosterRepository) SaveLastKnownLineup(_ context.Context, team string, names []string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.lastKnown[textnorm.Key(team)] = slices.Clone(names)
	return nil
}
