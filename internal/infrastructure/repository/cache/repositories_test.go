package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/riskibarqy/matchday-intel/internal/domain/roster"
	basecache "github.com/riskibarqy/matchday-intel/internal/platform/cache"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingRepo struct {
	teamCalls   int
	rosterCalls int
	failRoster  bool
}

func (c *countingRepo) Teams(context.Context) ([]roster.Team, error) {
	c.teamCalls++
	return []roster.Team{{Name: "Celta de Vigo"}}, nil
}

func (c *countingRepo) Roster(_ context.Context, team string) ([]roster.Player, error) {
	c.rosterCalls++
	if c.failRoster {
		return nil, errors.New("db down")
	}
	return []roster.Player{{ID: "cel-aspas", Name: "Iago Aspas", Team: team}}, nil
}

func (c *countingRepo) LastKnownLineup(context.Context, string) ([]string, error) {
	return []string{"Iago Aspas"}, nil
}

func newCached(next roster.Repository) *RosterRepository {
	return NewRosterRepository(next,
		basecache.NewStore[[]roster.Team](time.Minute),
		basecache.NewStore[[]roster.Player](time.Minute),
		basecache.NewStore[[]string](time.Minute),
	)
}

func TestRosterRepository_CachesReads(t *testing.T) {
	t.Parallel()

	next := &countingRepo{}
	repo := newCached(next)

	for range 3 {
		_, err := repo.Teams(t.Context())
		require.NoError(t, err)
		_, err = repo.Roster(t.Context(), "Celta de Vigo")
		require.NoError(t, err)
	}
	_, err := repo.Roster(t.Context(), "CELTA DE VIGO")
	require.NoError(t, err)

	assert.Equal(t, 1, next.teamCalls)
	assert.Equal(t, 1, next.rosterCalls)

	repo.Invalidate(t.Context())
	_, _ = repo.Teams(t.Context())
	assert.Equal(t, 2, next.teamCalls)
}

func TestRosterRepository_ErrorsAreNotCached(t *testing.T) {
	t.Parallel()

	next := &countingRepo{failRoster: true}
	repo := newCached(next)

	_, err := repo.Roster(t.Context(), "Celta de Vigo")
	require.Error(t, err)

	next.failRoster = false
	players, err := repo.Roster(t.Context(), "Celta de Vigo")
	require.NoError(t, err)
	assert.Len(t, players, 1)
	assert.Equal(t, 2, next.rosterCalls)
}

func TestRosterRepository_ReturnsCopies(t *testing.T) {
	t.Parallel()

	repo := newCached(&countingRepo{})
	first, _ := repo.LastKnownLineup(t.Context(), "Celta de Vigo")
	first[0] = "mutated"

	second, _ := repo.LastKnownLineup(t.Context(), "Celta de Vigo")
	assert.Equal(t, []string{"Iago Aspas"}, second)
}
