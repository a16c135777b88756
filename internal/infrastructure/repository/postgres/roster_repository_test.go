package postgres

import (
	"testing"
	"time"

	"github.com/lib/pq"
	"github.com/riskibarqy/matchday-intel/internal/domain/league"
	"github.com/riskibarqy/matchday-intel/internal/domain/roster"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)

func TestUpsertTeamsQuery(t *testing.T) {
	t.Parallel()

	query, args, err := upsertTeamsQuery([]roster.Team{
		{Name: "Atlético de Madrid", League: league.LaLiga, Aliases: []string{"Atleti"}},
		{Name: "Villarreal", League: league.LaLiga},
	}, fixedNow)
	require.NoError(t, err)

	assert.Equal(t,
		"INSERT INTO roster_teams (team_key, name, league, aliases, updated_at) VALUES ($1, $2, $3, $4, $5), ($6, $7, $8, $9, $10)"+
			" ON CONFLICT (team_key) DO UPDATE SET name = EXCLUDED.name, league = EXCLUDED.league, aliases = EXCLUDED.aliases, updated_at = EXCLUDED.updated_at",
		query)
	require.Len(t, args, 10)
	assert.Equal(t, "atletico de madrid", args[0])
	assert.Equal(t, pq.StringArray{"Atleti"}, args[3])
	assert.Equal(t, pq.StringArray{}, args[8])
}

func TestUpsertPlayersQuery(t *testing.T) {
	t.Parallel()

	query, args, err := upsertPlayersQuery([]roster.Player{
		{ID: "cel-aspas", Name: "Iago Aspas", Team: "Celta de Vigo", Position: roster.PositionForward},
	}, fixedNow)
	require.NoError(t, err)

	assert.Contains(t, query, "INSERT INTO roster_players (public_id, team_key, name, position, updated_at)")
	assert.Contains(t, query, "ON CONFLICT (public_id) DO UPDATE SET")
	assert.Equal(t, []any{"cel-aspas", "celta de vigo", "Iago Aspas", "FWD", fixedNow}, args)
}

func TestUpsertPlayersQuery_RejectsInvalidPlayer(t *testing.T) {
	t.Parallel()

	_, _, err := upsertPlayersQuery([]roster.Player{{ID: "nameless", Team: "Celta de Vigo"}}, fixedNow)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "nameless")
}
