package roster

import (
	"testing"

	"github.com/riskibarqy/matchday-intel/internal/domain/league"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testTeams() []Team {
	return []Team{
		{Name: "Celta de Vigo", League: league.LaLiga, Aliases: []string{"RC Celta", "Celta"}},
		{Name: "Villarreal", League: league.LaLiga},
		{Name: "Manchester City", League: league.PremierLeague, Aliases: []string{"Man City"}},
		{Name: "Manchester United", League: league.PremierLeague, Aliases: []string{"Man Utd"}},
	}
}

func TestMatchTeam(t *testing.T) {
	t.Parallel()

	cases := map[string]string{
		"celta de vigo":     "Celta de Vigo",
		"RC Celta":          "Celta de Vigo",
		"Celta Vigo":        "Celta de Vigo",
		"Villareal":         "Villarreal",
		"Man City":          "Manchester City",
		"manchester united": "Manchester United",
	}
	for input, want := range cases {
		got, ok := MatchTeam(input, testTeams())
		require.True(t, ok, input)
		assert.Equal(t, want, got.Name, input)
	}
}

func TestMatchTeam_Unknown(t *testing.T) {
	t.Parallel()

	_, ok := MatchTeam("Deportivo Galáctico", testTeams())
	assert.False(t, ok)

	_, ok = MatchTeam("  ", testTeams())
	assert.False(t, ok)
}

func TestParsePosition(t *testing.T) {
	t.Parallel()

	assert.Equal(t, PositionGoalkeeper, ParsePosition("Portero"))
	assert.Equal(t, PositionForward, ParsePosition("FWD"))
	assert.Equal(t, PositionUnknown, ParsePosition("libero"))
}
