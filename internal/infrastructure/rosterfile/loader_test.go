package rosterfile

import (
	"testing"

	"github.com/riskibarqy/matchday-intel/internal/domain/league"
	"github.com/riskibarqy/matchday-intel/internal/domain/referee"
	"github.com/riskibarqy/matchday-intel/internal/domain/roster"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadRoster(t *testing.T) {
	t.Parallel()

	doc, err := LoadRoster("testdata/roster.yaml")
	require.NoError(t, err)

	teams := doc.RosterTeams()
	require.Len(t, teams, 2)
	assert.Equal(t, league.LaLiga, teams[0].League)
	assert.Equal(t, []string{"RC Celta", "Celta"}, teams[0].Aliases)

	players := doc.RosterPlayers()
	require.Len(t, players, 4)
	assert.Equal(t, roster.Player{ID: "cel-guaita", Name: "Vicente Guaita", Team: "Celta de Vigo", Position: roster.PositionGoalkeeper}, players[1])
	assert.Equal(t, roster.PositionUnknown, players[2].Position)

	lastKnown := doc.LastKnownLineups()
	assert.Equal(t, []string{"Vicente Guaita", "Iago Aspas"}, lastKnown["Celta de Vigo"])
	assert.NotContains(t, lastKnown, "Villarreal")
}

func TestParseRoster_Validation(t *testing.T) {
	t.Parallel()

	cases := map[string]string{
		"no teams":        `teams: []`,
		"nameless team":   "teams:\n  - league: la liga\n",
		"player id":       "teams:\n  - name: Celta\n    players:\n      - {name: Iago Aspas}\n",
		"bad position":    "teams:\n  - name: Celta\n    players:\n      - {id: a, name: Iago Aspas, position: striker}\n",
		"lineup too long": "teams:\n  - name: Celta\n    last_known_lineup: [a, b, c, d, e, f, g, h, i, j, k, l]\n",
		"broken yaml":     "teams: [",
	}
	for name, raw := range cases {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			_, err := ParseRoster([]byte(raw))
			assert.Error(t, err)
		})
	}
}

func TestParsePools(t *testing.T) {
	t.Parallel()

	pools, err := ParsePools([]byte(`
pools:
  "La Liga (España)":
    - {name: Mateo Busquets Ferrer, avg_cards: 4.4, strictness: low}
  Premier League:
    - {name: Michael Oliver, avg_cards: 4.9, strictness: HIGH}
    - {name: Sam Barrott, avg_cards: 4.0}
`))
	require.NoError(t, err)

	laliga := pools[league.LaLiga]
	require.Len(t, laliga.Entries, 1)
	assert.Equal(t, referee.StrictnessLow, laliga.Entries[0].Strictness)

	premier := pools[league.PremierLeague]
	require.Len(t, premier.Entries, 2)
	assert.Equal(t, referee.StrictnessMedium, premier.Entries[1].Strictness)

	merged := referee.DefaultPools().Merge(pools)
	assert.Len(t, merged[league.PremierLeague].Entries, 2)
	assert.NotEmpty(t, merged[league.SerieA].Entries)
}

func TestParsePools_RejectsInvalidEntries(t *testing.T) {
	t.Parallel()

	_, err := ParsePools([]byte("pools:\n  La Liga:\n    - {name: Nobody, avg_cards: 0}\n"))
	assert.Error(t, err)

	_, err = ParsePools([]byte("pools:\n  La Liga: []\n"))
	assert.Error(t, err)
}

func TestLoadRoster_MissingFile(t *testing.T) {
	t.Parallel()

	_, err := LoadRoster("testdata/does-not-exist.yaml")
	assert.Error(t, err)
}
