package lineup

import (
	"testing"

	"github.com/riskibarqy/matchday-intel/internal/domain/roster"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func celtaRoster() []roster.Player {
	names := []string{"Guaita", "Mingueza", "Starfelt", "Marcos Alonso", "Hugo Álvarez", "Fran Beltrán", "Hugo Sotelo", "Jonathan Bamba", "Williot Swedberg", "Iago Aspas", "Borja Iglesias"}
	out := make([]roster.Player, 0, len(names))
	for i, n := range names {
		out = append(out, roster.Player{ID: "celta-" + string(rune('a'+i)), Name: n, Team: "Celta de Vigo"})
	}
	return out
}

func TestResolve_FuzzyMatches(t *testing.T) {
	t.Parallel()

	got := Resolve([]string{"Aspas", "B. Iglesias", "Alvarez Hugo", "MINGUEZA"}, celtaRoster())
	require.Len(t, got, 4)

	assert.Equal(t, "Iago Aspas", got[0].Name)
	assert.True(t, got[0].Matched)
	assert.Equal(t, "Aspas", got[0].Raw)
	assert.Equal(t, "Borja Iglesias", got[1].Name)
	assert.Equal(t, "Hugo Álvarez", got[2].Name)
	assert.Equal(t, "Mingueza", got[3].Name)
}

func TestResolve_KeepsUnmatchedVerbatim(t *testing.T) {
	t.Parallel()

	got := Resolve([]string{"Zzyxw Qqrst"}, celtaRoster())
	require.Len(t, got, 1)
	assert.Equal(t, "Zzyxw Qqrst", got[0].Name)
	assert.False(t, got[0].Matched)
	assert.Empty(t, got[0].PlayerID)
}

func TestResolve_FirstRosterEntryWinsOnSharedToken(t *testing.T) {
	t.Parallel()

	// "Hugo" overlaps both Hugo Álvarez and Hugo Sotelo; roster order decides.
	got := Resolve([]string{"Hugo"}, celtaRoster())
	require.Len(t, got, 1)
	assert.Equal(t, "Hugo Álvarez", got[0].Name)
}

func TestResolve_Deduplicates(t *testing.T) {
	t.Parallel()

	got := Resolve([]string{"Aspas", "Iago Aspas", "iago  aspas", "", "Nuevo Fichaje", "nuevo fichaje"}, celtaRoster())
	assert.Equal(t, []string{"Iago Aspas", "Nuevo Fichaje"}, Names(got))
}

func TestResolve_EmptyRoster(t *testing.T) {
	t.Parallel()

	got := Resolve([]string{"Aspas"}, nil)
	require.Len(t, got, 1)
	assert.False(t, got[0].Matched)
}

func TestDisjoin(t *testing.T) {
	t.Parallel()

	home := []Entry{{Name: "Iago Aspas"}, {Name: "Guaita"}}
	away := []Entry{{Name: "iago aspas"}, {Name: "Gerard Moreno"}}

	assert.Equal(t, []string{"Gerard Moreno"}, Names(Disjoin(home, away)))
}
