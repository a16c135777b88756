package querybuilder

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSelectBuilder(t *testing.T) {
	query, args, err := Select("name", "position").
		From("roster_players").
		Where(Eq("team_key", "celta vigo"), IsNull("deleted_at"), In("position", []string{"GK", "DEF"})).
		OrderBy("sort_order", "name").
		Limit(30).
		ToSQL()
	require.NoError(t, err)

	assert.Equal(t,
		"SELECT name, position FROM roster_players WHERE team_key = $1 AND deleted_at IS NULL AND position IN ($2, $3) ORDER BY sort_order, name LIMIT 30",
		query)
	assert.Equal(t, []any{"celta vigo", "GK", "DEF"}, args)
}

func TestSelectBuilder_EmptyIn(t *testing.T) {
	query, args, err := Select("name").From("roster_teams").Where(In[string]("league", nil)).ToSQL()
	require.NoError(t, err)
	assert.Equal(t, "SELECT name FROM roster_teams WHERE 1=0", query)
	assert.Empty(t, args)
}

func TestSelectBuilder_Validation(t *testing.T) {
	_, _, err := Select().From("t").ToSQL()
	assert.Error(t, err)
	_, _, err = Select("a").ToSQL()
	assert.Error(t, err)
}

type teamRow struct {
	Key     string `db:"team_key"`
	Name    string `db:"name"`
	League  string `db:"league,omitempty"`
	skipped string
	Ignored string `db:"-"`
}

func TestInsertBuilder_ModelsUpsert(t *testing.T) {
	query, args, err := InsertInto("roster_teams").
		Model(teamRow{Key: "celta vigo", Name: "Celta Vigo", League: "LALIGA", skipped: "x"}).
		Model(&teamRow{Key: "villarreal", Name: "Villarreal", League: "LALIGA"}).
		OnConflict([]string{"team_key"}, "name", "league").
		ToSQL()
	require.NoError(t, err)

	assert.Equal(t,
		"INSERT INTO roster_teams (team_key, name, league) VALUES ($1, $2, $3), ($4, $5, $6) ON CONFLICT (team_key) DO UPDATE SET name = EXCLUDED.name, league = EXCLUDED.league",
		query)
	assert.Equal(t, []any{"celta vigo", "Celta Vigo", "LALIGA", "villarreal", "Villarreal", "LALIGA"}, args)
}

func TestInsertBuilder_DoNothing(t *testing.T) {
	query, _, err := InsertInto("roster_aliases").
		Columns("team_key", "alias").
		Values("celta vigo", "celta").
		OnConflict([]string{"team_key", "alias"}).
		ToSQL()
	require.NoError(t, err)
	assert.Equal(t, "INSERT INTO roster_aliases (team_key, alias) VALUES ($1, $2) ON CONFLICT (team_key, alias) DO NOTHING", query)
}

func TestInsertBuilder_Errors(t *testing.T) {
	_, _, err := InsertInto("t").Columns("a", "b").Values(1).ToSQL()
	assert.ErrorContains(t, err, "insert row 0 has 1 values")

	_, _, err = InsertInto("t").Model(42).ToSQL()
	assert.ErrorContains(t, err, "model must be struct")

	var nilRow *teamRow
	_, _, err = InsertInto("t").Model(nilRow).ToSQL()
	assert.ErrorContains(t, err, "model cannot be nil")
}

func TestDeleteBuilder(t *testing.T) {
	query, args, err := DeleteFrom("roster_players").Where(Eq("team_key", "celta vigo")).ToSQL()
	require.NoError(t, err)
	assert.Equal(t, "DELETE FROM roster_players WHERE team_key = $1", query)
	assert.Equal(t, []any{"celta vigo"}, args)

	_, _, err = DeleteFrom("roster_players").ToSQL()
	assert.Error(t, err)
}
