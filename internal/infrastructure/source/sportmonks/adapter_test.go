package sportmonks

import (
	"context"
	"testing"
	"time"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"github.com/riskibarqy/matchday-intel/external/sportmonks"
	"github.com/riskibarqy/matchday-intel/internal/domain/extraction"
	"github.com/riskibarqy/matchday-intel/internal/domain/fixture"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type feedFunc func(ctx context.Context, day time.Time) ([]sportmonks.Fixture, error)

func (f feedFunc) FixturesByDate(ctx context.Context, day time.Time) ([]sportmonks.Fixture, error) {
	return f(ctx, day)
}

func staticFeed(fixtures ...sportmonks.Fixture) Feed {
	return feedFunc(func(context.Context, time.Time) ([]sportmonks.Fixture, error) {
		return fixtures, nil
	})
}

func decodeFixture(t *testing.T, raw string) sportmonks.Fixture {
	t.Helper()
	var f sportmonks.Fixture
	require.NoError(t, sonic.Unmarshal([]byte(raw), &f))
	return f
}

var day = time.Date(2025, 3, 9, 0, 0, 0, 0, time.UTC)

const celtaVillarreal = `{
  "id": 77,
  "participants": [
    {"id": 36, "name": "RC Celta de Vigo", "meta": {"location": "home"}},
    {"id": 58, "name": "Villarreal CF", "meta": {"location": "away"}}
  ],
  "lineups": [
    {"team_id": 36, "type_id": 11, "player_name": "Iago Aspas"},
    {"team_id": 36, "type_id": 11, "player_name": "Borja Iglesias"},
    {"team_id": 36, "type_id": 12, "player_name": "Hugo Sotelo"},
    {"team_id": 58, "type_id": 11, "player_name": "Gerard Moreno"}
  ],
  "referees": [
    {"type_id": 6, "referee": {"data": {"name": "Juan Martínez Munuera"}}}
  ]
}`

func TestFetchLineup_SplitsStartersByTeam(t *testing.T) {
	t.Parallel()

	a := NewAdapter(staticFeed(decodeFixture(t, celtaVillarreal)))
	got := a.FetchLineup(t.Context(), fixture.New("Celta", "Villarreal", day, "LaLiga"))

	require.True(t, got.Sufficient())
	assert.Equal(t, []string{"Iago Aspas", "Borja Iglesias"}, got.HomeNames)
	assert.Equal(t, []string{"Gerard Moreno"}, got.AwayNames)
	assert.Equal(t, "sportmonks.com", got.SourceID)
	assert.Equal(t, "sportmonks:fixture:77", got.VerificationRef)
}

func TestFetchReferee_PicksMainOfficial(t *testing.T) {
	t.Parallel()

	a := NewAdapter(staticFeed(decodeFixture(t, celtaVillarreal)))
	got := a.FetchReferee(t.Context(), fixture.New("Celta de Vigo", "Villarreal", day, "LaLiga"))

	require.True(t, got.Sufficient())
	assert.Equal(t, "Juan Martínez Munuera", got.Name)
}

func TestFetch_NoMatchingFixture(t *testing.T) {
	t.Parallel()

	a := NewAdapter(staticFeed(decodeFixture(t, celtaVillarreal)))
	f := fixture.New("Villarreal", "Celta", day, "LaLiga")

	assert.Equal(t, extraction.OutcomeNoMatchFound, a.FetchLineup(t.Context(), f).Outcome)
	assert.Equal(t, extraction.OutcomeNoMatchFound, a.FetchReferee(t.Context(), f).Outcome)
}

func TestFetchLineup_NoStartersYet(t *testing.T) {
	t.Parallel()

	a := NewAdapter(staticFeed(decodeFixture(t, `{
	  "id": 5,
	  "participants": [
	    {"id": 1, "name": "Arsenal", "meta": {"location": "home"}},
	    {"id": 2, "name": "Chelsea", "meta": {"location": "away"}}
	  ]
	}`)))
	f := fixture.New("Arsenal", "Chelsea", day, "Premier League")

	assert.Equal(t, extraction.OutcomeInsufficientData, a.FetchLineup(t.Context(), f).Outcome)
	assert.Equal(t, extraction.OutcomeInsufficientData, a.FetchReferee(t.Context(), f).Outcome)
}

func TestFetch_ClassifiesFeedErrors(t *testing.T) {
	t.Parallel()

	f := fixture.New("Arsenal", "Chelsea", day, "Premier League")

	down := NewAdapter(feedFunc(func(context.Context, time.Time) ([]sportmonks.Fixture, error) {
		return nil, crerr.New("dial tcp: connection refused")
	}))
	assert.Equal(t, extraction.OutcomeSourceUnreachable, down.FetchLineup(t.Context(), f).Outcome)

	changed := NewAdapter(feedFunc(func(context.Context, time.Time) ([]sportmonks.Fixture, error) {
		return nil, crerr.Mark(crerr.New("unexpected payload"), sportmonks.ErrDecode)
	}))
	assert.Equal(t, extraction.OutcomeStructureChanged, changed.FetchReferee(t.Context(), f).Outcome)
}

func TestFetch_RequiresDate(t *testing.T) {
	t.Parallel()

	a := NewAdapter(staticFeed())
	got := a.FetchLineup(t.Context(), fixture.New("Arsenal", "Chelsea", time.Time{}, "Premier League"))
	assert.Equal(t, extraction.OutcomeInsufficientData, got.Outcome)
}
