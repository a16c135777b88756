// Package sportmonks adapts the SportMonks fixtures feed to a lineup and
// referee source.
package sportmonks

import (
	"context"
	"strconv"
	"time"

	crerr "github.com/cockroachdb/errors"
	"github.com/riskibarqy/matchday-intel/external/sportmonks"
	"github.com/riskibarqy/matchday-intel/internal/domain/extraction"
	"github.com/riskibarqy/matchday-intel/internal/domain/fixture"
	"github.com/riskibarqy/matchday-intel/internal/platform/textnorm"
)

const sourceID = "sportmonks.com"

// Feed is the part of the SportMonks client the adapter reads.
type Feed interface {
	FixturesByDate(ctx context.Context, day time.Time) ([]sportmonks.Fixture, error)
}

type Adapter struct {
	feed Feed
}

func NewAdapter(feed Feed) *Adapter {
	return &Adapter{feed: feed}
}

func (a *Adapter) Name() string {
	return "sportmonks"
}

func (a *Adapter) FetchLineup(ctx context.Context, f fixture.Fixture) extraction.Lineup {
	match, err := a.find(ctx, f)
	if err != nil {
		return extraction.FailedLineup(sourceID, err)
	}

	home, _ := match.Side("home")
	away, _ := match.Side("away")
	homeNames := match.Starters(home.ID)
	awayNames := match.Starters(away.ID)
	if len(homeNames) == 0 && len(awayNames) == 0 {
		return extraction.FailedLineup(sourceID, extraction.Insufficient("fixture %d has no starting lineups yet", match.ID))
	}
	return extraction.OKLineup(sourceID, fixtureRef(match), homeNames, awayNames, nil)
}

func (a *Adapter) FetchReferee(ctx context.Context, f fixture.Fixture) extraction.Referee {
	match, err := a.find(ctx, f)
	if err != nil {
		return extraction.FailedReferee(sourceID, err)
	}

	ref, ok := match.MainReferee()
	if !ok {
		return extraction.FailedReferee(sourceID, extraction.Insufficient("fixture %d has no referee yet", match.ID))
	}
	return extraction.OKReferee(sourceID, fixtureRef(match), ref.BestName())
}

func (a *Adapter) find(ctx context.Context, f fixture.Fixture) (sportmonks.Fixture, error) {
	if f.Date.IsZero() {
		return sportmonks.Fixture{}, extraction.Insufficient("fixture date is required")
	}

	fixtures, err := a.feed.FixturesByDate(ctx, f.Date)
	if err != nil {
		return sportmonks.Fixture{}, classify(err)
	}

	for _, candidate := range fixtures {
		home, okHome := candidate.Side("home")
		away, okAway := candidate.Side("away")
		if okHome && okAway && sameTeam(home.Name, f.Home) && sameTeam(away.Name, f.Away) {
			return candidate, nil
		}
	}
	return sportmonks.Fixture{}, extraction.NoMatch("no sportmonks fixture for %s", f.String())
}

func classify(err error) error {
	if crerr.Is(err, sportmonks.ErrDecode) {
		return crerr.Mark(err, extraction.ErrStructureChanged)
	}
	return extraction.Unreachable(err, "sportmonks fixtures")
}

// sameTeam accepts equal folded names or one name's words containing all of
// the other's ("Celta" and "RC Celta de Vigo").
func sameTeam(provider, wanted string) bool {
	a, b := textnorm.TokenSet(provider), textnorm.TokenSet(wanted)
	if len(a) == 0 || len(b) == 0 {
		return false
	}
	return subset(a, b) || subset(b, a)
}

func subset(small, big map[string]struct{}) bool {
	for k := range small {
		if _, ok := big[k]; !ok {
			return false
		}
	}
	return true
}

func fixtureRef(f sportmonks.Fixture) string {
	return "sportmonks:fixture:" + strconv.FormatInt(f.ID, 10)
}
