// Package scraper holds the web source adapters, one per league. Each adapter
// walks its own ordered list of public pages and stops at the first one that
// yields a usable extraction.
package scraper

import (
	"context"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/riskibarqy/matchday-intel/internal/domain/extraction"
	"github.com/riskibarqy/matchday-intel/internal/domain/fixture"
	"github.com/riskibarqy/matchday-intel/internal/platform/logging"
	"github.com/riskibarqy/matchday-intel/internal/platform/scrape"
)

// Pages is the subset of scrape.Fetcher the adapters need.
type Pages interface {
	Document(ctx context.Context, url string, opts ...scrape.Option) (*goquery.Document, error)
}

type step[T any] struct {
	source string
	run    func(ctx context.Context, f fixture.Fixture) T
}

type Adapter struct {
	name     string
	lineups  []step[extraction.Lineup]
	referees []step[extraction.Referee]
	logger   *logging.Logger
}

func (a *Adapter) Name() string {
	return a.name
}

// Sources lists the physical sources per kind in the order they are tried.
func (a *Adapter) Sources() (lineups, referees []string) {
	for _, s := range a.lineups {
		lineups = append(lineups, s.source)
	}
	for _, s := range a.referees {
		referees = append(referees, s.source)
	}
	return lineups, referees
}

func (a *Adapter) FetchLineup(ctx context.Context, f fixture.Fixture) extraction.Lineup {
	if len(a.lineups) == 0 {
		return extraction.FailedLineup(a.name, extraction.NoMatch("unsupported league %s", f.League))
	}
	return cascade(ctx, a, "lineup", f, a.lineups, extraction.FailedLineup)
}

func (a *Adapter) FetchReferee(ctx context.Context, f fixture.Fixture) extraction.Referee {
	if len(a.referees) == 0 {
		return extraction.FailedReferee(a.name, extraction.Insufficient("no referee source for league %s", f.League))
	}
	return cascade(ctx, a, "referee", f, a.referees, extraction.FailedReferee)
}

type sufficient interface {
	Sufficient() bool
}

func cascade[T sufficient](
	ctx context.Context,
	a *Adapter,
	kind string,
	f fixture.Fixture,
	steps []step[T],
	failed func(string, error) T,
) T {
	var result T
	for i, s := range steps {
		if err := ctx.Err(); err != nil {
			if i == 0 {
				return failed(s.source, extraction.Unreachable(err, "%s lookup not started", kind))
			}
			return result
		}

		started := time.Now()
		result = s.run(ctx, f)
		a.logger.DebugContext(ctx, "scraper source finished",
			"adapter", a.name,
			"kind", kind,
			"source", s.source,
			"fixture", f.String(),
			"sufficient", result.Sufficient(),
			"latency_ms", time.Since(started).Milliseconds(),
		)
		if result.Sufficient() {
			return result
		}
	}
	return result
}
