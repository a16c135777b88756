package scraper

import (
	"context"

	"github.com/riskibarqy/matchday-intel/internal/domain/extraction"
	"github.com/riskibarqy/matchday-intel/internal/domain/fixture"
	"github.com/riskibarqy/matchday-intel/internal/platform/scrape"
)

// designations reads a federation's published referee appointments. The
// pages are prose or loosely structured tables, so the name is taken from the
// text window that follows the two club names.
type designations struct {
	pages      Pages
	id         string
	urls       []string
	gap, tail  int
	javaScript bool
}

func (s designations) referee(ctx context.Context, f fixture.Fixture) extraction.Referee {
	home, away := keywords(f.Home), keywords(f.Away)
	var lastErr error
	for _, u := range s.urls {
		var opts []scrape.Option
		if s.javaScript {
			opts = append(opts, scrape.WithJavaScript())
		}
		doc, err := s.pages.Document(ctx, u, opts...)
		if err != nil {
			lastErr = err
			continue
		}
		if name := designation(scrape.VisibleText(doc), home, away, s.gap, s.tail); name != "" {
			return extraction.OKReferee(s.id, u, name)
		}
		lastErr = extraction.NoMatch("%s not found in designations on %s", f, u)
	}
	if lastErr == nil {
		lastErr = extraction.NoMatch("no designation pages configured")
	}
	return extraction.FailedReferee(s.id, lastErr)
}
