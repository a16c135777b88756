package scraper

import (
	"context"
	"regexp"

	"github.com/PuerkitoBio/goquery"
	"github.com/riskibarqy/matchday-intel/internal/domain/extraction"
	"github.com/riskibarqy/matchday-intel/internal/domain/fixture"
	"github.com/riskibarqy/matchday-intel/internal/platform/scrape"
	"github.com/riskibarqy/matchday-intel/internal/platform/textnorm"
)

const beSoccerID = "besoccer.com"

var (
	bsRefereeClass = regexp.MustCompile(`(?i)referee|arbitro|juez`)
	bsRefereeTag   = regexp.MustCompile(`(?i)(?:[áa]rbitro|referee):?\s*`)
)

// beSoccer guesses the match page from both club slugs.
type beSoccer struct {
	pages Pages
	base  string
}

func (s beSoccer) referee(ctx context.Context, f fixture.Fixture) extraction.Referee {
	matchURL := s.base + "/partido/" + textnorm.Slug(f.Home, "-") + "-" + textnorm.Slug(f.Away, "-")
	doc, err := s.pages.Document(ctx, matchURL)
	if err != nil {
		return extraction.FailedReferee(beSoccerID, err)
	}

	var name string
	innermost(byClass(doc.Selection, "*", bsRefereeClass)).EachWithBreak(func(_ int, el *goquery.Selection) bool {
		text := scrape.SpacedText(el)
		if plausibleName(text, 2, 4) {
			name = text
			return false
		}
		return true
	})
	if name == "" {
		name = labelledName(doc.Selection, bsRefereeTag)
	}
	if name == "" {
		return extraction.FailedReferee(beSoccerID, extraction.Insufficient("no referee on %s", matchURL))
	}
	return extraction.OKReferee(beSoccerID, matchURL, name)
}
