package scraper

import (
	"context"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/riskibarqy/matchday-intel/internal/domain/extraction"
	"github.com/riskibarqy/matchday-intel/internal/domain/fixture"
	"github.com/riskibarqy/matchday-intel/internal/platform/scrape"
)

const kickerID = "kicker.de"

var kickerRefereeTag = regexp.MustCompile(`Schiedsrichter:?\s*`)

// kickerReferee follows the match analysis link from the lineups hub and
// reads the "Schiedsrichter" line.
type kickerReferee struct {
	pages Pages
	base  string
}

func (s kickerReferee) referee(ctx context.Context, f fixture.Fixture) extraction.Referee {
	listURL := s.base + "/bundesliga/aufstellungen"
	doc, err := s.pages.Document(ctx, listURL, scrape.WithJavaScript())
	if err != nil {
		return extraction.FailedReferee(kickerID, err)
	}

	home, away := keywords(f.Home), keywords(f.Away)
	href := linkWhere(doc.Selection, func(href string, _ *goquery.Selection) bool {
		lower := strings.ToLower(href)
		return (strings.Contains(lower, "analyse") || strings.Contains(lower, "direkt")) && mentionsBoth(href, home, away)
	})
	if href == "" {
		return extraction.FailedReferee(kickerID, extraction.NoMatch("%s not listed on %s", f, listURL))
	}

	matchURL := absURL(s.base, href)
	page, err := s.pages.Document(ctx, matchURL, scrape.WithJavaScript())
	if err != nil {
		return extraction.FailedReferee(kickerID, err)
	}
	name := labelledName(page.Selection, kickerRefereeTag)
	if name == "" {
		return extraction.FailedReferee(kickerID, extraction.Insufficient("no referee on %s", matchURL))
	}
	return extraction.OKReferee(kickerID, matchURL, name)
}
