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

const futbolFantasyID = "futbolfantasy.com"

var (
	ffMatchCard   = regexp.MustCompile(`(?i)partido|match|encuen|card`)
	ffTeamSection = regexp.MustCompile(`(?i)equipo|alineacion|lineup|once`)
	ffPlayer      = regexp.MustCompile(`(?i)jugador|player|nombre`)
	ffUnavailable = regexp.MustCompile(`(?i)(?:^|[\s_-])(?:baja|lesion|duda|out\b|unavail|blesur)`)
	ffRefereeTag  = regexp.MustCompile(`(?i)[áa]rbitro:?\s*`)
)

// futbolFantasy reads the LaLiga probable lineups hub and its match pages.
type futbolFantasy struct {
	pages Pages
	base  string
}

func (s futbolFantasy) matchURL(ctx context.Context, f fixture.Fixture) (string, error) {
	listURL := s.base + "/laliga/posibles-alineaciones"
	doc, err := s.pages.Document(ctx, listURL, scrape.WithJavaScript())
	if err != nil {
		return "", err
	}

	home, away := keywords(f.Home), keywords(f.Away)
	isMatchLink := func(href string) bool {
		return strings.Contains(strings.ToLower(href), "/partidos/")
	}

	href := linkWhere(doc.Selection, func(href string, a *goquery.Selection) bool {
		return isMatchLink(href) && (mentionsBoth(href, home, away) || mentionsBoth(scrape.SpacedText(a), home, away))
	})
	if href == "" {
		byClass(doc.Selection, "div, article", ffMatchCard).EachWithBreak(func(_ int, card *goquery.Selection) bool {
			if !mentionsBoth(scrape.SpacedText(card), home, away) {
				return true
			}
			href = linkWhere(card, func(h string, _ *goquery.Selection) bool { return isMatchLink(h) })
			return href == ""
		})
	}
	if href == "" {
		return "", extraction.NoMatch("%s not listed on %s", f, listURL)
	}
	return absURL(s.base, href), nil
}

func (s futbolFantasy) lineup(ctx context.Context, f fixture.Fixture) extraction.Lineup {
	matchURL, err := s.matchURL(ctx, f)
	if err != nil {
		return extraction.FailedLineup(futbolFantasyID, err)
	}
	doc, err := s.pages.Document(ctx, matchURL, scrape.WithJavaScript())
	if err != nil {
		return extraction.FailedLineup(futbolFantasyID, err)
	}

	var home, away []string
	sections := innermost(byClass(doc.Selection, "div, section", ffTeamSection))
	if sections.Length() >= 2 {
		home = playerNames(sections.Eq(0), ffPlayer, true, 11)
		away = playerNames(sections.Eq(1), ffPlayer, true, 11)
	}
	if len(home) == 0 && len(away) == 0 {
		home, away = lineupsUnderHeaders(doc, f, ffPlayer)
	}
	if len(home) == 0 && len(away) == 0 && sections.Length() == 0 {
		return extraction.FailedLineup(futbolFantasyID, extraction.StructureChanged("no lineup sections on %s", matchURL))
	}

	var unavailable []string
	innermost(byClass(doc.Selection, "*", ffUnavailable)).Each(func(_ int, el *goquery.Selection) {
		if name := scrape.SpacedText(el); plausibleName(name, 2, 5) {
			unavailable = append(unavailable, name)
		}
	})

	return extraction.OKLineup(futbolFantasyID, matchURL, home, away, unavailable)
}

// lineupsUnderHeaders handles pages that title each XI with the club name.
func lineupsUnderHeaders(doc *goquery.Document, f fixture.Fixture, player *regexp.Regexp) (home, away []string) {
	homeKW, awayKW := keywords(f.Home), keywords(f.Away)
	doc.Find("h2, h3, h4").Each(func(_ int, h *goquery.Selection) {
		title := scrape.SpacedText(h)
		switch {
		case len(home) == 0 && mentions(title, homeKW):
			home = playerNames(h.Next(), player, false, 11)
		case len(away) == 0 && mentions(title, awayKW):
			away = playerNames(h.Next(), player, false, 11)
		}
	})
	return home, away
}

func (s futbolFantasy) referee(ctx context.Context, f fixture.Fixture) extraction.Referee {
	matchURL, err := s.matchURL(ctx, f)
	if err != nil {
		return extraction.FailedReferee(futbolFantasyID, err)
	}
	doc, err := s.pages.Document(ctx, matchURL, scrape.WithJavaScript())
	if err != nil {
		return extraction.FailedReferee(futbolFantasyID, err)
	}

	if box := doc.Find("div.arbitro").First(); box.Length() > 0 {
		holder := box.Find("span.link").First()
		if holder.Length() == 0 {
			holder = box.Find("a").First()
		}
		if holder.Length() == 0 {
			holder = box
		}
		name := strings.TrimSpace(ffRefereeTag.ReplaceAllString(scrape.SpacedText(holder), ""))
		if plausibleName(name, 2, 5) {
			return extraction.OKReferee(futbolFantasyID, matchURL, name)
		}
	}

	if name := labelledName(doc.Selection, ffRefereeTag); name != "" {
		return extraction.OKReferee(futbolFantasyID, matchURL, name)
	}
	return extraction.FailedReferee(futbolFantasyID, extraction.Insufficient("no referee on %s", matchURL))
}
