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

const (
	premierInjuriesID = "premierinjuries.com"
	bbcSportID        = "bbc.co.uk/sport"
)

// premierInjuries reads the league-wide injury table: one header per club
// followed by player rows with a status column.
type premierInjuries struct {
	pages Pages
	base  string
}

func (s premierInjuries) lineup(ctx context.Context, f fixture.Fixture) extraction.Lineup {
	tableURL := s.base + "/injury-table.php"
	doc, err := s.pages.Document(ctx, tableURL)
	if err != nil {
		return extraction.FailedLineup(premierInjuriesID, err)
	}

	homeKW, awayKW := keywords(f.Home), keywords(f.Away)
	var home, away, unavailable []string
	var currentTeam string
	rows := 0
	doc.Find("h2, h3, tr").Each(func(_ int, el *goquery.Selection) {
		if goquery.NodeName(el) != "tr" {
			currentTeam = scrape.SpacedText(el)
			return
		}
		cells := el.Find("td")
		if currentTeam == "" || cells.Length() < 2 {
			return
		}
		rows++
		player := scrape.SpacedText(cells.Eq(0))
		status := strings.ToLower(scrape.SpacedText(cells.Eq(1)))
		if player == "" {
			return
		}

		isHome, isAway := mentions(currentTeam, homeKW), mentions(currentTeam, awayKW)
		switch {
		case strings.Contains(status, "out") || strings.Contains(status, "doubtful") || strings.Contains(status, "unavailable"):
			if isHome || isAway {
				unavailable = append(unavailable, player)
			}
		case strings.Contains(status, "available") && isHome:
			home = append(home, player)
		case strings.Contains(status, "available") && isAway:
			away = append(away, player)
		}
	})
	if rows == 0 {
		return extraction.FailedLineup(premierInjuriesID, extraction.StructureChanged("no injury rows on %s", tableURL))
	}
	return extraction.OKLineup(premierInjuriesID, tableURL, home, away, unavailable)
}

var (
	bbcFixtureCard = regexp.MustCompile(`(?i)fixture|match|game`)
	bbcRefereeTag  = regexp.MustCompile(`(?i)referee:?\s*`)
)

// bbcSport finds the fixture on the scores page and reads the officials
// block of the match page.
type bbcSport struct {
	pages Pages
	base  string
}

func (s bbcSport) referee(ctx context.Context, f fixture.Fixture) extraction.Referee {
	listURL := s.base + "/sport/football/scores-fixtures/" + f.DateKey()
	doc, err := s.pages.Document(ctx, listURL, scrape.WithJavaScript())
	if err != nil {
		return extraction.FailedReferee(bbcSportID, err)
	}

	home, away := keywords(f.Home), keywords(f.Away)
	var href string
	innermost(byClass(doc.Selection, "article, li, div", bbcFixtureCard).FilterFunction(func(_ int, card *goquery.Selection) bool {
		return mentionsBoth(scrape.SpacedText(card), home, away)
	})).EachWithBreak(func(_ int, card *goquery.Selection) bool {
		href = linkWhere(card, func(string, *goquery.Selection) bool { return true })
		if href == "" {
			href, _ = card.Closest("a[href]").Attr("href")
		}
		return href == ""
	})
	if href == "" {
		href = linkWhere(doc.Selection, func(h string, a *goquery.Selection) bool {
			return mentionsBoth(scrape.SpacedText(a), home, away)
		})
	}
	if href == "" {
		return extraction.FailedReferee(bbcSportID, extraction.NoMatch("%s not listed on %s", f, listURL))
	}

	matchURL := absURL(s.base, href)
	page, err := s.pages.Document(ctx, matchURL)
	if err != nil {
		return extraction.FailedReferee(bbcSportID, err)
	}
	name := labelledName(page.Selection, bbcRefereeTag)
	if name == "" {
		return extraction.FailedReferee(bbcSportID, extraction.Insufficient("no referee on %s", matchURL))
	}
	return extraction.OKReferee(bbcSportID, matchURL, name)
}
