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

const resultadosFutbolID = "resultados-futbol.com"

var (
	rfLineupTable = regexp.MustCompile(`(?i)tabla.*desc-partido|alineacion`)
	rfRefereeTag  = regexp.MustCompile(`(?i)[áa]rbitro`)
	rfMainReferee = regexp.MustCompile(`(?i)principal:?\s*`)
)

// resultadosFutbol reads a competition page such as /primera or /bundesliga
// and follows the match link to its lineup and officials.
type resultadosFutbol struct {
	pages       Pages
	base        string
	competition string
}

func (s resultadosFutbol) matchURL(ctx context.Context, f fixture.Fixture) (string, error) {
	listURL := s.base + "/" + s.competition
	doc, err := s.pages.Document(ctx, listURL, scrape.WithJavaScript())
	if err != nil {
		return "", err
	}
	home, away := keywords(f.Home), keywords(f.Away)
	href := linkWhere(doc.Selection, func(href string, _ *goquery.Selection) bool {
		return strings.Contains(strings.ToLower(href), "/partido/") && mentionsBoth(href, home, away)
	})
	if href == "" {
		return "", extraction.NoMatch("%s not listed on %s", f, listURL)
	}
	return absURL(s.base, href), nil
}

func (s resultadosFutbol) lineup(ctx context.Context, f fixture.Fixture) extraction.Lineup {
	matchURL, err := s.matchURL(ctx, f)
	if err != nil {
		return extraction.FailedLineup(resultadosFutbolID, err)
	}
	lineupURL := strings.TrimRight(matchURL, "/")
	if !strings.HasSuffix(lineupURL, "/alineacion") {
		lineupURL += "/alineacion"
	}

	doc, err := s.pages.Document(ctx, lineupURL, scrape.WithJavaScript())
	if err != nil {
		return extraction.FailedLineup(resultadosFutbolID, err)
	}
	table := byClass(doc.Selection, "table", rfLineupTable).First()
	if table.Length() == 0 {
		return extraction.FailedLineup(resultadosFutbolID, extraction.StructureChanged("no lineup table on %s", lineupURL))
	}

	return extraction.OKLineup(resultadosFutbolID, lineupURL,
		linkTexts(table.Find("td.equipo1 a"), 11),
		linkTexts(table.Find("td.equipo2 a"), 11),
		nil,
	)
}

func linkTexts(sel *goquery.Selection, limit int) []string {
	var out []string
	sel.EachWithBreak(func(_ int, a *goquery.Selection) bool {
		if text := scrape.SpacedText(a); text != "" {
			out = append(out, text)
		}
		return len(out) < limit
	})
	return out
}

func (s resultadosFutbol) referee(ctx context.Context, f fixture.Fixture) extraction.Referee {
	matchURL, err := s.matchURL(ctx, f)
	if err != nil {
		return extraction.FailedReferee(resultadosFutbolID, err)
	}
	doc, err := s.pages.Document(ctx, matchURL, scrape.WithJavaScript())
	if err != nil {
		return extraction.FailedReferee(resultadosFutbolID, err)
	}

	var name string
	withOwnText(doc.Selection, rfRefereeTag).EachWithBreak(func(_ int, el *goquery.Selection) bool {
		block := scrape.SpacedText(el.Parent().Parent())
		locs := rfMainReferee.FindAllStringIndex(block, -1)
		if len(locs) == 0 {
			return true
		}
		name = leadingName(block[locs[len(locs)-1][1]:], 4)
		return !plausibleName(name, 2, 4)
	})
	if !plausibleName(name, 2, 4) {
		return extraction.FailedReferee(resultadosFutbolID, extraction.Insufficient("no main referee on %s", matchURL))
	}
	return extraction.OKReferee(resultadosFutbolID, matchURL, name)
}
