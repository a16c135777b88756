package scraper

import (
	"context"
	"regexp"

	"github.com/PuerkitoBio/goquery"
	"github.com/riskibarqy/matchday-intel/internal/domain/extraction"
	"github.com/riskibarqy/matchday-intel/internal/domain/fixture"
	"github.com/riskibarqy/matchday-intel/internal/platform/scrape"
)

// matchCards reads "probable lineups" hubs that render one card per match
// with two team blocks of player elements. Kicker, Fantacalcio and L'Equipe
// all follow this shape with their own class vocabularies.
type matchCards struct {
	pages    Pages
	id       string
	url      string
	cardTags string
	card     *regexp.Regexp
	team     *regexp.Regexp
	player   *regexp.Regexp
}

func (s matchCards) lineup(ctx context.Context, f fixture.Fixture) extraction.Lineup {
	doc, err := s.pages.Document(ctx, s.url, scrape.WithJavaScript())
	if err != nil {
		return extraction.FailedLineup(s.id, err)
	}

	cards := byClass(doc.Selection, s.cardTags, s.card)
	if cards.Length() == 0 {
		return extraction.FailedLineup(s.id, extraction.StructureChanged("no match cards on %s", s.url))
	}

	home, away := keywords(f.Home), keywords(f.Away)
	card := innermost(cards.FilterFunction(func(_ int, c *goquery.Selection) bool {
		return mentionsBoth(scrape.SpacedText(c), home, away)
	})).First()
	if card.Length() == 0 {
		return extraction.FailedLineup(s.id, extraction.NoMatch("%s not listed on %s", f, s.url))
	}

	teams := outermost(byClass(card, "*", s.team))
	var sides [2][]string
	teams.EachWithBreak(func(i int, team *goquery.Selection) bool {
		sides[i] = playerNames(team, s.player, false, 11)
		return i < 1
	})
	if teams.Length() == 2 && !homeFirst(teams, home) {
		sides[0], sides[1] = sides[1], sides[0]
	}
	return extraction.OKLineup(s.id, s.url, sides[0], sides[1], nil)
}

// homeFirst reports false only when the second team block is the one that
// names the home club.
func homeFirst(teams *goquery.Selection, home []string) bool {
	first := scrape.SpacedText(teams.Eq(0))
	second := scrape.SpacedText(teams.Eq(1))
	return !(mentions(second, home) && !mentions(first, home))
}
