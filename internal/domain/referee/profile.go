package referee

import (
	"strings"

	"github.com/riskibarqy/matchday-intel/internal/domain/league"
	"github.com/riskibarqy/matchday-intel/internal/platform/textnorm"
)

type profileRule struct {
	strict       []string
	lenient      []string
	strictCards  float64
	lenientCards float64
	mediumCards  float64
}

var profileRules = map[league.League]profileRule{
	league.LaLiga: {
		strict:       []string{"gil manzano", "hernandez hernandez", "mateu lahoz"},
		lenient:      []string{"diaz de mera", "munuera montero", "del cerro grande", "trujillo"},
		strictCards:  5.5,
		lenientCards: 3.8,
		mediumCards:  4.3,
	},
	league.PremierLeague: {
		strict:       []string{"oliver", "taylor"},
		lenient:      []string{"pawson", "brooks"},
		strictCards:  5.0,
		lenientCards: 3.4,
		mediumCards:  4.1,
	},
	league.Bundesliga: {
		strict:      []string{"brych", "aytekin"},
		strictCards: 4.8,
		mediumCards: 3.9,
	},
	league.SerieA: {
		strict:      []string{"orsato", "massa"},
		strictCards: 5.0,
		mediumCards: 4.0,
	},
	league.Ligue1: {
		strict:      []string{"turpin", "letexier"},
		strictCards: 4.7,
		mediumCards: 3.9,
	},
	league.Generic: {
		strict:       []string{"gil manzano", "mateu lahoz", "hernandez hernandez", "michael oliver", "anthony taylor", "daniele orsato", "felix brych"},
		lenient:      []string{"diaz de mera", "munuera montero", "craig pawson", "marco guida", "tobias stieler"},
		strictCards:  5.5,
		lenientCards: 3.5,
		mediumCards:  DefaultAvgCards,
	},
}

// Profile derives strictness and card average for a referee named by a live
// source. A name present in the league pool takes the pool entry's card
// average and, when the entry sets one, its strictness, so both agree.
func Profile(l league.League, name string, pools Pools) (Strictness, float64) {
	key := textnorm.Fold(name)
	if key == "" {
		return StrictnessMedium, DefaultAvgCards
	}

	rule, ok := profileRules[l]
	if !ok {
		rule = profileRules[league.Generic]
	}

	strictness := StrictnessMedium
	cards := rule.mediumCards
	switch {
	case containsAny(key, rule.strict):
		strictness, cards = StrictnessHigh, rule.strictCards
	case containsAny(key, rule.lenient):
		strictness, cards = StrictnessLow, rule.lenientCards
	}

	if entry, found := pools.For(l).Lookup(name); found {
		if entry.AvgCards > 0 {
			cards = entry.AvgCards
		}
		if strings.TrimSpace(string(entry.Strictness)) != "" {
			strictness = ParseStrictness(string(entry.Strictness))
		}
	}
	return strictness, cards
}

func containsAny(value string, needles []string) bool {
	for _, n := range needles {
		if strings.Contains(value, n) {
			return true
		}
	}
	return false
}

func foldName(value string) string {
	return textnorm.Key(value)
}

func upper(value string) string {
	return strings.ToUpper(strings.TrimSpace(value))
}
