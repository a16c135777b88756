package league

import (
	"strings"

	"github.com/riskibarqy/matchday-intel/internal/platform/textnorm"
)

var sponsorTokens = []string{"ea sports", "santander"}

type alias struct {
	league  League
	needles []string
}

// Checked in order; the first league with a matching needle wins.
var aliasTable = []alias{
	{league: LaLiga, needles: []string{"la liga", "laliga", "primera", "espana"}},
	{league: PremierLeague, needles: []string{"premier", "england", "epl"}},
	{league: SerieA, needles: []string{"serie a", "italy", "italia"}},
	{league: Bundesliga, needles: []string{"bundesliga", "germany", "german"}},
	{league: Ligue1, needles: []string{"ligue 1", "france", "liga 1"}},
}

// Normalize maps a free-form competition label to a League. It never fails:
// unknown labels, international fixtures and mixed competitions are Generic.
func Normalize(label string) League {
	value := textnorm.Fold(label)
	if idx := strings.Index(value, "("); idx >= 0 {
		value = value[:idx]
	}
	for _, token := range sponsorTokens {
		value = strings.ReplaceAll(value, token, " ")
	}
	value = strings.Join(strings.Fields(value), " ")
	if value == "" {
		return Generic
	}

	if l := League(strings.ToUpper(value)); l.Valid() {
		return l
	}

	for _, entry := range aliasTable {
		for _, needle := range entry.needles {
			if strings.Contains(value, needle) {
				return entry.league
			}
		}
	}

	return Generic
}
