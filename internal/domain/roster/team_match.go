package roster

import (
	"github.com/agnivade/levenshtein"
	"github.com/riskibarqy/matchday-intel/internal/platform/textnorm"
)

const maxTeamEditDistance = 3

// MatchTeam finds the canonical team a free-form name refers to. Matching is
// tried from strictest to loosest: exact, alias, word containment, then the
// closest name within a small edit distance.
func MatchTeam(name string, teams []Team) (Team, bool) {
	key := textnorm.Key(name)
	if key == "" {
		return Team{}, false
	}

	for _, t := range teams {
		if textnorm.Key(t.Name) == key {
			return t, true
		}
	}
	for _, t := range teams {
		for _, a := range t.Aliases {
			if textnorm.Key(a) == key {
				return t, true
			}
		}
	}

	wanted := textnorm.TokenSet(name)
	for _, t := range teams {
		if containsAll(textnorm.TokenSet(t.Name), wanted) || containsAll(wanted, textnorm.TokenSet(t.Name)) {
			return t, true
		}
	}

	best := -1
	bestDistance := maxTeamEditDistance + 1
	for i, t := range teams {
		if d := levenshtein.ComputeDistance(key, textnorm.Key(t.Name)); d < bestDistance {
			best = i
			bestDistance = d
		}
	}
	if best < 0 {
		return Team{}, false
	}
	return teams[best], true
}

func containsAll(set, subset map[string]struct{}) bool {
	if len(subset) == 0 {
		return false
	}
	for k := range subset {
		if _, ok := set[k]; !ok {
			return false
		}
	}
	return true
}
