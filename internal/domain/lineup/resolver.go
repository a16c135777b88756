package lineup

import (
	"strings"

	"github.com/riskibarqy/matchday-intel/internal/domain/roster"
	"github.com/riskibarqy/matchday-intel/internal/platform/textnorm"
)

// Resolve maps scraped names onto roster players.
//
// A roster player matches when either token set contains the other or when
// they share any token; the first match in roster order wins, so two players
// sharing a surname both resolve to the one listed first. Unmatched names are
// kept verbatim. The result is deduplicated by folded name.
func Resolve(names []string, players []roster.Player) []Entry {
	playerTokens := make([]map[string]struct{}, len(players))
	for i, p := range players {
		playerTokens[i] = textnorm.TokenSet(p.Name)
	}

	out := make([]Entry, 0, len(names))
	seen := make(map[string]struct{}, len(names))
	for _, raw := range names {
		raw = strings.Join(strings.Fields(raw), " ")
		scraped := textnorm.TokenSet(raw)
		if len(scraped) == 0 {
			continue
		}

		entry := Entry{Name: raw, Raw: raw}
		for i, p := range players {
			if tokensMatch(scraped, playerTokens[i]) {
				entry = Entry{Name: p.Name, PlayerID: p.ID, Position: p.Position, Matched: true, Raw: raw}
				break
			}
		}

		key := textnorm.Key(entry.Name)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, entry)
	}

	return out
}

// Disjoin drops from away every identity already present on home, so no
// canonical name appears on both sides.
func Disjoin(home, away []Entry) []Entry {
	onHome := make(map[string]struct{}, len(home))
	for _, e := range home {
		onHome[textnorm.Key(e.Name)] = struct{}{}
	}

	out := make([]Entry, 0, len(away))
	for _, e := range away {
		if _, dup := onHome[textnorm.Key(e.Name)]; dup {
			continue
		}
		out = append(out, e)
	}
	return out
}

// Containment in either direction implies a shared token, so one
// intersection test covers all three cases of the rule.
func tokensMatch(a, b map[string]struct{}) bool {
	if len(a) > len(b) {
		a, b = b, a
	}
	for k := range a {
		if _, ok := b[k]; ok {
			return true
		}
	}
	return false
}
