package scraper

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/riskibarqy/matchday-intel/internal/platform/textnorm"
)

// Club prefixes and suffixes that say nothing about which club it is.
var clubNoise = map[string]struct{}{
	"fc": {}, "cf": {}, "cd": {}, "ud": {}, "sd": {}, "rcd": {}, "rc": {}, "ca": {}, "sl": {},
	"ac": {}, "as": {}, "ss": {}, "ssc": {}, "us": {}, "afc": {}, "sc": {}, "sv": {}, "fsv": {},
	"vfb": {}, "vfl": {}, "tsg": {}, "bv": {}, "1": {}, "04": {}, "05": {}, "1899": {}, "1846": {},
	"de": {}, "club": {}, "real": {}, "bayer": {}, "borussia": {}, "olympique": {}, "stade": {},
}

// Hand-kept keywords for clubs whose pages rarely use the first significant word.
var keywordOverrides = map[string][]string{
	"rayo vallecano":           {"rayo"},
	"athletic club":            {"athletic", "bilbao"},
	"athletic bilbao":          {"athletic", "bilbao"},
	"atletico madrid":          {"atletico"},
	"atletico de madrid":       {"atletico"},
	"manchester city":          {"manchester city", "man city"},
	"manchester united":        {"manchester united", "man utd", "man united"},
	"tottenham":                {"tottenham", "spurs"},
	"tottenham hotspur":        {"tottenham", "spurs"},
	"wolves":                   {"wolves", "wolverhampton"},
	"wolverhampton wanderers":  {"wolves", "wolverhampton"},
	"nottingham forest":        {"nottingham", "forest"},
	"west ham":                 {"west ham"},
	"west ham united":          {"west ham"},
	"aston villa":              {"aston villa", "villa"},
	"bayer leverkusen":         {"leverkusen"},
	"mainz":                    {"mainz"},
	"mainz 05":                 {"mainz"},
	"borussia monchengladbach": {"monchengladbach", "gladbach"},
	"eintracht frankfurt":      {"frankfurt", "eintracht"},
	"inter":                    {"inter"},
	"inter milan":              {"inter"},
	"internazionale":           {"inter"},
	"ac milan":                 {"milan"},
	"paris saint germain":      {"paris", "psg"},
	"psg":                      {"paris", "psg"},
}

// keywords returns the folded phrases that identify team on listing pages:
// the full name plus its first significant word or the hand-kept overrides.
func keywords(team string) []string {
	key := textnorm.Key(team)
	if key == "" {
		return nil
	}
	out := []string{key}
	if extra, ok := keywordOverrides[key]; ok {
		return appendUnique(out, extra...)
	}
	for _, w := range strings.Fields(key) {
		if _, noise := clubNoise[w]; noise || len(w) < 3 {
			continue
		}
		return appendUnique(out, w)
	}
	return out
}

func appendUnique(dst []string, values ...string) []string {
	for _, v := range values {
		dup := false
		for _, d := range dst {
			if d == v {
				dup = true
				break
			}
		}
		if !dup {
			dst = append(dst, v)
		}
	}
	return dst
}

// mentions reports whether any keyword appears as whole words in text. Text
// is folded and split on punctuation, so hrefs like "/partidos/celta-villarreal"
// work as well as prose.
func mentions(text string, kws []string) bool {
	hay := " " + textnorm.Key(text) + " "
	for _, kw := range kws {
		if kw != "" && strings.Contains(hay, " "+kw+" ") {
			return true
		}
	}
	return false
}

func mentionsBoth(text string, home, away []string) bool {
	return mentions(text, home) && mentions(text, away)
}

const (
	personName   = `(\p{Lu}\p{Ll}+(?:\s\p{Lu}\p{Ll}+){1,3})`
	officialRole = `(?:(?i:arbitro principale|arbitro|arbitre|schiedsrichter|referee)\s*:?\s*)?`
)

// designation reads an official designation page: the first capitalised
// 2-4 word name that follows "<home> ... <away>" within the given windows,
// skipping a leading role label such as "Arbitro:".
// Text is matched without accents so folded keywords line up.
func designation(text string, home, away []string, gap, tail int) string {
	plain := textnorm.StripAccents(text)
	for _, h := range home {
		for _, a := range away {
			re, err := regexp.Compile(fmt.Sprintf(`(?s)(?i:%s).{0,%d}?(?i:%s).{0,%d}?%s%s`,
				keywordPattern(h), gap, keywordPattern(a), tail, officialRole, personName))
			if err != nil {
				continue
			}
			if m := re.FindStringSubmatch(plain); m != nil {
				return m[1]
			}
		}
	}
	return ""
}

// keywordPattern lets the spaces of a folded keyword match any separator.
func keywordPattern(kw string) string {
	parts := strings.Fields(kw)
	for i, p := range parts {
		parts[i] = regexp.QuoteMeta(p)
	}
	return strings.Join(parts, `[\s\-_.]+`)
}
