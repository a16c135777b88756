package scraper

import (
	"net/url"
	"regexp"
	"strings"
	"unicode"

	"github.com/PuerkitoBio/goquery"
	"github.com/riskibarqy/matchday-intel/internal/platform/scrape"
)

// byClass selects the tags under scope whose class attribute matches pattern.
func byClass(scope *goquery.Selection, tags string, pattern *regexp.Regexp) *goquery.Selection {
	if tags == "" {
		tags = "*"
	}
	return scope.Find(tags).FilterFunction(func(_ int, s *goquery.Selection) bool {
		class, ok := s.Attr("class")
		return ok && pattern.MatchString(class)
	})
}

// innermost keeps the members of sel that contain no other member.
func innermost(sel *goquery.Selection) *goquery.Selection {
	return sel.FilterFunction(func(_ int, s *goquery.Selection) bool {
		return s.Find("*").FilterNodes(sel.Nodes...).Length() == 0
	})
}

// outermost keeps the members of sel that are not nested in another member.
func outermost(sel *goquery.Selection) *goquery.Selection {
	return sel.FilterFunction(func(_ int, s *goquery.Selection) bool {
		return s.Parents().FilterNodes(sel.Nodes...).Length() == 0
	})
}

// withOwnText selects elements under scope whose direct text matches pattern.
func withOwnText(scope *goquery.Selection, pattern *regexp.Regexp) *goquery.Selection {
	return scope.Find("*").FilterFunction(func(_ int, s *goquery.Selection) bool {
		return pattern.MatchString(scrape.OwnText(s))
	})
}

// playerNames collects up to limit distinct names from the innermost
// elements under scope whose class matches pattern. With strict set, only
// plausible person names are kept.
func playerNames(scope *goquery.Selection, pattern *regexp.Regexp, strict bool, limit int) []string {
	var out []string
	seen := make(map[string]struct{})
	innermost(byClass(scope, "*", pattern)).EachWithBreak(func(_ int, s *goquery.Selection) bool {
		name := scrape.SpacedText(s)
		if name == "" || (strict && !plausibleName(name, 2, 5)) {
			return true
		}
		key := strings.ToLower(name)
		if _, dup := seen[key]; dup {
			return true
		}
		seen[key] = struct{}{}
		out = append(out, name)
		return limit <= 0 || len(out) < limit
	})
	return out
}

// plausibleName accepts minWords..maxWords words made of letters and the
// usual name punctuation.
func plausibleName(name string, minWords, maxWords int) bool {
	words := strings.Fields(name)
	if len(words) < minWords || len(words) > maxWords {
		return false
	}
	for _, r := range name {
		if unicode.IsLetter(r) || unicode.IsSpace(r) || strings.ContainsRune(".'-’", r) {
			continue
		}
		return false
	}
	return true
}

var nameParticles = map[string]struct{}{
	"de": {}, "del": {}, "la": {}, "van": {}, "von": {}, "der": {}, "di": {}, "da": {}, "le": {}, "dos": {},
}

// leadingName reads the run of capitalised words (and lower-case particles)
// at the start of text, e.g. "Tobias Stieler (Hamburg)" gives "Tobias Stieler".
func leadingName(text string, maxWords int) string {
	var words []string
	for _, w := range strings.Fields(text) {
		if strings.HasSuffix(w, ":") {
			break
		}
		clean := strings.TrimRight(w, ".,;")
		if clean == "" {
			break
		}
		first := []rune(clean)[0]
		_, particle := nameParticles[clean]
		if !unicode.IsUpper(first) && !(particle && len(words) > 0) {
			break
		}
		if !plausibleName(clean, 1, 1) {
			break
		}
		words = append(words, clean)
		if len(words) == maxWords || (clean != w && len([]rune(clean)) > 1) {
			break
		}
	}
	for len(words) > 0 {
		if _, particle := nameParticles[words[len(words)-1]]; !particle {
			break
		}
		words = words[:len(words)-1]
	}
	return strings.Join(words, " ")
}

// labelledName finds an element carrying label in its own text and reads the
// name that follows it, in the same element or in the next sibling.
func labelledName(scope *goquery.Selection, label *regexp.Regexp) string {
	var name string
	withOwnText(scope, label).EachWithBreak(func(_ int, s *goquery.Selection) bool {
		text := scrape.SpacedText(s)
		if loc := label.FindStringIndex(text); loc != nil {
			name = leadingName(text[loc[1]:], 4)
		}
		if !plausibleName(name, 2, 4) {
			name = leadingName(scrape.SpacedText(s.Next()), 4)
		}
		if !plausibleName(name, 2, 4) {
			name = ""
			return true
		}
		return false
	})
	return name
}

// linkWhere returns the first href under scope accepted by keep.
func linkWhere(scope *goquery.Selection, keep func(href string, a *goquery.Selection) bool) string {
	var found string
	scope.Find("a[href]").EachWithBreak(func(_ int, a *goquery.Selection) bool {
		href, _ := a.Attr("href")
		if keep(href, a) {
			found = href
			return false
		}
		return true
	})
	return found
}

// absURL resolves href against base.
func absURL(base, href string) string {
	b, err := url.Parse(base)
	if err != nil {
		return href
	}
	ref, err := url.Parse(strings.TrimSpace(href))
	if err != nil {
		return href
	}
	return b.ResolveReference(ref).String()
}
