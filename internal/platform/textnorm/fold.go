// Package textnorm folds free-form names scraped from heterogeneous pages
// into comparable lower-case ASCII-ish forms.
package textnorm

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Fold lower-cases value, strips combining marks and collapses whitespace.
// "Hernández  Hernández" becomes "hernandez hernandez".
func Fold(value string) string {
	return strings.Join(strings.Fields(strings.ToLower(StripAccents(value))), " ")
}

// StripAccents removes combining marks but keeps case, so "Clément Turpin"
// becomes "Clement Turpin".
func StripAccents(value string) string {
	value = strings.TrimSpace(value)
	if value == "" {
		return ""
	}

	// transform.Chain keeps state, build one per call.
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	stripped, _, err := transform.String(t, value)
	if err != nil {
		return value
	}
	return stripped
}

// Words folds value and splits it on anything that is not a letter or digit.
func Words(value string) []string {
	folded := Fold(value)
	if folded == "" {
		return nil
	}

	return strings.FieldsFunc(folded, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}

// TokenSet returns the distinct words of value.
func TokenSet(value string) map[string]struct{} {
	words := Words(value)
	out := make(map[string]struct{}, len(words))
	for _, w := range words {
		out[w] = struct{}{}
	}
	return out
}

// Slug joins the folded words of value with sep, e.g. "Celta de Vigo" -> "celta-de-vigo".
func Slug(value, sep string) string {
	return strings.Join(Words(value), sep)
}

// Key is the canonical comparison form of a name: folded words joined by a single space.
func Key(value string) string {
	return strings.Join(Words(value), " ")
}
