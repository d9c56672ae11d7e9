// Package text canonicalises free-text categorical values.
package text

import (
	"sort"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// missingTokens are literal values that mean "no data" in the extracts.
// They are compared after canonicalisation.
var missingTokens = map[string]struct{}{
	"":               {},
	"SIN_DATO":       {},
	"SIN DATO":       {},
	"NO DETERMINADO": {},
	"NAN":            {},
	"N/D":            {},
	"NONE":           {},
}

// Fold removes diacritics, keeping the base letters.
// "Cantón Durán" becomes "Canton Duran" and "Ñ" becomes "N".
func Fold(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return out
}

// Canonical uppercases, trims, folds accents and collapses inner whitespace.
// It is idempotent.
func Canonical(s string) string {
	s = Fold(strings.ToUpper(strings.TrimSpace(s)))
	return strings.Join(strings.Fields(s), " ")
}

// IsMissing reports whether a canonical value is a missing sentinel.
func IsMissing(canonical string) bool {
	_, ok := missingTokens[canonical]
	return ok
}

// Normalise returns the canonical value, or unknown when the value is a
// missing sentinel.
func Normalise(s, unknown string) string {
	c := Canonical(s)
	if IsMissing(c) {
		return unknown
	}
	return c
}

// MissingTokens returns the sentinel set, sorted.
func MissingTokens() []string {
	out := make([]string, 0, len(missingTokens))
	for tok := range missingTokens {
		out = append(out, tok)
	}
	sort.Strings(out)
	return out
}
