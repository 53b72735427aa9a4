// Package slug derives URL-safe identifiers from display names.
package slug

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Make lowercases s, folds diacritics to their base letters, drops
// punctuation and joins the remaining words with single dashes.
func Make(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, strings.ToLower(s))
	if err != nil {
		folded = strings.ToLower(s)
	}

	var b strings.Builder
	b.Grow(len(folded))
	dash := false
	for _, r := range folded {
		switch {
		case r == 'đ':
			r = 'd'
		case r == ' ' || r == '-' || r == '\t' || r == '\n':
			if b.Len() > 0 {
				dash = true
			}
			continue
		}
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			continue
		}
		if dash {
			b.WriteByte('-')
			dash = false
		}
		b.WriteRune(r)
	}
	return b.String()
}
