// Package normalize folds option labels and search text into a comparable form.
// Folded text is only ever used for matching, never for display.
package normalize

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// stripMarks decomposes compatibility characters and drops the combining marks.
var stripMarks = transform.Chain(norm.NFKD, runes.Remove(runes.In(unicode.Mn)))

// Ligatures do not decompose under NFKD, so they are expanded explicitly.
var ligatures = strings.NewReplacer("œ", "oe", "æ", "ae")

// String lowercases, trims, removes diacritics and expands the œ/æ ligatures.
func String(s string) string {
	s = strings.TrimSpace(strings.ToLower(s))
	if s == "" {
		return ""
	}
	folded, _, err := transform.String(stripMarks, s)
	if err != nil {
		folded = s
	}
	return ligatures.Replace(folded)
}

// Contains reports whether needle occurs in haystack once both are folded.
func Contains(haystack, needle string) bool {
	return strings.Contains(String(haystack), String(needle))
}

// Equal reports whether a and b fold to the same text.
func Equal(a, b string) bool {
	return String(a) == String(b)
}
