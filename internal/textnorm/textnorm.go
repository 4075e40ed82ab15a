// Package textnorm prepares free-text query strings for the suggest API.
package textnorm

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// foldTransformer strips combining marks so that "Dvořák" and "Dvorak" hit
// the same suggest results. NFC recomposition keeps the output stable for
// cache keys.
var foldTransformer = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Normalize trims the string, collapses runs of whitespace to single spaces,
// and folds diacritics. It is a pure function; the empty string maps to
// itself.
func Normalize(s string) string {
	s = strings.TrimSpace(s)
	s = strings.Join(strings.Fields(s), " ")
	folded, _, err := transform.String(foldTransformer, s)
	if err != nil {
		// Malformed UTF-8; pass the collapsed string through unchanged.
		return s
	}
	return folded
}
