// Package match implements the text primitives used by relevance scoring:
// query text normalization, bounded edit distance and fuzzy field matching.
package match

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var (
	nonWordRe    = regexp.MustCompile(`[^\w\s$]`)
	multiSpaceRe = regexp.MustCompile(`\s+`)
)

// foldAccents strips combining marks so "José" and "Jose" normalize alike.
// A transformer is built per call because chained transformers keep state.
func foldAccents(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return out
}

// NormalizeText lowercases s, replaces every character that is not a word
// character, whitespace or '$' with a space, collapses whitespace and trims.
func NormalizeText(s string) string {
	s = strings.ToLower(foldAccents(s))
	s = nonWordRe.ReplaceAllString(s, " ")
	s = multiSpaceRe.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}

// Tokenize splits already-lowered text on whitespace.
func Tokenize(s string) []string {
	return strings.Fields(s)
}
