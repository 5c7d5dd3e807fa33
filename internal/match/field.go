package match

import (
	"strings"
	"unicode/utf8"
)

// MinFuzzyLength is the shortest variant that may match by edit distance.
// Shorter variants (acronyms such as "cto") only match as substrings, since
// a two-edit budget would let them match any other three-letter word.
const MinFuzzyLength = 4

// tokenDiscount scales a match that only landed on a single token.
const tokenDiscount = 0.9

// ScoreField returns the best match of any variant against field: 1.0 for a
// substring hit, else the fuzzy score against the whole field, else 0.9x the
// best fuzzy score against an individual token. Empty variants and an empty
// field score 0.
func ScoreField(variants []string, field string, tokens []string) float64 {
	if field == "" {
		return 0
	}
	best := 0.0
	for _, v := range variants {
		if v == "" {
			continue
		}
		if strings.Contains(field, v) {
			return 1.0
		}
		if utf8.RuneCountInString(v) < MinFuzzyLength {
			continue
		}
		best = max(best, FuzzyScore(v, field))
		for _, tok := range tokens {
			best = max(best, tokenDiscount*FuzzyScore(v, tok))
		}
	}
	return best
}
