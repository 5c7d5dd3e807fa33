package match

import (
	"strings"
	"unicode/utf8"
)

// BoundedEditDistance returns the Levenshtein distance between a and b when
// it is at most maxDistance, and maxDistance+1 otherwise. It keeps two rows
// sized to the shorter string and stops as soon as a whole row exceeds the
// bound.
func BoundedEditDistance(a, b string, maxDistance int) int {
	if a == b {
		return 0
	}
	ra, rb := []rune(a), []rune(b)
	if len(ra) < len(rb) {
		ra, rb = rb, ra
	}
	if len(ra)-len(rb) > maxDistance {
		return maxDistance + 1
	}

	prev := make([]int, len(rb)+1)
	curr := make([]int, len(rb)+1)
	for j := range prev {
		prev[j] = j
	}

	for i := 1; i <= len(ra); i++ {
		curr[0] = i
		rowMin := curr[0]
		for j := 1; j <= len(rb); j++ {
			cost := 1
			if ra[i-1] == rb[j-1] {
				cost = 0
			}
			curr[j] = min(prev[j]+1, curr[j-1]+1, prev[j-1]+cost)
			if curr[j] < rowMin {
				rowMin = curr[j]
			}
		}
		if rowMin > maxDistance {
			return maxDistance + 1
		}
		prev, curr = curr, prev
	}

	if d := prev[len(rb)]; d <= maxDistance {
		return d
	}
	return maxDistance + 1
}

// MaxFuzzyDistance is the edit budget for a query: 30% of its length, but
// never less than 2.
func MaxFuzzyDistance(query string) int {
	return max(2, 3*utf8.RuneCountInString(query)/10)
}

// FuzzyScore rates how well query matches target on a 0..1 scale. A
// substring hit scores 1.0; otherwise each edit costs 0.1 off a 0.8 base,
// and anything beyond MaxFuzzyDistance scores 0.
func FuzzyScore(query, target string) float64 {
	if strings.Contains(target, query) {
		return 1.0
	}
	bound := MaxFuzzyDistance(query)
	d := BoundedEditDistance(query, target, bound)
	if d > bound {
		return 0
	}
	return max(0, 0.8-0.1*float64(d))
}
