package search

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/sells-group/entity-search/internal/match"
)

// Signal weights.
const (
	weightName     = 0.4
	weightTitle    = 0.5
	weightBio      = 0.3
	weightIndustry = 0.3

	weightLocation       = 0.2
	weightStage          = 0.3
	weightCompany        = 0.3
	weightFunding        = 0.2
	weightIndustryFilter = 0.2
	weightInvestor       = 0.35

	tagBonus        = 0.25
	tagFilterBonus  = 0.2
	employerContext = 0.1

	filterThreshold   = 0.5
	roleThreshold     = 0.1
	investorThreshold = 0.6

	maxCompleteness = 0.1
	maxRecency      = 0.05
)

// scorecard accumulates a score and the human-readable reasons behind it.
type scorecard struct {
	score   float64
	reasons []string
}

func (s *scorecard) add(v float64, format string, args ...any) {
	s.score += v
	s.reasons = append(s.reasons, fmt.Sprintf(format, args...))
}

func (s *scorecard) explanation() string {
	if len(s.reasons) == 0 {
		return "no direct match"
	}
	return strings.Join(s.reasons, ", ")
}

// bestLocation returns the best fuzzy score of want against any location
// part.
func bestLocation(want string, parts ...string) float64 {
	best := 0.0
	for _, p := range parts {
		if p == "" {
			continue
		}
		best = max(best, match.FuzzyScore(want, p))
	}
	return best
}

// stageScore fuzzy-matches a canonical filter stage against an
// organization's canonical stage, so "series b" still scores 0.7 against
// "series a".
func stageScore(want, have string) float64 {
	if have == "" {
		return 0
	}
	return match.FuzzyScore(want, have)
}

// fundingRatio is totalRaised/minFunding capped at 1. A zero minimum is
// always satisfied.
func fundingRatio(total, minimum float64) float64 {
	if minimum <= 0 {
		return 1
	}
	return math.Min(1, total/minimum)
}

// tagHit reports whether tag contains, or is contained by, any variant.
func tagHit(tag string, variants []string) bool {
	for _, v := range variants {
		if v == "" {
			continue
		}
		if strings.Contains(tag, v) || strings.Contains(v, tag) {
			return true
		}
	}
	return false
}

// completeness rewards records with more enriched facts.
func completeness(factCount int) float64 {
	return math.Min(maxCompleteness, float64(factCount)/50)
}

// recency rewards recently enriched records. A missing timestamp counts as
// enriched now.
func recency(enrichedAt *time.Time, now time.Time) float64 {
	months := 0.0
	if enrichedAt != nil {
		months = math.Max(0, now.Sub(*enrichedAt).Hours()/(24*30))
	}
	return math.Min(maxRecency, 12/(months+1))
}
