package normalize

import (
	"regexp"
	"strings"
)

var (
	stageSeparatorRe = regexp.MustCompile(`[-_/]+`)
	stageRoundRe     = regexp.MustCompile(`\bround\b`)
	stageSpaceRe     = regexp.MustCompile(`\s+`)
)

// fundingStages is keyed by the cleaned form (no separators, no "round").
var fundingStages = map[string]string{
	"pre seed":    "pre-seed",
	"preseed":     "pre-seed",
	"seed":        "seed",
	"series a":    "series a",
	"series b":    "series b",
	"series c":    "series c",
	"series d":    "series d",
	"series e":    "series e",
	"ipo":         "ipo",
	"public":      "ipo",
	"early stage": "seed",
	"late stage":  "series c",
}

func cleanStage(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = stageSeparatorRe.ReplaceAllString(s, " ")
	s = stageRoundRe.ReplaceAllString(s, " ")
	s = stageSpaceRe.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}

// FundingStage maps spellings such as "Series-A round" or "Pre Seed" to a
// canonical stage. Unknown stages are returned in cleaned form.
func FundingStage(s string) string {
	s = cleanStage(s)
	if canonical, ok := fundingStages[s]; ok {
		return canonical
	}
	return s
}
