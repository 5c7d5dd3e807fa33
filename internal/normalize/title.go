package normalize

import (
	"regexp"
	"sort"
	"strings"
)

// titleAliases maps abbreviations and role variants to canonical title
// words. Canonical values never contain a key as a whole word, which keeps
// Title idempotent.
var titleAliases = map[string]string{
	"cto":                "chief technology officer",
	"ceo":                "chief executive officer",
	"cfo":                "chief financial officer",
	"coo":                "chief operating officer",
	"cmo":                "chief marketing officer",
	"cpo":                "chief product officer",
	"vp":                 "vice president",
	"svp":                "senior vice president",
	"evp":                "executive vice president",
	"sr":                 "senior",
	"jr":                 "junior",
	"mgr":                "manager",
	"eng":                "engineer",
	"dev":                "software engineer",
	"developer":          "software engineer",
	"programmer":         "software engineer",
	"swe":                "software engineer",
	"software dev":       "software engineer",
	"software developer": "software engineer",
	"pm":                 "product manager",
	"em":                 "engineering manager",
	"ml":                 "machine learning",
}

var (
	titleAliasRe = buildAliasPattern(titleAliases)
	titleSpaceRe = regexp.MustCompile(`\s+`)
)

// buildAliasPattern compiles a single word-bounded alternation over the
// table keys, longest first, so multi-word aliases win over their parts.
func buildAliasPattern(table map[string]string) *regexp.Regexp {
	keys := make([]string, 0, len(table))
	for k := range table {
		keys = append(keys, regexp.QuoteMeta(k))
	}
	sort.Slice(keys, func(i, j int) bool {
		if len(keys[i]) != len(keys[j]) {
			return len(keys[i]) > len(keys[j])
		}
		return keys[i] < keys[j]
	})
	return regexp.MustCompile(`\b(` + strings.Join(keys, "|") + `)\b`)
}

// Title lowercases and trims s and replaces every aliased token with its
// canonical form, so "Sr Dev" becomes "senior software engineer" and
// "cto" becomes "chief technology officer". Unaliased words pass through.
func Title(s string) string {
	s = titleSpaceRe.ReplaceAllString(strings.ToLower(strings.TrimSpace(s)), " ")
	if s == "" {
		return s
	}
	return titleAliasRe.ReplaceAllStringFunc(s, func(m string) string {
		return titleAliases[m]
	})
}
