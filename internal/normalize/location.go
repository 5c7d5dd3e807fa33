// Package normalize canonicalizes location, job-title and funding-stage
// strings through static alias tables. Every function is idempotent.
package normalize

import "strings"

// locationAliases maps common shorthand to a canonical city or country.
// No value may also appear as a key.
var locationAliases = map[string]string{
	"sf":              "san francisco",
	"s.f.":            "san francisco",
	"san fran":        "san francisco",
	"bay area":        "san francisco",
	"sf bay area":     "san francisco",
	"nyc":             "new york",
	"ny":              "new york",
	"new york city":   "new york",
	"manhattan":       "new york",
	"la":              "los angeles",
	"l.a.":            "los angeles",
	"dc":              "washington",
	"washington dc":   "washington",
	"washington d.c.": "washington",
	"philly":          "philadelphia",
	"chi":             "chicago",
	"atx":             "austin",
	"uk":              "united kingdom",
	"u.k.":            "united kingdom",
	"us":              "united states",
	"usa":             "united states",
	"u.s.":            "united states",
}

// Location lowercases and trims s, then maps known aliases to their
// canonical form. Unknown input passes through.
func Location(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	if canonical, ok := locationAliases[s]; ok {
		return canonical
	}
	return s
}
