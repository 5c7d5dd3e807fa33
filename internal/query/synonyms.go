package query

import "strings"

// synonyms maps a phrase or a single word to alternate spellings that
// should also match. Lookups are done on the whole query and on each word.
var synonyms = map[string][]string{
	// Roles.
	"software engineer": {"developer", "software developer", "swe", "programmer"},
	"developer":         {"software engineer", "software developer", "programmer"},
	"engineer":          {"developer", "software engineer"},
	"programmer":        {"developer", "software engineer"},
	"swe":               {"software engineer", "developer"},
	"cto":               {"chief technology officer", "tech lead"},
	"ceo":               {"chief executive officer", "founder"},
	"cfo":               {"chief financial officer"},
	"coo":               {"chief operating officer"},
	"founder":           {"co-founder", "cofounder"},
	"vp":                {"vice president"},
	"pm":                {"product manager"},
	"designer":          {"ux designer", "product designer"},

	// Organizations and investors.
	"startup": {"company", "early stage"},
	"vc":      {"venture capital", "venture capitalist", "investor"},
	"fintech": {"financial technology", "payments"},
	"ai":      {"artificial intelligence", "machine learning"},

	// Nicknames.
	"mike":  {"michael"},
	"matt":  {"matthew"},
	"bob":   {"robert"},
	"rob":   {"robert"},
	"bill":  {"william"},
	"jim":   {"james"},
	"dave":  {"david"},
	"chris": {"christopher"},
	"liz":   {"elizabeth"},
	"beth":  {"elizabeth"},
	"alex":  {"alexander", "alexandra"},
	"kate":  {"katherine"},
	"tom":   {"thomas"},
	"dan":   {"daniel"},
	"sam":   {"samuel", "samantha"},
	"jen":   {"jennifer"},
}

// Expand returns the lowercased, trimmed input together with every synonym
// of the whole phrase and of each of its words. Order is first-seen; the
// original text always comes first. Empty input expands to nothing.
func Expand(text string) []string {
	text = strings.ToLower(strings.TrimSpace(text))
	if text == "" {
		return nil
	}

	seen := map[string]bool{text: true}
	out := []string{text}
	add := func(variants []string) {
		for _, v := range variants {
			if !seen[v] {
				seen[v] = true
				out = append(out, v)
			}
		}
	}

	add(synonyms[text])
	for _, word := range strings.Fields(text) {
		add(synonyms[word])
	}
	return out
}
