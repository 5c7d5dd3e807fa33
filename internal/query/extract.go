package query

import (
	"regexp"
	"strings"
)

// Extractor pulls one implicit filter out of normalized query text. It
// returns the extracted value and the text with the matched phrase removed.
// Regex heuristics are the default; a tokenizer or NER-backed strategy can
// replace any of them without touching scoring.
type Extractor interface {
	Extract(text string) (value, residual string, ok bool)
}

// ExtractorFunc adapts a function to the Extractor interface.
type ExtractorFunc func(text string) (value, residual string, ok bool)

// Extract calls f(text).
func (f ExtractorFunc) Extract(text string) (string, string, bool) {
	return f(text)
}

// maxPhraseLen bounds an extracted location or company phrase.
const maxPhraseLen = 30

var (
	locationLeadRe = regexp.MustCompile(`\bin\s+([a-z][a-z ]*)`)
	companyLeadRe  = regexp.MustCompile(`\bat\s+([a-z0-9$][a-z0-9$_ ]*)`)
	stageRe        = regexp.MustCompile(`\b(series [a-e]|pre ?seed|seed|ipo)\b`)
	genericOrgRe   = regexp.MustCompile(`^(a|an|the|any|some)( [a-z0-9]+)* (compan(y|ies)|startups?|firms?|orgs?)$`)
	spaceRe        = regexp.MustCompile(`\s+`)
)

// phraseStops end a location or company phrase.
var phraseStops = map[string]bool{
	"at": true, "in": true, "with": true, "who": true, "that": true,
	"from": true, "for": true, "and": true, "working": true, "building": true,
	"doing": true, "on": true,
}

// locationRejects disqualify a location candidate ("in a funded company").
var locationRejects = []string{"startup", "company", "series"}

// companyStoplist holds phrases that follow "at" without naming a company.
var companyStoplist = map[string]bool{
	"least": true, "most": true, "the": true, "home": true, "work": true,
	"school": true, "university": true, "series": true, "funded": true,
	"company": true, "startup": true, "startups": true, "a": true,
}

// leadingPhrase collects words from s up to the first stop word, keeping
// the phrase within maxPhraseLen characters.
func leadingPhrase(s string) string {
	var words []string
	n := 0
	for _, w := range strings.Fields(s) {
		if phraseStops[w] {
			break
		}
		add := len(w)
		if len(words) > 0 {
			add++
		}
		if n+add > maxPhraseLen {
			break
		}
		words = append(words, w)
		n += add
	}
	return strings.Join(words, " ")
}

// removePhrase cuts text[start:end] and re-collapses whitespace.
func removePhrase(text string, start, end int) string {
	out := text[:start] + " " + text[end:]
	return strings.TrimSpace(spaceRe.ReplaceAllString(out, " "))
}

// LocationExtractor finds "in <place>" phrases.
func LocationExtractor() Extractor {
	return ExtractorFunc(func(text string) (string, string, bool) {
		for _, m := range locationLeadRe.FindAllStringSubmatchIndex(text, -1) {
			phrase := leadingPhrase(text[m[2]:m[3]])
			if phrase == "" || containsAny(phrase, locationRejects) {
				continue
			}
			end := m[2] + len(phrase)
			return phrase, removePhrase(text, m[0], end), true
		}
		return "", text, false
	})
}

// FundingStageExtractor finds "series a".."series e", "seed", "pre seed" and
// "ipo". When the stage follows "at", the whole "at <stage>" phrase is
// removed so it is not later read as a company.
func FundingStageExtractor() Extractor {
	return ExtractorFunc(func(text string) (string, string, bool) {
		loc := stageRe.FindStringIndex(text)
		if loc == nil {
			return "", text, false
		}
		stage := text[loc[0]:loc[1]]
		start := loc[0]
		if strings.HasSuffix(" "+text[:start], " at ") {
			start -= len("at ")
		}
		return stage, removePhrase(text, start, loc[1]), true
	})
}

// CompanyExtractor finds "at <company>" phrases, skipping generic ones such
// as "at least", "at home" or "at a startup".
func CompanyExtractor() Extractor {
	return ExtractorFunc(func(text string) (string, string, bool) {
		for _, m := range companyLeadRe.FindAllStringSubmatchIndex(text, -1) {
			phrase := leadingPhrase(text[m[2]:m[3]])
			if len(phrase) < 2 || isGenericCompany(phrase) {
				continue
			}
			end := m[2] + len(phrase)
			return phrase, removePhrase(text, m[0], end), true
		}
		return "", text, false
	})
}

func isGenericCompany(phrase string) bool {
	if companyStoplist[phrase] || genericOrgRe.MatchString(phrase) {
		return true
	}
	first := strings.Fields(phrase)[0]
	return first == "least" || first == "most" || first == "home" || first == "work"
}

func containsAny(s string, subs []string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
