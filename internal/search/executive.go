package search

import (
	"regexp"
	"strings"

	"github.com/sells-group/entity-search/internal/match"
	"github.com/sells-group/entity-search/internal/model"
	"github.com/sells-group/entity-search/internal/query"
)

var slugRe = regexp.MustCompile(`[^a-z0-9]+`)

// scoreExecutive scores an organization's executive entry as a person.
// Filters read the organization's fields. The employer-context boost is
// only granted on top of a real match, so an executive never surfaces on
// company membership alone.
func scoreExecutive(ex model.Executive, org *processedOrg, pq *query.ParsedQuery) (sc scorecard, ok bool) {
	f := &pq.Filters
	name := lower(ex.Name)
	title := lower(ex.Title)
	titleTokens := match.Tokenize(title)

	for _, v := range pq.Expanded {
		if v != "" && strings.Contains(name, v) {
			sc.add(weightName, "name %s", v)
			break
		}
	}
	if s := match.ScoreField(pq.Expanded, title, titleTokens); s > 0 {
		sc.add(s*weightTitle, "title %.2f", s)
	}

	if f.Location != "" {
		s := bestLocation(f.Location, org.city, org.state, org.country)
		if s < filterThreshold {
			return sc, false
		}
		sc.add(s*weightLocation, "location %s", f.Location)
	}

	if f.Role != "" {
		s := match.ScoreField([]string{f.Role}, title, titleTokens)
		if s < roleThreshold {
			return sc, false
		}
		sc.add(s, "role %s", f.Role)
	}

	if f.FundingStage != "" {
		s := stageScore(f.FundingStage, org.stage)
		if s < filterThreshold {
			return sc, false
		}
		sc.add(s*weightStage, "funding stage %s", org.stage)
	}

	if f.MinFunding != nil {
		if total, known := org.src.TotalRaised(); known {
			sc.add(fundingRatio(total, *f.MinFunding)*weightFunding, "raised %.0f", total)
		}
	}

	// Executive entries carry no tags.
	if len(f.Tags) > 0 {
		return sc, false
	}

	if len(sc.reasons) == 0 {
		return sc, false
	}

	if f.Company != "" {
		s := match.FuzzyScore(lower(f.Company), org.name)
		if s < filterThreshold {
			return sc, false
		}
		sc.add(s*weightCompany, "company %s", org.src.Name)
	} else {
		sc.add(employerContext, "executive at %s", org.src.Name)
	}

	return sc, sc.score > 0
}

// syntheticPerson materializes an executive entry as a Person. It is never
// stored.
func syntheticPerson(ex model.Executive, org *model.Organization) model.Person {
	return model.Person{
		ID:       "exec-" + org.ID + "-" + slugify(ex.Name),
		FullName: ex.Name,
		Title:    ex.Title,
		Company:  org.Name,
		Location: org.Location,
	}
}

func slugify(s string) string {
	return strings.Trim(slugRe.ReplaceAllString(strings.ToLower(s), "-"), "-")
}
