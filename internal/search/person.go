package search

import (
	"strings"
	"time"

	"github.com/sells-group/entity-search/internal/match"
	"github.com/sells-group/entity-search/internal/query"
)

// scorePerson scores a stored person. ok is false when a hard filter fails
// or when nothing at all matched.
func (e *Engine) scorePerson(p *processedPerson, pq *query.ParsedQuery, now time.Time) (sc scorecard, ok bool) {
	f := &pq.Filters
	variants := pq.Expanded

	if s := match.ScoreField(variants, p.name, p.nameTokens); s > 0 {
		sc.add(s*weightName, "name %.2f", s)
	}
	if s := match.ScoreField(variants, p.title, p.titleTokens); s > 0 {
		sc.add(s*weightTitle, "title %.2f", s)
	}
	if s := match.ScoreField(variants, p.bio, nil); s > 0 {
		sc.add(s*weightBio, "bio %.2f", s)
	}
	for _, tag := range p.tags {
		if tagHit(tag, variants) {
			sc.add(tagBonus, "tag %s", tag)
		}
	}
	textSignals := len(sc.reasons)

	if f.Location != "" {
		s := bestLocation(f.Location, p.city, p.state, p.country)
		if s < filterThreshold {
			return sc, false
		}
		sc.add(s*weightLocation, "location %s", f.Location)
	}

	if f.Role != "" {
		s := match.ScoreField([]string{f.Role}, p.title, p.titleTokens)
		if s < roleThreshold {
			return sc, false
		}
		sc.add(s, "role %s", f.Role)
	}

	org := e.index.employer(p)

	// Funding stage is only known through the employer, so a person
	// without a linked, funded employer cannot satisfy it.
	if f.FundingStage != "" {
		if org == nil || org.stage == "" {
			return sc, false
		}
		s := stageScore(f.FundingStage, org.stage)
		if s < filterThreshold {
			return sc, false
		}
		sc.add(s*weightStage, "funding stage %s", org.stage)
	}

	// Minimum funding only boosts; missing funding data never excludes.
	if f.MinFunding != nil && org != nil {
		if total, known := org.src.TotalRaised(); known {
			sc.add(fundingRatio(total, *f.MinFunding)*weightFunding, "raised %.0f", total)
		}
	}

	if f.Company != "" {
		s := match.FuzzyScore(lower(f.Company), p.company)
		if s < filterThreshold {
			return sc, false
		}
		// A bare company match does not make every employee relevant.
		if textSignals == 0 {
			return sc, false
		}
		sc.add(s*weightCompany, "company %s", p.src.Company)
	}

	if len(f.Tags) > 0 {
		hit := ""
		for _, want := range f.Tags {
			if want = lower(want); want != "" && anyTagOverlaps(want, p.tags) {
				hit = want
				break
			}
		}
		if hit == "" {
			return sc, false
		}
		sc.add(tagFilterBonus, "tag filter %s", hit)
	}

	if len(sc.reasons) == 0 {
		return sc, false
	}

	sc.score += completeness(p.src.FactCount) + recency(p.src.EnrichedAt, now)
	return sc, true
}

func anyTagOverlaps(want string, tags []string) bool {
	for _, tag := range tags {
		if strings.Contains(tag, want) || strings.Contains(want, tag) {
			return true
		}
	}
	return false
}
