package search

import (
	"time"

	"github.com/sells-group/entity-search/internal/match"
	"github.com/sells-group/entity-search/internal/query"
)

// scoreOrganization scores an organization. Unlike people, organizations
// are kept even with no matching signal; only the industry, location and
// minimum-funding filters exclude. The funding-stage filter only boosts.
func scoreOrganization(o *processedOrg, pq *query.ParsedQuery, now time.Time) (sc scorecard, ok bool) {
	f := &pq.Filters
	variants := pq.Expanded

	if s := match.ScoreField(variants, o.name, o.nameTokens); s > 0 {
		sc.add(s*weightName, "name %.2f", s)
	}
	if s := match.ScoreField(variants, o.industry, nil); s > 0 {
		sc.add(s*weightIndustry, "industry %.2f", s)
	}

	if f.Industry != "" {
		s := match.FuzzyScore(lower(f.Industry), o.industry)
		if s < filterThreshold {
			return sc, false
		}
		sc.add(s*weightIndustryFilter, "industry filter %s", o.src.Industry)
	}

	if f.Location != "" {
		s := bestLocation(f.Location, o.city, o.state, o.country)
		if s < filterThreshold {
			return sc, false
		}
		sc.add(s*weightLocation, "location %s", f.Location)
	}

	// Investor names are short and collide easily, so only strong matches
	// count, once per investor.
	for _, inv := range o.investors {
		if s := match.ScoreField(variants, inv, nil); s > investorThreshold {
			sc.add(s*weightInvestor, "investor %s", inv)
		}
	}

	if f.FundingStage != "" && o.stage != "" {
		if s := stageScore(f.FundingStage, o.stage); s >= filterThreshold {
			sc.add(s*weightStage, "funding stage %s", o.stage)
		}
	}

	if f.MinFunding != nil {
		total, known := o.src.TotalRaised()
		if !known || total < *f.MinFunding {
			return sc, false
		}
		sc.add(fundingRatio(total, *f.MinFunding)*weightFunding, "raised %.0f", total)
	}

	sc.score += completeness(o.src.FactCount) + recency(o.src.EnrichedAt, now)
	return sc, true
}
