package search

import (
	"strings"

	"github.com/sells-group/entity-search/internal/match"
	"github.com/sells-group/entity-search/internal/model"
	"github.com/sells-group/entity-search/internal/normalize"
)

// processedPerson caches the lowercase projections of a Person.
type processedPerson struct {
	src *model.Person

	name        string
	nameTokens  []string
	title       string
	titleTokens []string
	bio         string
	city        string
	state       string
	country     string
	company     string
	tags        []string

	// orgIdx points into Index.orgs for the employer resolved at build
	// time, or -1. It is a snapshot: rebuild the index to re-link.
	orgIdx int
}

// processedOrg caches the lowercase projections of an Organization.
type processedOrg struct {
	src *model.Organization

	name       string
	nameTokens []string
	industry   string
	investors  []string
	city       string
	state      string
	country    string
	stage      string // canonical latest round type
}

// Index is the read-only pre-processed view of the source collections.
// It is built once and never mutated, so concurrent reads are safe.
type Index struct {
	people []processedPerson
	orgs   []processedOrg
	byName map[string]int
}

// NewIndex copies the input collections and precomputes every lowercase
// field, token list and person-to-organization link.
func NewIndex(people []model.Person, orgs []model.Organization) *Index {
	idx := &Index{
		people: make([]processedPerson, len(people)),
		orgs:   make([]processedOrg, len(orgs)),
		byName: make(map[string]int, len(orgs)),
	}

	srcOrgs := append([]model.Organization(nil), orgs...)
	for i := range srcOrgs {
		o := &srcOrgs[i]
		name := lower(o.Name)
		idx.orgs[i] = processedOrg{
			src:        o,
			name:       name,
			nameTokens: match.Tokenize(name),
			industry:   lower(o.Industry),
			investors:  lowerAll(o.Investors),
			city:       lower(o.Location.City),
			state:      lower(o.Location.State),
			country:    lower(o.Location.Country),
			stage:      normalize.FundingStage(o.LatestRoundType()),
		}
		if _, dup := idx.byName[name]; !dup && name != "" {
			idx.byName[name] = i
		}
	}

	srcPeople := append([]model.Person(nil), people...)
	for i := range srcPeople {
		p := &srcPeople[i]
		name := lower(p.FullName)
		title := lower(p.Title)
		company := lower(p.Company)
		orgIdx := -1
		if j, ok := idx.byName[company]; ok && company != "" {
			orgIdx = j
		}
		idx.people[i] = processedPerson{
			src:         p,
			name:        name,
			nameTokens:  match.Tokenize(name),
			title:       title,
			titleTokens: match.Tokenize(title),
			bio:         lower(p.Bio),
			city:        lower(p.Location.City),
			state:       lower(p.Location.State),
			country:     lower(p.Location.Country),
			company:     company,
			tags:        lowerAll(p.Tags),
			orgIdx:      orgIdx,
		}
	}

	return idx
}

// employer returns the organization linked to p, or nil.
func (idx *Index) employer(p *processedPerson) *processedOrg {
	if p.orgIdx < 0 {
		return nil
	}
	return &idx.orgs[p.orgIdx]
}

// Counts returns the number of people, organizations and executive entries
// in the index.
func (idx *Index) Counts() (people, orgs, executives int) {
	for i := range idx.orgs {
		executives += len(idx.orgs[i].src.Executives)
	}
	return len(idx.people), len(idx.orgs), executives
}

func lower(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func lowerAll(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if l := lower(s); l != "" {
			out = append(out, l)
		}
	}
	return out
}
