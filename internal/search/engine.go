// Package search ranks people and organizations against a parsed query.
//
// The Engine scans a pre-processed Index linearly, scores every candidate
// from independent weighted signals, drops candidates that fail a hard
// filter, and returns the survivors sorted by score. It performs no I/O and
// never mutates the source collections.
package search

import (
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/sells-group/entity-search/internal/model"
	"github.com/sells-group/entity-search/internal/query"
)

// Engine answers search queries over an immutable Index.
type Engine struct {
	index  *Index
	parser *query.Parser
	now    func() time.Time
}

// Option configures an Engine.
type Option func(*Engine)

// WithClock sets the time source used by the recency boost.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}

// WithParser replaces the default query parser.
func WithParser(p *query.Parser) Option {
	return func(e *Engine) { e.parser = p }
}

// NewEngine indexes people and orgs. To pick up changed source data, build
// a new Engine.
func NewEngine(people []model.Person, orgs []model.Organization, opts ...Option) *Engine {
	e := &Engine{
		index:  NewIndex(people, orgs),
		parser: query.NewParser(),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Stats describes what an Engine has indexed.
type Stats struct {
	People        int `json:"people"`
	Organizations int `json:"organizations"`
	Executives    int `json:"executives"`
}

// Stats returns the indexed collection sizes.
func (e *Engine) Stats() Stats {
	p, o, x := e.index.Counts()
	return Stats{People: p, Organizations: o, Executives: x}
}

// Search validates q, scores every candidate of the requested entity type
// and returns the matches sorted by descending score. Invalid input yields
// a *model.ValidationError and no results.
func (e *Engine) Search(q *model.SearchQuery) ([]model.SearchResult, error) {
	if err := q.Validate(); err != nil {
		return nil, err
	}
	start := time.Now()

	pq := e.parser.Parse(*q)
	now := e.now()

	entity := pq.EntityType
	if entity == "" {
		entity = model.EntityPerson
	}

	var results []model.SearchResult
	if entity == model.EntityPerson || entity == model.EntityBoth {
		results = e.searchPeople(&pq, now, results)
		results = e.searchExecutives(&pq, results)
	}
	if entity == model.EntityOrganization || entity == model.EntityBoth {
		results = e.searchOrganizations(&pq, now, results)
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})
	if q.Limit > 0 && len(results) > q.Limit {
		results = results[:q.Limit]
	}

	zap.L().Debug("search: complete",
		zap.String("entity_type", string(entity)),
		zap.String("text", pq.Normalized),
		zap.Strings("expanded", pq.Expanded),
		zap.String("location", pq.Filters.Location),
		zap.String("company", pq.Filters.Company),
		zap.String("funding_stage", pq.Filters.FundingStage),
		zap.Int("results", len(results)),
		zap.Duration("elapsed", time.Since(start)),
	)

	return results, nil
}

func (e *Engine) searchPeople(pq *query.ParsedQuery, now time.Time, out []model.SearchResult) []model.SearchResult {
	for i := range e.index.people {
		p := &e.index.people[i]
		sc, ok := e.scorePerson(p, pq, now)
		if !ok {
			continue
		}
		person := *p.src
		out = append(out, newResult(model.EntityPerson, sc, func(r *model.SearchResult) {
			r.Person = &person
		}))
	}
	return out
}

func (e *Engine) searchExecutives(pq *query.ParsedQuery, out []model.SearchResult) []model.SearchResult {
	for i := range e.index.orgs {
		org := &e.index.orgs[i]
		for _, ex := range org.src.Executives {
			if hasPersonNamed(out, ex.Name) {
				continue
			}
			sc, ok := scoreExecutive(ex, org, pq)
			if !ok {
				continue
			}
			person := syntheticPerson(ex, org.src)
			out = append(out, newResult(model.EntityPerson, sc, func(r *model.SearchResult) {
				r.Person = &person
				r.Derived = true
			}))
		}
	}
	return out
}

func (e *Engine) searchOrganizations(pq *query.ParsedQuery, now time.Time, out []model.SearchResult) []model.SearchResult {
	for i := range e.index.orgs {
		o := &e.index.orgs[i]
		sc, ok := scoreOrganization(o, pq, now)
		if !ok {
			continue
		}
		org := *o.src
		out = append(out, newResult(model.EntityOrganization, sc, func(r *model.SearchResult) {
			r.Organization = &org
		}))
	}
	return out
}

func newResult(kind model.EntityType, sc scorecard, fill func(*model.SearchResult)) model.SearchResult {
	r := model.SearchResult{
		Kind:        kind,
		Score:       sc.score,
		Grade:       model.GradeFor(sc.score),
		Explanation: sc.explanation(),
	}
	fill(&r)
	return r
}

// hasPersonNamed reports whether results already hold a person with the
// given name, compared case-insensitively.
func hasPersonNamed(results []model.SearchResult, name string) bool {
	name = strings.TrimSpace(name)
	for _, r := range results {
		if r.Person != nil && strings.EqualFold(strings.TrimSpace(r.Person.FullName), name) {
			return true
		}
	}
	return false
}
