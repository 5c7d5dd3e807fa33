// Package query turns a raw SearchQuery into a ParsedQuery: normalized
// text, implicit filters pulled from the text, canonical filter values and
// the synonym variants used for matching.
package query

import (
	"regexp"

	"github.com/sells-group/entity-search/internal/match"
	"github.com/sells-group/entity-search/internal/model"
	"github.com/sells-group/entity-search/internal/normalize"
)

var (
	personHintRe = regexp.MustCompile(`\b(engineers?|developers?|cto|ceo|founders?|people|person)\b`)
	orgHintRe    = regexp.MustCompile(`\b(compan(y|ies)|startups?|firms?|agenc(y|ies))\b`)
)

// ParsedQuery is a SearchQuery with filters merged and normalized, plus the
// residual query text and its synonym variants. It lives for one search.
type ParsedQuery struct {
	model.SearchQuery

	// Normalized is the query text after normalization and removal of
	// extracted filter phrases.
	Normalized string
	// Expanded holds Normalized and its synonym variants. It is empty when
	// the whole query was consumed by filter extraction.
	Expanded []string
}

// Parser parses search queries. The zero value is not usable; call
// NewParser.
type Parser struct {
	location Extractor
	stage    Extractor
	company  Extractor
	expand   func(string) []string
}

// Option configures a Parser.
type Option func(*Parser)

// WithLocationExtractor replaces the "in <place>" heuristic.
func WithLocationExtractor(e Extractor) Option {
	return func(p *Parser) { p.location = e }
}

// WithFundingStageExtractor replaces the funding-stage heuristic.
func WithFundingStageExtractor(e Extractor) Option {
	return func(p *Parser) { p.stage = e }
}

// WithCompanyExtractor replaces the "at <company>" heuristic.
func WithCompanyExtractor(e Extractor) Option {
	return func(p *Parser) { p.company = e }
}

// WithExpander replaces synonym expansion.
func WithExpander(fn func(string) []string) Option {
	return func(p *Parser) { p.expand = fn }
}

// NewParser creates a Parser with the regex extractors and the built-in
// synonym table.
func NewParser(opts ...Option) *Parser {
	p := &Parser{
		location: LocationExtractor(),
		stage:    FundingStageExtractor(),
		company:  CompanyExtractor(),
		expand:   Expand,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Parse runs the parsing steps in order; each extraction works on the text
// left over by the previous one. Explicit filters are never overwritten.
func (p *Parser) Parse(q model.SearchQuery) ParsedQuery {
	text := match.NormalizeText(q.Text)
	filters := q.Filters
	filters.Tags = append([]string(nil), q.Filters.Tags...)

	entity := q.EntityType
	if entity == "" || entity == model.EntityBoth {
		entity = inferEntityType(text, entity)
	}

	if filters.Location == "" {
		if v, rest, ok := p.location.Extract(text); ok {
			filters.Location, text = v, rest
		}
	}
	// Funding stage runs before company so "at series a" is not a company.
	if filters.FundingStage == "" {
		if v, rest, ok := p.stage.Extract(text); ok {
			filters.FundingStage, text = v, rest
		}
	}
	if filters.Company == "" {
		if v, rest, ok := p.company.Extract(text); ok {
			filters.Company, text = v, rest
		}
	}

	filters.Location = normalize.Location(filters.Location)
	filters.Role = normalize.Title(filters.Role)
	filters.FundingStage = normalize.FundingStage(filters.FundingStage)

	parsed := q
	parsed.Filters = filters
	parsed.EntityType = entity

	return ParsedQuery{
		SearchQuery: parsed,
		Normalized:  text,
		Expanded:    p.expand(text),
	}
}

// inferEntityType looks for person or organization words in the text.
// Person words win when both appear; with neither, current is kept.
func inferEntityType(text string, current model.EntityType) model.EntityType {
	switch {
	case personHintRe.MatchString(text):
		return model.EntityPerson
	case orgHintRe.MatchString(text):
		return model.EntityOrganization
	}
	return current
}
