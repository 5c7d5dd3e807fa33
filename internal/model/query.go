package model

import "strings"

// EntityType selects which collections a search scans.
type EntityType string

const (
	EntityPerson       EntityType = "person"
	EntityOrganization EntityType = "organization"
	EntityBoth         EntityType = "both"
)

// Valid reports whether t is empty or one of the known entity types.
func (t EntityType) Valid() bool {
	switch t {
	case "", EntityPerson, EntityOrganization, EntityBoth:
		return true
	}
	return false
}

// Filters are structured constraints attached to a search query.
type Filters struct {
	Location     string   `json:"location,omitempty"`
	Role         string   `json:"role,omitempty"`
	Company      string   `json:"company,omitempty"`
	Industry     string   `json:"industry,omitempty"`
	Tags         []string `json:"tags,omitempty"`
	FundingStage string   `json:"funding_stage,omitempty"`
	MinFunding   *float64 `json:"min_funding,omitempty"`
}

// SearchQuery is the full input of a search call.
type SearchQuery struct {
	Text       string     `json:"text"`
	Filters    Filters    `json:"filters"`
	Scope      string     `json:"scope,omitempty"`
	EntityType EntityType `json:"entity_type,omitempty"`
	Limit      int        `json:"limit,omitempty"` // 0 = unlimited
}

// Validate checks the query before any scoring takes place.
func (q *SearchQuery) Validate() error {
	if q == nil {
		return NewValidationError("query", "is required")
	}
	if strings.TrimSpace(q.Text) == "" {
		return NewValidationError("text", "must be a non-empty string")
	}
	if q.Filters.MinFunding != nil && *q.Filters.MinFunding < 0 {
		return NewValidationError("filters.min_funding", "must be >= 0")
	}
	if !q.EntityType.Valid() {
		return NewValidationError("entity_type", "must be person, organization or both")
	}
	if q.Limit < 0 {
		return NewValidationError("limit", "must be >= 0")
	}
	return nil
}
