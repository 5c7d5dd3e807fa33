package model

import "time"

// Location is a free-form city/state/country triple. Any part may be empty.
type Location struct {
	City    string `json:"city,omitempty" yaml:"city,omitempty"`
	State   string `json:"state,omitempty" yaml:"state,omitempty"`
	Country string `json:"country,omitempty" yaml:"country,omitempty"`
}

// IsZero reports whether no part of the location is set.
func (l Location) IsZero() bool {
	return l.City == "" && l.State == "" && l.Country == ""
}

// Person is an enriched person record. Records are treated as immutable
// once handed to a search engine.
type Person struct {
	ID         string     `json:"id" yaml:"id"`
	FullName   string     `json:"full_name" yaml:"full_name"`
	Title      string     `json:"title,omitempty" yaml:"title,omitempty"`
	Company    string     `json:"company,omitempty" yaml:"company,omitempty"`
	Location   Location   `json:"location" yaml:"location,omitempty"`
	Bio        string     `json:"bio,omitempty" yaml:"bio,omitempty"`
	Tags       []string   `json:"tags,omitempty" yaml:"tags,omitempty"`
	EnrichedAt *time.Time `json:"enriched_at,omitempty" yaml:"enriched_at,omitempty"`
	FactCount  int        `json:"fact_count" yaml:"fact_count"`
}
