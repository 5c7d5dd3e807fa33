package model

import "time"

// FundingRound is a single priced or unpriced round.
type FundingRound struct {
	Type      string   `json:"type" yaml:"type"`
	Amount    float64  `json:"amount,omitempty" yaml:"amount,omitempty"`
	Date      string   `json:"date,omitempty" yaml:"date,omitempty"` // YYYY-MM-DD
	Investors []string `json:"investors,omitempty" yaml:"investors,omitempty"`
}

// Funding aggregates an organization's fundraising history.
type Funding struct {
	TotalRaised *float64       `json:"total_raised,omitempty" yaml:"total_raised,omitempty"`
	Valuation   *float64       `json:"valuation,omitempty" yaml:"valuation,omitempty"`
	LatestRound *FundingRound  `json:"latest_round,omitempty" yaml:"latest_round,omitempty"`
	Rounds      []FundingRound `json:"rounds,omitempty" yaml:"rounds,omitempty"`
}

// Executive is a person listed on an organization's leadership page.
type Executive struct {
	Name  string `json:"name" yaml:"name"`
	Title string `json:"title" yaml:"title"`
	Email string `json:"email,omitempty" yaml:"email,omitempty"`
}

// Organization is an enriched company record.
type Organization struct {
	ID         string      `json:"id" yaml:"id"`
	Name       string      `json:"name" yaml:"name"`
	Domain     string      `json:"domain,omitempty" yaml:"domain,omitempty"`
	Industry   string      `json:"industry,omitempty" yaml:"industry,omitempty"`
	Location   Location    `json:"location" yaml:"location,omitempty"`
	Funding    *Funding    `json:"funding,omitempty" yaml:"funding,omitempty"`
	Investors  []string    `json:"investors,omitempty" yaml:"investors,omitempty"`
	Executives []Executive `json:"executives,omitempty" yaml:"executives,omitempty"`
	EnrichedAt *time.Time  `json:"enriched_at,omitempty" yaml:"enriched_at,omitempty"`
	FactCount  int         `json:"fact_count" yaml:"fact_count"`
}

// TotalRaised returns the total amount raised and whether it is known.
func (o *Organization) TotalRaised() (float64, bool) {
	if o == nil || o.Funding == nil || o.Funding.TotalRaised == nil {
		return 0, false
	}
	return *o.Funding.TotalRaised, true
}

// LatestRoundType returns the type of the most recent round, or "" if the
// organization has no funding data.
func (o *Organization) LatestRoundType() string {
	if o == nil || o.Funding == nil || o.Funding.LatestRound == nil {
		return ""
	}
	return o.Funding.LatestRound.Type
}
