package model

// MatchGrade is a coarse bucket over the final relevance score.
type MatchGrade string

const (
	GradePerfect  MatchGrade = "perfect"
	GradeStrong   MatchGrade = "strong"
	GradeModerate MatchGrade = "moderate"
	GradeWeak     MatchGrade = "weak"
)

// GradeFor maps a final score to its grade.
func GradeFor(score float64) MatchGrade {
	switch {
	case score >= 0.8:
		return GradePerfect
	case score >= 0.6:
		return GradeStrong
	case score >= 0.4:
		return GradeModerate
	default:
		return GradeWeak
	}
}

// SearchResult holds exactly one of Person or Organization.
type SearchResult struct {
	Kind         EntityType    `json:"kind"`
	Person       *Person       `json:"person,omitempty"`
	Organization *Organization `json:"organization,omitempty"`
	// Derived marks a person materialized from an organization's executive
	// list. Derived people are never persisted.
	Derived     bool       `json:"derived,omitempty"`
	Score       float64    `json:"score"`
	Grade       MatchGrade `json:"match_grade"`
	Explanation string     `json:"explanation"`
}

// Name returns the display name of the matched entity.
func (r SearchResult) Name() string {
	switch {
	case r.Person != nil:
		return r.Person.FullName
	case r.Organization != nil:
		return r.Organization.Name
	}
	return ""
}
