package search

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/sells-group/entity-search/internal/model"
)

func TestStageScore(t *testing.T) {
	tests := []struct {
		want, have string
		expected   float64
	}{
		{"series a", "series a", 1},
		{"series a", "series b", 0.7},
		{"series b", "series a", 0.7},
		{"seed", "pre-seed", 1},
		{"series a", "seed", 0},
		{"series a", "", 0},
		{"bridge", "bridge", 1},
		{"bridge", "bridges", 1},
		{"bridge", "brigde", 0.6},
	}
	for _, tt := range tests {
		t.Run(tt.want+"/"+tt.have, func(t *testing.T) {
			assert.InDelta(t, tt.expected, stageScore(tt.want, tt.have), 1e-9)
		})
	}
}

func TestFundingRatio(t *testing.T) {
	assert.Equal(t, 1.0, fundingRatio(5, 0))
	assert.Equal(t, 1.0, fundingRatio(20, 10))
	assert.InDelta(t, 0.5, fundingRatio(5, 10), 1e-9)
}

func TestTagHit(t *testing.T) {
	assert.True(t, tagHit("machine learning", []string{"learning"}))
	assert.True(t, tagHit("go", []string{"golang", "go developer"}))
	assert.False(t, tagHit("rust", []string{"", "python"}))
	assert.False(t, tagHit("rust", nil))
}

func TestCompleteness(t *testing.T) {
	assert.Equal(t, 0.0, completeness(0))
	assert.InDelta(t, 0.04, completeness(2), 1e-9)
	assert.Equal(t, maxCompleteness, completeness(500))
}

func TestRecency(t *testing.T) {
	now := time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, maxRecency, recency(nil, now), "missing timestamp counts as fresh")

	recent := now.AddDate(0, -2, 0)
	assert.Equal(t, maxRecency, recency(&recent, now))

	future := now.AddDate(0, 1, 0)
	assert.Equal(t, maxRecency, recency(&future, now))

	// 12/(m+1) only drops below the cap after roughly 20 years.
	ancient := now.Add(-time.Duration(24*30*299) * time.Hour)
	assert.InDelta(t, 0.04, recency(&ancient, now), 1e-9)
}

func TestScorecard(t *testing.T) {
	var sc scorecard
	assert.Equal(t, "no direct match", sc.explanation())

	sc.add(0.5, "title %.2f", 1.0)
	sc.add(0.2, "location %s", "boston")
	assert.InDelta(t, 0.7, sc.score, 1e-9)
	assert.Equal(t, "title 1.00, location boston", sc.explanation())
}

func TestBestLocation(t *testing.T) {
	assert.Equal(t, 1.0, bestLocation("san francisco", "san francisco", "ca", "usa"))
	assert.Equal(t, 1.0, bestLocation("ca", "", "ca", ""))
	assert.Equal(t, 0.0, bestLocation("san francisco", "menlo park", "ca", "usa"))
	assert.Equal(t, 0.0, bestLocation("boston"))
}

func TestSlugify(t *testing.T) {
	assert.Equal(t, "john-smith", slugify("John Smith"))
	assert.Equal(t, "mary-jane-o-neil", slugify("  Mary-Jane O'Neil "))
}

func TestSyntheticPerson(t *testing.T) {
	org := &model.Organization{
		ID:       "o1",
		Name:     "Acme",
		Location: model.Location{City: "Austin", State: "TX"},
	}
	p := syntheticPerson(model.Executive{Name: "Ada Park", Title: "CFO"}, org)
	assert.Equal(t, "exec-o1-ada-park", p.ID)
	assert.Equal(t, "Ada Park", p.FullName)
	assert.Equal(t, "CFO", p.Title)
	assert.Equal(t, "Acme", p.Company)
	assert.Equal(t, "Austin", p.Location.City)
}
