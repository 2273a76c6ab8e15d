package matching

import (
	"testing"

	"github.com/jonathan/resume-portfolio/internal/types"
	"github.com/stretchr/testify/assert"
)

func TestClampScore(t *testing.T) {
	tests := []struct {
		name     string
		input    float64
		expected float64
	}{
		{"negative clamps to zero", -5, 0},
		{"above range clamps to 100", 107.3, 100},
		{"in range unchanged", 55, 55},
		{"rounds to one decimal", 42.36, 42.4},
		{"zero stays zero", 0, 0},
		{"hundred stays hundred", 100, 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ClampScore(tt.input))
		})
	}
}

func scoredResume() types.Resume {
	return types.Resume{
		Personal: types.Personal{
			Title:   "Backend Engineer",
			Summary: "Builds distributed systems in Go with PostgreSQL and Kafka.",
		},
		Skills: []string{"Go", "PostgreSQL", "Kafka"},
		Experience: []types.Experience{
			{Company: "Acme", Role: "Engineer", Description: "Designed event pipelines."},
		},
		Projects: []types.Project{
			{Name: "CLI Tool", Description: "Terminal tooling", Tech: []string{"Go"}},
		},
		Education: []string{"BSc Computer Science"},
	}
}

func TestMatchScoreEmptyJobDescriptionIsBaseline(t *testing.T) {
	assert.Equal(t, 30.0, MatchScore(scoredResume(), ""))
}

func TestMatchScoreStopWordsOnlyIsBaseline(t *testing.T) {
	assert.Equal(t, 30.0, MatchScore(scoredResume(), "the and for with your team role"))
}

func TestMatchScoreFullOverlapWithAllSectionsIsMaximal(t *testing.T) {
	// Every job description token appears in the resume corpus and every
	// structure bonus applies: 20 + 55 + 8 + 8 + 5 + 4 = 100.
	score := MatchScore(scoredResume(), "postgresql kafka distributed pipelines")

	assert.Equal(t, 100.0, score)
}

func TestMatchScoreNoOverlapSparseResume(t *testing.T) {
	resume := types.Resume{Personal: types.Personal{Summary: "Gardening enthusiast."}}

	// Zero coverage and no structure bonus leaves only the base of 20.
	assert.Equal(t, 20.0, MatchScore(resume, "kubernetes terraform aws"))
}

func TestMatchScoreIsDeterministic(t *testing.T) {
	jd := "Looking for a Go engineer with Kafka and PostgreSQL experience."
	first := MatchScore(scoredResume(), jd)

	for i := 0; i < 5; i++ {
		assert.Equal(t, first, MatchScore(scoredResume(), jd))
	}
}

func TestMatchScoreWithinBounds(t *testing.T) {
	score := MatchScore(scoredResume(), "go kafka postgresql unrelatedtoken anotherunrelated")

	assert.GreaterOrEqual(t, score, 0.0)
	assert.LessOrEqual(t, score, 100.0)
}
