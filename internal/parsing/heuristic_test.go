package parsing

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleResumeText = `Jane Doe
Backend Engineer
jane@example.com
555-123-4567
https://github.com/janedoe
https://linkedin.com/in/janedoe

Summary
Builds reliable distributed services in Go.

Skills
Go, PostgreSQL, Kafka

Experience
Acme Corp, Senior Engineer
Designed event pipelines processing millions of messages daily
Led migration from a monolith to services

Education
BSc Computer Science, State University
`

func TestExtractHeuristicallySampleResume(t *testing.T) {
	result := ExtractHeuristically(sampleResumeText)

	assert.Equal(t, "Jane Doe", result.Personal.Name)
	assert.Equal(t, "Backend Engineer", result.Personal.Title)
	assert.Contains(t, result.Personal.Summary, "reliable distributed services")
	assert.Equal(t, "jane@example.com", result.Contact.Email)
	assert.Contains(t, result.Contact.Phone, "555")
	assert.Equal(t, "https://github.com/janedoe", result.Links.GitHub)
	assert.Equal(t, "https://linkedin.com/in/janedoe", result.Links.LinkedIn)
	assert.Equal(t, []string{"Go", "PostgreSQL", "Kafka"}, result.Skills)

	require.NotEmpty(t, result.Experience)
	assert.Contains(t, result.Experience[0].Role, "Acme Corp")
	require.NotEmpty(t, result.Education)
	assert.Contains(t, result.Education[0], "BSc Computer Science")
}

func TestExtractHeuristicallyEmptyText(t *testing.T) {
	result := ExtractHeuristically("")

	assert.False(t, result.HasContent())
}

func TestExtractHeuristicallySectionStopsAtNextHeading(t *testing.T) {
	text := strings.Join([]string{
		"Skills",
		"Go",
		"Education",
		"BSc Mathematics",
	}, "\n")

	result := ExtractHeuristically(text)

	assert.Equal(t, []string{"Go"}, result.Skills)
	assert.Equal(t, []string{"BSc Mathematics"}, result.Education)
}

func TestExtractHeuristicallyCapsExperienceEntries(t *testing.T) {
	lines := []string{"Experience"}
	for i := 0; i < 12; i++ {
		lines = append(lines, "Worked on a meaningful project with measurable impact")
	}

	result := ExtractHeuristically(strings.Join(lines, "\n"))

	assert.Len(t, result.Experience, 6)
}

func TestExtractHeuristicallyClassifiesPortfolioURL(t *testing.T) {
	text := "John Smith\nhttps://johnsmith.dev\nhttps://github.com/jsmith"

	result := ExtractHeuristically(text)

	assert.Equal(t, "https://johnsmith.dev", result.Links.Portfolio)
	assert.Equal(t, "https://github.com/jsmith", result.Links.GitHub)
}
