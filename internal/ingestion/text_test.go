package ingestion

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCleanText(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "empty input",
			input:    "",
			expected: "",
		},
		{
			name:     "crlf normalized",
			input:    "line one\r\nline two\rline three",
			expected: "line one\nline two\nline three",
		},
		{
			name:     "whitespace runs collapsed per line",
			input:    "Jane    Doe\nBackend\t\tEngineer",
			expected: "Jane Doe\nBackend Engineer",
		},
		{
			name:     "excessive blank lines collapsed",
			input:    "Summary\n\n\n\n\nExperience",
			expected: "Summary\n\nExperience",
		},
		{
			name:     "leading and trailing whitespace trimmed",
			input:    "\n\n  Jane Doe  \n\n",
			expected: "Jane Doe",
		},
		{
			name:     "bullet markers preserved",
			input:    "- built   services\n* led    team\n• shipped  features",
			expected: "- built services\n* led team\n• shipped features",
		},
		{
			name:     "line structure preserved",
			input:    "Skills\nGo, PostgreSQL\nEducation\nBSc",
			expected: "Skills\nGo, PostgreSQL\nEducation\nBSc",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, CleanText(tt.input))
		})
	}
}

func TestExtractPDFTextRejectsInvalidData(t *testing.T) {
	_, err := ExtractPDFText([]byte("this is not a pdf document"))

	assert.Error(t, err)
}
