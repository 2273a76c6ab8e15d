package parsing

import (
	"context"
	"errors"
	"testing"

	"github.com/google/generative-ai-go/genai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// MockLLMClient implements llm.Client for testing
type MockLLMClient struct {
	GenerateContentFunc    func(ctx context.Context, prompt string) (string, error)
	GenerateJSONFunc       func(ctx context.Context, prompt string) (string, error)
	GenerateStructuredFunc func(ctx context.Context, prompt string, schema *genai.Schema) (string, error)
}

func (m *MockLLMClient) GenerateContent(ctx context.Context, prompt string) (string, error) {
	if m.GenerateContentFunc != nil {
		return m.GenerateContentFunc(ctx, prompt)
	}
	return "", nil
}

func (m *MockLLMClient) GenerateJSON(ctx context.Context, prompt string) (string, error) {
	if m.GenerateJSONFunc != nil {
		return m.GenerateJSONFunc(ctx, prompt)
	}
	return "{}", nil
}

func (m *MockLLMClient) GenerateStructured(ctx context.Context, prompt string, schema *genai.Schema) (string, error) {
	if m.GenerateStructuredFunc != nil {
		return m.GenerateStructuredFunc(ctx, prompt, schema)
	}
	return "{}", nil
}

func (m *MockLLMClient) Close() error { return nil }

func TestExtractResumeUsesModelOutput(t *testing.T) {
	mockClient := &MockLLMClient{
		GenerateJSONFunc: func(_ context.Context, _ string) (string, error) {
			return `{"personal":{"name":"Model Name","title":"Platform Engineer"},"contact":{"email":"model@example.com"},"links":{},"experience":[],"projects":[],"skills":["Go"],"education":[]}`, nil
		},
	}

	extractor := NewExtractor(mockClient)
	result, err := extractor.ExtractResume(context.Background(), sampleResumeText)

	require.NoError(t, err)
	assert.Equal(t, "Model Name", result.Personal.Name)
	assert.Equal(t, "Platform Engineer", result.Personal.Title)
	assert.Equal(t, "model@example.com", result.Contact.Email)
}

func TestExtractResumeMergesHeuristicIntoSparseModelOutput(t *testing.T) {
	mockClient := &MockLLMClient{
		GenerateJSONFunc: func(_ context.Context, _ string) (string, error) {
			// Model finds the name but misses contact and skills.
			return `{"personal":{"name":"Model Name"}}`, nil
		},
	}

	extractor := NewExtractor(mockClient)
	result, err := extractor.ExtractResume(context.Background(), sampleResumeText)

	require.NoError(t, err)
	assert.Equal(t, "Model Name", result.Personal.Name)
	assert.Equal(t, "jane@example.com", result.Contact.Email)
	assert.Equal(t, []string{"Go", "PostgreSQL", "Kafka"}, result.Skills)
}

func TestExtractResumeRetriesThenFallsBackToHeuristic(t *testing.T) {
	calls := 0
	mockClient := &MockLLMClient{
		GenerateJSONFunc: func(_ context.Context, _ string) (string, error) {
			calls++
			return "", errors.New("API rate limit exceeded")
		},
	}

	extractor := NewExtractor(mockClient)
	result, err := extractor.ExtractResume(context.Background(), sampleResumeText)

	require.NoError(t, err)
	assert.Equal(t, 2, calls)
	assert.Equal(t, "Jane Doe", result.Personal.Name)
	assert.Equal(t, "jane@example.com", result.Contact.Email)
}

func TestExtractResumeFailsWhenNothingQualifies(t *testing.T) {
	mockClient := &MockLLMClient{
		GenerateJSONFunc: func(_ context.Context, _ string) (string, error) {
			return "no json here", nil
		},
	}

	extractor := NewExtractor(mockClient)
	_, err := extractor.ExtractResume(context.Background(), "")

	require.Error(t, err)
	var extractionErr *ExtractionError
	assert.ErrorAs(t, err, &extractionErr)
}

func TestExtractResumeNilClientUsesHeuristicOnly(t *testing.T) {
	extractor := NewExtractor(nil)
	result, err := extractor.ExtractResume(context.Background(), sampleResumeText)

	require.NoError(t, err)
	assert.Equal(t, "Jane Doe", result.Personal.Name)
}

func TestBuildExtractionPromptEmbedsSchemaAndText(t *testing.T) {
	prompt := buildExtractionPrompt("resume body text")

	assert.Contains(t, prompt, "resume body text")
	assert.Contains(t, prompt, `"personal"`)
	assert.Contains(t, prompt, `"experience"`)
}
