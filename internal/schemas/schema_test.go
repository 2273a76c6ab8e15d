package schemas

import (
	"encoding/json"
	"testing"

	"github.com/google/generative-ai-go/genai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResumeSchemaPromptExampleIsValidJSON(t *testing.T) {
	example := ResumeSchema().PromptExample()

	var parsed map[string]any
	require.NoError(t, json.Unmarshal([]byte(example), &parsed))

	assert.Contains(t, parsed, "personal")
	assert.Contains(t, parsed, "contact")
	assert.Contains(t, parsed, "links")
	assert.Contains(t, parsed, "experience")
	assert.Contains(t, parsed, "projects")
	assert.Contains(t, parsed, "skills")
	assert.Contains(t, parsed, "education")
}

func TestResumeSchemaDerivationsShareFieldNames(t *testing.T) {
	schema := ResumeSchema()
	names := schema.FieldNames()

	// Prompt example keys.
	var example map[string]any
	require.NoError(t, json.Unmarshal([]byte(schema.PromptExample()), &example))
	assert.Len(t, example, len(names))
	for _, name := range names {
		assert.Contains(t, example, name)
	}

	// Structured-output schema keys, all required.
	genaiSchema := schema.Genai()
	require.NotNil(t, genaiSchema)
	assert.Equal(t, genai.TypeObject, genaiSchema.Type)
	assert.Len(t, genaiSchema.Properties, len(names))
	assert.ElementsMatch(t, names, genaiSchema.Required)

	// JSON Schema keys, all required.
	var jsonSchema map[string]any
	require.NoError(t, json.Unmarshal([]byte(schema.JSONSchema()), &jsonSchema))
	props, ok := jsonSchema["properties"].(map[string]any)
	require.True(t, ok)
	assert.Len(t, props, len(names))
	required, ok := jsonSchema["required"].([]any)
	require.True(t, ok)
	assert.Len(t, required, len(names))
}

func TestJobMatchSchemaScoreBounds(t *testing.T) {
	var jsonSchema map[string]any
	require.NoError(t, json.Unmarshal([]byte(JobMatchSchema().JSONSchema()), &jsonSchema))

	props := jsonSchema["properties"].(map[string]any)
	for _, field := range []string{"originalScore", "improvedScore"} {
		score, ok := props[field].(map[string]any)
		require.True(t, ok, field)
		assert.Equal(t, 0.0, score["minimum"])
		assert.Equal(t, 100.0, score["maximum"])
	}
}

func TestJobMatchSchemaValidation(t *testing.T) {
	schema := JobMatchSchema().JSONSchema()

	resumeExample := ResumeSchema().PromptExample()
	valid := `{"originalScore": 50, "improvedScore": 70, "improvedResume": ` + resumeExample + `, "analysis": "ok"}`
	assert.NoError(t, ValidateJSONString(schema, valid))

	tests := []struct {
		name     string
		document string
	}{
		{"score above maximum", `{"originalScore": 130, "improvedScore": 70, "improvedResume": ` + resumeExample + `, "analysis": "ok"}`},
		{"missing analysis", `{"originalScore": 50, "improvedScore": 70, "improvedResume": ` + resumeExample + `}`},
		{"improvedResume missing sections", `{"originalScore": 50, "improvedScore": 70, "improvedResume": {}, "analysis": "ok"}`},
		{"wrong score type", `{"originalScore": "high", "improvedScore": 70, "improvedResume": ` + resumeExample + `, "analysis": "ok"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateJSONString(schema, tt.document)
			require.Error(t, err)
			var validationErr *ValidationError
			assert.ErrorAs(t, err, &validationErr)
		})
	}
}

func TestValidateJSONStringSchemaLoadFailure(t *testing.T) {
	err := ValidateJSONString("{not a schema", `{"a": 1}`)

	require.Error(t, err)
	var loadErr *SchemaLoadError
	assert.ErrorAs(t, err, &loadErr)
}

func TestNestedPromptExampleShapes(t *testing.T) {
	var parsed map[string]any
	require.NoError(t, json.Unmarshal([]byte(ResumeSchema().PromptExample()), &parsed))

	personal, ok := parsed["personal"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "", personal["name"])

	experience, ok := parsed["experience"].([]any)
	require.True(t, ok)
	require.Len(t, experience, 1)
	entry, ok := experience[0].(map[string]any)
	require.True(t, ok)
	assert.Contains(t, entry, "company")
	assert.Contains(t, entry, "startDate")

	skills, ok := parsed["skills"].([]any)
	require.True(t, ok)
	require.Len(t, skills, 1)
	assert.Equal(t, "", skills[0])
}
