package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// Client is an abstraction over the generative model collaborator. The three
// methods correspond to the three invocation modes the evaluator degrades
// through: schema-constrained, JSON-mode, and free text.
type Client interface {
	// GenerateContent generates free-form text content.
	GenerateContent(ctx context.Context, prompt string) (string, error)
	// GenerateJSON generates content with the JSON response MIME type set.
	GenerateJSON(ctx context.Context, prompt string) (string, error)
	// GenerateStructured generates content constrained to the given response schema.
	GenerateStructured(ctx context.Context, prompt string, schema *genai.Schema) (string, error)
	// Close releases any resources held by the client.
	Close() error
}

// GeminiClient implements Client for Google Gemini.
// It is safe for concurrent use; per-request state lives in the model handle.
type GeminiClient struct {
	client *genai.Client
	config *Config
}

// NewGeminiClient creates a new Gemini client.
func NewGeminiClient(ctx context.Context, config *Config, apiKey string) (*GeminiClient, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("API key is required")
	}
	if config == nil {
		config = DefaultConfig()
	}
	config.normalize()

	opts := []option.ClientOption{option.WithAPIKey(apiKey)}
	if config.BaseURL != "" {
		opts = append(opts, option.WithEndpoint(config.BaseURL))
	}

	client, err := genai.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &GeminiClient{client: client, config: config}, nil
}

// GenerateContent generates free-form text content.
func (c *GeminiClient) GenerateContent(ctx context.Context, prompt string) (string, error) {
	model := c.client.GenerativeModel(c.config.Model)
	model.SetTemperature(0)
	model.SetMaxOutputTokens(c.config.MaxOutputTokens)
	return c.generate(ctx, model, prompt)
}

// GenerateJSON generates content with the JSON response MIME type set.
// Markdown fences are stripped from the result since models emit them even
// when instructed not to.
func (c *GeminiClient) GenerateJSON(ctx context.Context, prompt string) (string, error) {
	model := c.client.GenerativeModel(c.config.Model)
	model.SetTemperature(0)
	model.SetMaxOutputTokens(c.config.MaxOutputTokens)
	model.ResponseMIMEType = "application/json"

	text, err := c.generate(ctx, model, prompt)
	if err != nil {
		return "", err
	}
	return CleanJSONBlock(text), nil
}

// GenerateStructured generates content constrained to the given response schema.
func (c *GeminiClient) GenerateStructured(ctx context.Context, prompt string, schema *genai.Schema) (string, error) {
	model := c.client.GenerativeModel(c.config.Model)
	model.SetTemperature(0)
	model.SetMaxOutputTokens(c.config.MaxOutputTokens)
	model.ResponseMIMEType = "application/json"
	model.ResponseSchema = schema

	text, err := c.generate(ctx, model, prompt)
	if err != nil {
		return "", err
	}
	return CleanJSONBlock(text), nil
}

// generate runs the model call with the configured timeout and bounded retry.
func (c *GeminiClient) generate(ctx context.Context, model *genai.GenerativeModel, prompt string) (string, error) {
	var lastErr error
	for attempt := 0; attempt < c.config.MaxAttempts; attempt++ {
		callCtx, cancel := context.WithTimeout(ctx, c.config.RequestTimeout)
		resp, err := model.GenerateContent(callCtx, genai.Text(prompt))
		cancel()
		if err != nil {
			lastErr = fmt.Errorf("failed to generate content: %w", err)
			if ctx.Err() != nil {
				break
			}
			continue
		}
		return extractTextFromResponse(resp)
	}
	return "", lastErr
}

// Close releases resources held by the client.
func (c *GeminiClient) Close() error {
	if c.client != nil {
		return c.client.Close()
	}
	return nil
}

// extractTextFromResponse extracts text from a Gemini API response. An empty
// response caused by a safety or content block is reported with its reason so
// callers can treat it as a parse failure and fall through.
func extractTextFromResponse(resp *genai.GenerateContentResponse) (string, error) {
	if len(resp.Candidates) == 0 {
		if resp.PromptFeedback != nil && resp.PromptFeedback.BlockReason != genai.BlockReasonUnspecified {
			return "", fmt.Errorf("model returned no text output (blocked: %s)", resp.PromptFeedback.BlockReason)
		}
		return "", fmt.Errorf("no candidates in response")
	}

	candidate := resp.Candidates[0]
	if candidate.Content == nil || len(candidate.Content.Parts) == 0 {
		if candidate.FinishReason != genai.FinishReasonUnspecified {
			return "", fmt.Errorf("model returned no text output (%s)", candidate.FinishReason)
		}
		return "", fmt.Errorf("no content in response")
	}

	var parts []string
	for _, part := range candidate.Content.Parts {
		if text, ok := part.(genai.Text); ok {
			parts = append(parts, string(text))
		}
	}

	if len(parts) == 0 {
		return "", fmt.Errorf("no text parts in response")
	}

	return strings.TrimSpace(strings.Join(parts, "")), nil
}
