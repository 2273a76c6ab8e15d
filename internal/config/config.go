// Package config provides configuration loading and validation from the
// environment.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/jonathan/resume-portfolio/internal/llm"
)

// Config holds the runtime configuration of the service.
type Config struct {
	// LLMAPIKey authenticates against the generative language API. When
	// empty the service runs in heuristic-only mode.
	LLMAPIKey string
	// LLM holds model invocation settings (model id, base URL, timeout,
	// output token cap).
	LLM *llm.Config
	// UploadTokenSecret signs upload tokens. Falls back to the API key, then
	// to a local development secret.
	UploadTokenSecret string
	// JWTSecret signs portfolio manage tokens. Required for serving.
	JWTSecret string
	// DatabaseURL is the PostgreSQL connection string for the portfolio
	// store. Required for serving.
	DatabaseURL string
}

// firstNonEmpty returns the first environment variable with a non-empty
// value among the given names.
func firstNonEmpty(names ...string) string {
	for _, name := range names {
		if value := os.Getenv(name); value != "" {
			return value
		}
	}
	return ""
}

// Load reads configuration from the environment. Missing optional values
// get defaults; serving requirements are checked separately by the caller.
func Load() (*Config, error) {
	llmCfg := llm.DefaultConfig()
	if model := firstNonEmpty("LLM_MODEL", "GEMINI_MODEL"); model != "" {
		llmCfg.Model = model
	}
	llmCfg.BaseURL = firstNonEmpty("LLM_API_URL", "GEMINI_API_URL")

	if timeoutStr := os.Getenv("LLM_TIMEOUT_SECONDS"); timeoutStr != "" {
		seconds, err := strconv.Atoi(timeoutStr)
		if err != nil || seconds < 1 {
			return nil, fmt.Errorf("invalid LLM_TIMEOUT_SECONDS: %q", timeoutStr)
		}
		llmCfg.RequestTimeout = time.Duration(seconds) * time.Second
	}

	if tokensStr := os.Getenv("LLM_MAX_OUTPUT_TOKENS"); tokensStr != "" {
		tokens, err := strconv.Atoi(tokensStr)
		if err != nil || tokens < 1 {
			return nil, fmt.Errorf("invalid LLM_MAX_OUTPUT_TOKENS: %q", tokensStr)
		}
		llmCfg.MaxOutputTokens = int32(tokens)
	}

	apiKey := firstNonEmpty("LLM_API_KEY", "GEMINI_API_KEY", "GOOGLE_API_KEY")

	uploadSecret := os.Getenv("UPLOAD_TOKEN_SECRET")
	if uploadSecret == "" {
		uploadSecret = apiKey
	}
	if uploadSecret == "" {
		uploadSecret = "local-upload-token-secret"
	}

	return &Config{
		LLMAPIKey:         apiKey,
		LLM:               llmCfg,
		UploadTokenSecret: uploadSecret,
		JWTSecret:         os.Getenv("JWT_SECRET"),
		DatabaseURL:       os.Getenv("DATABASE_URL"),
	}, nil
}

// ValidateForServe checks the values required to run the HTTP server.
func (c *Config) ValidateForServe() error {
	if c.DatabaseURL == "" {
		return fmt.Errorf("DATABASE_URL environment variable is required")
	}
	if c.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET environment variable is required")
	}
	return nil
}
