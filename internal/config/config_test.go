package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, name := range []string{
		"LLM_MODEL", "GEMINI_MODEL", "LLM_API_URL", "GEMINI_API_URL",
		"LLM_TIMEOUT_SECONDS", "LLM_MAX_OUTPUT_TOKENS",
		"LLM_API_KEY", "GEMINI_API_KEY", "GOOGLE_API_KEY",
		"UPLOAD_TOKEN_SECRET", "JWT_SECRET", "DATABASE_URL",
	} {
		t.Setenv(name, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Empty(t, cfg.LLMAPIKey)
	assert.Equal(t, "gemini-1.5-flash", cfg.LLM.Model)
	assert.Equal(t, 60*time.Second, cfg.LLM.RequestTimeout)
	assert.Equal(t, "local-upload-token-secret", cfg.UploadTokenSecret)
}

func TestLoadModelOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("GEMINI_MODEL", "gemini-1.5-pro")
	t.Setenv("LLM_TIMEOUT_SECONDS", "120")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "gemini-1.5-pro", cfg.LLM.Model)
	assert.Equal(t, 120*time.Second, cfg.LLM.RequestTimeout)
}

func TestLoadPrefersLLMPrefixedVariables(t *testing.T) {
	clearEnv(t)
	t.Setenv("LLM_MODEL", "custom-model")
	t.Setenv("GEMINI_MODEL", "ignored-model")
	t.Setenv("LLM_API_KEY", "key-a")
	t.Setenv("GEMINI_API_KEY", "key-b")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "custom-model", cfg.LLM.Model)
	assert.Equal(t, "key-a", cfg.LLMAPIKey)
}

func TestLoadUploadSecretFallsBackToAPIKey(t *testing.T) {
	clearEnv(t)
	t.Setenv("GEMINI_API_KEY", "the-api-key")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "the-api-key", cfg.UploadTokenSecret)
}

func TestLoadRejectsInvalidNumbers(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{"non-numeric timeout", "LLM_TIMEOUT_SECONDS", "soon"},
		{"zero timeout", "LLM_TIMEOUT_SECONDS", "0"},
		{"non-numeric tokens", "LLM_MAX_OUTPUT_TOKENS", "many"},
		{"negative tokens", "LLM_MAX_OUTPUT_TOKENS", "-1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			t.Setenv(tt.key, tt.value)

			_, err := Load()
			assert.Error(t, err)
		})
	}
}

func TestValidateForServe(t *testing.T) {
	cfg := &Config{}
	assert.ErrorContains(t, cfg.ValidateForServe(), "DATABASE_URL")

	cfg.DatabaseURL = "postgres://localhost/portfolio"
	assert.ErrorContains(t, cfg.ValidateForServe(), "JWT_SECRET")

	cfg.JWTSecret = "secret"
	assert.NoError(t, cfg.ValidateForServe())
}
