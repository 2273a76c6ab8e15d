// Package llm provides the Gemini client abstraction and configuration used
// by resume extraction and job-match evaluation.
package llm

import "time"

// DefaultModel is used when no model is configured.
const DefaultModel = "gemini-1.5-flash"

// Config holds model invocation settings. BaseURL overrides the default
// Generative Language API endpoint for proxies and regional deployments.
type Config struct {
	Model           string
	BaseURL         string
	RequestTimeout  time.Duration
	MaxOutputTokens int32
	MaxAttempts     int
}

// DefaultConfig returns the default Gemini configuration.
func DefaultConfig() *Config {
	return &Config{
		Model:           DefaultModel,
		RequestTimeout:  60 * time.Second,
		MaxOutputTokens: 4096,
		MaxAttempts:     2,
	}
}

// normalize fills zero values with defaults so partially populated configs
// from the environment stay usable.
func (c *Config) normalize() {
	if c.Model == "" {
		c.Model = DefaultModel
	}
	if c.RequestTimeout <= 0 {
		c.RequestTimeout = 60 * time.Second
	}
	if c.MaxOutputTokens <= 0 {
		c.MaxOutputTokens = 4096
	}
	if c.MaxAttempts < 1 {
		c.MaxAttempts = 2
	}
}
