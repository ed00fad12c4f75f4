package model

import (
	"fmt"
	"time"
)

// MaxRevisionsCap is the hard upper bound on the revision budget.
// Configuration asking for more is rejected pre-flight.
const MaxRevisionsCap = 10

// LLMConfig configures the model-backed structured-output capability.
type LLMConfig struct {
	Provider    string  `yaml:"provider" mapstructure:"provider"` // openai, ollama
	Model       string  `yaml:"model" mapstructure:"model"`
	APIKey      string  `yaml:"api_key" mapstructure:"api_key"`
	BaseURL     string  `yaml:"base_url" mapstructure:"base_url"`
	Timeout     int     `yaml:"timeout" mapstructure:"timeout"` // seconds, per call
	MaxTokens   int     `yaml:"max_tokens" mapstructure:"max_tokens"`
	Temperature float32 `yaml:"temperature" mapstructure:"temperature"`

	// Retry policy applied by the capability wrapper, never by the loop.
	MaxRetries int           `yaml:"max_retries" mapstructure:"max_retries"`
	RetryBase  time.Duration `yaml:"retry_base" mapstructure:"retry_base"`
}

// LoopConfig bounds the fact-check revision loop.
type LoopConfig struct {
	// MaxRevisions is the rewrite budget (max_fact_check_revisions).
	MaxRevisions int `yaml:"max_revisions" mapstructure:"max_revisions"`

	// StrictEmptyBundle treats an extraction pass with zero links as an
	// extraction failure instead of a vacuous pass.
	StrictEmptyBundle bool `yaml:"strict_empty_bundle" mapstructure:"strict_empty_bundle"`
}

// ValidationLimits are the rule-based input check thresholds.
type ValidationLimits struct {
	MinBullets    int `yaml:"min_bullets" mapstructure:"min_bullets"`
	MinRatings    int `yaml:"min_ratings" mapstructure:"min_ratings"`
	MinTextLength int `yaml:"min_text_length" mapstructure:"min_text_length"`
}

// CacheConfig controls the in-memory extraction idempotency cache.
type CacheConfig struct {
	Enabled bool          `yaml:"enabled" mapstructure:"enabled"`
	TTL     time.Duration `yaml:"ttl" mapstructure:"ttl"`
}

// RateLimitConfig throttles outbound model calls.
type RateLimitConfig struct {
	RequestsPerSecond float64 `yaml:"requests_per_second" mapstructure:"requests_per_second"`
	Burst             int     `yaml:"burst" mapstructure:"burst"`
}

// ConcurrencyConfig sizes the batch worker pool.
type ConcurrencyConfig struct {
	BatchWorkers int `yaml:"batch_workers" mapstructure:"batch_workers"`
}

// OutputConfig controls artifact rendering.
type OutputConfig struct {
	Verbose bool `yaml:"verbose" mapstructure:"verbose"`
}

// Config is the complete application configuration.
type Config struct {
	LLM         LLMConfig         `yaml:"llm" mapstructure:"llm"`
	Loop        LoopConfig        `yaml:"loop" mapstructure:"loop"`
	Validation  ValidationLimits  `yaml:"validation" mapstructure:"validation"`
	Cache       CacheConfig       `yaml:"cache" mapstructure:"cache"`
	RateLimit   RateLimitConfig   `yaml:"rate_limit" mapstructure:"rate_limit"`
	Concurrency ConcurrencyConfig `yaml:"concurrency" mapstructure:"concurrency"`
	Output      OutputConfig      `yaml:"output" mapstructure:"output"`
}

// DefaultConfig returns sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		LLM: LLMConfig{
			Provider:    "openai",
			Model:       "gpt-4o-mini",
			Timeout:     60,
			MaxTokens:   4000,
			Temperature: 0.2,
			MaxRetries:  3,
			RetryBase:   500 * time.Millisecond,
		},
		Loop: LoopConfig{
			MaxRevisions: 3,
		},
		Validation: ValidationLimits{
			MinBullets:    3,
			MinRatings:    2,
			MinTextLength: 10,
		},
		Cache: CacheConfig{
			Enabled: true,
			TTL:     15 * time.Minute,
		},
		RateLimit: RateLimitConfig{
			RequestsPerSecond: 2,
			Burst:             4,
		},
		Concurrency: ConcurrencyConfig{
			BatchWorkers: 4,
		},
	}
}

// Validate rejects invalid bounds before a pipeline run starts.
func (c *Config) Validate() error {
	if c.Loop.MaxRevisions <= 0 {
		return fmt.Errorf("loop.max_revisions must be positive, got %d", c.Loop.MaxRevisions)
	}
	if c.Loop.MaxRevisions > MaxRevisionsCap {
		return fmt.Errorf("loop.max_revisions %d exceeds hard cap %d", c.Loop.MaxRevisions, MaxRevisionsCap)
	}
	if c.Validation.MinBullets < 1 {
		return fmt.Errorf("validation.min_bullets must be at least 1, got %d", c.Validation.MinBullets)
	}
	if c.Validation.MinRatings < 0 {
		return fmt.Errorf("validation.min_ratings must not be negative, got %d", c.Validation.MinRatings)
	}
	if c.Validation.MinTextLength < 1 {
		return fmt.Errorf("validation.min_text_length must be at least 1, got %d", c.Validation.MinTextLength)
	}
	if c.LLM.Provider == "" {
		return fmt.Errorf("llm.provider is required")
	}
	if c.LLM.Timeout <= 0 {
		return fmt.Errorf("llm.timeout must be positive, got %d", c.LLM.Timeout)
	}
	if c.LLM.MaxRetries < 1 {
		return fmt.Errorf("llm.max_retries must be at least 1, got %d", c.LLM.MaxRetries)
	}
	if c.Concurrency.BatchWorkers < 1 {
		return fmt.Errorf("concurrency.batch_workers must be at least 1, got %d", c.Concurrency.BatchWorkers)
	}
	return nil
}
