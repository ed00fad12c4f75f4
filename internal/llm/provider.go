package llm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/revisor-ai/revisor/internal/model"
)

// ErrNoResult means the model returned no usable output at all.
var ErrNoResult = errors.New("model returned no result")

// ErrMalformedResponse means the model produced output that does not
// parse into the requested schema. Treated like ErrNoResult by callers.
var ErrMalformedResponse = errors.New("model response does not match requested schema")

// Provider is the model-backed structured-output capability.
// Invoke renders the prompt, asks the model for a single JSON object,
// and decodes it into out.
type Provider interface {
	// Name returns the provider name
	Name() string

	// Invoke performs one structured-output call
	Invoke(ctx context.Context, prompt string, out any) error

	// IsAvailable checks if the provider is properly configured and accessible
	IsAvailable(ctx context.Context) bool
}

// Config holds LLM provider configuration
type Config struct {
	// Provider name: "openai", "ollama"
	Provider string

	// Model name (provider-specific)
	Model string

	// APIKey for OpenAI-compatible endpoints
	APIKey string

	// BaseURL for custom endpoints (e.g., Ollama)
	BaseURL string

	// Timeout for API requests, in seconds
	Timeout int

	// MaxTokens for response generation
	MaxTokens int

	// Temperature for generation (low keeps output schema-faithful)
	Temperature float32
}

// DefaultConfig returns sensible defaults
func DefaultConfig() Config {
	return Config{
		Provider:    "openai",
		Timeout:     60,
		MaxTokens:   4000,
		Temperature: 0.2,
	}
}

// ConfigFromModel converts model.LLMConfig to llm.Config
func ConfigFromModel(mc model.LLMConfig) Config {
	return Config{
		Provider:    mc.Provider,
		Model:       mc.Model,
		APIKey:      mc.APIKey,
		BaseURL:     mc.BaseURL,
		Timeout:     mc.Timeout,
		MaxTokens:   mc.MaxTokens,
		Temperature: mc.Temperature,
	}
}

func (c Config) timeout() time.Duration {
	if c.Timeout <= 0 {
		return 60 * time.Second
	}
	return time.Duration(c.Timeout) * time.Second
}

// systemPrompt is shared by all structured calls: every node in the
// pipeline wants exactly one JSON object back.
const systemPrompt = "You are a performance-review assistant. " +
	"Respond with a single JSON object matching the requested schema. " +
	"Do not wrap the JSON in markdown fences or add commentary."

// decodeStructured parses a raw model reply into out, tolerating
// markdown code fences some models insist on emitting.
func decodeStructured(raw string, out any) error {
	cleaned := strings.TrimSpace(raw)
	if cleaned == "" {
		return ErrNoResult
	}
	cleaned = stripFences(cleaned)

	dec := json.NewDecoder(strings.NewReader(cleaned))
	if err := dec.Decode(out); err != nil {
		return fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	return nil
}

// stripFences removes a surrounding ```json ... ``` block if present.
func stripFences(s string) string {
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	if idx := strings.Index(s, "\n"); idx >= 0 {
		s = s[idx+1:] // Drop the language tag line
	}
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}
