// Package extract turns a draft and its source submission into linked
// claims and facts, and derives rewriter-facing feedback from them.
package extract

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/revisor-ai/revisor/internal/cache"
	"github.com/revisor-ai/revisor/internal/llm"
	"github.com/revisor-ai/revisor/internal/model"
	"github.com/revisor-ai/revisor/internal/prompt"
)

// factPairs is the structured-output wrapper the extraction prompt asks for.
type factPairs struct {
	ClaimFactPairs *model.EvidenceBundle `json:"claim_fact_pairs"`
}

// EvidenceLinker produces a fresh EvidenceBundle for one draft by
// asking the model to decompose draft and input into linked claims
// and facts. Extraction is idempotent for identical draft and input,
// so results are memoized by prompt hash when a cache is attached.
type EvidenceLinker struct {
	provider llm.Provider
	prompts  *prompt.Loader
	cache    cache.Cache // nil disables memoization
	cacheTTL time.Duration
}

// NewEvidenceLinker creates a new evidence linker. cache may be nil.
func NewEvidenceLinker(provider llm.Provider, prompts *prompt.Loader, c cache.Cache, ttl time.Duration) *EvidenceLinker {
	return &EvidenceLinker{
		provider: provider,
		prompts:  prompts,
		cache:    c,
		cacheTTL: ttl,
	}
}

// Extract runs one extraction pass. A nil or missing result from the
// capability is a fatal error for the pass; retries are the capability
// wrapper's concern, never applied here.
func (e *EvidenceLinker) Extract(ctx context.Context, draft model.Draft, input model.ManagerInput) (*model.EvidenceBundle, error) {
	if draft.Text == "" {
		return nil, fmt.Errorf("draft must be non-empty")
	}

	inputJSON, err := json.MarshalIndent(input, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("serialize manager input: %w", err)
	}
	example, err := e.prompts.Example()
	if err != nil {
		return nil, err
	}

	filled, err := e.prompts.GetFormatted(prompt.NameFactExtractor, map[string]string{
		"manager_input": string(inputJSON),
		"review":        draft.Text,
		"example":       example,
	})
	if err != nil {
		return nil, fmt.Errorf("assemble extraction prompt: %w", err)
	}

	key := cache.Key(filled)
	if e.cache != nil {
		if data, found := e.cache.Get(key); found {
			var cached model.EvidenceBundle
			if err := json.Unmarshal(data, &cached); err == nil {
				slog.Debug("extraction served from cache")
				return &cached, nil
			}
			_ = e.cache.Delete(key)
		}
	}

	var wrapper factPairs
	if err := e.provider.Invoke(ctx, filled, &wrapper); err != nil {
		return nil, fmt.Errorf("extract evidence: %w", err)
	}
	if wrapper.ClaimFactPairs == nil {
		return nil, fmt.Errorf("extract evidence: %w", llm.ErrMalformedResponse)
	}

	bundle := wrapper.ClaimFactPairs
	if bundle.Version == "" {
		bundle.Version = "1.0"
	}

	if e.cache != nil {
		if data, err := json.Marshal(bundle); err == nil {
			_ = e.cache.Set(key, data, e.cacheTTL)
		}
	}

	return bundle, nil
}
