package draft

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/revisor-ai/revisor/internal/llm"
	"github.com/revisor-ai/revisor/internal/model"
	"github.com/revisor-ai/revisor/internal/prompt"
)

// ErrPlaceholderLost means a rewrite dropped a PII placeholder token
// that the prior draft carried. The rewrite is rejected: the loop
// keeps the prior draft and the attempt still consumes budget.
var ErrPlaceholderLost = errors.New("rewrite dropped a PII placeholder token")

// Rewriter revises a draft to resolve fact-check discrepancies.
type Rewriter struct {
	provider llm.Provider
	prompts  *prompt.Loader
}

// NewRewriter creates a new draft rewriter
func NewRewriter(provider llm.Provider, prompts *prompt.Loader) *Rewriter {
	return &Rewriter{
		provider: provider,
		prompts:  prompts,
	}
}

// Rewrite produces a revised draft addressing the flagged
// discrepancies. On any failure the caller keeps the prior draft;
// no retry happens here.
func (r *Rewriter) Rewrite(ctx context.Context, current model.Draft, feedback []model.FeedbackItem, input model.ManagerInput) (model.Draft, error) {
	feedbackJSON, err := json.MarshalIndent(feedback, "", "  ")
	if err != nil {
		return model.Draft{}, fmt.Errorf("serialize feedback: %w", err)
	}
	inputJSON, err := json.MarshalIndent(input, "", "  ")
	if err != nil {
		return model.Draft{}, fmt.Errorf("serialize manager input: %w", err)
	}

	filled, err := r.prompts.GetFormatted(prompt.NameFactRewriter, map[string]string{
		"draft":         current.Text,
		"feedback":      string(feedbackJSON),
		"manager_input": string(inputJSON),
	})
	if err != nil {
		return model.Draft{}, fmt.Errorf("assemble rewrite prompt: %w", err)
	}

	var result draftResult
	if err := r.provider.Invoke(ctx, filled, &result); err != nil {
		return model.Draft{}, fmt.Errorf("rewrite draft: %w", err)
	}
	if result.Draft == "" {
		return model.Draft{}, fmt.Errorf("rewrite draft: %w", llm.ErrNoResult)
	}

	if missing := missingPlaceholders(Placeholders(current.Text), result.Draft); len(missing) > 0 {
		return model.Draft{}, fmt.Errorf("%w: %v", ErrPlaceholderLost, missing)
	}

	return model.Draft{Text: result.Draft}, nil
}
