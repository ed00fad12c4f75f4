// Package draft produces the initial review narrative and revises it
// in response to fact-check feedback.
package draft

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/revisor-ai/revisor/internal/llm"
	"github.com/revisor-ai/revisor/internal/model"
	"github.com/revisor-ai/revisor/internal/prompt"
)

// draftResult is the structured output every drafting call asks for.
type draftResult struct {
	Draft string `json:"draft"`
}

// Generator produces the initial draft from a validated submission.
type Generator struct {
	provider llm.Provider
	prompts  *prompt.Loader
}

// NewGenerator creates a new draft generator
func NewGenerator(provider llm.Provider, prompts *prompt.Loader) *Generator {
	return &Generator{
		provider: provider,
		prompts:  prompts,
	}
}

// Generate performs the single structured generation call that seeds
// the revision loop. Failure here is fatal for the whole pipeline:
// there is nothing to revise.
func (g *Generator) Generate(ctx context.Context, input model.ManagerInput, structure model.ReviewStructure) (model.Draft, error) {
	inputJSON, err := json.MarshalIndent(input, "", "  ")
	if err != nil {
		return model.Draft{}, fmt.Errorf("serialize manager input: %w", err)
	}
	structureJSON, err := json.MarshalIndent(structure, "", "  ")
	if err != nil {
		return model.Draft{}, fmt.Errorf("serialize review structure: %w", err)
	}

	filled, err := g.prompts.GetFormatted(prompt.NameDraft, map[string]string{
		"manager_input":    string(inputJSON),
		"review_structure": string(structureJSON),
	})
	if err != nil {
		return model.Draft{}, fmt.Errorf("assemble draft prompt: %w", err)
	}

	var result draftResult
	if err := g.provider.Invoke(ctx, filled, &result); err != nil {
		return model.Draft{}, fmt.Errorf("generate draft: %w", err)
	}
	if result.Draft == "" {
		return model.Draft{}, fmt.Errorf("generate draft: %w", llm.ErrNoResult)
	}

	return model.Draft{Text: result.Draft}, nil
}
