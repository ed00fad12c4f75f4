package validate

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/revisor-ai/revisor/internal/llm"
	"github.com/revisor-ai/revisor/internal/model"
	"github.com/revisor-ai/revisor/internal/prompt"
)

// Checker runs the full input check: rule-based validation, a model
// semantic judgment, and reconciliation of the two.
type Checker struct {
	provider llm.Provider
	prompts  *prompt.Loader
	limits   model.ValidationLimits
}

// NewChecker creates a new input checker
func NewChecker(provider llm.Provider, prompts *prompt.Loader, limits model.ValidationLimits) *Checker {
	return &Checker{
		provider: provider,
		prompts:  prompts,
		limits:   limits,
	}
}

// Check validates a manager submission. Violations are returned as
// data, never as an error; the error return covers only prompt
// assembly failures. A failed model call degrades to the rule-based
// result alone rather than blocking the pipeline.
func (c *Checker) Check(ctx context.Context, input model.ManagerInput, qualifiers model.Qualifiers) (model.CheckResult, error) {
	toolResult := Validate(input, qualifiers, c.limits)

	inputJSON, err := json.MarshalIndent(input, "", "  ")
	if err != nil {
		return model.CheckResult{}, fmt.Errorf("serialize manager input: %w", err)
	}
	toolJSON, err := json.MarshalIndent(toolResult, "", "  ")
	if err != nil {
		return model.CheckResult{}, fmt.Errorf("serialize validation result: %w", err)
	}

	filled, err := c.prompts.GetFormatted(prompt.NameInputCheck, map[string]string{
		"manager_input":          string(inputJSON),
		"validation_tool_output": string(toolJSON),
	})
	if err != nil {
		return model.CheckResult{}, fmt.Errorf("assemble input-check prompt: %w", err)
	}

	var judged model.CheckResult
	if err := c.provider.Invoke(ctx, filled, &judged); err != nil {
		slog.Warn("semantic input check failed, falling back to rule-based result", "error", err)
		judged = model.CheckResult{Valid: toolResult.Valid}
	}

	return Reconcile(toolResult, judged), nil
}
