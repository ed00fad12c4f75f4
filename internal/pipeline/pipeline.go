// Package pipeline wires the full drafting flow: input check, initial
// draft, fact-check revision loop, and artifact rendering.
package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/revisor-ai/revisor/internal/cache"
	"github.com/revisor-ai/revisor/internal/draft"
	"github.com/revisor-ai/revisor/internal/extract"
	"github.com/revisor-ai/revisor/internal/llm"
	"github.com/revisor-ai/revisor/internal/loop"
	"github.com/revisor-ai/revisor/internal/model"
	"github.com/revisor-ai/revisor/internal/prompt"
	"github.com/revisor-ai/revisor/internal/validate"
)

// Pipeline orchestrates one complete review-drafting run.
type Pipeline struct {
	checker    *validate.Checker
	generator  *draft.Generator
	controller *loop.Controller
	renderer   *Renderer
	config     *model.Config
	logger     *slog.Logger
}

// NewPipeline creates a new pipeline with the given configuration.
// Configuration bounds are validated before anything is constructed.
func NewPipeline(cfg *model.Config, logger *slog.Logger) (*Pipeline, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration: %w", err)
	}
	if logger == nil {
		logger = slog.Default()
	}

	base, err := llm.NewProvider(llm.ConfigFromModel(cfg.LLM))
	if err != nil {
		return nil, fmt.Errorf("create LLM provider: %w", err)
	}

	// Rate limiting sits under retry so every retry attempt also waits
	// for a token.
	limited := llm.WithRateLimit(base, cfg.RateLimit.RequestsPerSecond, cfg.RateLimit.Burst)
	provider := llm.WithRetry(limited, cfg.LLM.MaxRetries, cfg.LLM.RetryBase)

	return newPipeline(cfg, provider, logger), nil
}

// newPipeline wires the stages around an already-decorated provider.
func newPipeline(cfg *model.Config, provider llm.Provider, logger *slog.Logger) *Pipeline {
	if logger == nil {
		logger = slog.Default()
	}
	prompts := prompt.NewLoader()

	var extractionCache cache.Cache
	if cfg.Cache.Enabled {
		extractionCache = cache.NewMemoryCache(cfg.Cache.TTL, 10*time.Minute)
	}
	linker := extract.NewEvidenceLinker(provider, prompts, extractionCache, cfg.Cache.TTL)

	return &Pipeline{
		checker:    validate.NewChecker(provider, prompts, cfg.Validation),
		generator:  draft.NewGenerator(provider, prompts),
		controller: loop.NewController(linker, draft.NewRewriter(provider, prompts), cfg.Loop, logger),
		renderer:   NewRenderer(),
		config:     cfg,
		logger:     logger,
	}
}

// Run executes validate, generate, and the revision loop for one
// submission. Validation rejections are data in the result, not
// errors; only a failed initial generation aborts the run.
func (p *Pipeline) Run(ctx context.Context, docs Documents) (*model.PipelineResult, error) {
	started := time.Now().UTC()
	result := &model.PipelineResult{
		RunID:     uuid.NewString(),
		ManagerID: docs.Input.ManagerID,
		Employee:  docs.Input.Employee,
		StartedAt: started,
	}

	p.logger.Info("pipeline started", "run_id", result.RunID, "manager_id", docs.Input.ManagerID)

	check, err := p.checker.Check(ctx, docs.Input, docs.Qualifiers)
	if err != nil {
		return nil, fmt.Errorf("input check: %w", err)
	}
	result.Validation = check

	if !check.Valid {
		p.logger.Warn("input rejected", "run_id", result.RunID, "errors", len(check.Errors))
		result.Status = model.StatusInvalidInput
		result.Reason = "input validation failed"
		result.FinishedAt = time.Now().UTC()
		return result, nil
	}

	initial, err := p.generator.Generate(ctx, docs.Input, docs.Structure)
	if err != nil {
		return nil, fmt.Errorf("generate initial draft: %w", err)
	}
	p.logger.Info("initial draft generated", "run_id", result.RunID, "length", len(initial.Text))

	loopResult := p.controller.Run(ctx, initial, docs.Input)

	result.Status = loopResult.Status
	result.Draft = loopResult.Draft.Text
	result.Evidence = loopResult.Bundle
	result.Revisions = loopResult.Iterations
	result.Reason = loopResult.Reason
	result.FinishedAt = time.Now().UTC()

	p.logger.Info("pipeline finished",
		"run_id", result.RunID,
		"status", result.Status,
		"revisions", result.Revisions)

	return result, nil
}

// RenderResult writes the result artifact to the requested outputs.
func (p *Pipeline) RenderResult(result *model.PipelineResult, jsonPath, mdPath string) error {
	if jsonPath != "" {
		if err := p.renderer.RenderJSON(result, jsonPath); err != nil {
			return fmt.Errorf("render JSON: %w", err)
		}
		if p.config.Output.Verbose {
			p.logger.Info("wrote JSON artifact", "path", jsonPath)
		}
	}

	if mdPath != "" {
		if err := p.renderer.RenderMarkdown(result, mdPath); err != nil {
			return fmt.Errorf("render markdown: %w", err)
		}
		if p.config.Output.Verbose {
			p.logger.Info("wrote Markdown artifact", "path", mdPath)
		}
	}

	return nil
}
