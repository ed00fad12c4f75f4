package loop

import (
	"context"
	"log/slog"

	"github.com/revisor-ai/revisor/internal/extract"
	"github.com/revisor-ai/revisor/internal/model"
)

// Linker runs one evidence-extraction pass.
type Linker interface {
	Extract(ctx context.Context, draft model.Draft, input model.ManagerInput) (*model.EvidenceBundle, error)
}

// Rewriter produces a revised draft from fact-check feedback.
type Rewriter interface {
	Rewrite(ctx context.Context, current model.Draft, feedback []model.FeedbackItem, input model.ManagerInput) (model.Draft, error)
}

// state is the enumerated tag of the revision state machine.
type state int

const (
	stateExtracting state = iota
	stateGating
	stateRewriting
)

// step is the immutable per-step record threaded through the machine.
// Each transition builds a new step instead of mutating shared loop
// variables, which keeps the termination bound mechanically checkable.
type step struct {
	state     state
	draft     model.Draft
	bundle    *model.EvidenceBundle
	iteration int
}

// Result is the terminal outcome of one revision loop run.
type Result struct {
	Draft      model.Draft
	Bundle     *model.EvidenceBundle // Possibly stale after a failed final rewrite
	Iterations int
	Status     model.PipelineStatus // StatusAccepted or StatusExhausted
	Reason     string               // Why a non-accepted run stopped
}

// Controller ties linker, gate, and rewriter into the bounded
// extract-gate-rewrite cycle. One Controller instance may be shared;
// each Run owns its state exclusively.
type Controller struct {
	linker       Linker
	rewriter     Rewriter
	maxRevisions int
	strictEmpty  bool
	logger       *slog.Logger
}

// NewController creates a new revision loop controller
func NewController(linker Linker, rewriter Rewriter, cfg model.LoopConfig, logger *slog.Logger) *Controller {
	if logger == nil {
		logger = slog.Default()
	}
	return &Controller{
		linker:       linker,
		rewriter:     rewriter,
		maxRevisions: cfg.MaxRevisions,
		strictEmpty:  cfg.StrictEmptyBundle,
		logger:       logger,
	}
}

// Run drives the loop from an initial draft to a terminal state.
// It always terminates within maxRevisions rewrite attempts: every
// pass through Rewriting consumes budget whether or not the rewrite
// succeeds.
func (c *Controller) Run(ctx context.Context, initial model.Draft, input model.ManagerInput) Result {
	cur := step{state: stateExtracting, draft: initial, iteration: 0}

	for {
		switch cur.state {
		case stateExtracting:
			// Cancellation is honored between iterations, never
			// mid-extraction.
			if err := ctx.Err(); err != nil {
				c.logger.Warn("revision loop cancelled", "iteration", cur.iteration)
				return c.exhausted(cur, "cancelled: "+err.Error())
			}

			bundle, err := c.linker.Extract(ctx, cur.draft, input)
			if err != nil {
				// A broken extractor mid-loop is not silently treated
				// as a clean pass; the run surfaces as exhausted with
				// the last accepted draft.
				c.logger.Error("evidence extraction failed", "iteration", cur.iteration, "error", err)
				return c.exhausted(cur, "extraction failed: "+err.Error())
			}
			if c.strictEmpty && len(bundle.Links) == 0 {
				c.logger.Error("extraction produced no links under strict empty-bundle policy", "iteration", cur.iteration)
				return c.exhausted(cur, "extraction produced an empty bundle")
			}
			cur = step{state: stateGating, draft: cur.draft, bundle: bundle, iteration: cur.iteration}

		case stateGating:
			if ShouldRewrite(cur.bundle, cur.iteration, c.maxRevisions) == DecisionRewrite {
				cur = step{state: stateRewriting, draft: cur.draft, bundle: cur.bundle, iteration: cur.iteration}
				continue
			}

			// The terminal distinction is evidence, not budget: a run
			// whose final bundle shows zero discrepancies is accepted
			// even on the last allowed iteration.
			if len(cur.bundle.Discrepancies()) == 0 {
				c.logger.Info("draft accepted", "iterations", cur.iteration)
				return Result{
					Draft:      cur.draft,
					Bundle:     cur.bundle,
					Iterations: cur.iteration,
					Status:     model.StatusAccepted,
				}
			}
			c.logger.Warn("revision budget exhausted with open discrepancies",
				"iterations", cur.iteration,
				"discrepancies", len(cur.bundle.Discrepancies()))
			return c.exhausted(cur, "revision budget exhausted")

		case stateRewriting:
			feedback := extract.BuildFeedback(cur.bundle)
			c.logger.Info("rewriting draft", "iteration", cur.iteration, "discrepancies", len(feedback))

			revised, err := c.rewriter.Rewrite(ctx, cur.draft, feedback, input)

			// The attempt consumes budget whether or not it succeeded;
			// without this a persistently failing rewriter would starve
			// the termination guarantee.
			next := step{state: stateExtracting, draft: cur.draft, bundle: cur.bundle, iteration: cur.iteration + 1}
			if err != nil {
				c.logger.Error("rewrite failed, keeping prior draft", "iteration", cur.iteration, "error", err)
			} else {
				next.draft = revised
			}
			cur = next
		}
	}
}

func (c *Controller) exhausted(cur step, reason string) Result {
	return Result{
		Draft:      cur.draft,
		Bundle:     cur.bundle,
		Iterations: cur.iteration,
		Status:     model.StatusExhausted,
		Reason:     reason,
	}
}
