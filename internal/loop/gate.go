// Package loop drives the fact-check revision cycle: extract evidence,
// gate on it, rewrite, and re-enter, bounded by the revision budget.
package loop

import "github.com/revisor-ai/revisor/internal/model"

// Decision is the revision gate's verdict on the current pass.
type Decision int

const (
	// DecisionStop accepts the current draft as-is.
	DecisionStop Decision = iota

	// DecisionRewrite triggers another rewrite pass.
	DecisionRewrite
)

func (d Decision) String() string {
	if d == DecisionRewrite {
		return "rewrite"
	}
	return "stop"
}

// ShouldRewrite decides whether the loop continues. Pure function of
// its inputs; no side effects, no model calls. Branch order matters:
// budget exhaustion always wins over evidence quality, so the loop
// terminates even under persistently bad extractions.
func ShouldRewrite(bundle *model.EvidenceBundle, iteration, maxIterations int) Decision {
	if iteration >= maxIterations {
		return DecisionStop
	}

	// An absent or empty bundle is vacuously supported: nothing to act on.
	if bundle == nil || len(bundle.Links) == 0 {
		return DecisionStop
	}

	if len(bundle.Discrepancies()) > 0 {
		return DecisionRewrite
	}
	return DecisionStop
}
