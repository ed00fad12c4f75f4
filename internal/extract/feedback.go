package extract

import "github.com/revisor-ai/revisor/internal/model"

// BuildFeedback derives the rewriter-facing feedback from an evidence
// bundle: every link whose verdict is not supported, resolved to its
// claim and fact texts, in original link order. Pure and deterministic.
// Unknown claim ids yield an empty claim-text list; unknown fact ids
// are silently skipped.
func BuildFeedback(bundle *model.EvidenceBundle) []model.FeedbackItem {
	if bundle == nil {
		return nil
	}

	var feedback []model.FeedbackItem
	for _, link := range bundle.Links {
		if link.Verdict == model.VerdictSupported {
			continue
		}
		feedback = append(feedback, model.FeedbackItem{
			Verdict:   link.Verdict,
			Reasons:   link.Reasons,
			ClaimText: bundle.ClaimTexts(link.ClaimID),
			FactTexts: bundle.FactTexts(link.FactIDs),
		})
	}
	return feedback
}
