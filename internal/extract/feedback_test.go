package extract

import (
	"testing"

	"github.com/revisor-ai/revisor/internal/model"
)

func TestBuildFeedback_UnsupportedClaimWithMissingFacts(t *testing.T) {
	// One unsupported link, resolvable claim, no matching facts.
	bundle := &model.EvidenceBundle{
		Claims: []model.Claim{
			{ClaimID: "c1", Text: "grew revenue 40%"},
		},
		Facts: []model.Fact{},
		Links: []model.Link{
			{ClaimID: "c1", FactIDs: []string{"f9"}, Verdict: model.VerdictUnsupported},
		},
	}

	feedback := BuildFeedback(bundle)

	if len(feedback) != 1 {
		t.Fatalf("Expected 1 feedback item, got %d", len(feedback))
	}
	if len(feedback[0].ClaimText) != 1 || feedback[0].ClaimText[0] != "grew revenue 40%" {
		t.Errorf("Expected resolved claim text, got %v", feedback[0].ClaimText)
	}
	if len(feedback[0].FactTexts) != 0 {
		t.Errorf("Expected no fact texts, got %v", feedback[0].FactTexts)
	}
}

func TestBuildFeedback_CountMatchesNonSupportedLinks(t *testing.T) {
	bundle := &model.EvidenceBundle{
		Links: []model.Link{
			{ClaimID: "c1", Verdict: model.VerdictSupported},
			{ClaimID: "c2", Verdict: model.VerdictUnsupported},
			{ClaimID: "c3", Verdict: model.VerdictPartiallySupported},
			{ClaimID: "c4", Verdict: model.VerdictSupported},
		},
	}

	feedback := BuildFeedback(bundle)

	if len(feedback) != 2 {
		t.Errorf("Expected feedback length to equal non-supported link count (2), got %d", len(feedback))
	}
}

func TestBuildFeedback_PreservesLinkOrder(t *testing.T) {
	bundle := &model.EvidenceBundle{
		Claims: []model.Claim{
			{ClaimID: "c1", Text: "first"},
			{ClaimID: "c2", Text: "second"},
			{ClaimID: "c3", Text: "third"},
		},
		Links: []model.Link{
			{ClaimID: "c3", Verdict: model.VerdictUnsupported},
			{ClaimID: "c1", Verdict: model.VerdictPartiallySupported},
			{ClaimID: "c2", Verdict: model.VerdictUnsupported},
		},
	}

	feedback := BuildFeedback(bundle)

	want := []string{"third", "first", "second"}
	if len(feedback) != len(want) {
		t.Fatalf("Expected %d items, got %d", len(want), len(feedback))
	}
	for i, item := range feedback {
		if len(item.ClaimText) != 1 || item.ClaimText[0] != want[i] {
			t.Errorf("Item %d: expected claim %q, got %v", i, want[i], item.ClaimText)
		}
	}
}

func TestBuildFeedback_UnknownClaimIDYieldsEmptyList(t *testing.T) {
	bundle := &model.EvidenceBundle{
		Links: []model.Link{
			{ClaimID: "c99", Verdict: model.VerdictUnsupported},
		},
	}

	feedback := BuildFeedback(bundle)

	if len(feedback) != 1 {
		t.Fatalf("Expected 1 feedback item, got %d", len(feedback))
	}
	if len(feedback[0].ClaimText) != 0 {
		t.Errorf("Expected empty claim-text list for unknown id, got %v", feedback[0].ClaimText)
	}
}

func TestBuildFeedback_UnknownFactIDsSkipped(t *testing.T) {
	bundle := &model.EvidenceBundle{
		Claims: []model.Claim{{ClaimID: "c1", Text: "claim"}},
		Facts: []model.Fact{
			{FactID: "f1", Text: "known fact"},
		},
		Links: []model.Link{
			{ClaimID: "c1", FactIDs: []string{"f1", "f404"}, Verdict: model.VerdictPartiallySupported},
		},
	}

	feedback := BuildFeedback(bundle)

	if len(feedback[0].FactTexts) != 1 || feedback[0].FactTexts[0] != "known fact" {
		t.Errorf("Expected only the known fact text, got %v", feedback[0].FactTexts)
	}
}

func TestBuildFeedback_AllSupported(t *testing.T) {
	bundle := &model.EvidenceBundle{
		Links: []model.Link{
			{ClaimID: "c1", Verdict: model.VerdictSupported},
		},
	}

	if feedback := BuildFeedback(bundle); len(feedback) != 0 {
		t.Errorf("Expected no feedback for a fully supported bundle, got %d items", len(feedback))
	}
}

func TestBuildFeedback_NilBundle(t *testing.T) {
	if feedback := BuildFeedback(nil); feedback != nil {
		t.Errorf("Expected nil feedback for nil bundle, got %v", feedback)
	}
}
