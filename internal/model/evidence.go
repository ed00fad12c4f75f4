package model

// Signals is the bundle of factual markers pulled out of one assertion.
// Each field is a set of verbatim substrings from the source text.
type Signals struct {
	Numbers     []string `json:"numbers,omitempty"`
	Dates       []string `json:"dates,omitempty"`
	Percentages []string `json:"percentages,omitempty"`
	Currency    []string `json:"currency,omitempty"`
	Quantities  []string `json:"quantities,omitempty"`
	Acronyms    []string `json:"acronyms,omitempty"`
	Entities    []string `json:"entities,omitempty"`
	Qualifiers  []string `json:"qualifiers,omitempty"`
	Modality    []string `json:"modality,omitempty"`
	Intensity   []string `json:"intensity,omitempty"`
	Causality   []string `json:"causality,omitempty"`
}

// SourceRef locates an assertion inside the document it came from.
type SourceRef struct {
	Section       string `json:"section"`
	SentenceIndex int    `json:"sentence_index"`
}

// Claim is an atomic assertion extracted from a draft.
// Claims are created fresh on every extraction pass and never mutated.
type Claim struct {
	ClaimID     string    `json:"claim_id"` // Pass-scoped id (c1, c2, ...)
	Text        string    `json:"text"`
	Source      SourceRef `json:"source"`
	Signals     Signals   `json:"signals"`
	Sentiment   string    `json:"sentiment"`
	PrimaryType string    `json:"primary_type"`
	Tags        []string  `json:"tags,omitempty"`
}

// Fact is an atomic assertion extracted from the manager input,
// structurally parallel to Claim plus the bullet rating.
type Fact struct {
	FactID      string   `json:"fact_id"` // Pass-scoped id (f1, f2, ...)
	Text        string   `json:"text"`
	Rating      string   `json:"rating"`
	Signals     Signals  `json:"signals"`
	Sentiment   string   `json:"sentiment"`
	PrimaryType string   `json:"primary_type"`
	Tags        []string `json:"tags,omitempty"`
}

// Scores carries the similarity measurements behind a link verdict.
type Scores struct {
	SemanticSimilarity float64 `json:"semantic_similarity"`
	LexicalOverlap     float64 `json:"lexical_overlap"`
	NumberMatch        string  `json:"number_match"` // exact, partial, none
	EntityMatchRatio   float64 `json:"entity_match_ratio"`
	ModalityMatch      string  `json:"modality_match"`
}

// Verdict classifies how well a claim is backed by linked facts.
type Verdict string

const (
	VerdictSupported          Verdict = "supported"
	VerdictUnsupported        Verdict = "unsupported"
	VerdictPartiallySupported Verdict = "partially_supported"
)

// Link binds one claim to zero or more facts with a support verdict.
type Link struct {
	ClaimID string   `json:"claim_id"`
	FactIDs []string `json:"fact_ids"`
	Scores  Scores   `json:"scores"`
	Verdict Verdict  `json:"verdict"`
	Reasons []string `json:"reasons,omitempty"`
}

// EvidenceBundle is one extraction pass's full snapshot of claims,
// facts, and links. A bundle is owned by the loop iteration that
// produced it and superseded, never merged, by the next pass.
type EvidenceBundle struct {
	Version string  `json:"version"`
	Claims  []Claim `json:"claims"`
	Facts   []Fact  `json:"facts"`
	Links   []Link  `json:"links"`
}

// Discrepancies returns the links whose verdict is anything other
// than supported, in original link order.
func (b *EvidenceBundle) Discrepancies() []Link {
	if b == nil {
		return nil
	}
	var out []Link
	for _, l := range b.Links {
		if l.Verdict != VerdictSupported {
			out = append(out, l)
		}
	}
	return out
}

// ClaimTexts resolves a claim id to the texts of matching claims.
// An unknown id yields an empty list, not an error.
func (b *EvidenceBundle) ClaimTexts(claimID string) []string {
	var texts []string
	if claimID == "" {
		return texts
	}
	for _, c := range b.Claims {
		if c.ClaimID == claimID {
			texts = append(texts, c.Text)
		}
	}
	return texts
}

// FactTexts resolves fact ids to fact texts, silently skipping ids
// absent from the facts collection.
func (b *EvidenceBundle) FactTexts(factIDs []string) []string {
	var texts []string
	for _, f := range b.Facts {
		for _, id := range factIDs {
			if f.FactID == id {
				texts = append(texts, f.Text)
				break
			}
		}
	}
	return texts
}

// FeedbackItem is one unresolved discrepancy handed to the rewriter:
// a rejected link resolved to its claim and fact texts.
type FeedbackItem struct {
	Verdict   Verdict  `json:"verdict"`
	Reasons   []string `json:"reasons,omitempty"`
	ClaimText []string `json:"claim_text"`
	FactTexts []string `json:"fact_texts"`
}
