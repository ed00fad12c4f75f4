package prompt

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestGet_AllNamedTemplates(t *testing.T) {
	loader := NewLoader()

	for _, name := range []string{NameInputCheck, NameDraft, NameFactExtractor, NameFactRewriter} {
		text, err := loader.Get(name)
		if err != nil {
			t.Errorf("Get(%q) failed: %v", name, err)
			continue
		}
		if strings.TrimSpace(text) == "" {
			t.Errorf("Get(%q) returned empty template", name)
		}
	}
}

func TestGet_UnknownTemplate(t *testing.T) {
	loader := NewLoader()

	if _, err := loader.Get("n_does_not_exist"); err == nil {
		t.Error("Expected error for unknown template")
	}
}

func TestGetFormatted_SubstitutesAllSlots(t *testing.T) {
	loader := NewLoader()

	text, err := loader.GetFormatted(NameFactRewriter, map[string]string{
		"draft":         "DRAFT-BODY",
		"feedback":      "FEEDBACK-BODY",
		"manager_input": "INPUT-BODY",
	})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	for _, want := range []string{"DRAFT-BODY", "FEEDBACK-BODY", "INPUT-BODY"} {
		if !strings.Contains(text, want) {
			t.Errorf("Expected formatted prompt to contain %q", want)
		}
	}
	if strings.Contains(text, "{draft}") || strings.Contains(text, "{feedback}") {
		t.Error("Expected all substitution slots to be replaced")
	}
}

func TestGetFormatted_MissingSubstitution(t *testing.T) {
	loader := NewLoader()

	_, err := loader.GetFormatted(NameFactRewriter, map[string]string{
		"draft": "DRAFT-BODY",
	})
	if err == nil {
		t.Fatal("Expected error for missing substitution")
	}
	if !strings.Contains(err.Error(), "feedback") {
		t.Errorf("Expected error to name the missing slot, got %v", err)
	}
}

func TestGetFormatted_KeepsNamePlaceholder(t *testing.T) {
	loader := NewLoader()

	// {{employee_name}} is part of the output contract, not a
	// substitution slot, and must survive formatting untouched.
	text, err := loader.GetFormatted(NameFactRewriter, map[string]string{
		"draft":         "d",
		"feedback":      "f",
		"manager_input": "m",
	})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if !strings.Contains(text, "{{employee_name}}") {
		t.Error("Expected {{employee_name}} placeholder to survive formatting")
	}
}

func TestGetFormatted_ValuesWithBraces(t *testing.T) {
	loader := NewLoader()

	// Serialized JSON values contain braces; they must not be
	// re-interpreted as substitution slots.
	text, err := loader.GetFormatted(NameInputCheck, map[string]string{
		"manager_input":          `{"manager_id": "m1"}`,
		"validation_tool_output": `{"valid": true}`,
	})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if !strings.Contains(text, `{"manager_id": "m1"}`) {
		t.Error("Expected JSON value to be embedded verbatim")
	}
}

func TestExample_RendersIndentedJSON(t *testing.T) {
	loader := NewLoader()

	example, err := loader.Example()
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	var doc map[string]any
	if err := json.Unmarshal([]byte(example), &doc); err != nil {
		t.Fatalf("Expected example to be valid JSON, got %v", err)
	}
	if _, ok := doc["claim_fact_pairs"]; !ok {
		t.Error("Expected example to contain claim_fact_pairs")
	}
	if !strings.Contains(example, "\n  ") {
		t.Error("Expected example JSON to be indented")
	}
}
