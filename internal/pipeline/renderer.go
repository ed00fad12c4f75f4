package pipeline

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/revisor-ai/revisor/internal/model"
)

// Renderer writes pipeline results as JSON and Markdown artifacts.
// Results are already plain structures, so serialization is direct.
type Renderer struct{}

// NewRenderer creates a new renderer
func NewRenderer() *Renderer {
	return &Renderer{}
}

// RenderJSON writes the result artifact as indented JSON.
func (r *Renderer) RenderJSON(result *model.PipelineResult, path string) error {
	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal result: %w", err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// RenderMarkdown writes a human-readable summary of the run.
func (r *Renderer) RenderMarkdown(result *model.PipelineResult, path string) error {
	var b strings.Builder

	b.WriteString("# Performance Review Draft\n\n")
	fmt.Fprintf(&b, "- **Run**: %s\n", result.RunID)
	fmt.Fprintf(&b, "- **Employee**: %s\n", result.Employee)
	fmt.Fprintf(&b, "- **Manager**: %s\n", result.ManagerID)
	fmt.Fprintf(&b, "- **Status**: %s\n", result.Status)
	fmt.Fprintf(&b, "- **Revisions**: %d\n", result.Revisions)
	if result.Reason != "" {
		fmt.Fprintf(&b, "- **Stopped because**: %s\n", result.Reason)
	}
	b.WriteString("\n")

	if result.Status == model.StatusInvalidInput {
		b.WriteString("## Validation Errors\n\n")
		for _, err := range result.Validation.Errors {
			fmt.Fprintf(&b, "- %s\n", err)
		}
		if result.Validation.MessageToManager != "" {
			b.WriteString("\n## Message to Manager\n\n")
			b.WriteString(result.Validation.MessageToManager)
			b.WriteString("\n")
		}
		return os.WriteFile(path, []byte(b.String()), 0644)
	}

	b.WriteString("## Draft\n\n")
	b.WriteString(result.Draft)
	b.WriteString("\n")

	if result.Evidence != nil {
		discrepancies := result.Evidence.Discrepancies()
		b.WriteString("\n## Fact Check\n\n")
		fmt.Fprintf(&b, "- Claims: %d\n", len(result.Evidence.Claims))
		fmt.Fprintf(&b, "- Facts: %d\n", len(result.Evidence.Facts))
		fmt.Fprintf(&b, "- Links: %d\n", len(result.Evidence.Links))
		fmt.Fprintf(&b, "- Open discrepancies: %d\n", len(discrepancies))

		if len(discrepancies) > 0 {
			b.WriteString("\n| Claim | Verdict | Reasons |\n")
			b.WriteString("|-------|---------|--------|\n")
			for _, link := range discrepancies {
				claim := strings.Join(result.Evidence.ClaimTexts(link.ClaimID), "; ")
				fmt.Fprintf(&b, "| %s | %s | %s |\n",
					escapeCell(claim), link.Verdict, escapeCell(strings.Join(link.Reasons, "; ")))
			}
		}
	}

	return os.WriteFile(path, []byte(b.String()), 0644)
}

func escapeCell(s string) string {
	s = strings.ReplaceAll(s, "|", "\\|")
	return strings.ReplaceAll(s, "\n", " ")
}
