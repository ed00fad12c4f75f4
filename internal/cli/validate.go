package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/revisor-ai/revisor/internal/pipeline"
	"github.com/revisor-ai/revisor/internal/validate"
)

var (
	validateInputPath      string
	validateQualifiersPath string
)

// validateCmd represents the validate command. It runs only the
// rule-based check: no model call, no drafting.
var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Rule-check a manager submission without drafting",
	Long: `Validate runs the rule-based input check on a manager submission
and prints the accumulated violations. No model is consulted and no
draft is produced.

Example:
  revisor validate --input input.json --qualifiers qualifiers.json`,
	RunE: runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)

	validateCmd.Flags().StringVar(&validateInputPath, "input", "", "manager input JSON path (required)")
	validateCmd.Flags().StringVar(&validateQualifiersPath, "qualifiers", "", "qualifiers JSON path (required)")
	_ = validateCmd.MarkFlagRequired("input")
	_ = validateCmd.MarkFlagRequired("qualifiers")
}

func runValidate(cmd *cobra.Command, args []string) error {
	cfg, err := baseConfig()
	if err != nil {
		return err
	}

	input, err := pipeline.LoadInput(validateInputPath)
	if err != nil {
		return err
	}
	qualifiers, err := pipeline.LoadQualifiers(validateQualifiersPath)
	if err != nil {
		return err
	}

	result := validate.Validate(input, qualifiers, cfg.Validation)

	output, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal result: %w", err)
	}
	fmt.Println(string(output))

	if !result.Valid {
		os.Exit(1)
	}
	return nil
}
