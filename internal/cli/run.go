package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/revisor-ai/revisor/internal/model"
	"github.com/revisor-ai/revisor/internal/pipeline"
)

var (
	inputPath      string
	structurePath  string
	qualifiersPath string
	outJSON        string
	outMD          string
	runTimeout     time.Duration
	maxRevisions   int
	llmProvider    string
	llmModel       string
	llmBaseURL     string
	noCache        bool
	strictEmpty    bool
)

// runCmd represents the run command
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Draft and fact-check one performance review",
	Long: `Run validates a manager submission, drafts the review narrative,
and fact-checks the draft against the submission until every claim is
supported or the revision budget runs out.

Example:
  revisor run --input input.json --structure structure.json --qualifiers qualifiers.json
  revisor run --input input.json --structure structure.json --qualifiers qualifiers.json --json result.json --md review.md
  revisor run --input input.json --structure structure.json --qualifiers qualifiers.json --max-revisions 5`,
	RunE: runRun,
}

func init() {
	rootCmd.AddCommand(runCmd)

	// Input documents
	runCmd.Flags().StringVar(&inputPath, "input", "", "manager input JSON path (required)")
	runCmd.Flags().StringVar(&structurePath, "structure", "", "review structure JSON path (required)")
	runCmd.Flags().StringVar(&qualifiersPath, "qualifiers", "", "qualifiers JSON path (required)")
	_ = runCmd.MarkFlagRequired("input")
	_ = runCmd.MarkFlagRequired("structure")
	_ = runCmd.MarkFlagRequired("qualifiers")

	// Output flags
	runCmd.Flags().StringVar(&outJSON, "json", "result.json", "output JSON path")
	runCmd.Flags().StringVar(&outMD, "md", "", "output Markdown path (optional)")

	// Loop flags
	runCmd.Flags().DurationVar(&runTimeout, "timeout", 10*time.Minute, "overall run timeout")
	runCmd.Flags().IntVar(&maxRevisions, "max-revisions", 0, "rewrite budget (0 uses configured default)")
	runCmd.Flags().BoolVar(&strictEmpty, "strict-empty-bundle", false, "treat an empty extraction result as a failure")

	// LLM flags
	runCmd.Flags().StringVar(&llmProvider, "llm-provider", "", "LLM provider (openai, ollama)")
	runCmd.Flags().StringVar(&llmModel, "llm-model", "", "LLM model name")
	runCmd.Flags().StringVar(&llmBaseURL, "llm-base-url", "", "custom LLM endpoint")
	runCmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the extraction idempotency cache")
}

func runRun(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig()
	if err != nil {
		return err
	}

	docs, err := pipeline.LoadDocuments(inputPath, structurePath, qualifiersPath)
	if err != nil {
		return fmt.Errorf("load documents: %w", err)
	}

	p, err := pipeline.NewPipeline(cfg, nil)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), runTimeout)
	defer cancel()

	result, err := p.Run(ctx, docs)
	if err != nil {
		return err
	}

	if err := p.RenderResult(result, outJSON, outMD); err != nil {
		return err
	}

	fmt.Printf("Status: %s (revisions: %d)\n", result.Status, result.Revisions)
	if result.Status == model.StatusInvalidInput && result.Validation.MessageToManager != "" {
		fmt.Println(result.Validation.MessageToManager)
	}

	return nil
}

// baseConfig layers defaults with the config file and environment.
func baseConfig() (*model.Config, error) {
	cfg := model.DefaultConfig()
	if err := viper.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("parse configuration: %w", err)
	}
	cfg.Output.Verbose = verbose
	return cfg, nil
}

// buildConfig layers configuration: defaults, then config file and
// environment via viper, then explicit CLI flags.
func buildConfig() (*model.Config, error) {
	cfg, err := baseConfig()
	if err != nil {
		return nil, err
	}

	if llmProvider != "" {
		cfg.LLM.Provider = llmProvider
	}
	if llmModel != "" {
		cfg.LLM.Model = llmModel
	}
	if llmBaseURL != "" {
		cfg.LLM.BaseURL = llmBaseURL
	}
	if maxRevisions > 0 {
		cfg.Loop.MaxRevisions = maxRevisions
	}
	if strictEmpty {
		cfg.Loop.StrictEmptyBundle = true
	}
	if noCache {
		cfg.Cache.Enabled = false
	}

	if cfg.LLM.APIKey == "" && cfg.LLM.Provider == "openai" {
		cfg.LLM.APIKey = os.Getenv("OPENAI_API_KEY")
		if cfg.LLM.APIKey == "" {
			return nil, fmt.Errorf("OPENAI_API_KEY environment variable not set")
		}
	}

	return cfg, nil
}
