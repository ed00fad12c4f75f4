package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/revisor-ai/revisor/internal/pipeline"
	"github.com/revisor-ai/revisor/internal/worker"
)

var (
	batchInputDir    string
	batchOutputDir   string
	batchTimeout     time.Duration
	batchConcurrency int
)

// batchCmd represents the batch command
var batchCmd = &cobra.Command{
	Use:   "batch",
	Short: "Draft reviews for a directory of manager submissions",
	Long: `Batch processes every manager-input JSON document in a directory,
drafting and fact-checking each review concurrently. All submissions
share one review structure and one qualifiers document; each run owns
its own revision state.

Example:
  revisor batch --input-dir inputs/ --structure structure.json --qualifiers qualifiers.json --output-dir results/`,
	RunE: runBatch,
}

func init() {
	rootCmd.AddCommand(batchCmd)

	batchCmd.Flags().StringVar(&batchInputDir, "input-dir", "", "directory of manager input JSON files (required)")
	batchCmd.Flags().StringVar(&structurePath, "structure", "", "review structure JSON path (required)")
	batchCmd.Flags().StringVar(&qualifiersPath, "qualifiers", "", "qualifiers JSON path (required)")
	batchCmd.Flags().StringVar(&batchOutputDir, "output-dir", ".", "directory for result artifacts")
	batchCmd.Flags().DurationVar(&batchTimeout, "timeout", 60*time.Minute, "overall batch timeout")
	batchCmd.Flags().IntVar(&batchConcurrency, "concurrency", 0, "concurrent reviews (0 uses configured default)")
	_ = batchCmd.MarkFlagRequired("input-dir")
	_ = batchCmd.MarkFlagRequired("structure")
	_ = batchCmd.MarkFlagRequired("qualifiers")
}

func runBatch(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig()
	if err != nil {
		return err
	}
	if batchConcurrency > 0 {
		cfg.Concurrency.BatchWorkers = batchConcurrency
	}

	structure, qualifiers, err := pipeline.LoadShared(structurePath, qualifiersPath)
	if err != nil {
		return fmt.Errorf("load shared documents: %w", err)
	}

	paths, err := worker.FindInputFiles(batchInputDir)
	if err != nil {
		return err
	}
	if len(paths) == 0 {
		return fmt.Errorf("no input files found in %s", batchInputDir)
	}

	p, err := pipeline.NewPipeline(cfg, nil)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(batchOutputDir, 0755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), batchTimeout)
	defer cancel()

	processor := worker.NewBatchProcessor(p, cfg.Concurrency.BatchWorkers)
	results := processor.ProcessFiles(ctx, paths, structure, qualifiers)

	failed := 0
	for _, r := range results {
		if r.Error != nil {
			failed++
			fmt.Fprintf(os.Stderr, "✗ %s: %v\n", r.Path, r.Error)
			continue
		}

		name := strings.TrimSuffix(filepath.Base(r.Path), ".json")
		jsonPath := filepath.Join(batchOutputDir, name+".result.json")
		if err := p.RenderResult(r.Result, jsonPath, ""); err != nil {
			failed++
			fmt.Fprintf(os.Stderr, "✗ %s: %v\n", r.Path, err)
			continue
		}
		fmt.Printf("✓ %s: %s (revisions: %d)\n", r.Path, r.Result.Status, r.Result.Revisions)
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d reviews failed", failed, len(results))
	}
	return nil
}
