package worker

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/revisor-ai/revisor/internal/model"
	"github.com/revisor-ai/revisor/internal/pipeline"
)

// Runner executes one full drafting run. Each invocation owns its own
// revision state; concurrent jobs never share loop state.
type Runner interface {
	Run(ctx context.Context, docs pipeline.Documents) (*model.PipelineResult, error)
}

// ReviewJob drafts one review from a manager-input file
type ReviewJob struct {
	Path   string
	Docs   pipeline.Documents
	Runner Runner
}

// Execute executes the review job
func (j *ReviewJob) Execute(ctx context.Context) Result {
	result, err := j.Runner.Run(ctx, j.Docs)
	return &ReviewResult{
		Path:   j.Path,
		Result: result,
		Error:  err,
	}
}

// ReviewResult represents the result of one review job
type ReviewResult struct {
	Path   string
	Result *model.PipelineResult
	Error  error
}

// GetError returns the error from the review result
func (r *ReviewResult) GetError() error {
	return r.Error
}

// BatchProcessor drafts reviews for multiple submissions concurrently.
// All jobs share the review structure and qualifiers documents.
type BatchProcessor struct {
	runner      Runner
	concurrency int
}

// NewBatchProcessor creates a new batch processor
func NewBatchProcessor(runner Runner, concurrency int) *BatchProcessor {
	return &BatchProcessor{
		runner:      runner,
		concurrency: concurrency,
	}
}

// ProcessFiles loads each manager-input file and drafts its review.
// A file that fails to load still yields a ReviewResult carrying the
// load error, so the batch report stays complete.
func (b *BatchProcessor) ProcessFiles(ctx context.Context, inputPaths []string, structure model.ReviewStructure, qualifiers model.Qualifiers) []*ReviewResult {
	if len(inputPaths) == 0 {
		return []*ReviewResult{}
	}

	pool := NewPool(ctx, b.concurrency)
	pool.Start()

	var loadFailures []*ReviewResult
	for _, path := range inputPaths {
		input, err := pipeline.LoadInput(path)
		if err != nil {
			loadFailures = append(loadFailures, &ReviewResult{Path: path, Error: err})
			continue
		}
		pool.Submit(&ReviewJob{
			Path: path,
			Docs: pipeline.Documents{
				Input:      input,
				Structure:  structure,
				Qualifiers: qualifiers,
			},
			Runner: b.runner,
		})
	}

	results := pool.Wait()

	reviewResults := make([]*ReviewResult, 0, len(results)+len(loadFailures))
	for _, result := range results {
		reviewResults = append(reviewResults, result.(*ReviewResult))
	}
	reviewResults = append(reviewResults, loadFailures...)
	return reviewResults
}

// FindInputFiles lists the JSON manager-input documents in a directory,
// sorted by name for stable batch ordering.
func FindInputFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read input directory: %w", err)
	}

	var paths []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		paths = append(paths, filepath.Join(dir, entry.Name()))
	}
	sort.Strings(paths)
	return paths, nil
}
