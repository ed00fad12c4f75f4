package worker

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"sync"
	"testing"

	"github.com/revisor-ai/revisor/internal/model"
	"github.com/revisor-ai/revisor/internal/pipeline"
)

// fakeRunner records the employees it drafted for and fails on request.
type fakeRunner struct {
	mu        sync.Mutex
	employees []string
	failFor   string
}

func (r *fakeRunner) Run(ctx context.Context, docs pipeline.Documents) (*model.PipelineResult, error) {
	r.mu.Lock()
	r.employees = append(r.employees, docs.Input.Employee)
	r.mu.Unlock()

	if docs.Input.Employee == r.failFor {
		return nil, errors.New("drafting failed")
	}
	return &model.PipelineResult{
		Status:   model.StatusAccepted,
		Employee: docs.Input.Employee,
	}, nil
}

func writeInput(t *testing.T, dir, name, employee string) string {
	t.Helper()
	content := `{
		"manager_id": "m1",
		"employee": "` + employee + `",
		"manager_bullets": [{"text": "Shipped the billing migration", "rating": "exceeds_expectations"}]
	}`
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func TestProcessFiles(t *testing.T) {
	dir := t.TempDir()
	paths := []string{
		writeInput(t, dir, "a.json", "E-1"),
		writeInput(t, dir, "b.json", "E-2"),
		writeInput(t, dir, "c.json", "E-3"),
	}

	runner := &fakeRunner{}
	processor := NewBatchProcessor(runner, 2)

	results := processor.ProcessFiles(context.Background(), paths, nil, nil)
	if len(results) != 3 {
		t.Fatalf("Expected 3 results, got %d", len(results))
	}
	for _, r := range results {
		if r.GetError() != nil {
			t.Errorf("Expected no error for %s, got %v", r.Path, r.GetError())
		}
		if r.Result == nil || r.Result.Status != model.StatusAccepted {
			t.Errorf("Expected accepted result for %s", r.Path)
		}
	}
	if len(runner.employees) != 3 {
		t.Errorf("Expected 3 runs, got %d", len(runner.employees))
	}
}

func TestProcessFiles_KeepsFailures(t *testing.T) {
	dir := t.TempDir()
	paths := []string{
		writeInput(t, dir, "a.json", "E-1"),
		writeInput(t, dir, "b.json", "E-2"),
	}

	runner := &fakeRunner{failFor: "E-2"}
	processor := NewBatchProcessor(runner, 2)

	results := processor.ProcessFiles(context.Background(), paths, nil, nil)
	if len(results) != 2 {
		t.Fatalf("Expected 2 results, got %d", len(results))
	}

	failed := 0
	for _, r := range results {
		if r.GetError() != nil {
			failed++
		}
	}
	if failed != 1 {
		t.Errorf("Expected 1 failed result, got %d", failed)
	}
}

func TestProcessFiles_UnreadableFileStaysInReport(t *testing.T) {
	dir := t.TempDir()
	good := writeInput(t, dir, "a.json", "E-1")
	bad := filepath.Join(dir, "absent.json")

	runner := &fakeRunner{}
	processor := NewBatchProcessor(runner, 2)

	results := processor.ProcessFiles(context.Background(), []string{good, bad}, nil, nil)
	if len(results) != 2 {
		t.Fatalf("Expected 2 results, got %d", len(results))
	}

	var badResult *ReviewResult
	for _, r := range results {
		if r.Path == bad {
			badResult = r
		}
	}
	if badResult == nil || badResult.GetError() == nil {
		t.Error("Expected the unreadable file to appear in the report with its load error")
	}
	if len(runner.employees) != 1 {
		t.Errorf("Expected only the readable file to run, got %d runs", len(runner.employees))
	}
}

func TestProcessFiles_Empty(t *testing.T) {
	processor := NewBatchProcessor(&fakeRunner{}, 2)

	results := processor.ProcessFiles(context.Background(), nil, nil, nil)
	if len(results) != 0 {
		t.Errorf("Expected no results, got %d", len(results))
	}
}

func TestFindInputFiles(t *testing.T) {
	dir := t.TempDir()
	writeInput(t, dir, "b.json", "E-2")
	writeInput(t, dir, "a.json", "E-1")
	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("skip"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.Mkdir(filepath.Join(dir, "nested.json"), 0755); err != nil {
		t.Fatal(err)
	}

	paths, err := FindInputFiles(dir)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	want := []string{filepath.Join(dir, "a.json"), filepath.Join(dir, "b.json")}
	if !reflect.DeepEqual(paths, want) {
		t.Errorf("Expected %v, got %v", want, paths)
	}
}

func TestFindInputFiles_MissingDirectory(t *testing.T) {
	if _, err := FindInputFiles(filepath.Join(t.TempDir(), "absent")); err == nil {
		t.Error("Expected error for missing directory")
	}
}
