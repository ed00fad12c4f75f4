package pipeline

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/revisor-ai/revisor/internal/model"
)

// Documents are the three read-only inputs to one pipeline run.
type Documents struct {
	Input      model.ManagerInput
	Structure  model.ReviewStructure
	Qualifiers model.Qualifiers
}

// LoadDocuments reads the manager input, review structure, and
// qualifiers documents from JSON files.
func LoadDocuments(inputPath, structurePath, qualifiersPath string) (Documents, error) {
	var docs Documents

	if err := readJSON(inputPath, &docs.Input); err != nil {
		return Documents{}, fmt.Errorf("manager input: %w", err)
	}
	if err := readJSON(structurePath, &docs.Structure); err != nil {
		return Documents{}, fmt.Errorf("review structure: %w", err)
	}
	if err := readJSON(qualifiersPath, &docs.Qualifiers); err != nil {
		return Documents{}, fmt.Errorf("qualifiers: %w", err)
	}

	return docs, nil
}

// LoadShared reads the review structure and qualifiers documents that
// a batch of runs has in common.
func LoadShared(structurePath, qualifiersPath string) (model.ReviewStructure, model.Qualifiers, error) {
	var structure model.ReviewStructure
	var qualifiers model.Qualifiers

	if err := readJSON(structurePath, &structure); err != nil {
		return nil, nil, fmt.Errorf("review structure: %w", err)
	}
	if err := readJSON(qualifiersPath, &qualifiers); err != nil {
		return nil, nil, fmt.Errorf("qualifiers: %w", err)
	}
	return structure, qualifiers, nil
}

// LoadQualifiers reads a qualifiers document on its own.
func LoadQualifiers(path string) (model.Qualifiers, error) {
	var qualifiers model.Qualifiers
	if err := readJSON(path, &qualifiers); err != nil {
		return nil, fmt.Errorf("qualifiers: %w", err)
	}
	return qualifiers, nil
}

// LoadInput reads a single manager-input document, used by batch runs
// that share one structure and qualifiers set.
func LoadInput(path string) (model.ManagerInput, error) {
	var input model.ManagerInput
	if err := readJSON(path, &input); err != nil {
		return model.ManagerInput{}, fmt.Errorf("manager input: %w", err)
	}
	return input, nil
}

func readJSON(path string, out any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}
	return nil
}
