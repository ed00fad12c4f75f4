package validate

import (
	"strings"
	"testing"

	"github.com/revisor-ai/revisor/internal/model"
)

func testQualifiers() model.Qualifiers {
	return model.Qualifiers{
		"schema": map[string]any{
			"properties": map[string]any{
				"performance_rating": map[string]any{
					"enum": []any{"exceeds_expectations", "meets_expectations", "below_expectations"},
				},
			},
		},
	}
}

func defaultLimits() model.ValidationLimits {
	return model.ValidationLimits{
		MinBullets:    3,
		MinRatings:    2,
		MinTextLength: 10,
	}
}

func validInput() model.ManagerInput {
	return model.ManagerInput{
		ManagerID: "m-100",
		Employee:  "e-200",
		ManagerBullets: []model.Bullet{
			{Text: "Grew revenue 40% quarter over quarter.", Rating: "exceeds_expectations"},
			{Text: "Mentored two junior engineers on the platform team.", Rating: "meets_expectations"},
			{Text: "Led the incident response rotation for six months."},
		},
	}
}

func TestValidate_ValidInput(t *testing.T) {
	result := Validate(validInput(), testQualifiers(), defaultLimits())

	if !result.Valid {
		t.Errorf("Expected valid input, got errors: %v", result.Errors)
	}
	if len(result.Errors) != 0 {
		t.Errorf("Expected no errors, got %d", len(result.Errors))
	}
}

func TestValidate_MissingTopLevelFields(t *testing.T) {
	input := validInput()
	input.ManagerID = ""
	input.Employee = "  "

	result := Validate(input, testQualifiers(), defaultLimits())

	if result.Valid {
		t.Fatal("Expected invalid input")
	}
	if len(result.Errors) != 2 {
		t.Errorf("Expected 2 errors, got %d: %v", len(result.Errors), result.Errors)
	}
}

func TestValidate_TooFewRatedBullets(t *testing.T) {
	// 3 bullets with only 1 rated -> invalid with default limits,
	// valid once min_ratings drops to 1.
	input := validInput()
	input.ManagerBullets[1].Rating = ""

	result := Validate(input, testQualifiers(), defaultLimits())
	if result.Valid {
		t.Fatal("Expected invalid input with 1 rated bullet")
	}
	found := false
	for _, err := range result.Errors {
		if strings.Contains(err, "must have a rating") {
			found = true
		}
	}
	if !found {
		t.Errorf("Expected a minimum-rated-bullets error, got %v", result.Errors)
	}

	relaxed := defaultLimits()
	relaxed.MinRatings = 1
	result = Validate(input, testQualifiers(), relaxed)
	if !result.Valid {
		t.Errorf("Expected valid input with min_ratings=1, got errors: %v", result.Errors)
	}
}

func TestValidate_AccumulatesAllViolations(t *testing.T) {
	input := model.ManagerInput{
		ManagerBullets: []model.Bullet{
			{Text: "short", Rating: "stellar"},
		},
	}

	result := Validate(input, testQualifiers(), defaultLimits())

	if result.Valid {
		t.Fatal("Expected invalid input")
	}
	// manager_id, employee, bullet count, short text, invalid rating,
	// rated-bullet minimum: nothing short-circuits.
	if len(result.Errors) < 6 {
		t.Errorf("Expected at least 6 accumulated errors, got %d: %v", len(result.Errors), result.Errors)
	}
}

func TestValidate_Monotonic(t *testing.T) {
	input := validInput()
	base := Validate(input, testQualifiers(), defaultLimits())

	input.ManagerBullets[0].Rating = "made_up_rating"
	worse := Validate(input, testQualifiers(), defaultLimits())

	if len(worse.Errors) < len(base.Errors) {
		t.Errorf("Adding a violation shrank the error set: %d -> %d", len(base.Errors), len(worse.Errors))
	}
	if worse.Valid {
		t.Error("Expected invalid result when errors are present")
	}
}

func TestValidate_InvalidRating(t *testing.T) {
	input := validInput()
	input.ManagerBullets[0].Rating = "legendary"

	result := Validate(input, testQualifiers(), defaultLimits())

	if result.Valid {
		t.Fatal("Expected invalid input")
	}
	found := false
	for _, err := range result.Errors {
		if strings.Contains(err, "invalid rating 'legendary'") {
			found = true
		}
	}
	if !found {
		t.Errorf("Expected an invalid-rating error, got %v", result.Errors)
	}
}

func TestValidate_EmptyQualifiers(t *testing.T) {
	// Without an enum every rating is rejected.
	result := Validate(validInput(), model.Qualifiers{}, defaultLimits())

	if result.Valid {
		t.Fatal("Expected invalid input when no ratings are allowed")
	}
}
