// Package validate checks manager submissions before any draft is
// produced: a rule-based pass over the raw input, plus reconciliation
// of the model's semantic judgment with the rule-based findings.
package validate

import (
	"fmt"
	"strings"

	"github.com/revisor-ai/revisor/internal/model"
)

// Validate runs the rule-based input check. Every violated rule is
// accumulated; the check never short-circuits on the first failure.
func Validate(input model.ManagerInput, qualifiers model.Qualifiers, limits model.ValidationLimits) model.ValidationResult {
	errors := []string{}

	if strings.TrimSpace(input.ManagerID) == "" {
		errors = append(errors, "Field 'manager_id' is missing or empty.")
	}
	if strings.TrimSpace(input.Employee) == "" {
		errors = append(errors, "Field 'employee' is missing or empty.")
	}
	if len(input.ManagerBullets) == 0 {
		errors = append(errors, "Field 'manager_bullets' is missing or empty.")
	} else if len(input.ManagerBullets) < limits.MinBullets {
		errors = append(errors, fmt.Sprintf("Field 'manager_bullets' must have at least %d items. Found %d.",
			limits.MinBullets, len(input.ManagerBullets)))
	}

	allowed := qualifiers.AllowedRatings()

	ratedCount := 0
	for i, bullet := range input.ManagerBullets {
		text := strings.TrimSpace(bullet.Text)
		if text == "" {
			errors = append(errors, fmt.Sprintf("Bullet item %d missing 'text'.", i))
		} else if len(text) < limits.MinTextLength {
			errors = append(errors, fmt.Sprintf("Bullet item %d 'text' is too short.", i))
		}

		if bullet.Rating != "" {
			ratedCount++
			if !ratingAllowed(bullet.Rating, allowed) {
				errors = append(errors, fmt.Sprintf("Bullet item %d has invalid rating '%s'. Allowed: %v.",
					i, bullet.Rating, allowed))
			}
		}
	}

	if ratedCount < limits.MinRatings {
		errors = append(errors, fmt.Sprintf("At least %d bullets must have a rating. Found %d.",
			limits.MinRatings, ratedCount))
	}

	return model.ValidationResult{
		Valid:  len(errors) == 0,
		Errors: errors,
	}
}

func ratingAllowed(rating string, allowed []string) bool {
	for _, a := range allowed {
		if rating == a {
			return true
		}
	}
	return false
}
