package validate

import (
	"log/slog"
	"strings"

	"github.com/revisor-ai/revisor/internal/model"
)

// Reconcile merges the model's semantic judgment with the rule-based
// validation result. Tool truth overrides model opinion, in order:
//  1. Tool errors force valid=false and are unioned into the error set.
//  2. Any errors present force valid=false.
//  3. An invalid result must carry a manager-facing message; one is
//     synthesized from the errors when the model supplied none.
//  4. A valid result carries no manager-facing message.
func Reconcile(tool model.ValidationResult, judged model.CheckResult) model.CheckResult {
	valid := judged.Valid
	errors := append([]string(nil), judged.Errors...)
	message := judged.MessageToManager

	if !tool.Valid {
		if valid {
			slog.Warn("validation tool found errors but model judged input valid, forcing valid=false")
			valid = false
		}
		for _, err := range tool.Errors {
			if !containsString(errors, err) {
				errors = append(errors, err)
			}
		}
	}

	if len(errors) > 0 && valid {
		slog.Warn("errors present but valid flag set, forcing valid=false")
		valid = false
	}

	if !valid && message == "" {
		slog.Warn("validation failed without a manager-facing message, synthesizing one")
		if len(errors) > 0 {
			message = "The submitted information requires corrections:\n- " + strings.Join(errors, "\n- ")
		} else {
			message = "The submitted information is invalid. Please review your entries."
		}
	}

	if valid && message != "" {
		slog.Warn("validation passed but a manager-facing message was provided, clearing it", "message", message)
		message = ""
	}

	return model.CheckResult{
		Valid:            valid,
		Errors:           errors,
		MessageToManager: message,
	}
}

func containsString(list []string, s string) bool {
	for _, item := range list {
		if item == s {
			return true
		}
	}
	return false
}
