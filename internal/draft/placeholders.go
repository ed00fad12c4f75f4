package draft

import "regexp"

// placeholderPattern matches PII placeholder tokens ({{employee_name}}).
var placeholderPattern = regexp.MustCompile(`\{\{[a-zA-Z_]+\}\}`)

// Placeholders returns the distinct PII placeholder tokens in a draft,
// in first-appearance order.
func Placeholders(text string) []string {
	seen := make(map[string]bool)
	var tokens []string
	for _, match := range placeholderPattern.FindAllString(text, -1) {
		if !seen[match] {
			seen[match] = true
			tokens = append(tokens, match)
		}
	}
	return tokens
}

// missingPlaceholders returns the tokens from want that do not appear
// in text.
func missingPlaceholders(want []string, text string) []string {
	var missing []string
	for _, token := range want {
		if !placeholderPresent(token, text) {
			missing = append(missing, token)
		}
	}
	return missing
}

func placeholderPresent(token, text string) bool {
	for _, match := range placeholderPattern.FindAllString(text, -1) {
		if match == token {
			return true
		}
	}
	return false
}
