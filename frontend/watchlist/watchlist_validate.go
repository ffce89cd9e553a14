package watchlist

import (
	"regexp"
	"strings"
)

var symbolPattern = regexp.MustCompile(`^[A-Za-z0-9.]+$`)

const (
	msgEmptySymbol   = "Please enter a stock symbol"
	msgInvalidSymbol = "Invalid symbol format. Use alphanumeric characters and dots only."
)

type ValidationResult struct {
	Valid   bool
	Message string
}

// Validate checks raw user input against the ticker format.
func Validate(input string) ValidationResult {
	trimmed := strings.TrimSpace(input)
	if trimmed == "" {
		return ValidationResult{Message: msgEmptySymbol}
	}
	if !symbolPattern.MatchString(trimmed) {
		return ValidationResult{Message: msgInvalidSymbol}
	}
	return ValidationResult{Valid: true}
}
