package validation

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// ValidateName validates a person or organisation name.
func ValidateName(label, name string) error {
	return ValidateText(label, name, 100, true)
}

// ValidateText checks a free-text field against a rune limit.
func ValidateText(label, value string, max int, required bool) error {
	trimmed := strings.TrimSpace(value)

	if trimmed == "" {
		if required {
			return fmt.Errorf("%s is required", label)
		}
		return nil
	}

	if utf8.RuneCountInString(trimmed) > max {
		return fmt.Errorf("%s is too long (max %d characters)", label, max)
	}

	return nil
}
