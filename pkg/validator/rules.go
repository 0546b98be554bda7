package validator

import (
	"fmt"
	"net/mail"
	"strings"
	"unicode/utf8"
)

// RequiredString fails when value is empty or whitespace-only.
func RequiredString(field, value string) *ValidationError {
	if strings.TrimSpace(value) == "" {
		return &ValidationError{Field: field, Message: "is required"}
	}
	return nil
}

// MinLenString fails when value is shorter than minimum characters.
// Empty values pass; combine with RequiredString to forbid them.
func MinLenString(field, value string, minimum int) *ValidationError {
	if value == "" {
		return nil
	}
	if utf8.RuneCountInString(value) < minimum {
		return &ValidationError{Field: field, Message: fmt.Sprintf("must be at least %d characters", minimum)}
	}
	return nil
}

// MaxLenString fails when value is longer than maximum characters.
func MaxLenString(field, value string, maximum int) *ValidationError {
	if utf8.RuneCountInString(value) > maximum {
		return &ValidationError{Field: field, Message: fmt.Sprintf("must be at most %d characters", maximum)}
	}
	return nil
}

// MinFloat64 fails when value is below minimum.
func MinFloat64(field string, value, minimum float64) *ValidationError {
	if value < minimum {
		return &ValidationError{Field: field, Message: fmt.Sprintf("must be at least %g", minimum)}
	}
	return nil
}

// IntBetween fails when value is outside the inclusive [minimum, maximum] range.
func IntBetween(field string, value, minimum, maximum int) *ValidationError {
	if value < minimum || value > maximum {
		return &ValidationError{Field: field, Message: fmt.Sprintf("must be between %d and %d", minimum, maximum)}
	}
	return nil
}

// ValidEmail fails when value is not a parseable email address.
// Empty values pass; combine with RequiredString to forbid them.
func ValidEmail(field, value string) *ValidationError {
	if value == "" {
		return nil
	}
	addr, err := mail.ParseAddress(value)
	if err != nil || addr.Address != value {
		return &ValidationError{Field: field, Message: "must be a valid email address"}
	}
	return nil
}
