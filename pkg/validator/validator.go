// Package validator provides static field-constraint validation that
// collects every violation instead of stopping at the first one.
package validator

import (
	"errors"
	"strings"
)

// ValidationError describes a single field constraint violation.
type ValidationError struct {
	Field   string
	Message string
}

// ValidationErrors collects all violations found while validating an
// input value. It implements the error interface.
type ValidationErrors []ValidationError

func (e ValidationErrors) Error() string {
	if len(e) == 0 {
		return "validation failed"
	}
	parts := make([]string, 0, len(e))
	for _, v := range e {
		parts = append(parts, v.Field+": "+v.Message)
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// Fields returns the names of all violated fields, in rule order.
func (e ValidationErrors) Fields() []string {
	fields := make([]string, 0, len(e))
	for _, v := range e {
		fields = append(fields, v.Field)
	}
	return fields
}

// Has reports whether the given field has at least one violation.
func (e ValidationErrors) Has(field string) bool {
	for _, v := range e {
		if v.Field == field {
			return true
		}
	}
	return false
}

// Apply evaluates all rules against their captured values and returns a
// ValidationErrors carrying every violation, or nil when all rules pass.
func Apply(rules ...*ValidationError) error {
	var errs ValidationErrors
	for _, r := range rules {
		if r != nil {
			errs = append(errs, *r)
		}
	}
	if len(errs) == 0 {
		return nil
	}
	return errs
}

// ExtractValidationErrors returns the ValidationErrors wrapped in err,
// or nil when err does not carry any.
func ExtractValidationErrors(err error) ValidationErrors {
	var ve ValidationErrors
	if errors.As(err, &ve) {
		return ve
	}
	return nil
}
