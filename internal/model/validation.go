package model

import (
	"errors"
	"fmt"
	"strings"
)

// ErrValidationFailed is matched by every *ValidationError via errors.Is.
var ErrValidationFailed = errors.New("validation failed")

// FieldError represents a validation error on a specific field
type FieldError struct {
	Field   string
	Message string
}

// ValidationError collects the shallow client-side checks run before a
// payload is submitted. The server remains the authority.
type ValidationError struct {
	Errors []FieldError
}

func (ve *ValidationError) Error() string {
	switch len(ve.Errors) {
	case 0:
		return "validation failed"
	case 1:
		return fmt.Sprintf("validation failed: %s: %s", ve.Errors[0].Field, ve.Errors[0].Message)
	}
	parts := make([]string, 0, len(ve.Errors))
	for _, fe := range ve.Errors {
		parts = append(parts, fe.Field+": "+fe.Message)
	}
	return fmt.Sprintf("validation failed: %s", strings.Join(parts, "; "))
}

func (ve *ValidationError) Is(target error) bool {
	return target == ErrValidationFailed
}

// Add records a failed field.
func (ve *ValidationError) Add(field, message string) {
	ve.Errors = append(ve.Errors, FieldError{Field: field, Message: message})
}

// OrNil returns nil when no field failed.
func (ve *ValidationError) OrNil() error {
	if len(ve.Errors) == 0 {
		return nil
	}
	return ve
}

func (ve *ValidationError) require(field, value string) {
	if strings.TrimSpace(value) == "" {
		ve.Add(field, "полето е задължително")
	}
}

func (ve *ValidationError) nonNegative(field string, value float64) {
	if value < 0 {
		ve.Add(field, "стойността не може да бъде отрицателна")
	}
}

func (ve *ValidationError) positive(field string, value float64) {
	if value <= 0 {
		ve.Add(field, "стойността трябва да бъде положителна")
	}
}

func (ve *ValidationError) between(field string, value, lo, hi float64) {
	if value < lo || value > hi {
		ve.Add(field, fmt.Sprintf("стойността трябва да е между %g и %g", lo, hi))
	}
}

// IsValidationFailed returns true if the error is a validation error
func IsValidationFailed(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
