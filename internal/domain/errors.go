package domain

import (
	"errors"
	"fmt"
)

// Common domain errors used across the application.
var (
	// ErrValidation is returned when a value object or entity fails validation.
	// Every *ValidationError unwraps to it.
	ErrValidation = errors.New("validation failed")

	// ErrEmptyID is returned when an entity is missing its identifier.
	ErrEmptyID = errors.New("id cannot be empty")
)

// ValidationError describes a single rejected input. Message is safe to show
// to callers and names the expected format.
type ValidationError struct {
	Field   string
	Value   string
	Message string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Unwrap allows errors.Is(err, ErrValidation).
func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

// NewValidationError creates a ValidationError for the given field.
func NewValidationError(field, value, message string) *ValidationError {
	return &ValidationError{
		Field:   field,
		Value:   value,
		Message: message,
	}
}

// FieldErrors collects validation messages keyed by field name.
// The zero value is ready to use.
type FieldErrors map[string]string

// Add records err under field if err is non-nil. Returns true when an error was recorded.
func (f *FieldErrors) Add(field string, err error) bool {
	if err == nil {
		return false
	}
	if *f == nil {
		*f = make(FieldErrors)
	}

	var vErr *ValidationError
	if errors.As(err, &vErr) {
		(*f)[field] = vErr.Message
	} else {
		(*f)[field] = err.Error()
	}
	return true
}

// Empty reports whether no field errors were recorded.
func (f FieldErrors) Empty() bool {
	return len(f) == 0
}
