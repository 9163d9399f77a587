package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors used across all layers.
var (
	ErrNotFound      = errors.New("not found")
	ErrAlreadyExists = errors.New("already exists")
	ErrValidation    = errors.New("validation error")
	ErrUnauthorized  = errors.New("unauthorized")
	ErrForbidden     = errors.New("forbidden")

	// ErrInvalidState signals an illegal state transition, e.g. resolving a
	// review item that has already been reviewed.
	ErrInvalidState = errors.New("invalid state")

	// ErrRemediationFailed wraps failures of the corrective knowledge-base
	// update. Callers can distinguish it from validation errors and retry.
	ErrRemediationFailed = errors.New("remediation failed")
)

// FieldError describes a validation error for a specific field.
type FieldError struct {
	Field   string
	Message string
}

// ValidationError contains a list of field-level validation errors.
type ValidationError struct {
	Errors []FieldError
}

func (e *ValidationError) Error() string {
	if len(e.Errors) == 1 {
		return fmt.Sprintf("validation: %s — %s", e.Errors[0].Field, e.Errors[0].Message)
	}
	return fmt.Sprintf("validation: %d errors", len(e.Errors))
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

// NewValidationError creates a ValidationError for a single field.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{
		Errors: []FieldError{{Field: field, Message: message}},
	}
}

// NewValidationErrors creates a ValidationError from multiple field errors.
func NewValidationErrors(errs []FieldError) *ValidationError {
	return &ValidationError{Errors: errs}
}

// RemediationError records which concept a failed corrective update was for.
// It unwraps to ErrRemediationFailed.
type RemediationError struct {
	Concept string
	Cause   error
}

func (e *RemediationError) Error() string {
	return fmt.Sprintf("remediation for %q: %v", e.Concept, e.Cause)
}

func (e *RemediationError) Unwrap() error { return ErrRemediationFailed }
