// Package services provides the business logic for automation authoring and
// execution tracking.
package services

import (
	"errors"
	"fmt"

	"github.com/homespark/campaigner/pkg/models"
	"github.com/homespark/campaigner/pkg/policy"
)

// Business Logic Errors - These indicate client errors (4xx responses).
var (
	// Validation Errors (400 Bad Request).
	ErrInvalidRequest   = errors.New("invalid request")
	ErrInvalidSortField = errors.New("invalid sort field")
	ErrInvalidSortOrder = errors.New("invalid sort order")
	ErrInvalidStatus    = errors.New("invalid automation status")
	ErrAutomationNil    = errors.New("automation cannot be nil")
	ErrNameRequired     = errors.New("automation name is required")

	// Business Logic Conflicts (409 Conflict).
	ErrCannotModifyArchived = errors.New("cannot modify archived automation")
	ErrAutomationNotActive  = errors.New("automation is not active")
	ErrExecutionFinished    = errors.New("execution already finished")
)

// ServiceError wraps service-level errors with additional context.
type ServiceError struct {
	Op      string // Operation name
	Code    string // Error code for API responses
	Message string // Human-readable message
	Err     error  // Underlying error
}

func (e *ServiceError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("%s: %s", e.Op, e.Message)
	}

	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *ServiceError) Unwrap() error {
	return e.Err
}

func (e *ServiceError) Is(target error) bool {
	return errors.Is(e.Err, target)
}

// IsValidationError checks if an error is a validation error that should
// return HTTP 400. Field-scoped policy validation failures count as
// validation errors too.
func IsValidationError(err error) bool {
	var fieldErrors policy.ValidationErrors
	if errors.As(err, &fieldErrors) {
		return true
	}

	return errors.Is(err, ErrInvalidRequest) ||
		errors.Is(err, ErrInvalidSortField) ||
		errors.Is(err, ErrInvalidSortOrder) ||
		errors.Is(err, ErrInvalidStatus) ||
		errors.Is(err, ErrAutomationNil) ||
		errors.Is(err, ErrNameRequired)
}

// IsConflictError checks if an error is a business logic conflict that
// should return HTTP 409.
func IsConflictError(err error) bool {
	return errors.Is(err, ErrCannotModifyArchived) ||
		errors.Is(err, ErrAutomationNotActive) ||
		errors.Is(err, ErrExecutionFinished) ||
		errors.Is(err, models.ErrExecutionNotPaused) ||
		errors.Is(err, models.ErrExecutionNotRunning)
}

// NewValidationError creates a new validation error with context.
func NewValidationError(op, code, message string, err error) *ServiceError {
	return &ServiceError{
		Op:      op,
		Code:    code,
		Message: message,
		Err:     err,
	}
}
