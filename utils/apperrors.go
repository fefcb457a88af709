package utils

import (
	"errors"
	"fmt"
)

// ErrNotFound marks a missing application, complaint or sub-entity.
// Wrap it with context: fmt.Errorf("application %d: %w", id, ErrNotFound).
var ErrNotFound = errors.New("record not found")

// ValidationError reports a payload or cross-field rule violation. Field
// is empty for whole-payload violations.
type ValidationError struct {
	Field   string `json:"field,omitempty"`
	Message string `json:"message"`
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// NewValidationError builds a field-scoped validation error.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

// ForbiddenError reports a denied operation. Message names the specific
// operation denied so callers can explain why, and Permission carries the
// permission that was required.
type ForbiddenError struct {
	Permission string `json:"permission,omitempty"`
	Message    string `json:"message"`
}

func (e *ForbiddenError) Error() string {
	return e.Message
}

// InternalError wraps unexpected persistence or attribution failures.
type InternalError struct {
	Message string
	Err     error
}

func (e *InternalError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *InternalError) Unwrap() error {
	return e.Err
}

// NewInternalError wraps err with a short operator-facing message.
func NewInternalError(message string, err error) *InternalError {
	return &InternalError{Message: message, Err: err}
}

// IsNotFound reports whether err is (or wraps) ErrNotFound.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}
