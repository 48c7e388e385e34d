package errors

import (
	"errors"
	"fmt"
)

// Common error kinds used across the streamio library

var (
	// ErrClosed indicates that an operation was attempted on a closed stream
	ErrClosed = errors.New("stream is closed")

	// ErrUnsupported indicates that an operation is not valid for the stream's
	// kind or mode (write on a read-only stream, rewind on a producer, ...)
	ErrUnsupported = errors.New("operation not supported")

	// ErrInvalidResource indicates that a value is not a usable stream handle
	ErrInvalidResource = errors.New("invalid stream resource")

	// ErrInvalidConfiguration indicates invalid configuration parameters
	ErrInvalidConfiguration = errors.New("invalid configuration")
)

// ValidationError describes a rejected configuration or constructor argument.
type ValidationError struct {
	Module string
	Field  string
	Value  interface{}
	Reason string
	Hint   string
}

// NewValidationError creates a ValidationError without a hint.
func NewValidationError(module, field string, value interface{}, reason string) *ValidationError {
	return &ValidationError{
		Module: module,
		Field:  field,
		Value:  value,
		Reason: reason,
	}
}

// WithHint attaches a remediation hint and returns the same instance.
func (e *ValidationError) WithHint(hint string) *ValidationError {
	e.Hint = hint
	return e
}

func (e *ValidationError) Error() string {
	msg := fmt.Sprintf("%s: invalid %s=%v (%s)", e.Module, e.Field, e.Value, e.Reason)
	if e.Hint != "" {
		msg += " - " + e.Hint
	}
	return msg
}

// Unwrap returns ErrInvalidConfiguration so callers can match with errors.Is.
func (e *ValidationError) Unwrap() error {
	return ErrInvalidConfiguration
}

// OperationError reports a failed stream operation together with its cause.
type OperationError struct {
	Module    string
	Operation string
	Cause     error
	Context   string
}

// NewOperationError creates an OperationError for module.operation.
func NewOperationError(module, operation string, cause error) *OperationError {
	return &OperationError{
		Module:    module,
		Operation: operation,
		Cause:     cause,
	}
}

// WithContext attaches a human readable description and returns the same instance.
func (e *OperationError) WithContext(context string) *OperationError {
	e.Context = context
	return e
}

func (e *OperationError) Error() string {
	msg := fmt.Sprintf("%s.%s failed: %v", e.Module, e.Operation, e.Cause)
	if e.Context != "" {
		msg += " (" + e.Context + ")"
	}
	return msg
}

func (e *OperationError) Unwrap() error {
	return e.Cause
}

// InvalidResourceError is returned when a stream is constructed from a value
// that is not a usable handle. Received names the actual type for diagnostics.
type InvalidResourceError struct {
	Received string
}

// NewInvalidResourceError creates an InvalidResourceError for the given type description.
func NewInvalidResourceError(received string) *InvalidResourceError {
	return &InvalidResourceError{Received: received}
}

func (e *InvalidResourceError) Error() string {
	return "invalid stream provided: expected stream handle, received " + e.Received
}

func (e *InvalidResourceError) Unwrap() error {
	return ErrInvalidResource
}

// IsClosed returns true if the error was caused by using a closed stream
func IsClosed(err error) bool {
	return errors.Is(err, ErrClosed)
}

// IsUnsupported returns true if the error reports an operation invalid for the stream's mode
func IsUnsupported(err error) bool {
	return errors.Is(err, ErrUnsupported)
}

// IsInvalidResource returns true if the error reports an unusable handle
func IsInvalidResource(err error) bool {
	return errors.Is(err, ErrInvalidResource)
}

// IsValidationError returns true if err is or wraps a *ValidationError
func IsValidationError(err error) bool {
	var verr *ValidationError
	return errors.As(err, &verr)
}
