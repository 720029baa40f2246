// Package exception provides the error types shared by the fantasyload load
// path. Errors are categorized so that retry and skip decisions can be made
// uniformly: record-level problems are skippable, transaction-level problems
// are retryable, orchestration-level problems are neither.
package exception

import (
	"errors"
	"fmt"
)

// Sentinel kinds, matched with errors.Is.
var (
	// ErrValidation marks a record that is missing required fields or holds
	// a value that cannot be coerced to its declared type.
	ErrValidation = errors.New("validation error")
	// ErrDuplicateKey marks an intra-batch natural-key collision or a
	// persistence-layer unique-constraint violation.
	ErrDuplicateKey = errors.New("duplicate key")
	// ErrBatchOperation marks a transaction-level failure of one batch.
	ErrBatchOperation = errors.New("batch operation error")
	// ErrOrchestration marks a stage-level failure inside the orchestrator.
	ErrOrchestration = errors.New("orchestration error")
)

// LoadError is the error type produced inside the load path. It carries the
// module where the error occurred, a message, the wrapped cause, and flags
// telling the engine whether the error is retryable or skippable.
type LoadError struct {
	// Module indicates where the error occurred (e.g. "engine", "loader.games").
	Module  string
	Message string
	Cause   error

	retryable bool
	skippable bool
}

// NewLoadError creates a LoadError with explicit skip/retry classification.
func NewLoadError(module, message string, cause error, skippable, retryable bool) *LoadError {
	return &LoadError{
		Module:    module,
		Message:   message,
		Cause:     cause,
		retryable: retryable,
		skippable: skippable,
	}
}

// NewValidationError creates a skippable, non-retryable record error.
func NewValidationError(module, format string, a ...interface{}) *LoadError {
	return &LoadError{
		Module:    module,
		Message:   fmt.Sprintf(format, a...),
		Cause:     ErrValidation,
		skippable: true,
	}
}

// NewDuplicateKeyError creates a skippable duplicate-record error.
func NewDuplicateKeyError(module, format string, a ...interface{}) *LoadError {
	return &LoadError{
		Module:    module,
		Message:   fmt.Sprintf(format, a...),
		Cause:     ErrDuplicateKey,
		skippable: true,
	}
}

// NewBatchOperationError creates a retryable transaction-level error wrapping
// the underlying persistence failure.
func NewBatchOperationError(module, message string, cause error) *LoadError {
	if cause == nil {
		cause = ErrBatchOperation
	} else {
		cause = errors.Join(ErrBatchOperation, cause)
	}
	return &LoadError{
		Module:    module,
		Message:   message,
		Cause:     cause,
		retryable: true,
	}
}

// NewOrchestrationError creates a fatal stage-level error.
func NewOrchestrationError(module, message string, cause error) *LoadError {
	if cause == nil {
		cause = ErrOrchestration
	} else {
		cause = errors.Join(ErrOrchestration, cause)
	}
	return &LoadError{Module: module, Message: message, Cause: cause}
}

// Error implements the error interface.
func (e *LoadError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Module, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Module, e.Message)
}

// Unwrap returns the wrapped cause for errors.Is / errors.As.
func (e *LoadError) Unwrap() error {
	return e.Cause
}

// IsRetryable reports whether the batch engine may retry the operation that
// produced this error.
func (e *LoadError) IsRetryable() bool {
	return e.retryable
}

// IsSkippable reports whether the offending record may be skipped without
// failing its batch.
func (e *LoadError) IsSkippable() bool {
	return e.skippable
}

// IsSkippable reports whether err may be recovered by skipping one record.
// A non-LoadError is never skippable.
func IsSkippable(err error) bool {
	var le *LoadError
	if errors.As(err, &le) {
		return le.IsSkippable()
	}
	return false
}

// IsRetryable reports whether err may be recovered by retrying the batch.
// Unknown errors are treated as retryable: the original engine retried any
// batch failure up to its attempt limit.
func IsRetryable(err error) bool {
	if err == nil {
		return false
	}
	var le *LoadError
	if errors.As(err, &le) {
		return le.IsRetryable() || !le.IsSkippable()
	}
	return true
}
