// Package errors provides custom error types for domain-specific errors.
package errors

import (
	"errors"
	"fmt"
)

// Standard sentinel errors
var (
	ErrInsufficientData = errors.New("insufficient snapshot data")
	ErrNoElements       = errors.New("no annotated elements")
	ErrConfigInvalid    = errors.New("invalid configuration")
	ErrStoreClosed      = errors.New("store is closed")
)

// DataError reports a malformed or missing field during extraction. The
// affected field is omitted from the snapshot and extraction continues.
type DataError struct {
	Field   string
	Content string
	Err     error
}

func (e *DataError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("data error [%s]: %q: %v", e.Field, e.Content, e.Err)
	}
	return fmt.Sprintf("data error [%s]: %q", e.Field, e.Content)
}

func (e *DataError) Unwrap() error {
	return e.Err
}

// NewDataError creates a new DataError.
func NewDataError(field, content string, err error) *DataError {
	return &DataError{Field: field, Content: content, Err: err}
}

// ValidationError reports a snapshot that fails the aggregator preconditions.
// It surfaces as a hold decision with reasoning, never as a failure.
type ValidationError struct {
	Check   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error [%s]: %s", e.Check, e.Message)
}

func (e *ValidationError) Unwrap() error {
	return ErrInsufficientData
}

// NewValidationError creates a new ValidationError.
func NewValidationError(check, message string) *ValidationError {
	return &ValidationError{Check: check, Message: message}
}

// StrategyError reports a failed strategy evaluator. The evaluator is
// isolated as a no-signal and the panel continues.
type StrategyError struct {
	Strategy string
	Err      error
}

func (e *StrategyError) Error() string {
	return fmt.Sprintf("strategy error [%s]: %v", e.Strategy, e.Err)
}

func (e *StrategyError) Unwrap() error {
	return e.Err
}

// NewStrategyError creates a new StrategyError.
func NewStrategyError(strategy string, err error) *StrategyError {
	return &StrategyError{Strategy: strategy, Err: err}
}

// UpstreamError reports a failed collaborator (vision service, advisor).
// Callers substitute an error-flagged snapshot so the core still holds.
type UpstreamError struct {
	Collaborator string
	Err          error
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("upstream error [%s]: %v", e.Collaborator, e.Err)
}

func (e *UpstreamError) Unwrap() error {
	return e.Err
}

// NewUpstreamError creates a new UpstreamError.
func NewUpstreamError(collaborator string, err error) *UpstreamError {
	return &UpstreamError{Collaborator: collaborator, Err: err}
}

// Is reports whether err matches target, delegating to the standard library.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain matching target.
func As(err error, target any) bool {
	return errors.As(err, target)
}
