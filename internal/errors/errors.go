// Package errors provides centralized error definitions and error handling utilities
// for the montyhall simulator. It defines the sentinel errors raised by the
// simulation engine, semantic error types carrying context, and classification
// helpers used by the command layer to pick exit behavior.
//
// # Error Types
//
//   - ValidationError: an argument or configuration value is out of range
//   - SimulationError: a strategy run failed; carries strategy, trials and
//     eliminations context
//
// # Usage
//
//	err := errors.NewValidationError("eliminations cannot be negative").
//		WithField("eliminations").
//		WithValue(-1).
//		WithCause(errors.ErrNegativeEliminations)
//
//	if errors.Is(err, errors.ErrInvalidInput) { ... }
//	if errors.IsInvalidArgument(err) { ... }
package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Re-export standard library functions for convenience.
// This allows callers to import only this package for all error handling.
var (
	Is     = errors.Is
	As     = errors.As
	Unwrap = errors.Unwrap
	New    = errors.New
	Join   = errors.Join
)

// -----------------------------------------------------------------------------
// Sentinel Errors
// -----------------------------------------------------------------------------

// Argument sentinel errors
var (
	// ErrInvalidInput indicates that input validation failed.
	ErrInvalidInput = New("invalid input")
	// ErrNegativeEliminations indicates a negative number of doors to open.
	ErrNegativeEliminations = New("eliminations cannot be negative")
	// ErrZeroTrials indicates a strategy was asked to run fewer than one trial.
	ErrZeroTrials = New("trials must be at least 1")
	// ErrNegativeCount indicates a negative car or goat count.
	ErrNegativeCount = New("door count cannot be negative")
)

// Configuration sentinel errors
var (
	// ErrInsufficientGoats indicates the host was asked to open at least as
	// many goat doors as the pool holds.
	ErrInsufficientGoats = New("not enough goats to eliminate")
	// ErrInsufficientDoors indicates no door would remain for the final pick.
	ErrInsufficientDoors = New("no door left to pick after eliminations")
	// ErrEmptyPool indicates a strategy was given a pool without doors.
	ErrEmptyPool = New("pool has no doors")
	// ErrUnknownPreset indicates an unrecognized preset name.
	ErrUnknownPreset = New("unknown preset")
)

// -----------------------------------------------------------------------------
// Base Error Implementation
// -----------------------------------------------------------------------------

// baseError provides common functionality for all error types.
type baseError struct {
	message    string
	cause      error
	userFacing bool
}

// Error returns the error message.
func (e *baseError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.message, e.cause)
	}
	return e.message
}

// Unwrap returns the underlying error.
func (e *baseError) Unwrap() error {
	return e.cause
}

// Is checks if this error matches the target.
func (e *baseError) Is(target error) bool {
	if e.cause != nil {
		return errors.Is(e.cause, target)
	}
	return false
}

// IsUserFacing returns whether the error is safe to show users.
func (e *baseError) IsUserFacing() bool {
	return e.userFacing
}

// -----------------------------------------------------------------------------
// Semantic Errors
// -----------------------------------------------------------------------------

// ValidationError represents invalid input or state.
//
// Example:
//
//	err := errors.NewValidationError("trials must be positive")
//	err = err.WithField("trials").WithValue(0)
type ValidationError struct {
	baseError
	Field string
	Value any
}

// NewValidationError creates a new ValidationError.
func NewValidationError(message string) *ValidationError {
	return &ValidationError{
		baseError: baseError{
			message:    message,
			userFacing: true,
		},
	}
}

// WithField adds a field name to the error context.
func (e *ValidationError) WithField(field string) *ValidationError {
	e.Field = field
	return e
}

// WithValue adds the invalid value to the error context.
func (e *ValidationError) WithValue(value any) *ValidationError {
	e.Value = value
	return e
}

// WithCause adds a cause to the error.
func (e *ValidationError) WithCause(cause error) *ValidationError {
	e.cause = cause
	return e
}

// Error returns the formatted error message.
func (e *ValidationError) Error() string {
	var parts []string
	if e.Field != "" {
		parts = append(parts, fmt.Sprintf("field=%s", e.Field))
	}
	if e.Value != nil {
		parts = append(parts, fmt.Sprintf("value=%v", e.Value))
	}

	prefix := "validation error"
	if len(parts) > 0 {
		prefix = fmt.Sprintf("validation error [%s]", strings.Join(parts, ", "))
	}

	// Sentinel causes usually repeat the message; print it once.
	if e.cause != nil && e.cause.Error() != e.message {
		return fmt.Sprintf("%s: %s: %v", prefix, e.message, e.cause)
	}
	return fmt.Sprintf("%s: %s", prefix, e.message)
}

// Is checks if this error matches the target.
func (e *ValidationError) Is(target error) bool {
	if _, ok := target.(*ValidationError); ok {
		return true
	}
	if target == ErrInvalidInput {
		return true
	}
	return e.baseError.Is(target)
}

// SimulationError represents a failed strategy run.
//
// Example:
//
//	err := errors.NewSimulationError("switch strategy failed", errors.ErrInsufficientGoats)
//	err = err.WithStrategy("switched").WithTrials(1000).WithEliminations(3)
type SimulationError struct {
	baseError
	Strategy     string
	Trials       int
	Eliminations int
}

// NewSimulationError creates a new SimulationError.
func NewSimulationError(message string, cause error) *SimulationError {
	return &SimulationError{
		baseError: baseError{
			message:    message,
			cause:      cause,
			userFacing: true,
		},
		Eliminations: -1, // -1 indicates not set
	}
}

// WithStrategy adds the strategy name to the error context.
func (e *SimulationError) WithStrategy(name string) *SimulationError {
	e.Strategy = name
	return e
}

// WithTrials adds the requested trial count to the error context.
func (e *SimulationError) WithTrials(n int) *SimulationError {
	e.Trials = n
	return e
}

// WithEliminations adds the requested elimination count to the error context.
func (e *SimulationError) WithEliminations(k int) *SimulationError {
	e.Eliminations = k
	return e
}

// Error returns the formatted error message.
func (e *SimulationError) Error() string {
	var parts []string
	if e.Strategy != "" {
		parts = append(parts, fmt.Sprintf("strategy=%s", e.Strategy))
	}
	if e.Trials > 0 {
		parts = append(parts, fmt.Sprintf("trials=%d", e.Trials))
	}
	if e.Eliminations >= 0 {
		parts = append(parts, fmt.Sprintf("eliminations=%d", e.Eliminations))
	}

	prefix := "simulation error"
	if len(parts) > 0 {
		prefix = fmt.Sprintf("simulation error [%s]", strings.Join(parts, ", "))
	}

	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %v", prefix, e.message, e.cause)
	}
	return fmt.Sprintf("%s: %s", prefix, e.message)
}

// Is checks if this error matches the target.
func (e *SimulationError) Is(target error) bool {
	if _, ok := target.(*SimulationError); ok {
		return true
	}
	return e.baseError.Is(target)
}

// -----------------------------------------------------------------------------
// Error Classification Helpers
// -----------------------------------------------------------------------------

// IsInvalidArgument reports whether err was caused by a malformed argument
// rather than an inconsistent configuration.
func IsInvalidArgument(err error) bool {
	if err == nil {
		return false
	}
	return Is(err, ErrInvalidInput) ||
		Is(err, ErrNegativeEliminations) ||
		Is(err, ErrZeroTrials) ||
		Is(err, ErrNegativeCount)
}

// IsUserFacing returns true if the error message is safe to display to end users.
func IsUserFacing(err error) bool {
	if err == nil {
		return false
	}

	var validation *ValidationError
	if As(err, &validation) {
		return validation.IsUserFacing()
	}
	var simulation *SimulationError
	if As(err, &simulation) {
		return simulation.IsUserFacing()
	}
	return false
}

// -----------------------------------------------------------------------------
// Convenience Constructors
// -----------------------------------------------------------------------------

// Wrap wraps an error with additional context message.
//
// Example:
//
//	err := errors.Wrap(baseErr, "failed to build pool")
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}

// Wrapf wraps an error with a formatted context message.
func Wrapf(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), err)
}
