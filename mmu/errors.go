package mmu

import (
	"fmt"
)

// ErrorCode represents different types of simulator errors
type ErrorCode int

const (
	// Generic errors
	ErrCodeUnknown ErrorCode = iota
	ErrCodeInternal

	// Construction errors
	ErrCodeInvalidCapacity
	ErrCodeUnknownPolicy

	// Trace errors
	ErrCodeTraceOpenFailed
	ErrCodeTraceReadFailed
	ErrCodeTraceParseFailed
)

// SimError represents a simulator error with context
type SimError struct {
	Code    ErrorCode
	Message string
	Op      string // Operation that failed
	Err     error  // Underlying error (if any)
}

// Error implements the error interface
func (e *SimError) Error() string {
	if e.Op != "" {
		if e.Err != nil {
			return fmt.Sprintf("%s: %s: %v", e.Op, e.Message, e.Err)
		}
		return fmt.Sprintf("%s: %s", e.Op, e.Message)
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the underlying error
func (e *SimError) Unwrap() error {
	return e.Err
}

// Is checks if the error matches a specific error code
func (e *SimError) Is(target error) bool {
	if t, ok := target.(*SimError); ok {
		return e.Code == t.Code
	}
	return false
}

// NewSimError creates a new simulator error
func NewSimError(code ErrorCode, op, message string, err error) *SimError {
	return &SimError{
		Code:    code,
		Message: message,
		Op:      op,
		Err:     err,
	}
}

// Helper functions for common errors

func ErrInvalidCapacity(op string, frames int) *SimError {
	return NewSimError(
		ErrCodeInvalidCapacity,
		op,
		fmt.Sprintf("frame capacity must be positive, got %d", frames),
		nil,
	)
}

func ErrUnknownPolicy(op, policy string) *SimError {
	return NewSimError(
		ErrCodeUnknownPolicy,
		op,
		fmt.Sprintf("unknown replacement policy %q (must be clock, lru or rand)", policy),
		nil,
	)
}

func ErrTraceOpen(op, path string, err error) *SimError {
	return NewSimError(
		ErrCodeTraceOpenFailed,
		op,
		fmt.Sprintf("failed to open trace %s", path),
		err,
	)
}

func ErrTraceRead(op string, err error) *SimError {
	return NewSimError(
		ErrCodeTraceReadFailed,
		op,
		"failed to read trace",
		err,
	)
}

func ErrTraceParse(op string, line int, text string) *SimError {
	return NewSimError(
		ErrCodeTraceParseFailed,
		op,
		fmt.Sprintf("malformed trace line %d: %q", line, text),
		nil,
	)
}

// IsErrorCode checks if an error has a specific error code
func IsErrorCode(err error, code ErrorCode) bool {
	if se, ok := err.(*SimError); ok {
		return se.Code == code
	}
	return false
}

// GetErrorCode returns the error code from an error, or ErrCodeUnknown
func GetErrorCode(err error) ErrorCode {
	if se, ok := err.(*SimError); ok {
		return se.Code
	}
	return ErrCodeUnknown
}
