// Package common provides shared utilities and types used across the application.
package common

import (
	"errors"
	"fmt"
)

// Common application errors.
var (
	// Local validation errors, never sent over the network.
	ErrWrongType         = errors.New("file is not a CSV")
	ErrTooLarge          = errors.New("file exceeds the upload size limit")
	ErrEmptyConfirmation = errors.New("confirmation phrase does not match")
	ErrNoTargetSelected  = errors.New("no clear target selected")
	ErrNoFileSelected    = errors.New("no file selected")

	// Re-entrancy guards.
	ErrUploadInFlight = errors.New("upload already in progress")
	ErrClearInFlight  = errors.New("clear already in progress")
	ErrClearNotOpen   = errors.New("clear workflow is not collecting input")

	// Wiring errors.
	ErrCapabilityMissing = errors.New("capability not available")

	// Configuration errors.
	ErrMissingConfig = errors.New("missing configuration")
	ErrInvalidConfig = errors.New("invalid configuration")
)

// ValidationError is a local, pre-network rejection.
type ValidationError struct {
	Err     error
	Message string
}

func (e *ValidationError) Error() string {
	return e.Err.Error()
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

// NewValidationError wraps a validation sentinel with its operator-facing message.
func NewValidationError(err error, message string) error {
	return &ValidationError{Err: err, Message: message}
}

// ApplicationError is a non-success response from the backend.
// Message is the backend's embedded error text and may be empty.
type ApplicationError struct {
	Operation  string
	Message    string
	StatusCode int
}

func (e *ApplicationError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("%s rejected (%d): %s", e.Operation, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("%s rejected (%d)", e.Operation, e.StatusCode)
}

// MessageOr returns the backend message, or fallback when the payload had none.
func (e *ApplicationError) MessageOr(fallback string) string {
	if e.Message != "" {
		return e.Message
	}
	return fallback
}

// TransportError means the request could not complete: no response,
// or a response that could not be decoded.
type TransportError struct {
	Err       error
	Operation string
	RequestID string
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s failed: %v", e.Operation, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// IsValidation reports whether err is a local validation failure.
func IsValidation(err error) bool {
	var v *ValidationError
	return errors.As(err, &v)
}

// AsApplication extracts an ApplicationError from err.
func AsApplication(err error) (*ApplicationError, bool) {
	var appErr *ApplicationError
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// IsTransport reports whether err is a transport-level failure.
func IsTransport(err error) bool {
	var t *TransportError
	return errors.As(err, &t)
}

// UserError represents an error that should be shown to the user.
type UserError struct {
	Err         error
	UserMessage string
}

func (e *UserError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.UserMessage, e.Err)
	}
	return e.UserMessage
}

func (e *UserError) Unwrap() error {
	return e.Err
}

// NewUserError creates a new user-friendly error.
func NewUserError(userMessage string, err error) error {
	return &UserError{
		UserMessage: userMessage,
		Err:         err,
	}
}
