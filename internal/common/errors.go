// Package common defines shared constants and the closed error taxonomy used by
// the transport, service and hook layers. Callers should match with errors.As
// or a type switch over Error.
package common

import (
	"errors"
	"fmt"
)

// Fixed messages used when no better description is available.
const (
	MsgNetworkError       = "network error"
	MsgUnexpectedError    = "an unexpected error occurred"
	MsgUnexpectedAuth     = "an unexpected error occurred during authentication"
	MsgUnexpectedGoals    = "an unexpected error occurred while managing goals"
	MsgUnexpectedInternal = "internal error"
)

// Error is implemented only by *ValidationError, *APIError and *UnexpectedError.
type Error interface {
	error
	appError()
}

// ValidationError is raised locally before any network call when input breaks
// an entity invariant. It is never sent to the server.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string { return e.Message }
func (*ValidationError) appError()       {}

// NewValidationError builds a ValidationError for field.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

// APIError reports a rejected request or a transport failure. Status is the
// HTTP status code, or StatusUnknown when no response was received.
type APIError struct {
	Status  int
	Message string
	Err     error
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error (%d): %s", e.Status, e.Message)
}

func (e *APIError) Unwrap() error { return e.Err }
func (*APIError) appError()       {}

// UnexpectedError is anything that is neither a validation nor an API failure,
// reduced to a fixed generic message. The cause is kept for diagnostics only.
type UnexpectedError struct {
	Message string
	Err     error
}

func (e *UnexpectedError) Error() string { return e.Message }
func (e *UnexpectedError) Unwrap() error { return e.Err }
func (*UnexpectedError) appError()       {}

// Message returns the user-facing text of err. Taxonomy errors yield their
// Message field; anything else yields MsgUnexpectedError.
func Message(err error) string {
	if err == nil {
		return ""
	}
	var (
		ve *ValidationError
		ae *APIError
		ue *UnexpectedError
	)
	switch {
	case errors.As(err, &ve):
		return ve.Message
	case errors.As(err, &ae):
		return ae.Message
	case errors.As(err, &ue):
		return ue.Message
	default:
		return MsgUnexpectedError
	}
}

// IsValidation reports whether err is (or wraps) a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// StatusOf returns the APIError status carried by err, or 0.
func StatusOf(err error) int {
	var ae *APIError
	if errors.As(err, &ae) {
		return ae.Status
	}
	return 0
}
