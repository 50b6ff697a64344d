package domain

import (
	"errors"
	"fmt"
)

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnknownField indicates a form field name that does not exist.
	ErrUnknownField = errors.New("unknown form field")

	// ErrDateRange indicates a date update that would leave the range inverted.
	ErrDateRange = errors.New("invalid date range")

	// ErrOperationInFlight indicates a submission is already running.
	ErrOperationInFlight = errors.New("operation in flight")

	// ErrRefreshInFlight indicates an activity refresh is already running.
	ErrRefreshInFlight = errors.New("refresh in flight")

	// ErrServerRejected indicates the backend answered with a non-2xx status.
	ErrServerRejected = errors.New("rejected by server")

	// ErrTransport indicates the backend could not be reached or answered garbage.
	ErrTransport = errors.New("transport failure")

	// ErrBackendUnavailable indicates no backend client is configured.
	ErrBackendUnavailable = errors.New("backend unavailable")
)

// RejectionError is returned when the backend answers with a non-2xx status.
// Message holds the server-supplied message, or is empty when the body
// carried none.
type RejectionError struct {
	StatusCode int
	Message    string
}

func (e *RejectionError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("server returned status %d", e.StatusCode)
	}
	return fmt.Sprintf("server returned status %d: %s", e.StatusCode, e.Message)
}

// Unwrap lets errors.Is match ErrServerRejected.
func (e *RejectionError) Unwrap() error {
	return ErrServerRejected
}

// TransportError is returned when no usable response was received.
type TransportError struct {
	Op  string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

// Unwrap exposes both the sentinel and the underlying cause.
func (e *TransportError) Unwrap() []error {
	return []error{ErrTransport, e.Err}
}
