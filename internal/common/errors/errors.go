// Package errors provides the standardized failure taxonomy of the reminder core.
//
// Nothing in the scanners or the dispatcher panics across a component
// boundary; every failure mode below is carried as a returned value and
// decides only whether the item is skipped, the scan pass is aborted, or the
// whole subsystem stays idle.
package errors

import (
	"errors"
	"fmt"
	"time"
)

// ErrorCode represents standardized internal error codes.
type ErrorCode string

const (
	// ErrCodeConfigurationAbsent: message channel credentials are missing.
	// Dispatch fails immediately and cheaply; no marker is ever written.
	ErrCodeConfigurationAbsent ErrorCode = "CONFIGURATION_ABSENT"

	// ErrCodeContactNotFound: the recipient has no usable phone on file.
	// The one recipient is skipped; the scan continues.
	ErrCodeContactNotFound ErrorCode = "CONTACT_NOT_FOUND"

	// ErrCodeChannelDeliveryFailure: the outbound send itself failed.
	// No marker is written, so the item stays eligible on the next pass.
	ErrCodeChannelDeliveryFailure ErrorCode = "CHANNEL_DELIVERY_FAILURE"

	// ErrCodeStoreUnavailable: a state-store read or write failed. The
	// remaining work of the current scan pass is aborted; the next tick
	// retries from scratch.
	ErrCodeStoreUnavailable ErrorCode = "STORE_UNAVAILABLE"

	// ErrCodeMalformedRecord: a persisted document failed validation or
	// decoding. The single record is skipped.
	ErrCodeMalformedRecord ErrorCode = "MALFORMED_RECORD"
)

// StandardError represents a structured application error.
type StandardError struct {
	Code      ErrorCode `json:"code"`
	Message   string    `json:"message"`
	Details   string    `json:"details,omitempty"`
	Retryable bool      `json:"retryable"`
	Timestamp time.Time `json:"timestamp"`
}

func (e *StandardError) Error() string {
	return fmt.Sprintf("StandardError[%s]: %s", e.Code, e.Message)
}

// NewConfigurationAbsentError creates the cheap failure returned while the
// channel has no credentials. Retryable in the sense that the same item
// becomes eligible once configuration is restored.
func NewConfigurationAbsentError() *StandardError {
	return &StandardError{
		Code:      ErrCodeConfigurationAbsent,
		Message:   "Message channel is not configured",
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewContactNotFoundError creates a non-retryable per-recipient error.
func NewContactNotFoundError(recipientKind, recipientID string) *StandardError {
	return &StandardError{
		Code:      ErrCodeContactNotFound,
		Message:   "Recipient has no phone number on file",
		Details:   fmt.Sprintf("kind: %s, id: %s", recipientKind, recipientID),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewChannelDeliveryFailureError creates a retryable delivery error.
func NewChannelDeliveryFailureError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeChannelDeliveryFailure,
		Message:   "Outbound message delivery failed",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewStoreUnavailableError creates a retryable state-store error.
func NewStoreUnavailableError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeStoreUnavailable,
		Message:   "State store read/write failed",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewMalformedRecordError creates a non-retryable per-record error.
func NewMalformedRecordError(entity, id, details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeMalformedRecord,
		Message:   "Persisted document failed validation",
		Details:   fmt.Sprintf("entity: %s, id: %s, %s", entity, id, details),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// CodeOf extracts the ErrorCode from err, or "" when err carries none.
func CodeOf(err error) ErrorCode {
	var stdErr *StandardError
	if errors.As(err, &stdErr) {
		return stdErr.Code
	}
	return ""
}

// IsCode reports whether err carries the given code.
func IsCode(err error, code ErrorCode) bool {
	return CodeOf(err) == code
}
