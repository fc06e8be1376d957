package domain

import (
	"errors"
	"fmt"
)

// ErrorCode represents a semantic classification shared across transport layers.
type ErrorCode string

const (
	ErrCodeNotFound     ErrorCode = "NOT_FOUND"
	ErrCodeInvalid      ErrorCode = "INVALID"
	ErrCodeConflict     ErrorCode = "CONFLICT"
	ErrCodeForbidden    ErrorCode = "FORBIDDEN"
	ErrCodeUnauthorized ErrorCode = "UNAUTHORIZED"
	ErrCodeInternal     ErrorCode = "INTERNAL"
	ErrCodeTransport    ErrorCode = "TRANSPORT"
	ErrCodeCorrupt      ErrorCode = "CORRUPT"
	ErrCodeDeferred     ErrorCode = "DEFERRED"
)

// Error represents a domain-level error.
type Error struct {
	Code    ErrorCode
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// NewError builds a domain error.
func NewError(code ErrorCode, message string) *Error {
	return &Error{Code: code, Message: message}
}

// WrapError wraps an existing error with a domain classification.
func WrapError(code ErrorCode, message string, err error) *Error {
	return &Error{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// Common domain errors.
var (
	ErrUnauthorized         = NewError(ErrCodeUnauthorized, "unauthorized")
	ErrNotAuthenticated     = NewError(ErrCodeUnauthorized, "no authenticated session")
	ErrNotAdministrator     = NewError(ErrCodeForbidden, "administrator session required")
	ErrAlreadyImpersonating = NewError(ErrCodeConflict, "already impersonating; stop the current impersonation first")
	ErrInvalidPayload       = NewError(ErrCodeInvalid, "invalid payload")
	ErrKeyNotFound          = NewError(ErrCodeNotFound, "key not found")
	ErrVehicleNotFound      = NewError(ErrCodeNotFound, "vehicle not found")
	ErrFreightNotFound      = NewError(ErrCodeNotFound, "freight order not found")
	ErrIllegalTransition    = NewError(ErrCodeConflict, "illegal status transition")
	ErrFreightNotClaimable  = NewError(ErrCodeConflict, "freight order cannot be claimed")
	ErrDeferred             = NewError(ErrCodeDeferred, "operation queued for later delivery")
)

// IsDomainError helps checking error codes.
func IsDomainError(err error, code ErrorCode) bool {
	var dErr *Error
	if errors.As(err, &dErr) {
		return dErr.Code == code
	}
	return false
}

// CodeOf returns the classification of err, or ErrCodeInternal when err carries none.
func CodeOf(err error) ErrorCode {
	var dErr *Error
	if errors.As(err, &dErr) {
		return dErr.Code
	}
	return ErrCodeInternal
}
