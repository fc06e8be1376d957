package apiclient

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/sony/gobreaker/v2"

	"github.com/fastygo/trucar/api/transport"
	"github.com/fastygo/trucar/domain"
)

// StatusError carries a non-2xx response.
type StatusError struct {
	Status int
	Body   []byte
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected status %d", e.Status)
}

// Detail returns the backend's error message, if the body carried one.
func (e *StatusError) Detail() string {
	var body transport.ErrorBody
	if err := json.Unmarshal(e.Body, &body); err != nil {
		return ""
	}
	return body.Message()
}

// StatusOf returns the HTTP status carried by err, or zero.
func StatusOf(err error) int {
	var statusErr *StatusError
	if errors.As(err, &statusErr) {
		return statusErr.Status
	}
	return 0
}

func classify(method, path string, err error) error {
	var statusErr *StatusError
	if errors.As(err, &statusErr) {
		return statusToError(statusErr.Status, statusErr.Body)
	}
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return domain.WrapError(domain.ErrCodeTransport, "API temporarily unavailable", err)
	}
	return domain.WrapError(domain.ErrCodeTransport, fmt.Sprintf("%s %s failed", method, path), err)
}

func statusToError(status int, body []byte) error {
	statusErr := &StatusError{Status: status, Body: body}
	msg := statusErr.Detail()
	if msg == "" {
		msg = http.StatusText(status)
	}

	var code domain.ErrorCode
	switch {
	case status == http.StatusUnauthorized:
		code = domain.ErrCodeUnauthorized
	case status == http.StatusForbidden:
		code = domain.ErrCodeForbidden
	case status == http.StatusNotFound:
		code = domain.ErrCodeNotFound
	case status == http.StatusConflict:
		code = domain.ErrCodeConflict
	case status == http.StatusBadRequest, status == http.StatusUnprocessableEntity:
		code = domain.ErrCodeInvalid
	case status >= http.StatusInternalServerError:
		code = domain.ErrCodeInternal
	default:
		code = domain.ErrCodeInvalid
	}
	return domain.WrapError(code, msg, statusErr)
}
