package core

import (
	"fmt"

	"github.com/pkg/errors"
)

// Failure taxonomy of the worker. Callers recover per error:
// a failed network fetch falls back to cache, a refused permission or
// missing VAPID key aborts the subscribe flow, a malformed push payload
// degrades to a plain-text notification.
var (
	ErrNetworkUnavailable = errors.New("network unavailable")
	ErrPermissionDenied   = errors.New("notification permission denied")
	ErrKeyUnavailable     = errors.New("server public key unavailable")
	ErrParsePayloadFailed = errors.New("malformed push payload")
)

// BackendRejectedError is returned when the school backend answers any
// call with a non-2xx status.
type BackendRejectedError struct {
	Status int
}

func (err BackendRejectedError) Error() string {
	return fmt.Sprintf("backend rejected request: HTTP %d", err.Status)
}

// IsBackendRejected reports whether err (or its cause) is a BackendRejectedError.
func IsBackendRejected(err error) bool {
	_, ok := errors.Cause(err).(BackendRejectedError)
	return ok
}

// FieldError is used to indicate an error with a specific struct field.
type FieldError struct {
	Field string
	Error string
}

type ValidationError struct {
	Err    error
	Fields []FieldError
}

func NewValidationError(err error, flds ...FieldError) error {
	return &ValidationError{err, flds}
}

func (err ValidationError) Error() string {
	if err.Err == nil {
		return ""
	}
	return err.Err.Error()
}

type shutdown struct {
	message string
}

func NewShutdownError(msg string) error {
	return &shutdown{message: msg}
}

func (s shutdown) Error() string {
	return s.message
}

func IsShutdown(err error) bool {
	_, ok := errors.Cause(err).(*shutdown)
	return ok
}
