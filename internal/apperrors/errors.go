package apperrors

import (
	"errors"
	"fmt"
)

// Error kinds. Every error returned by the core wraps exactly one of these so
// callers can branch with errors.Is.
var (
	// ErrNotFound indicates that a requested resource could not be found.
	ErrNotFound = errors.New("resource not found")

	// ErrValidation indicates that input data failed validation checks.
	ErrValidation = errors.New("validation error")

	// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
	ErrDuplicate = errors.New("resource already exists")

	// ErrConflict indicates that the operation is forbidden in the resource's current state.
	ErrConflict = errors.New("operation not allowed in current state")

	// ErrConsistency indicates that completing the operation would break a ledger invariant.
	ErrConsistency = errors.New("ledger consistency violation")

	// ErrInternal indicates an unexpected failure, usually from a collaborator.
	ErrInternal = errors.New("internal error")
)

// ErrConcurrentModification is returned when an aggregate was written with a
// stale version. It is a consistency error that the caller may retry after
// re-reading the aggregate.
var ErrConcurrentModification = Kind(ErrConsistency, "resource was modified concurrently")

// kindError is a named condition that also matches its kind.
type kindError struct {
	kind error
	msg  string
}

func (e *kindError) Error() string { return e.msg }
func (e *kindError) Unwrap() error { return e.kind }

// Kind declares a named error condition belonging to one of the error kinds.
// errors.Is matches both the returned value and kind.
func Kind(kind error, msg string) error {
	return &kindError{kind: kind, msg: msg}
}

// IsRetryable reports whether the caller may retry the operation after
// re-reading the affected aggregate.
func IsRetryable(err error) bool {
	return errors.Is(err, ErrConcurrentModification)
}

// AppError wraps a collaborator failure with a status code and message.
type AppError struct {
	Code    int
	Message string
	Err     error
}

// NewAppError creates an AppError. err may be nil.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}

func (e *AppError) Error() string {
	if e.Err == nil {
		return e.Message
	}
	return fmt.Sprintf("%s: %v", e.Message, e.Err)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// Is reports server-side AppErrors as ErrInternal.
func (e *AppError) Is(target error) bool {
	return target == ErrInternal && e.Code >= 500
}
