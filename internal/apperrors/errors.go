package apperrors

import (
	"errors"
	"fmt"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrConflict indicates the operation lost against a prior or concurrent state
// change (already posted, already closed, already matched). Callers should
// treat it as "someone else already did this", not as bad input.
var ErrConflict = errors.New("state conflict")

// ErrForbidden indicates the authenticated user lacks the role required for the action.
var ErrForbidden = errors.New("forbidden")

// ErrUnauthorized indicates a missing or invalid credential.
var ErrUnauthorized = errors.New("unauthorized")

// ErrInternal indicates an unexpected failure the caller cannot correct.
var ErrInternal = errors.New("internal error")

// ErrLockNotAvailable indicates transient lock or serialization contention in
// the store. Services retry a bounded number of times before surfacing it.
var ErrLockNotAvailable = errors.New("resource temporarily locked")

// AppError carries an HTTP-ish status code alongside the wrapped cause so
// repository failures keep their context when crossing layers.
type AppError struct {
	Code    int
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NewAppError creates an AppError wrapping the given cause.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}

// NewNotFoundError creates an AppError that satisfies errors.Is(err, ErrNotFound).
func NewNotFoundError(message string) *AppError {
	return &AppError{Code: 404, Message: message, Err: ErrNotFound}
}
