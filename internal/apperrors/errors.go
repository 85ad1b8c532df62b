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

// ErrInvalidState indicates an operation that is illegal for the entity's current status.
var ErrInvalidState = errors.New("invalid state for operation")

// ErrConflict indicates a concurrent mutation was detected by a storage guard.
var ErrConflict = errors.New("conflicting concurrent update")

// ErrForbidden indicates the caller's capability set does not allow the operation.
var ErrForbidden = errors.New("operation not permitted")

// AppError wraps an unexpected infrastructure failure with an HTTP-ish code
// and a message safe to log. Business failures use the sentinels above instead.
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

// NewAppError creates a new AppError.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}
