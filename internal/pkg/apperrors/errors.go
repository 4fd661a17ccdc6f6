package apperrors

import (
	"errors"
	"fmt"

	"gorm.io/gorm"
)

// Stable machine-readable error codes, distinct from HTTP statuses, for
// client-side branching.
const (
	CodeNotFound         = "not_found"
	CodeValidation       = "validation_error"
	CodeConflict         = "conflict"
	CodeInvalidReference = "invalid_reference"
	CodeUnauthorized     = "unauthorized"
	CodeForbidden        = "forbidden"
	CodeInternal         = "internal_error"
)

// Error is the typed application error rendered by the global error handler
// as {error_code, detail, ...details}.
type Error struct {
	Code    string
	Status  int
	Message string
	Details map[string]interface{}
}

func (e *Error) Error() string {
	return e.Message
}

// WithDetail returns the error with one extra detail field attached.
func (e *Error) WithDetail(key string, value interface{}) *Error {
	if e.Details == nil {
		e.Details = map[string]interface{}{}
	}
	e.Details[key] = value
	return e
}

func NotFound(resource string, id interface{}) *Error {
	return &Error{
		Code:    CodeNotFound,
		Status:  404,
		Message: fmt.Sprintf("%s not found", resource),
		Details: map[string]interface{}{"resource": resource, "id": id},
	}
}

func Validation(message string) *Error {
	return &Error{Code: CodeValidation, Status: 400, Message: message}
}

// Unprocessable is Validation with a 422 status, for well-formed requests
// carrying semantically invalid values.
func Unprocessable(message string) *Error {
	return &Error{Code: CodeValidation, Status: 422, Message: message}
}

func Conflict(message string) *Error {
	return &Error{Code: CodeConflict, Status: 409, Message: message}
}

func Unauthorized(message string) *Error {
	return &Error{Code: CodeUnauthorized, Status: 401, Message: message}
}

func Forbidden(message string) *Error {
	return &Error{Code: CodeForbidden, Status: 403, Message: message}
}

func Internal(message string) *Error {
	return &Error{Code: CodeInternal, Status: 500, Message: message}
}

// FromDB maps storage errors to typed application errors. Uniqueness and
// foreign-key violations are detected via GORM's translated errors
// (TranslateError: true on the gorm.Config), not by matching error text.
func FromDB(err error) *Error {
	switch {
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return Conflict("Duplicate value violates a uniqueness constraint")
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		return &Error{Code: CodeInvalidReference, Status: 400, Message: "Referenced record does not exist"}
	default:
		return Internal("Internal server error")
	}
}

// As unwraps err into *Error if possible.
func As(err error) (*Error, bool) {
	var appErr *Error
	ok := errors.As(err, &appErr)
	return appErr, ok
}
