// Package errors defines the application error taxonomy. Handlers map these
// onto HTTP responses; use cases wrap them with pkg/errors for stack context.
package errors

import (
	"net/http"

	"github.com/pkg/errors"
)

// AppError defines the interface for application-specific errors.
type AppError interface {
	error
	HTTPCode() int     // HTTP status code
	ErrorCode() string // Business error code
	Message() string   // User-friendly error message
	Details() string   // Detailed error information (optional)
}

// BaseError is a basic error structure that implements the AppError interface.
type BaseError struct {
	httpCode  int
	errorCode string
	message   string
	details   string
}

// NewBaseError creates a new base error.
func NewBaseError(httpCode int, errorCode, message, details string) *BaseError {
	return &BaseError{
		httpCode:  httpCode,
		errorCode: errorCode,
		message:   message,
		details:   details,
	}
}

// Error implements the error interface.
func (e *BaseError) Error() string {
	return e.message
}

// WrapMessage wraps the error with additional context message.
func (e *BaseError) WrapMessage(message string) error {
	return errors.Wrap(e, message)
}

// HTTPCode returns the HTTP status code.
func (e *BaseError) HTTPCode() int {
	return e.httpCode
}

// ErrorCode returns the business error code.
func (e *BaseError) ErrorCode() string {
	return e.errorCode
}

// Message returns the user-friendly error message.
func (e *BaseError) Message() string {
	return e.message
}

// Details returns detailed error information.
func (e *BaseError) Details() string {
	return e.details
}

// WithDetails returns a copy of the error carrying detailed information.
func (e *BaseError) WithDetails(details string) *BaseError {
	return &BaseError{
		httpCode:  e.httpCode,
		errorCode: e.errorCode,
		message:   e.message,
		details:   details,
	}
}

// Predefined error types.
var (
	// ErrValidationFailed covers missing or malformed request input.
	ErrValidationFailed = NewBaseError(
		http.StatusBadRequest,
		"VALIDATION_FAILED",
		"invalid input",
		"",
	)

	// ErrUserAlreadyExists is returned when registering with a taken email.
	ErrUserAlreadyExists = NewBaseError(
		http.StatusBadRequest,
		"USER_ALREADY_EXISTS",
		"an account with this email already exists",
		"",
	)

	// ErrInvalidCredentials is deliberately generic: the same message covers
	// unknown email, wrong password, and Google-only accounts without a
	// password, so the login endpoint cannot be used to enumerate users.
	ErrInvalidCredentials = NewBaseError(
		http.StatusBadRequest,
		"INVALID_CREDENTIALS",
		"invalid email or password",
		"",
	)

	// ErrInvalidGoogleToken collapses every Google ID token failure (bad
	// signature, audience mismatch, unverified email, expiry) into one
	// opaque message, so callers cannot probe which check failed.
	ErrInvalidGoogleToken = NewBaseError(
		http.StatusBadRequest,
		"INVALID_GOOGLE_TOKEN",
		"invalid token",
		"",
	)

	// ErrGoogleSignInDisabled is returned when no OAuth client id is configured.
	ErrGoogleSignInDisabled = NewBaseError(
		http.StatusBadRequest,
		"GOOGLE_SIGNIN_DISABLED",
		"Google sign-in is not configured",
		"",
	)

	// ErrUnauthenticated covers a missing or malformed Authorization header.
	ErrUnauthenticated = NewBaseError(
		http.StatusUnauthorized,
		"UNAUTHENTICATED",
		"authentication required",
		"",
	)

	// ErrTokenExpired is distinct from ErrTokenInvalid: the signature checked
	// out but the token is past its expiry, and clients render a different
	// message (prompting re-login rather than reporting a broken token).
	ErrTokenExpired = NewBaseError(
		http.StatusUnauthorized,
		"TOKEN_EXPIRED",
		"session expired, please sign in again",
		"",
	)

	// ErrTokenInvalid covers signature and format failures of session tokens.
	ErrTokenInvalid = NewBaseError(
		http.StatusUnauthorized,
		"TOKEN_INVALID",
		"invalid session token",
		"",
	)

	// ErrForbidden is returned when mutating a resource owned by someone else.
	ErrForbidden = NewBaseError(
		http.StatusForbidden,
		"FORBIDDEN",
		"access denied",
		"",
	)

	// ErrNotFound is the generic missing-resource error.
	ErrNotFound = NewBaseError(
		http.StatusNotFound,
		"NOT_FOUND",
		"resource not found",
		"",
	)

	// ErrRecipeGenerationFailed is returned when the AI backend rejects a
	// generation request or returns an unusable draft.
	ErrRecipeGenerationFailed = NewBaseError(
		http.StatusBadGateway,
		"RECIPE_GENERATION_FAILED",
		"recipe generation is temporarily unavailable",
		"",
	)

	// ErrInternalError hides all unexpected failures behind a generic 500.
	ErrInternalError = NewBaseError(
		http.StatusInternalServerError,
		"INTERNAL_ERROR",
		"internal server error",
		"",
	)
)

// DatabaseExecuteError represents a database execution error, implementing
// the AppError interface. The underlying driver error is kept for logs but
// never leaks to clients.
type DatabaseExecuteError struct {
	err     error
	details string
}

// NewDatabaseExecuteError creates a database-related error.
func NewDatabaseExecuteError(err error, details string) AppError {
	return &DatabaseExecuteError{
		err:     err,
		details: details,
	}
}

// Error implements the error interface.
func (e *DatabaseExecuteError) Error() string {
	return errors.Wrap(e.err, "database execution failed").Error()
}

// HTTPCode returns the HTTP status code.
func (e *DatabaseExecuteError) HTTPCode() int {
	return http.StatusInternalServerError
}

// ErrorCode returns the business error code.
func (e *DatabaseExecuteError) ErrorCode() string {
	return "DATABASE_EXECUTE_FAILED"
}

// Message returns the user-friendly error message.
func (e *DatabaseExecuteError) Message() string {
	return "internal server error"
}

// Details returns detailed error information.
func (e *DatabaseExecuteError) Details() string {
	return e.details
}
