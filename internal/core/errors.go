package core

import "fmt"

type ErrorCode string

const (
	ErrNotFound         ErrorCode = "NEURO_NOT_FOUND"
	ErrMethodNotAllowed ErrorCode = "NEURO_METHOD_NOT_ALLOWED"
	ErrInternal         ErrorCode = "NEURO_INTERNAL"
)

// HTTPStatus returns the HTTP status code for this error code.
func (e ErrorCode) HTTPStatus() int {
	switch e {
	case ErrNotFound:
		return 404
	case ErrMethodNotAllowed:
		return 405
	default:
		return 500
	}
}

type AppError struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
}

func (e *AppError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func NewAppError(code ErrorCode, msg string) *AppError {
	return &AppError{Code: code, Message: msg}
}

// ConnectReason classifies why a database connection attempt failed.
type ConnectReason string

const (
	ReasonUnsetURI    ConnectReason = "unset_uri"
	ReasonInvalidURI  ConnectReason = "invalid_uri"
	ReasonUnreachable ConnectReason = "unreachable"
	ReasonAuthFailed  ConnectReason = "auth_failed"
	ReasonUnknown     ConnectReason = "unknown"
)

// DatabaseConnectError is any failure to establish the database connection.
type DatabaseConnectError struct {
	Reason ConnectReason
	Err    error
}

func (e *DatabaseConnectError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("database connect failed (%s)", e.Reason)
	}
	return fmt.Sprintf("database connect failed (%s): %v", e.Reason, e.Err)
}

func (e *DatabaseConnectError) Unwrap() error {
	return e.Err
}

func NewDatabaseConnectError(reason ConnectReason, err error) *DatabaseConnectError {
	return &DatabaseConnectError{Reason: reason, Err: err}
}
