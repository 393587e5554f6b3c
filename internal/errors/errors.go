package errors

import "fmt"

// ErrCode represents an error code
type ErrCode string

const (
	ErrCodeNotFound            ErrCode = "NOT_FOUND"
	ErrCodeUpstreamUnavailable ErrCode = "UPSTREAM_UNAVAILABLE"
	ErrCodeIncompleteData      ErrCode = "INCOMPLETE_DATA"
	ErrCodeStoreConflict       ErrCode = "STORE_CONFLICT"
	ErrCodeBadRequest          ErrCode = "BAD_REQUEST"
	ErrCodeInternal            ErrCode = "INTERNAL_ERROR"
)

// AppError represents an application error
type AppError struct {
	Code    ErrCode
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (%v)", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NewNotFoundError creates a new not found error
func NewNotFoundError(resource string) *AppError {
	return &AppError{
		Code:    ErrCodeNotFound,
		Message: fmt.Sprintf("%s not found", resource),
	}
}

// NewUpstreamError creates a new upstream unavailable error, preserving the
// upstream message
func NewUpstreamError(message string, err error) *AppError {
	return &AppError{
		Code:    ErrCodeUpstreamUnavailable,
		Message: message,
		Err:     err,
	}
}

// NewIncompleteDataError creates a new incomplete data error
func NewIncompleteDataError(message string) *AppError {
	return &AppError{
		Code:    ErrCodeIncompleteData,
		Message: message,
	}
}

// NewStoreConflictError creates a new store conflict error
func NewStoreConflictError(message string, err error) *AppError {
	return &AppError{
		Code:    ErrCodeStoreConflict,
		Message: message,
		Err:     err,
	}
}

// NewBadRequestError creates a new bad request error
func NewBadRequestError(message string) *AppError {
	return &AppError{
		Code:    ErrCodeBadRequest,
		Message: message,
	}
}

// NewInternalError creates a new internal error
func NewInternalError(message string, err error) *AppError {
	return &AppError{
		Code:    ErrCodeInternal,
		Message: message,
		Err:     err,
	}
}

// IsNotFound checks if the error is a not found error
func IsNotFound(err error) bool {
	if appErr, ok := err.(*AppError); ok {
		return appErr.Code == ErrCodeNotFound
	}
	return false
}

// IsUpstreamUnavailable checks if the error is an upstream unavailable error
func IsUpstreamUnavailable(err error) bool {
	if appErr, ok := err.(*AppError); ok {
		return appErr.Code == ErrCodeUpstreamUnavailable
	}
	return false
}

// IsIncompleteData checks if the error is an incomplete data error
func IsIncompleteData(err error) bool {
	if appErr, ok := err.(*AppError); ok {
		return appErr.Code == ErrCodeIncompleteData
	}
	return false
}

// IsStoreConflict checks if the error is a store conflict error
func IsStoreConflict(err error) bool {
	if appErr, ok := err.(*AppError); ok {
		return appErr.Code == ErrCodeStoreConflict
	}
	return false
}
