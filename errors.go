package previewcard

import (
	"errors"
	"fmt"
	"net/http"
)

// Code is a machine-readable error code.
type Code string

// Error codes for every failure the request pipeline can observe.
const (
	ErrCodeMissingParameter      Code = "MISSING_PARAMETER"
	ErrCodeUpstreamFetchFailed   Code = "UPSTREAM_FETCH_FAILED"
	ErrCodeTitleExtractionFailed Code = "TITLE_EXTRACTION_FAILED"
	ErrCodeUnknownVariant        Code = "UNKNOWN_VARIANT"
	ErrCodeAssetNotFound         Code = "ASSET_NOT_FOUND"
	ErrCodeCacheStoreUnavailable Code = "CACHE_STORE_UNAVAILABLE"
	ErrCodeInternal              Code = "INTERNAL_ERROR"
)

// Error is a structured error with a code and optional cause. Status, when
// non-zero, overrides the code's default HTTP status (used to propagate an
// upstream fetch status verbatim).
type Error struct {
	Code    Code
	Message string
	Status  int
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause for errors.Is/As compatibility.
func (e *Error) Unwrap() error {
	return e.Cause
}

// NewError creates an Error with the given code and formatted message.
func NewError(code Code, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// WrapError creates an Error wrapping an existing error.
func WrapError(code Code, cause error, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...), Cause: cause}
}

// IsCode reports whether err carries the given error code.
func IsCode(err error, code Code) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Code == code
	}
	return false
}

// HTTPStatus maps an error to the HTTP status code it should surface as.
func HTTPStatus(err error) int {
	var e *Error
	if !errors.As(err, &e) {
		return http.StatusInternalServerError
	}
	if e.Status != 0 {
		return e.Status
	}
	switch e.Code {
	case ErrCodeMissingParameter:
		return http.StatusBadRequest
	case ErrCodeUnknownVariant:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
