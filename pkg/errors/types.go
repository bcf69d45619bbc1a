package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
)

// ErrorCode is the wire name of a typed failure ("error_name" in responses)
type ErrorCode string

const (
	// Filename and part validation
	ErrCodeInvalidFilename    ErrorCode = "invalid_filename"
	ErrCodeInvalidSurahNumber ErrorCode = "invalid_surah_number"
	ErrCodeInvalidPartNumber  ErrorCode = "invalid_part_number"
	ErrCodeInvalidRequest     ErrorCode = "invalid_request"
	ErrCodeInvalidTiming      ErrorCode = "invalid_timing"

	// Track lifecycle
	ErrCodeDuplicateTrack       ErrorCode = "duplicate_track"
	ErrCodeTrackNotFound        ErrorCode = "track_not_found"
	ErrCodeUploadFinalizeFailed ErrorCode = "upload_finalize_failed"

	// Manifest publishing
	ErrCodeAssetNotFound  ErrorCode = "asset_not_found"
	ErrCodeNoAssetVersion ErrorCode = "no_asset_version"

	// Transport
	ErrCodeMethodNotAllowed ErrorCode = "method_not_allowed"
	ErrCodeForbidden        ErrorCode = "forbidden"
	ErrCodeNotFound         ErrorCode = "not_found"
	ErrCodeRateLimited      ErrorCode = "rate_limited"

	// Configuration
	ErrCodeConfigInvalid ErrorCode = "config_invalid"

	// Anything unmapped
	ErrCodeServerError ErrorCode = "server_error"
)

// ServerErrorMessage is the only message ever returned for server_error.
const ServerErrorMessage = "An unexpected error occurred. Please try again later."

// AppError represents a structured application error
type AppError struct {
	Code     ErrorCode              `json:"error_name"`
	Message  string                 `json:"message"`
	Details  map[string]interface{} `json:"extra,omitempty"`
	Cause    error                  `json:"-"`
	HTTPCode int                    `json:"-"`
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause
func (e *AppError) Unwrap() error {
	return e.Cause
}

// WithDetail adds a detail to the error
func (e *AppError) WithDetail(key string, value interface{}) *AppError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// WithCause sets the underlying cause
func (e *AppError) WithCause(cause error) *AppError {
	e.Cause = cause
	return e
}

// GetHTTPCode returns the appropriate HTTP status code
func (e *AppError) GetHTTPCode() int {
	if e.HTTPCode != 0 {
		return e.HTTPCode
	}
	return getDefaultHTTPCode(e.Code)
}

// New creates a new AppError
func New(code ErrorCode, message string) *AppError {
	return &AppError{
		Code:     code,
		Message:  message,
		HTTPCode: getDefaultHTTPCode(code),
	}
}

// Newf creates a new AppError with formatted message
func Newf(code ErrorCode, format string, args ...interface{}) *AppError {
	return &AppError{
		Code:     code,
		Message:  fmt.Sprintf(format, args...),
		HTTPCode: getDefaultHTTPCode(code),
	}
}

// Wrap wraps an existing error with an AppError
func Wrap(cause error, code ErrorCode, message string) *AppError {
	return &AppError{
		Code:     code,
		Message:  message,
		Cause:    cause,
		HTTPCode: getDefaultHTTPCode(code),
	}
}

// Wrapf wraps an existing error with a formatted message
func Wrapf(cause error, code ErrorCode, format string, args ...interface{}) *AppError {
	return &AppError{
		Code:     code,
		Message:  fmt.Sprintf(format, args...),
		Cause:    cause,
		HTTPCode: getDefaultHTTPCode(code),
	}
}

// getDefaultHTTPCode returns the default HTTP status code for an error code
func getDefaultHTTPCode(code ErrorCode) int {
	switch code {
	case ErrCodeInvalidFilename, ErrCodeInvalidSurahNumber, ErrCodeInvalidPartNumber,
		ErrCodeInvalidRequest, ErrCodeInvalidTiming, ErrCodeDuplicateTrack:
		return http.StatusBadRequest
	case ErrCodeAssetNotFound, ErrCodeNoAssetVersion, ErrCodeTrackNotFound, ErrCodeNotFound:
		return http.StatusNotFound
	case ErrCodeMethodNotAllowed:
		return http.StatusMethodNotAllowed
	case ErrCodeForbidden:
		return http.StatusForbidden
	case ErrCodeRateLimited:
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}

// Common error constructors

// InvalidFilename is raised when a filename has no NNN.mp3 tail
func InvalidFilename(filename string) *AppError {
	return Newf(ErrCodeInvalidFilename, "Filename %q must end with a three digit surah number and .mp3", filename).
		WithDetail("filename", filename)
}

// InvalidSurahNumber is raised for parsed numbers outside 1..114
func InvalidSurahNumber(filename string, number int) *AppError {
	return Newf(ErrCodeInvalidSurahNumber, "Surah number %d is out of range (1-114)", number).
		WithDetail("filename", filename).
		WithDetail("surah_number", number)
}

// DuplicateTrack is raised when the (asset, surah) slot is taken
func DuplicateTrack(assetID uint, surahNumber int) *AppError {
	return Newf(ErrCodeDuplicateTrack, "Track already exists for asset %d and surah %d", assetID, surahNumber)
}

// InvalidRequest creates a request validation error
func InvalidRequest(field string, reason string) *AppError {
	return Newf(ErrCodeInvalidRequest, "validation failed for field '%s': %s", field, reason).
		WithDetail("field", field)
}

// ConfigError creates a configuration error
func ConfigError(key string, reason string) *AppError {
	return Newf(ErrCodeConfigInvalid, "configuration error for '%s': %s", key, reason).
		WithDetail("key", key).
		WithDetail("reason", reason)
}

// ServerError hides the cause behind the fixed opaque message
func ServerError(cause error) *AppError {
	return Wrap(cause, ErrCodeServerError, ServerErrorMessage)
}

// As extracts an AppError anywhere in the chain
func As(err error) (*AppError, bool) {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// Is checks if an error is of a specific type
func Is(err error, code ErrorCode) bool {
	if appErr, ok := As(err); ok {
		return appErr.Code == code
	}
	return false
}

// GetCode extracts the error code from an error
func GetCode(err error) ErrorCode {
	if appErr, ok := As(err); ok {
		return appErr.Code
	}
	return ErrCodeServerError
}

// GetHTTPCode extracts the HTTP status code from an error
func GetHTTPCode(err error) int {
	if appErr, ok := As(err); ok {
		return appErr.GetHTTPCode()
	}
	return http.StatusInternalServerError
}
