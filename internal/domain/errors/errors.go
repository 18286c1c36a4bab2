package errors

import (
	"net/http"

	"mapnote/internal/errors"
)

// AppError defines the interface for application-specific errors
type AppError interface {
	error
	HTTPCode() int     // HTTP status code
	ErrorCode() string // Business error code
	Message() string   // User-friendly error message
	Details() string   // Detailed error information (optional)
}

// BaseError is a basic error structure that implements the AppError interface
type BaseError struct {
	httpCode  int
	errorCode string
	message   string
	details   string
}

// NewBaseError creates a new base error
func NewBaseError(httpCode int, errorCode, message, details string) *BaseError {
	return &BaseError{
		httpCode:  httpCode,
		errorCode: errorCode,
		message:   message,
		details:   details,
	}
}

// Error implements the error interface
func (e *BaseError) Error() string {
	return e.message
}

// WrapMessage wraps the error with additional context message
func (e *BaseError) WrapMessage(message string) error {
	return errors.Wrap(e, message)
}

// HTTPCode returns the HTTP status code
func (e *BaseError) HTTPCode() int {
	return e.httpCode
}

// ErrorCode returns the business error code
func (e *BaseError) ErrorCode() string {
	return e.errorCode
}

// Message returns the user-friendly error message
func (e *BaseError) Message() string {
	return e.message
}

// Details returns detailed error information
func (e *BaseError) Details() string {
	return e.details
}

// WithDetails adds detailed error information
func (e *BaseError) WithDetails(details string) *BaseError {
	return &BaseError{
		httpCode:  e.httpCode,
		errorCode: e.errorCode,
		message:   e.message,
		details:   details,
	}
}

// Predefined error types
var (
	// Direction-session errors
	ErrNoReferencePoint = NewBaseError(
		http.StatusConflict,
		"NO_REFERENCE_POINT",
		"Please set a main point first",
		"",
	)

	ErrNotMeasuring = NewBaseError(
		http.StatusConflict,
		"NOT_MEASURING",
		"Direction measuring is not active",
		"",
	)

	ErrPointIsReference = NewBaseError(
		http.StatusConflict,
		"POINT_IS_REFERENCE",
		"The clicked point is the main point",
		"",
	)

	ErrMeasurementNotFound = NewBaseError(
		http.StatusNotFound,
		"MEASUREMENT_NOT_FOUND",
		"Direction measurement not found",
		"",
	)

	// Search errors
	ErrEmptySearchQuery = NewBaseError(
		http.StatusBadRequest,
		"EMPTY_SEARCH_QUERY",
		"Please enter a location to search",
		"",
	)

	ErrGeocodingFailed = NewBaseError(
		http.StatusBadGateway,
		"GEOCODING_FAILED",
		"Error searching for location. Please try again.",
		"",
	)

	ErrLocationNotFound = NewBaseError(
		http.StatusNotFound,
		"LOCATION_NOT_FOUND",
		"Sorry, we couldn't find that location.",
		"",
	)

	// Annotation errors
	ErrMalformedGeometry = NewBaseError(
		http.StatusUnprocessableEntity,
		"MALFORMED_GEOMETRY",
		"The drawn shape is not valid",
		"",
	)

	ErrInvalidDraft = NewBaseError(
		http.StatusConflict,
		"INVALID_DRAFT",
		"There is no pending shape with this id",
		"",
	)

	ErrFeatureNotFound = NewBaseError(
		http.StatusNotFound,
		"FEATURE_NOT_FOUND",
		"Feature not found",
		"",
	)

	// Workspace errors
	ErrMapNotFound = NewBaseError(
		http.StatusNotFound,
		"MAP_NOT_FOUND",
		"Map not found",
		"",
	)

	ErrMapLimitReached = NewBaseError(
		http.StatusTooManyRequests,
		"MAP_LIMIT_REACHED",
		"Too many open maps",
		"",
	)

	// Activity errors
	ErrInvalidEvent = NewBaseError(
		http.StatusBadRequest,
		"INVALID_EVENT",
		"The map event cannot be recorded",
		"",
	)

	// Validation-related errors
	ErrValidationFailed = NewBaseError(
		http.StatusBadRequest,
		"VALIDATION_FAILED",
		"Input validation failed",
		"",
	)

	// General errors
	ErrInternalError = NewBaseError(
		http.StatusInternalServerError,
		"INTERNAL_ERROR",
		"Internal server error",
		"",
	)

	ErrNotFound = NewBaseError(
		http.StatusNotFound,
		"NOT_FOUND",
		"Resource not found",
		"",
	)
)

// ExportError represents a failure writing or reading a snapshot, implementing the AppError interface
type ExportError struct {
	err     error
	details string
}

// NewExportError creates an export-related error
func NewExportError(err error, details string) AppError {
	return &ExportError{
		err:     err,
		details: details,
	}
}

// Error implements the error interface
func (e *ExportError) Error() string {
	return errors.Wrap(e.err, "export failed").Error()
}

// Unwrap returns the underlying storage error
func (e *ExportError) Unwrap() error {
	return e.err
}

// HTTPCode returns the HTTP status code
func (e *ExportError) HTTPCode() int {
	return http.StatusInternalServerError
}

// ErrorCode returns the business error code
func (e *ExportError) ErrorCode() string {
	return "EXPORT_FAILED"
}

// Message returns the user-friendly error message
func (e *ExportError) Message() string {
	return "Failed to export the map"
}

// Details returns detailed error information
func (e *ExportError) Details() string {
	return e.details
}
