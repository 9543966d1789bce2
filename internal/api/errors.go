// errors.go - Structured error handling for API responses
package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/raidmarks/backend/internal/clock"
	"github.com/raidmarks/backend/internal/report"
)

// APIError represents a structured API error response
type APIError struct {
	Status  int    `json:"-"`
	Code    string `json:"code"`
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
}

// Error implements the error interface
func (e *APIError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Error constructors for consistent error handling

// NewBadRequestError creates a 400 Bad Request error
func NewBadRequestError(message string, cause error) *APIError {
	err := &APIError{
		Status:  http.StatusBadRequest,
		Code:    "BAD_REQUEST",
		Message: message,
	}
	if cause != nil {
		err.Details = cause.Error()
	}
	return err
}

// NewValidationError creates a 400 validation error for a specific field
func NewValidationError(field string) *APIError {
	return &APIError{
		Status:  http.StatusBadRequest,
		Code:    "VALIDATION_ERROR",
		Message: fmt.Sprintf("validation failed for field: %s", field),
	}
}

// NewNotFoundError creates a 404 Not Found error
func NewNotFoundError(resource string, id string) *APIError {
	return &APIError{
		Status:  http.StatusNotFound,
		Code:    "NOT_FOUND",
		Message: fmt.Sprintf("%s not found: %s", resource, id),
	}
}

// NewEmptyInputError creates a 400 error for a blank paste or field
func NewEmptyInputError(message string) *APIError {
	return &APIError{
		Status:  http.StatusBadRequest,
		Code:    "EMPTY_INPUT",
		Message: message,
	}
}

// NewFormatError creates a 400 error for an unparseable time string
func NewFormatError(cause error) *APIError {
	err := &APIError{
		Status:  http.StatusBadRequest,
		Code:    "FORMAT_ERROR",
		Message: "could not parse time value",
	}
	if cause != nil {
		err.Details = cause.Error()
	}
	return err
}

// NewNoMatchError creates a 422 error when the parser found nothing
func NewNoMatchError(message string) *APIError {
	return &APIError{
		Status:  http.StatusUnprocessableEntity,
		Code:    "NO_MATCH",
		Message: message,
	}
}

// NewInternalError creates a 500 Internal Server Error
func NewInternalError(message string, cause error) *APIError {
	err := &APIError{
		Status:  http.StatusInternalServerError,
		Code:    "INTERNAL_ERROR",
		Message: message,
	}
	if cause != nil {
		err.Details = cause.Error()
	}
	return err
}

// MapDomainError converts sentinel errors from the clock and report
// packages into their API representation.
func MapDomainError(err error) *APIError {
	switch {
	case errors.Is(err, clock.ErrFormat):
		return NewFormatError(err)
	case errors.Is(err, report.ErrInvalidURL):
		return &APIError{
			Status:  http.StatusBadRequest,
			Code:    "INVALID_URL",
			Message: "report URL does not contain a report id",
			Details: err.Error(),
		}
	case errors.Is(err, report.ErrEmptyReport):
		return &APIError{
			Status:  http.StatusUnprocessableEntity,
			Code:    "EMPTY_REPORT",
			Message: "the report contains no fights",
		}
	case errors.Is(err, report.ErrRemote):
		return &APIError{
			Status:  http.StatusBadGateway,
			Code:    "REMOTE_ERROR",
			Message: "could not fetch the report",
			Details: err.Error(),
		}
	default:
		return NewInternalError("unexpected error", err)
	}
}

// ErrorHandler middleware for Echo
// Usage: e.HTTPErrorHandler = api.ErrorHandler
func ErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	var apiErr *APIError

	switch e := err.(type) {
	case *APIError:
		apiErr = e
	case *echo.HTTPError:
		apiErr = &APIError{
			Status:  e.Code,
			Code:    "HTTP_ERROR",
			Message: fmt.Sprintf("%v", e.Message),
		}
	default:
		apiErr = &APIError{
			Status:  http.StatusInternalServerError,
			Code:    "UNKNOWN_ERROR",
			Message: "An unexpected error occurred",
			Details: err.Error(),
		}
	}

	if !c.Response().Committed {
		c.JSON(apiErr.Status, apiErr)
	}
}
