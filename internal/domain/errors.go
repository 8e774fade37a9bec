package domain

import (
	"errors"
	"fmt"
)

// Common domain errors used across the application.
var (
	// ErrValidation is returned when a domain entity or query fails validation.
	// This is often wrapped with a more specific error message.
	ErrValidation = errors.New("validation failed")

	// ErrInvalidID is returned when a question ID is malformed or invalid.
	ErrInvalidID = errors.New("invalid ID")

	// ErrEmptyExpression is returned when a question has no expression text.
	ErrEmptyExpression = errors.New("expression cannot be empty")

	// ErrInvalidDate is returned when a (year, month, day) triple does not name
	// a calendar date.
	ErrInvalidDate = errors.New("invalid date")

	// ErrInvalidTimezone is returned when a timezone name cannot be resolved.
	ErrInvalidTimezone = errors.New("invalid timezone")

	// ErrInvalidWindow is returned when a rolling window size is out of range.
	ErrInvalidWindow = errors.New("invalid window size")

	// ErrInvalidTimeRange is returned when a timestamp bound cannot be parsed.
	ErrInvalidTimeRange = errors.New("invalid time range")
)

// ValidationError carries the name of the offending field along with the
// sentinel describing the failure class.
type ValidationError struct {
	Field   string
	Message string
	Err     error
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return fmt.Sprintf("%s %s: %v", e.Field, e.Message, e.Err)
}

// Unwrap returns the sentinel so callers can use errors.Is.
func (e *ValidationError) Unwrap() error {
	return e.Err
}

// NewValidationError builds a ValidationError for field.
func NewValidationError(field, message string, err error) *ValidationError {
	if err == nil {
		err = ErrValidation
	}
	return &ValidationError{Field: field, Message: message, Err: err}
}

// IsValidationError reports whether err is caller input that failed validation.
func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve) ||
		errors.Is(err, ErrValidation) ||
		errors.Is(err, ErrInvalidDate) ||
		errors.Is(err, ErrInvalidTimezone) ||
		errors.Is(err, ErrInvalidWindow) ||
		errors.Is(err, ErrInvalidTimeRange) ||
		errors.Is(err, ErrInvalidID)
}
