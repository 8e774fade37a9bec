package api

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/mathquiz/mathquiz/internal/api/shared"
	"github.com/mathquiz/mathquiz/internal/domain"
	"github.com/mathquiz/mathquiz/internal/domain/arith"
	"github.com/mathquiz/mathquiz/internal/store"
)

// MapErrorToStatusCode maps internal errors to appropriate HTTP status codes
// based on the error type. This prevents leaking internal error types or
// messages to clients.
func MapErrorToStatusCode(err error) int {
	switch {
	case err == nil:
		return http.StatusInternalServerError

	// Not found errors
	case errors.Is(err, store.ErrNotFound):
		return http.StatusNotFound

	// Conflict errors
	case errors.Is(err, store.ErrAlreadyAnswered):
		return http.StatusConflict

	// Bad request errors
	case domain.IsValidationError(err),
		errors.Is(err, store.ErrInvalidEntity):
		return http.StatusBadRequest

	// Default: internal server error
	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns a sanitized, user-friendly error message
// based on the error type. This prevents leaking sensitive internal details.
func GetSafeErrorMessage(err error) string {
	if err == nil {
		return "An unexpected error occurred"
	}

	switch {
	case errors.Is(err, store.ErrQuestionNotFound):
		return "Question not found"

	case errors.Is(err, store.ErrAlreadyAnswered):
		return "Question already answered"

	case errors.Is(err, domain.ErrInvalidDate):
		return "Invalid date"

	case errors.Is(err, domain.ErrInvalidTimezone):
		return "Invalid timezone"

	case errors.Is(err, domain.ErrInvalidWindow):
		return "Invalid window size"

	case errors.Is(err, domain.ErrInvalidTimeRange):
		return "Invalid time range"

	case errors.Is(err, domain.ErrInvalidID):
		return "Invalid question ID"

	case errors.Is(err, store.ErrInvalidEntity):
		return "Invalid entity data"

	case errors.Is(err, arith.ErrGenerationExhausted):
		return "Failed to generate a question"

	case domain.IsValidationError(err):
		return "Validation error"

	default:
		return "An unexpected error occurred"
	}
}

// SanitizeValidationError turns a struct validator error into a short
// message naming the first failing field.
func SanitizeValidationError(err error) string {
	fields := shared.FieldErrors(err)
	if len(fields) == 0 {
		return "Validation error"
	}

	// Deterministic pick for multi-field failures.
	var first string
	for field := range fields {
		if first == "" || field < first {
			first = field
		}
	}
	return fmt.Sprintf("Invalid %s: %s", strings.ToLower(first), getValidationTagMessage(fields[first]))
}

// getValidationTagMessage maps validation tags to user-friendly error messages
func getValidationTagMessage(tag string) string {
	switch tag {
	case "required":
		return "required field"
	case "gt", "gte", "min":
		return "too small"
	case "lt", "lte", "max":
		return "too large"
	default:
		return "validation failed"
	}
}

// HandleAPIError writes the status and safe message for err and logs the
// redacted details. A non-empty fallback replaces the generic 500 message.
func HandleAPIError(w http.ResponseWriter, r *http.Request, err error, fallback string) {
	status := MapErrorToStatusCode(err)
	message := GetSafeErrorMessage(err)
	if status == http.StatusInternalServerError && fallback != "" &&
		!errors.Is(err, arith.ErrGenerationExhausted) {
		message = fallback
	}
	shared.RespondWithErrorAndLog(w, r, status, message, err)
}
