package api

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/mathquiz/mathquiz/internal/api/shared"
	"github.com/mathquiz/mathquiz/internal/domain"
	"github.com/mathquiz/mathquiz/internal/domain/arith"
	"github.com/mathquiz/mathquiz/internal/service/quiz"
	"github.com/mathquiz/mathquiz/internal/store"
	"github.com/stretchr/testify/assert"
)

func TestMapErrorToStatusCode(t *testing.T) {
	tests := []struct {
		name           string
		err            error
		expectedStatus int
		expectedMsg    string
	}{
		{
			name:           "nil error",
			err:            nil,
			expectedStatus: http.StatusInternalServerError,
			expectedMsg:    "An unexpected error occurred",
		},
		{
			name:           "question not found",
			err:            store.ErrQuestionNotFound,
			expectedStatus: http.StatusNotFound,
			expectedMsg:    "Question not found",
		},
		{
			name:           "wrapped not found",
			err:            fmt.Errorf("answer: %w", store.ErrQuestionNotFound),
			expectedStatus: http.StatusNotFound,
			expectedMsg:    "Question not found",
		},
		{
			name:           "already answered",
			err:            store.ErrAlreadyAnswered,
			expectedStatus: http.StatusConflict,
			expectedMsg:    "Question already answered",
		},
		{
			name:           "invalid date",
			err:            domain.NewValidationError("day", "is out of range", domain.ErrInvalidDate),
			expectedStatus: http.StatusBadRequest,
			expectedMsg:    "Invalid date",
		},
		{
			name:           "invalid timezone",
			err:            domain.NewValidationError("timezone", "unknown", domain.ErrInvalidTimezone),
			expectedStatus: http.StatusBadRequest,
			expectedMsg:    "Invalid timezone",
		},
		{
			name:           "invalid window",
			err:            domain.ErrInvalidWindow,
			expectedStatus: http.StatusBadRequest,
			expectedMsg:    "Invalid window size",
		},
		{
			name:           "invalid time range",
			err:            domain.ErrInvalidTimeRange,
			expectedStatus: http.StatusBadRequest,
			expectedMsg:    "Invalid time range",
		},
		{
			name:           "invalid id",
			err:            domain.NewValidationError("id", "must be positive", domain.ErrInvalidID),
			expectedStatus: http.StatusBadRequest,
			expectedMsg:    "Invalid question ID",
		},
		{
			name:           "invalid entity",
			err:            store.ErrInvalidEntity,
			expectedStatus: http.StatusBadRequest,
			expectedMsg:    "Invalid entity data",
		},
		{
			name:           "generation exhausted",
			err:            quiz.NewServiceError("new_question", "failed to generate", arith.ErrGenerationExhausted),
			expectedStatus: http.StatusInternalServerError,
			expectedMsg:    "Failed to generate a question",
		},
		{
			name:           "storage error",
			err:            store.NewStoreError("question", "create", "insert failed", errors.New("disk I/O error")),
			expectedStatus: http.StatusInternalServerError,
			expectedMsg:    "An unexpected error occurred",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expectedStatus, MapErrorToStatusCode(tc.err))
			assert.Equal(t, tc.expectedMsg, GetSafeErrorMessage(tc.err))
		})
	}
}

func TestSanitizeValidationError(t *testing.T) {
	err := shared.ValidateRequest(&SubmitAnswerRequest{ID: -1})
	assert.Equal(t, "Invalid answer: required field", SanitizeValidationError(err))

	answer := int64(3)
	err = shared.ValidateRequest(&SubmitAnswerRequest{ID: 0, Answer: &answer})
	assert.Equal(t, "Invalid id: required field", SanitizeValidationError(err))

	assert.Equal(t, "Validation error", SanitizeValidationError(errors.New("plain")))
}
