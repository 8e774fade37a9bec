// Package quiz orchestrates question generation, reuse and answering on top
// of the question store.
package quiz

import (
	"context"
	"fmt"
	"time"

	"github.com/mathquiz/mathquiz/internal/domain"
)

// DefaultLookbackDays is how far back GetStatistics reaches when no start is given.
const DefaultLookbackDays = 1000

// Generator produces new arithmetic problems.
type Generator interface {
	Generate() (domain.Problem, error)
}

// Service exposes the question repository operations.
type Service interface {
	// NewQuestion returns an open question, reusing a random unanswered one
	// before generating and storing a new one. Runs in one transaction.
	NewQuestion(ctx context.Context) (*domain.Question, error)

	// AnswerQuestion records answer for question id at the current time and
	// reports whether it was correct.
	//
	// Returns store.ErrQuestionNotFound for an unknown id and
	// store.ErrAlreadyAnswered when the question already has an answer.
	AnswerQuestion(ctx context.Context, id int64, answer int64) (bool, error)

	// MistakeCollection lists wrongly answered questions, newest first.
	MistakeCollection(ctx context.Context) ([]domain.Mistake, error)

	// GetStatistics counts answered questions with answered_at in [start, end].
	// A nil start defaults to now minus the lookback window, a nil end to now.
	// An inverted range yields a zero statistic.
	GetStatistics(ctx context.Context, start, end *time.Time) (domain.Statistic, error)

	// AnswerHistory returns every answer recorded up to now, oldest first.
	AnswerHistory(ctx context.Context) ([]domain.AnswerRecord, error)
}

// ServiceError wraps unexpected errors from the quiz service with the
// operation that failed, so callers can use errors.As instead of string matching.
type ServiceError struct {
	// Operation is the operation that failed (e.g., "new_question", "answer_question")
	Operation string
	// Message is a human-readable description of the error
	Message string
	// Err is the underlying error that caused the failure
	Err error
}

// Error implements the error interface for ServiceError.
func (e *ServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s operation failed: %s: %v", e.Operation, e.Message, e.Err)
	}
	return fmt.Sprintf("%s operation failed: %s", e.Operation, e.Message)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *ServiceError) Unwrap() error {
	return e.Err
}

// NewServiceError returns a ServiceError for operation.
func NewServiceError(operation, message string, err error) *ServiceError {
	return &ServiceError{
		Operation: operation,
		Message:   message,
		Err:       err,
	}
}
