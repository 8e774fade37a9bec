package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/mathquiz/mathquiz/internal/domain"
)

// QuestionStore defines the interface for question persistence.
// Implementations must be safe to use from a single serialized connection
// and must never cache rows between calls.
type QuestionStore interface {
	// Create inserts a new open question and sets q.ID.
	// Returns validation errors from the domain Question if data is invalid.
	Create(ctx context.Context, q *domain.Question) error

	// GetByID retrieves a question by its ID.
	// Returns ErrQuestionNotFound if the question does not exist.
	GetByID(ctx context.Context, id int64) (*domain.Question, error)

	// GetRandomOpen returns a uniformly random unanswered question.
	// Returns ErrNoOpenQuestion if there is none.
	GetRandomOpen(ctx context.Context) (*domain.Question, error)

	// RecordAnswer stores answer for question id and reports whether it
	// matches the expected answer. at is clamped so the answer is never
	// recorded before the question was created.
	// Returns ErrQuestionNotFound for an unknown id and ErrAlreadyAnswered
	// when an answer was already stored.
	RecordAnswer(ctx context.Context, id int64, answer int64, at time.Time) (bool, error)

	// ListMistakes returns every answered question whose answer was wrong,
	// most recently answered first.
	ListMistakes(ctx context.Context) ([]domain.Mistake, error)

	// CountAnswered counts answered questions with answered_at in the
	// inclusive range [start, end]. An empty or inverted range yields zero.
	CountAnswered(ctx context.Context, start, end time.Time) (domain.Statistic, error)

	// ListAnsweredBetween returns answer records in the inclusive range
	// [start, end], oldest first.
	ListAnsweredBetween(ctx context.Context, start, end time.Time) ([]domain.AnswerRecord, error)

	// CountOpen returns the number of unanswered questions.
	CountOpen(ctx context.Context) (int64, error)

	// WithTx returns a new QuestionStore instance that uses the provided transaction.
	// The transaction should be created and managed by the caller (typically a service).
	WithTx(tx *sql.Tx) QuestionStore
}
