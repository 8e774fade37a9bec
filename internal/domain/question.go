package domain

import (
	"strings"
	"time"
)

// Question is one generated arithmetic problem together with the answer the
// user gave for it, if any. Questions are never deleted; they form the history
// that mistake review and statistics read.
type Question struct {
	ID             int64      `json:"id"`
	Expression     string     `json:"expression"`
	ExpectedAnswer int64      `json:"expected_answer"`
	UserAnswer     *int64     `json:"user_answer,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
	AnsweredAt     *time.Time `json:"answered_at,omitempty"`
}

// Problem is the output of a question generator before it is stored.
type Problem struct {
	Expression string
	Answer     int64
}

// NewQuestion creates an open question from a generated problem.
// ID is left zero; the store assigns it on insert.
func NewQuestion(p Problem, now time.Time) (*Question, error) {
	q := &Question{
		Expression:     p.Expression,
		ExpectedAnswer: p.Answer,
		CreatedAt:      now.UTC(),
	}

	if err := q.Validate(); err != nil {
		return nil, err
	}

	return q, nil
}

// Validate checks if the Question has valid data.
func (q *Question) Validate() error {
	if strings.TrimSpace(q.Expression) == "" {
		return ErrEmptyExpression
	}

	if q.CreatedAt.IsZero() {
		return NewValidationError("created_at", "is required", ErrValidation)
	}

	if (q.UserAnswer == nil) != (q.AnsweredAt == nil) {
		return NewValidationError("answered_at", "must be set together with user_answer", ErrValidation)
	}

	if q.AnsweredAt != nil && q.AnsweredAt.Before(q.CreatedAt) {
		return NewValidationError("answered_at", "precedes created_at", ErrValidation)
	}

	return nil
}

// IsOpen reports whether the question is still waiting for an answer.
func (q *Question) IsOpen() bool {
	return q.UserAnswer == nil
}

// IsCorrect reports whether the recorded answer matches the expected one.
// Open questions are never correct.
func (q *Question) IsCorrect() bool {
	return q.UserAnswer != nil && *q.UserAnswer == q.ExpectedAnswer
}

// String renders the question the way front ends display it, e.g. "12 + 7 = 19".
func (q *Question) String() string {
	if q.UserAnswer == nil {
		return q.Expression + " ="
	}
	return q.Expression + " = " + formatInt(*q.UserAnswer)
}

// Mistake is an answered question whose recorded answer was wrong.
type Mistake struct {
	ID             int64     `json:"id"`
	Expression     string    `json:"expression"`
	UserAnswer     int64     `json:"user_answer"`
	ExpectedAnswer int64     `json:"expected_answer"`
	AnsweredAt     time.Time `json:"answered_at"`
}

// AnswerRecord is the minimal projection of an answered question that
// statistics need: when it was answered and whether it was right.
type AnswerRecord struct {
	AnsweredAt time.Time
	Correct    bool
}
