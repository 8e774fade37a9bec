package postgres

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"time"

	"github.com/mathquiz/mathquiz/internal/domain"
	"github.com/mathquiz/mathquiz/internal/platform/logger"
	"github.com/mathquiz/mathquiz/internal/store"
)

const questionColumns = `id, expression, expected_answer, user_answer, created_at, answered_at`

// PostgresQuestionStore implements the store.QuestionStore interface
// using a PostgreSQL database as the storage backend.
type PostgresQuestionStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresQuestionStore creates a new PostgreSQL implementation of the QuestionStore interface.
// It accepts a database connection or transaction that should be initialized and managed by the caller.
// If logger is nil, a default logger will be used.
func NewPostgresQuestionStore(db store.DBTX, logger *slog.Logger) *PostgresQuestionStore {
	if db == nil {
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresQuestionStore{
		db:     db,
		logger: logger.With(slog.String("component", "question_store")),
	}
}

// Ensure PostgresQuestionStore implements store.QuestionStore interface
var _ store.QuestionStore = (*PostgresQuestionStore)(nil)

// WithTx implements store.QuestionStore.WithTx
func (s *PostgresQuestionStore) WithTx(tx *sql.Tx) store.QuestionStore {
	return &PostgresQuestionStore{
		db:     tx,
		logger: s.logger,
	}
}

// Create implements store.QuestionStore.Create
func (s *PostgresQuestionStore) Create(ctx context.Context, q *domain.Question) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := q.Validate(); err != nil {
		log.Warn("question validation failed during create", slog.String("error", err.Error()))
		return err
	}

	query := `
		INSERT INTO questions (expression, expected_answer, user_answer, created_at, answered_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`
	err := s.db.QueryRowContext(ctx, query,
		q.Expression,
		q.ExpectedAnswer,
		nullableInt(q.UserAnswer),
		q.CreatedAt.UTC(),
		nullableTime(q.AnsweredAt),
	).Scan(&q.ID)
	if err != nil {
		log.Error("failed to create question",
			slog.String("error", err.Error()),
			slog.String("expression", q.Expression))
		return store.NewStoreError("question", "create", "failed to insert question", MapError(err))
	}

	log.Debug("question created", slog.Int64("question_id", q.ID))
	return nil
}

// GetByID implements store.QuestionStore.GetByID
func (s *PostgresQuestionStore) GetByID(ctx context.Context, id int64) (*domain.Question, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `SELECT ` + questionColumns + ` FROM questions WHERE id = $1`
	q, err := scanQuestion(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("question not found", slog.Int64("question_id", id))
			return nil, store.ErrQuestionNotFound
		}
		log.Error("failed to get question by ID",
			slog.String("error", err.Error()),
			slog.Int64("question_id", id))
		return nil, store.NewStoreError("question", "get", "failed to read question", MapError(err))
	}

	return q, nil
}

// GetRandomOpen implements store.QuestionStore.GetRandomOpen
func (s *PostgresQuestionStore) GetRandomOpen(ctx context.Context) (*domain.Question, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT ` + questionColumns + `
		FROM questions
		WHERE user_answer IS NULL
		ORDER BY random()
		LIMIT 1
	`
	q, err := scanQuestion(s.db.QueryRowContext(ctx, query))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrNoOpenQuestion
		}
		log.Error("failed to pick open question", slog.String("error", err.Error()))
		return nil, store.NewStoreError("question", "get", "failed to pick open question", MapError(err))
	}

	log.Debug("reusing open question", slog.Int64("question_id", q.ID))
	return q, nil
}

// RecordAnswer implements store.QuestionStore.RecordAnswer
// The row is locked with SELECT ... FOR UPDATE, so callers should run it
// inside a transaction.
func (s *PostgresQuestionStore) RecordAnswer(
	ctx context.Context,
	id int64,
	answer int64,
	at time.Time,
) (bool, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `SELECT ` + questionColumns + ` FROM questions WHERE id = $1 FOR UPDATE`
	q, err := scanQuestion(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("question not found for answer", slog.Int64("question_id", id))
			return false, store.ErrQuestionNotFound
		}
		log.Error("failed to lock question",
			slog.String("error", err.Error()),
			slog.Int64("question_id", id))
		return false, store.NewStoreError("question", "answer", "failed to read question", MapError(err))
	}

	if !q.IsOpen() {
		log.Debug("question already answered", slog.Int64("question_id", id))
		return false, store.ErrAlreadyAnswered
	}

	answeredAt := at.UTC()
	if answeredAt.Before(q.CreatedAt) {
		answeredAt = q.CreatedAt
	}

	result, err := s.db.ExecContext(ctx, `
		UPDATE questions
		SET user_answer = $1, answered_at = $2
		WHERE id = $3 AND user_answer IS NULL
	`, answer, answeredAt, id)
	if err != nil {
		log.Error("failed to record answer",
			slog.String("error", err.Error()),
			slog.Int64("question_id", id))
		return false, store.NewStoreError("question", "answer", "failed to update question", MapError(err))
	}
	if err := CheckRowsAffected(result, "question"); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			// Lost a race with another writer that answered first.
			return false, store.ErrAlreadyAnswered
		}
		return false, store.NewStoreError("question", "answer", "failed to update question", err)
	}

	correct := answer == q.ExpectedAnswer
	log.Debug("answer recorded",
		slog.Int64("question_id", id),
		slog.Bool("correct", correct))
	return correct, nil
}

// ListMistakes implements store.QuestionStore.ListMistakes
func (s *PostgresQuestionStore) ListMistakes(ctx context.Context) ([]domain.Mistake, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, expression, user_answer, expected_answer, answered_at
		FROM questions
		WHERE user_answer IS NOT NULL AND user_answer <> expected_answer
		ORDER BY answered_at DESC, id DESC
	`)
	if err != nil {
		log.Error("failed to list mistakes", slog.String("error", err.Error()))
		return nil, store.NewStoreError("question", "list", "failed to list mistakes", MapError(err))
	}
	defer func() { _ = rows.Close() }()

	mistakes := []domain.Mistake{}
	for rows.Next() {
		var m domain.Mistake
		if err := rows.Scan(&m.ID, &m.Expression, &m.UserAnswer, &m.ExpectedAnswer, &m.AnsweredAt); err != nil {
			return nil, store.NewStoreError("question", "list", "failed to scan mistake", MapError(err))
		}
		mistakes = append(mistakes, m)
	}
	if err := rows.Err(); err != nil {
		return nil, store.NewStoreError("question", "list", "failed to iterate mistakes", MapError(err))
	}

	return mistakes, nil
}

// CountAnswered implements store.QuestionStore.CountAnswered
func (s *PostgresQuestionStore) CountAnswered(ctx context.Context, start, end time.Time) (domain.Statistic, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	var stat domain.Statistic
	err := s.db.QueryRowContext(ctx, `
		SELECT
			COUNT(*) FILTER (WHERE user_answer = expected_answer),
			COUNT(*)
		FROM questions
		WHERE answered_at BETWEEN $1 AND $2
	`, start.UTC(), end.UTC()).Scan(&stat.Correct, &stat.Total)
	if err != nil {
		log.Error("failed to count answered questions",
			slog.String("error", err.Error()),
			slog.Time("start", start),
			slog.Time("end", end))
		return domain.Statistic{}, store.NewStoreError("question", "count", "failed to count answers", MapError(err))
	}

	return stat, nil
}

// ListAnsweredBetween implements store.QuestionStore.ListAnsweredBetween
func (s *PostgresQuestionStore) ListAnsweredBetween(
	ctx context.Context,
	start, end time.Time,
) ([]domain.AnswerRecord, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	rows, err := s.db.QueryContext(ctx, `
		SELECT answered_at, user_answer = expected_answer
		FROM questions
		WHERE answered_at BETWEEN $1 AND $2
		ORDER BY answered_at, id
	`, start.UTC(), end.UTC())
	if err != nil {
		log.Error("failed to list answers", slog.String("error", err.Error()))
		return nil, store.NewStoreError("question", "list", "failed to list answers", MapError(err))
	}
	defer func() { _ = rows.Close() }()

	var records []domain.AnswerRecord
	for rows.Next() {
		var r domain.AnswerRecord
		if err := rows.Scan(&r.AnsweredAt, &r.Correct); err != nil {
			return nil, store.NewStoreError("question", "list", "failed to scan answer", MapError(err))
		}
		records = append(records, r)
	}
	if err := rows.Err(); err != nil {
		return nil, store.NewStoreError("question", "list", "failed to iterate answers", MapError(err))
	}

	return records, nil
}

// CountOpen implements store.QuestionStore.CountOpen
func (s *PostgresQuestionStore) CountOpen(ctx context.Context) (int64, error) {
	var n int64
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM questions WHERE user_answer IS NULL`).Scan(&n)
	if err != nil {
		return 0, store.NewStoreError("question", "count", "failed to count open questions", MapError(err))
	}
	return n, nil
}

func scanQuestion(row *sql.Row) (*domain.Question, error) {
	var (
		q          domain.Question
		userAnswer sql.NullInt64
		answeredAt sql.NullTime
	)
	if err := row.Scan(&q.ID, &q.Expression, &q.ExpectedAnswer, &userAnswer, &q.CreatedAt, &answeredAt); err != nil {
		return nil, err
	}
	q.CreatedAt = q.CreatedAt.UTC()
	if userAnswer.Valid {
		q.UserAnswer = &userAnswer.Int64
	}
	if answeredAt.Valid {
		t := answeredAt.Time.UTC()
		q.AnsweredAt = &t
	}
	return &q, nil
}

func nullableInt(v *int64) sql.NullInt64 {
	if v == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: *v, Valid: true}
}

func nullableTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: t.UTC(), Valid: true}
}
