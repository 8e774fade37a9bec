package postgres

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/mathquiz/mathquiz/internal/domain"
	"github.com/mathquiz/mathquiz/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var created = time.Date(2024, 1, 10, 12, 0, 0, 0, time.UTC)

func newMockStore(t *testing.T) (*PostgresQuestionStore, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return NewPostgresQuestionStore(db, nil), mock
}

func questionRow(id int64, userAnswer any, answeredAt any) *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "expression", "expected_answer", "user_answer", "created_at", "answered_at"}).
		AddRow(id, "12 + 7", int64(19), userAnswer, created, answeredAt)
}

func TestRecordAnswerLocksAndUpdates(t *testing.T) {
	s, mock := newMockStore(t)
	at := created.Add(time.Minute)

	mock.ExpectQuery(regexp.QuoteMeta("FROM questions WHERE id = $1 FOR UPDATE")).
		WithArgs(int64(7)).
		WillReturnRows(questionRow(7, nil, nil))
	mock.ExpectExec(regexp.QuoteMeta("UPDATE questions")).
		WithArgs(int64(19), at, int64(7)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	correct, err := s.RecordAnswer(context.Background(), 7, 19, at)
	require.NoError(t, err)
	assert.True(t, correct)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRecordAnswerClampsToCreation(t *testing.T) {
	s, mock := newMockStore(t)

	mock.ExpectQuery("FOR UPDATE").WillReturnRows(questionRow(7, nil, nil))
	mock.ExpectExec("UPDATE questions").
		WithArgs(int64(3), created, int64(7)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	correct, err := s.RecordAnswer(context.Background(), 7, 3, created.Add(-time.Hour))
	require.NoError(t, err)
	assert.False(t, correct)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRecordAnswerAlreadyAnswered(t *testing.T) {
	s, mock := newMockStore(t)

	mock.ExpectQuery("FOR UPDATE").WillReturnRows(questionRow(7, int64(19), created.Add(time.Second)))

	_, err := s.RecordAnswer(context.Background(), 7, 19, created.Add(time.Hour))
	assert.ErrorIs(t, err, store.ErrAlreadyAnswered)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRecordAnswerLostRace(t *testing.T) {
	s, mock := newMockStore(t)

	mock.ExpectQuery("FOR UPDATE").WillReturnRows(questionRow(7, nil, nil))
	mock.ExpectExec("UPDATE questions").WillReturnResult(sqlmock.NewResult(0, 0))

	_, err := s.RecordAnswer(context.Background(), 7, 19, created.Add(time.Minute))
	assert.ErrorIs(t, err, store.ErrAlreadyAnswered)
}

func TestRecordAnswerNotFound(t *testing.T) {
	s, mock := newMockStore(t)

	mock.ExpectQuery("FOR UPDATE").WillReturnError(sql.ErrNoRows)

	_, err := s.RecordAnswer(context.Background(), 99, 1, created)
	assert.ErrorIs(t, err, store.ErrQuestionNotFound)
}

func TestStoreErrorsDoNotLeakAsNotFound(t *testing.T) {
	s, mock := newMockStore(t)
	dbErr := errors.New("connection reset by peer")

	mock.ExpectQuery("SELECT").WillReturnError(dbErr)

	_, err := s.GetByID(context.Background(), 1)
	require.Error(t, err)
	assert.False(t, store.IsNotFoundError(err))
	assert.ErrorIs(t, err, dbErr)

	var storeErr *store.StoreError
	require.True(t, errors.As(err, &storeErr))
	assert.Equal(t, "get", storeErr.Operation)
}

func TestCreateReturnsID(t *testing.T) {
	s, mock := newMockStore(t)

	q, err := domain.NewQuestion(domain.Problem{Expression: "40 ÷ 8", Answer: 5}, created)
	require.NoError(t, err)

	mock.ExpectQuery(regexp.QuoteMeta("RETURNING id")).
		WithArgs("40 ÷ 8", int64(5), nil, created, nil).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(42)))

	require.NoError(t, s.Create(context.Background(), q))
	assert.Equal(t, int64(42), q.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCountAnsweredScansBothColumns(t *testing.T) {
	s, mock := newMockStore(t)

	mock.ExpectQuery(regexp.QuoteMeta("WHERE answered_at BETWEEN $1 AND $2")).
		WillReturnRows(sqlmock.NewRows([]string{"correct", "total"}).AddRow(int64(3), int64(5)))

	stat, err := s.CountAnswered(context.Background(), created, created.Add(time.Hour))
	require.NoError(t, err)
	assert.Equal(t, domain.Statistic{Correct: 3, Total: 5}, stat)
}
