package postgres

import (
	"database/sql"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/mathquiz/mathquiz/internal/store"
	"github.com/stretchr/testify/assert"
)

func TestMapError(t *testing.T) {
	generic := errors.New("boom")

	testCases := []struct {
		name   string
		err    error
		target error
	}{
		{"no rows", sql.ErrNoRows, store.ErrNotFound},
		{"check violation", &pgconn.PgError{Code: checkViolationCode, ConstraintName: "questions_answer_pair"}, store.ErrInvalidEntity},
		{"not null violation", &pgconn.PgError{Code: notNullViolationCode, ColumnName: "expression"}, store.ErrInvalidEntity},
		{"generic error passes through", generic, generic},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			mapped := MapError(tc.err)
			assert.ErrorIs(t, mapped, tc.target)
		})
	}

	assert.NoError(t, MapError(nil))
	assert.True(t, IsCheckConstraintViolation(&pgconn.PgError{Code: checkViolationCode}))
	assert.False(t, IsCheckConstraintViolation(generic))
	assert.Contains(t, MapError(&pgconn.PgError{Code: undefinedTableCode}).Error(), "schema not migrated")
}

func TestCheckRowsAffected(t *testing.T) {
	assert.NoError(t, CheckRowsAffected(sqlmock.NewResult(0, 1), "question"))

	err := CheckRowsAffected(sqlmock.NewResult(0, 0), "question")
	assert.ErrorIs(t, err, store.ErrNotFound)
	assert.True(t, IsNotFoundError(err))

	err = CheckRowsAffected(sqlmock.NewErrorResult(errors.New("driver")), "question")
	assert.Error(t, err)
	assert.False(t, IsNotFoundError(err))

	assert.Error(t, CheckRowsAffected(nil, "question"))
}
