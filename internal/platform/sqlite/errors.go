package sqlite

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/mathquiz/mathquiz/internal/store"
	"github.com/mattn/go-sqlite3"
)

// MapError maps a go-sqlite3 error to an appropriate store error, keeping the
// original in the chain.
func MapError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%w: %v", store.ErrNotFound, err)
	}

	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) {
		switch sqliteErr.ExtendedCode {
		case sqlite3.ErrConstraintCheck, sqlite3.ErrConstraintNotNull:
			return fmt.Errorf("%w: constraint violation: %v", store.ErrInvalidEntity, err)
		}
	}

	if IsBusy(err) {
		return fmt.Errorf("database busy: %w", err)
	}

	return err
}

// IsBusy reports whether err is a SQLite busy or locked error.
func IsBusy(err error) bool {
	var sqliteErr sqlite3.Error
	return errors.As(err, &sqliteErr) &&
		(sqliteErr.Code == sqlite3.ErrBusy || sqliteErr.Code == sqlite3.ErrLocked)
}
