// Package sqlite provides the single-file SQLite implementation of the
// question store, backed by mattn/go-sqlite3.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// DriverName is the database/sql driver registered by go-sqlite3.
const DriverName = "sqlite3"

// DefaultPath is used when no database file is configured.
const DefaultPath = "questions.db"

// timeLayout is fixed-width so stored timestamps compare correctly as text.
const timeLayout = "2006-01-02 15:04:05.000000000"

// connectionParams are applied by go-sqlite3 to every connection it opens,
// so a replaced connection keeps the same settings.
const connectionParams = "_busy_timeout=5000&_foreign_keys=on"

// DSN appends the connection parameters to path.
func DSN(path string) string {
	if strings.Contains(path, "?") {
		return path + "&" + connectionParams
	}
	return path + "?" + connectionParams
}

// Open opens (creating if needed) the SQLite file at path and verifies the
// connection. The pool is capped at one connection so every statement is
// serialized through the same handle.
func Open(ctx context.Context, path string) (*sql.DB, error) {
	if strings.TrimSpace(path) == "" {
		path = DefaultPath
	}

	db, err := sql.Open(DriverName, DSN(path))
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite database: %w", err)
	}

	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping sqlite database: %w", err)
	}

	return db, nil
}

func formatTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}
