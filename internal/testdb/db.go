package testdb

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"testing"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/mathquiz/mathquiz/internal/platform/migrate"
	"github.com/mathquiz/mathquiz/internal/platform/sqlite"
	"github.com/stretchr/testify/require"
)

// DatabaseURLEnv names the variable holding the PostgreSQL test database URL.
const DatabaseURLEnv = "DATABASE_URL"

// OpenSQLite returns a migrated SQLite database in a fresh temporary
// directory. It is closed when the test completes.
func OpenSQLite(t *testing.T) *sql.DB {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	db, err := sqlite.Open(ctx, filepath.Join(t.TempDir(), "questions.db"))
	require.NoError(t, err, "failed to open sqlite test database")
	t.Cleanup(func() { _ = db.Close() })

	require.NoError(t, migrate.Run(ctx, db, migrate.DriverSQLite, migrate.CommandUp),
		"failed to migrate sqlite test database")
	return db
}

// ShouldSkipDatabaseTest reports whether PostgreSQL tests lack a database.
func ShouldSkipDatabaseTest() bool {
	return os.Getenv(DatabaseURLEnv) == ""
}

// OpenPostgres returns a migrated PostgreSQL connection, skipping the test
// when DATABASE_URL is not set.
func OpenPostgres(t *testing.T) *sql.DB {
	t.Helper()

	if ShouldSkipDatabaseTest() {
		t.Skip(DatabaseURLEnv + " not set - skipping PostgreSQL test")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	db, err := sql.Open("pgx", os.Getenv(DatabaseURLEnv))
	require.NoError(t, err, "failed to open postgres test database")
	t.Cleanup(func() { _ = db.Close() })

	require.NoError(t, db.PingContext(ctx), "failed to ping postgres test database")
	require.NoError(t, migrate.Run(ctx, db, migrate.DriverPostgres, migrate.CommandUp),
		"failed to migrate postgres test database")
	return db
}

// WithTx runs fn inside a transaction that is always rolled back, so tests
// leave no rows behind.
func WithTx(t *testing.T, db *sql.DB, fn func(t *testing.T, tx *sql.Tx)) {
	t.Helper()

	tx, err := db.BeginTx(context.Background(), nil)
	require.NoError(t, err, "failed to begin test transaction")
	defer func() {
		if err := tx.Rollback(); err != nil && err != sql.ErrTxDone {
			t.Errorf("failed to roll back test transaction: %v", err)
		}
	}()

	fn(t, tx)
}
