package sqlite_test

import (
	"context"
	"database/sql/driver"
	"path/filepath"
	"testing"

	"github.com/mathquiz/mathquiz/internal/platform/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDSN(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "questions.db?_busy_timeout=5000&_foreign_keys=on", sqlite.DSN("questions.db"))
	assert.Equal(t, "file:q.db?mode=rwc&_busy_timeout=5000&_foreign_keys=on", sqlite.DSN("file:q.db?mode=rwc"))
}

func TestOpenConfiguresReplacedConnections(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	db, err := sqlite.Open(ctx, filepath.Join(t.TempDir(), "pragmas.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	// Discard the pooled connection so the next query dials a fresh one.
	conn, err := db.Conn(ctx)
	require.NoError(t, err)
	_ = conn.Raw(func(any) error { return driver.ErrBadConn })
	_ = conn.Close()

	var foreignKeys int
	require.NoError(t, db.QueryRowContext(ctx, `PRAGMA foreign_keys`).Scan(&foreignKeys))
	assert.Equal(t, 1, foreignKeys)

	var busyTimeout int
	require.NoError(t, db.QueryRowContext(ctx, `PRAGMA busy_timeout`).Scan(&busyTimeout))
	assert.Equal(t, 5000, busyTimeout)
}
