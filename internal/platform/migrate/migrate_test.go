package migrate_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/mathquiz/mathquiz/internal/platform/migrate"
	"github.com/mathquiz/mathquiz/internal/platform/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunLifecycle(t *testing.T) {
	ctx := context.Background()
	db, err := sqlite.Open(ctx, filepath.Join(t.TempDir(), "migrate.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	require.NoError(t, migrate.Run(ctx, db, migrate.DriverSQLite, migrate.CommandUp))
	version, err := migrate.Version(ctx, db, migrate.DriverSQLite)
	require.NoError(t, err)
	assert.Equal(t, int64(1), version)

	// Up is idempotent.
	require.NoError(t, migrate.Run(ctx, db, migrate.DriverSQLite, migrate.CommandUp))
	require.NoError(t, migrate.Run(ctx, db, migrate.DriverSQLite, migrate.CommandStatus))
	require.NoError(t, migrate.Run(ctx, db, migrate.DriverSQLite, migrate.CommandVersion))

	require.NoError(t, migrate.Run(ctx, db, migrate.DriverSQLite, migrate.CommandReset))
	version, err = migrate.Version(ctx, db, migrate.DriverSQLite)
	require.NoError(t, err)
	assert.Equal(t, int64(0), version)

	_, err = db.Exec(`SELECT 1 FROM questions`)
	assert.Error(t, err, "questions table should be gone after reset")

	require.NoError(t, migrate.Run(ctx, db, migrate.DriverSQLite, migrate.CommandUp))
	require.NoError(t, migrate.Run(ctx, db, migrate.DriverSQLite, migrate.CommandDown))
	version, err = migrate.Version(ctx, db, migrate.DriverSQLite)
	require.NoError(t, err)
	assert.Equal(t, int64(0), version)
}

func TestRunRejectsUnknownInput(t *testing.T) {
	ctx := context.Background()
	db, err := sqlite.Open(ctx, filepath.Join(t.TempDir(), "migrate.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	err = migrate.Run(ctx, db, migrate.DriverSQLite, "sideways")
	assert.ErrorIs(t, err, migrate.ErrUnknownCommand)

	err = migrate.Run(ctx, db, "mysql", migrate.CommandUp)
	assert.ErrorIs(t, err, migrate.ErrUnknownDriver)
}
