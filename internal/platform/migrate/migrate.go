// Package migrate applies the embedded goose migrations for either storage
// backend. It is shared by the server's -migrate flag, start-up, and tests.
package migrate

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/mathquiz/mathquiz/internal/platform/postgres"
	"github.com/mathquiz/mathquiz/internal/platform/sqlite"
	"github.com/pressly/goose/v3"
)

// Supported database drivers, matching config.DatabaseConfig.Driver.
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// Supported commands.
const (
	CommandUp      = "up"
	CommandDown    = "down"
	CommandReset   = "reset"
	CommandStatus  = "status"
	CommandVersion = "version"
)

// ErrUnknownCommand is returned for a command outside the supported set.
var ErrUnknownCommand = errors.New("unknown migration command")

// ErrUnknownDriver is returned for a driver with no embedded migrations.
var ErrUnknownDriver = errors.New("unknown database driver")

// slogGooseLogger adapts the goose logger interface to slog.
type slogGooseLogger struct {
	log *slog.Logger
}

// Printf implements goose.Logger.
func (l *slogGooseLogger) Printf(format string, v ...interface{}) {
	l.log.Info(fmt.Sprintf(format, v...))
}

// Fatalf implements goose.Logger without exiting; errors are returned to the caller.
func (l *slogGooseLogger) Fatalf(format string, v ...interface{}) {
	l.log.Error(fmt.Sprintf(format, v...))
}

// NewProvider builds a goose provider for driver over its embedded migrations.
func NewProvider(db *sql.DB, driver string, log *slog.Logger) (*goose.Provider, error) {
	var (
		dialect goose.Dialect
		fsys    fs.FS
		err     error
	)
	switch driver {
	case DriverSQLite:
		dialect = goose.DialectSQLite3
		fsys, err = fs.Sub(sqlite.Migrations, sqlite.MigrationsDir)
	case DriverPostgres:
		dialect = goose.DialectPostgres
		fsys, err = fs.Sub(postgres.Migrations, postgres.MigrationsDir)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownDriver, driver)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to open embedded migrations: %w", err)
	}

	if log == nil {
		log = slog.Default()
	}

	return goose.NewProvider(dialect, db, fsys,
		goose.WithLogger(&slogGooseLogger{log: log}),
		goose.WithDisableGlobalRegistry(true),
	)
}

// Run executes command against db. Every log line carries a correlation id
// so one migration run can be traced end to end.
func Run(ctx context.Context, db *sql.DB, driver, command string) error {
	log := slog.Default().With(
		"correlation_id", uuid.NewString(),
		"component", "migrations",
		"command", command,
		"driver", driver,
	)

	provider, err := NewProvider(db, driver, log)
	if err != nil {
		return err
	}

	start := time.Now()
	log.Info("starting migration operation")

	switch command {
	case CommandUp:
		var results []*goose.MigrationResult
		results, err = provider.Up(ctx)
		logResults(log, results)
	case CommandDown:
		var result *goose.MigrationResult
		result, err = provider.Down(ctx)
		if result != nil {
			logResults(log, []*goose.MigrationResult{result})
		}
	case CommandReset:
		var results []*goose.MigrationResult
		results, err = provider.DownTo(ctx, 0)
		logResults(log, results)
	case CommandStatus:
		var statuses []*goose.MigrationStatus
		statuses, err = provider.Status(ctx)
		for _, s := range statuses {
			log.Info("migration status",
				"version", s.Source.Version,
				"path", s.Source.Path,
				"state", string(s.State),
				"applied_at", s.AppliedAt)
		}
	case CommandVersion:
		var version int64
		version, err = provider.GetDBVersion(ctx)
		if err == nil {
			log.Info("current database migration version", "version", version)
		}
	default:
		return fmt.Errorf("%w: %s (expected up, down, reset, status, or version)", ErrUnknownCommand, command)
	}

	if err != nil {
		log.Error("migration command failed",
			"error", err,
			"duration_ms", time.Since(start).Milliseconds())
		return fmt.Errorf("migration command '%s' failed: %w", command, err)
	}

	log.Info("migration command executed successfully",
		"duration_ms", time.Since(start).Milliseconds())
	return nil
}

// Version returns the current schema version of db.
func Version(ctx context.Context, db *sql.DB, driver string) (int64, error) {
	provider, err := NewProvider(db, driver, nil)
	if err != nil {
		return 0, err
	}
	return provider.GetDBVersion(ctx)
}

func logResults(log *slog.Logger, results []*goose.MigrationResult) {
	if len(results) == 0 {
		log.Info("no migrations to apply")
		return
	}
	for _, r := range results {
		log.Info("migration applied",
			"version", r.Source.Version,
			"direction", r.Direction,
			"duration_ms", r.Duration.Milliseconds())
	}
}
