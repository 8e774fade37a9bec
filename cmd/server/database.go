package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/mathquiz/mathquiz/internal/config"
	"github.com/mathquiz/mathquiz/internal/platform/migrate"
	"github.com/mathquiz/mathquiz/internal/platform/postgres"
	"github.com/mathquiz/mathquiz/internal/platform/sqlite"
	"github.com/mathquiz/mathquiz/internal/store"
)

// openDatabase connects to the configured backend. Both backends use a
// single connection so reads and writes are serialized.
func openDatabase(ctx context.Context, cfg config.DatabaseConfig, logger *slog.Logger) (*sql.DB, error) {
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	switch cfg.Driver {
	case migrate.DriverSQLite:
		db, err := sqlite.Open(pingCtx, cfg.Path)
		if err != nil {
			return nil, err
		}
		logger.Info("database connection established", slog.String("driver", cfg.Driver))
		return db, nil

	case migrate.DriverPostgres:
		db, err := sql.Open("pgx", cfg.URL)
		if err != nil {
			return nil, fmt.Errorf("failed to open database connection: %w", err)
		}
		db.SetMaxOpenConns(1)
		db.SetMaxIdleConns(1)
		db.SetConnMaxLifetime(5 * time.Minute)

		if err := db.PingContext(pingCtx); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("failed to ping database: %w", err)
		}
		logger.Info("database connection established", slog.String("driver", cfg.Driver))
		return db, nil

	default:
		return nil, fmt.Errorf("%w: %q", migrate.ErrUnknownDriver, cfg.Driver)
	}
}

// newQuestionStore returns the store implementation for driver.
func newQuestionStore(driver string, db *sql.DB, logger *slog.Logger) (store.QuestionStore, error) {
	switch driver {
	case migrate.DriverSQLite:
		return sqlite.NewQuestionStore(db, logger), nil
	case migrate.DriverPostgres:
		return postgres.NewPostgresQuestionStore(db, logger), nil
	default:
		return nil, fmt.Errorf("%w: %q", migrate.ErrUnknownDriver, driver)
	}
}
