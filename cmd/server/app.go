package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/mathquiz/mathquiz/internal/config"
	"github.com/mathquiz/mathquiz/internal/domain/arith"
	"github.com/mathquiz/mathquiz/internal/service/quiz"
	"github.com/mathquiz/mathquiz/internal/service/stats"
	"github.com/mathquiz/mathquiz/internal/store"
)

// application holds all the shared application dependencies to simplify management
// and ensure proper cleanup on shutdown.
type application struct {
	config *config.Config
	logger *slog.Logger
	db     *sql.DB

	questions store.QuestionStore
	quiz      quiz.Service
	stats     *stats.Service
}

// newApplication wires stores and services on top of an open, migrated database.
func newApplication(cfg *config.Config, logger *slog.Logger, db *sql.DB) (*application, error) {
	app := &application{
		config: cfg,
		logger: logger,
		db:     db,
	}

	var err error
	app.questions, err = newQuestionStore(cfg.Database.Driver, db, logger)
	if err != nil {
		return nil, err
	}

	params, err := arith.ParamsForTier(cfg.Quiz.Tier)
	if err != nil {
		return nil, err
	}
	params.MaxAttempts = cfg.Quiz.MaxAttempts

	generator, err := arith.NewGenerator(params, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create question generator: %w", err)
	}

	app.quiz = quiz.NewQuizService(app.questions, db, generator, quiz.Options{
		LookbackDays: cfg.Stats.LookbackDays,
	}, logger)

	app.stats, err = stats.NewService(app.quiz, stats.Config{
		DefaultTimezone: cfg.Stats.DefaultTimezone,
		MaxWindowDays:   cfg.Stats.MaxWindowDays,
	}, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create statistics service: %w", err)
	}

	logger.Info("application initialized",
		slog.String("tier", cfg.Quiz.Tier),
		slog.Int("max_window_days", cfg.Stats.MaxWindowDays))
	return app, nil
}

// Run serves HTTP until ctx is cancelled, then shuts down and releases resources.
func (app *application) Run(ctx context.Context) error {
	router := app.setupRouter()

	if err := app.startHTTPServer(ctx, router); err != nil {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}

// cleanup handles graceful shutdown of application resources.
func (app *application) cleanup() {
	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Error("error closing database connection", "error", err)
		}
	}
	app.logger.Info("application shutdown completed")
}
