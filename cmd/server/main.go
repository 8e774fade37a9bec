// Package main implements the entry point for the mathquiz server, which
// serves arithmetic practice questions and per-day accuracy statistics.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	_ "time/tzdata"

	"github.com/mathquiz/mathquiz/internal/config"
	"github.com/mathquiz/mathquiz/internal/platform/logger"
	"github.com/mathquiz/mathquiz/internal/platform/migrate"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stderr); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(0)
		}
		log.Fatalf("mathquiz: %v", err)
	}
}

// options are the command line flags.
type options struct {
	configPath string
	migrate    string
}

func parseFlags(args []string, stderr io.Writer) (options, error) {
	var opts options

	fs := flag.NewFlagSet("mathquiz", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&opts.configPath, "config", "", "path to a YAML config file (default: ./config.yaml if present)")
	fs.StringVar(&opts.migrate, "migrate", "",
		"run a migration command (up, down, reset, status, version) and exit")

	if err := fs.Parse(args); err != nil {
		return options{}, err
	}
	if fs.NArg() > 0 {
		return options{}, fmt.Errorf("unexpected arguments: %v", fs.Args())
	}
	return opts, nil
}

// run loads configuration, sets up logging and the database, then either
// executes a migration command or serves HTTP until ctx is cancelled.
func run(ctx context.Context, args []string, stderr io.Writer) error {
	opts, err := parseFlags(args, stderr)
	if err != nil {
		return err
	}

	cfg, err := config.LoadFile(opts.configPath)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	appLogger, err := logger.Setup(cfg.Server)
	if err != nil {
		return fmt.Errorf("failed to set up logger: %w", err)
	}

	appLogger.Info("server configuration loaded",
		slog.Int("port", cfg.Server.Port),
		slog.String("log_level", cfg.Server.LogLevel),
		slog.String("database_driver", cfg.Database.Driver),
		slog.String("quiz_tier", cfg.Quiz.Tier),
		slog.String("default_timezone", cfg.Stats.DefaultTimezone))

	db, err := openDatabase(ctx, cfg.Database, appLogger)
	if err != nil {
		return err
	}

	if opts.migrate != "" {
		defer func() { _ = db.Close() }()
		return migrate.Run(ctx, db, cfg.Database.Driver, opts.migrate)
	}

	if err := migrate.Run(ctx, db, cfg.Database.Driver, migrate.CommandUp); err != nil {
		_ = db.Close()
		return err
	}

	app, err := newApplication(cfg, appLogger, db)
	if err != nil {
		_ = db.Close()
		return fmt.Errorf("failed to initialize application: %w", err)
	}

	return app.Run(ctx)
}
