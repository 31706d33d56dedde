// Package main runs the study server: the HTML quiz and flashcard pages,
// the JSON API and the database migrations.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"

	"github.com/phrazzld/scry-study/internal/config"
	"github.com/phrazzld/scry-study/internal/platform/logger"
	"github.com/phrazzld/scry-study/internal/platform/sqlstore"
)

func main() {
	migrateCmd := flag.String("migrate", "", "run a migration command (up, down, status, version) and exit")
	flag.Parse()

	if err := run(context.Background(), *migrateCmd); err != nil {
		log.Fatalf("study server: %v", err)
	}
}

func run(ctx context.Context, migrateCmd string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	appLogger, err := logger.Setup(cfg.Server)
	if err != nil {
		return fmt.Errorf("failed to set up logger: %w", err)
	}

	appLogger.Info("Server configuration loaded",
		slog.Int("port", cfg.Server.Port),
		slog.String("log_level", cfg.Server.LogLevel),
		slog.String("database_driver", cfg.Database.Driver),
		slog.String("llm_provider", cfg.LLM.Provider),
		slog.String("llm_model", cfg.LLM.ModelName))

	dialect, err := sqlstore.ParseDialect(cfg.Database.Driver)
	if err != nil {
		return err
	}

	db, err := sqlstore.Open(ctx, dialect, cfg.Database.URL, appLogger)
	if err != nil {
		return err
	}

	if migrateCmd != "" {
		defer func() { _ = db.Close() }()
		return sqlstore.Migrate(ctx, db, dialect, migrateCmd, appLogger)
	}

	if err := sqlstore.Migrate(ctx, db, dialect, sqlstore.MigrateUp, appLogger); err != nil {
		_ = db.Close()
		return err
	}

	completer, err := newCompleter(ctx, cfg.LLM, appLogger)
	if err != nil {
		_ = db.Close()
		return err
	}

	app, err := newApplication(cfg, appLogger, db, dialect, completer)
	if err != nil {
		_ = db.Close()
		return err
	}

	router, err := app.setupRouter()
	if err != nil {
		app.cleanup()
		return fmt.Errorf("failed to set up router: %w", err)
	}

	return app.startHTTPServer(ctx, router)
}
