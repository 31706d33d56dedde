package sqlstore

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"log/slog"
	"path"
	"sync"

	"github.com/pressly/goose/v3"
)

//go:embed migrations
var migrationsFS embed.FS

// goose keeps its dialect, filesystem and logger in package state.
var gooseMu sync.Mutex

// Migration commands accepted by Migrate.
const (
	MigrateUp      = "up"
	MigrateDown    = "down"
	MigrateStatus  = "status"
	MigrateVersion = "version"
)

// slogGooseLogger adapts the goose logger interface to slog.
type slogGooseLogger struct {
	logger *slog.Logger
}

// Printf forwards goose progress messages at info level.
func (l *slogGooseLogger) Printf(format string, v ...interface{}) {
	l.logger.Info(fmt.Sprintf(format, v...))
}

// Fatalf logs at error level and does not exit; Migrate returns the error instead.
func (l *slogGooseLogger) Fatalf(format string, v ...interface{}) {
	l.logger.Error(fmt.Sprintf(format, v...))
}

// Migrate runs a goose command against the embedded schema for dialect.
func Migrate(ctx context.Context, db *sql.DB, dialect Dialect, command string, logger *slog.Logger) error {
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With(
		slog.String("component", "migrations"),
		slog.String("command", command),
		slog.String("dialect", string(dialect)),
	)

	gooseMu.Lock()
	defer gooseMu.Unlock()

	goose.SetBaseFS(migrationsFS)
	defer goose.SetBaseFS(nil)
	goose.SetLogger(&slogGooseLogger{logger: logger})

	if err := goose.SetDialect(dialect.gooseDialect()); err != nil {
		return fmt.Errorf("failed to set dialect: %w", err)
	}

	dir := path.Join("migrations", string(dialect))

	var err error
	switch command {
	case MigrateUp:
		err = goose.UpContext(ctx, db, dir)
	case MigrateDown:
		err = goose.DownContext(ctx, db, dir)
	case MigrateStatus:
		err = goose.StatusContext(ctx, db, dir)
	case MigrateVersion:
		err = goose.VersionContext(ctx, db, dir)
	default:
		return fmt.Errorf("unknown migration command: %s (expected up, down, status, or version)", command)
	}
	if err != nil {
		logger.ErrorContext(ctx, "Migration failed", "error", err)
		return fmt.Errorf("migration %s failed: %w", command, err)
	}

	logger.InfoContext(ctx, "Migration command completed")
	return nil
}
