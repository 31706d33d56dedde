package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/phrazzld/scry-study/internal/completion"
	"github.com/phrazzld/scry-study/internal/config"
	"github.com/phrazzld/scry-study/internal/generation"
	"github.com/phrazzld/scry-study/internal/platform/gemini"
	"github.com/phrazzld/scry-study/internal/platform/openai"
	"github.com/phrazzld/scry-study/internal/platform/sqlstore"
	"github.com/phrazzld/scry-study/internal/service"
	"github.com/phrazzld/scry-study/internal/session"
)

// application holds the shared dependencies of the server so they can be
// wired once and released on shutdown.
type application struct {
	config *config.Config
	logger *slog.Logger
	db     *sql.DB

	studyService service.StudyService
	tokens       *session.TokenService
	cookies      *session.CookieManager
}

// newApplication wires the generators, stores and services on top of an
// open, migrated database and a completion backend.
func newApplication(
	cfg *config.Config,
	logger *slog.Logger,
	db *sql.DB,
	dialect sqlstore.Dialect,
	completer completion.Completer,
) (*application, error) {
	quizzes, err := generation.NewQuizGenerator(completer, logger, cfg.LLM.QuizPromptTemplatePath)
	if err != nil {
		return nil, fmt.Errorf("failed to create quiz generator: %w", err)
	}

	cards, err := generation.NewFlashcardGenerator(completer, logger, cfg.LLM.FlashcardPromptTemplatePath)
	if err != nil {
		return nil, fmt.Errorf("failed to create flashcard generator: %w", err)
	}

	// A pending quiz is useless once its token has expired.
	tokenLifetime := time.Duration(cfg.Quiz.TokenLifetimeMinutes) * time.Minute

	studyService, err := service.NewStudyService(
		quizzes,
		cards,
		sqlstore.NewDeckStore(db, dialect, logger),
		session.NewMemoryQuizStore(logger, tokenLifetime),
		cfg.Quiz.MaxQuestions,
		logger,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create study service: %w", err)
	}

	tokens, err := session.NewTokenService(cfg.Server.SessionSecret, tokenLifetime)
	if err != nil {
		return nil, fmt.Errorf("failed to create quiz token service: %w", err)
	}

	return &application{
		config:       cfg,
		logger:       logger,
		db:           db,
		studyService: studyService,
		tokens:       tokens,
		cookies:      session.NewCookieManager(cfg.Server.SessionSecret, cfg.Server.SecureCookies),
	}, nil
}

// newCompleter selects the completion backend named by cfg.Provider.
func newCompleter(ctx context.Context, cfg config.LLMConfig, logger *slog.Logger) (completion.Completer, error) {
	switch cfg.Provider {
	case "gemini":
		c, err := gemini.NewCompleter(ctx, logger, cfg)
		if err != nil {
			return nil, fmt.Errorf("failed to create gemini completer: %w", err)
		}
		return c, nil
	case "openai":
		c, err := openai.NewCompleter(logger, cfg, nil)
		if err != nil {
			return nil, fmt.Errorf("failed to create openai completer: %w", err)
		}
		return c, nil
	default:
		return nil, fmt.Errorf("%w: unknown completion provider %q", completion.ErrInvalidConfig, cfg.Provider)
	}
}

// cleanup releases resources held by the application.
func (app *application) cleanup() {
	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Error("Failed to close database connection", "error", err)
			return
		}
		app.logger.Info("Database connection closed")
	}
}
