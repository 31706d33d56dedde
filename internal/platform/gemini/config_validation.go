package gemini

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/phrazzld/scry-study/internal/completion"
	"github.com/phrazzld/scry-study/internal/config"
)

// validateConfig checks the settings the Gemini client cannot work without.
func validateConfig(ctx context.Context, logger *slog.Logger, cfg config.LLMConfig) error {
	if cfg.GeminiAPIKey == "" {
		logger.ErrorContext(ctx, "Missing Gemini API key",
			"error", "GeminiAPIKey is empty")
		return fmt.Errorf("%w: gemini API key cannot be empty", completion.ErrInvalidConfig)
	}

	if cfg.ModelName == "" {
		logger.ErrorContext(ctx, "Missing model name",
			"error", "ModelName is empty")
		return fmt.Errorf("%w: model name cannot be empty", completion.ErrInvalidConfig)
	}

	if cfg.RequestTimeoutSeconds < 0 {
		logger.WarnContext(ctx, "Negative request timeout",
			"value", cfg.RequestTimeoutSeconds,
			"action", "requests will not be bounded")
	}

	return nil
}
