package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment variable read by Load,
// e.g. STUDY_SERVER_PORT or STUDY_LLM_GEMINI_API_KEY.
const EnvPrefix = "STUDY"

// Load configuration from environment variables and optionally config files.
// Environment variables take precedence over values from config files.
// A .env file in the working directory is loaded first when present; variables
// already set in the process environment are never overwritten by it.
// Returns a populated Config struct or an error if loading/validation fails.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		slog.Warn("failed to load .env file", "error", err)
	}

	v := viper.New()
	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	bindEnvironment(v)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	applyProviderDefaults(&cfg.LLM)

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.log_level", "info")
	v.SetDefault("server.cors_allowed_origins", []string{"http://localhost:3000"})

	v.SetDefault("database.driver", "sqlite")
	v.SetDefault("database.url", "file:flashcards.db")

	v.SetDefault("llm.provider", "gemini")
	v.SetDefault("llm.request_timeout_seconds", 120)

	v.SetDefault("quiz.max_questions", 50)
	v.SetDefault("quiz.token_lifetime_minutes", 60)
}

// Default models per completion provider, used when llm.model_name is unset.
const (
	DefaultGeminiModel = "gemini-2.0-flash"
	DefaultOpenAIModel = "gpt-4o"
)

func applyProviderDefaults(llm *LLMConfig) {
	if llm.ModelName != "" {
		return
	}
	switch llm.Provider {
	case "gemini":
		llm.ModelName = DefaultGeminiModel
	case "openai":
		llm.ModelName = DefaultOpenAIModel
	}
}

// bindEnvironment registers every key explicitly; AutomaticEnv alone does not
// make Unmarshal see keys that have no default or config file value.
func bindEnvironment(v *viper.Viper) {
	keys := []string{
		"server.port",
		"server.log_level",
		"server.session_secret",
		"server.cors_allowed_origins",
		"server.secure_cookies",
		"database.driver",
		"database.url",
		"llm.provider",
		"llm.gemini_api_key",
		"llm.openai_api_key",
		"llm.openai_base_url",
		"llm.model_name",
		"llm.request_timeout_seconds",
		"llm.quiz_prompt_template_path",
		"llm.flashcard_prompt_template_path",
		"quiz.max_questions",
		"quiz.token_lifetime_minutes",
	}
	for _, key := range keys {
		// BindEnv only fails when called without a key.
		_ = v.BindEnv(key)
	}
}
