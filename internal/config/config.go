package config

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server   ServerConfig   `mapstructure:"server" validate:"required"`
	Database DatabaseConfig `mapstructure:"database" validate:"required"`
	LLM      LLMConfig      `mapstructure:"llm" validate:"required"`
	Quiz     QuizConfig     `mapstructure:"quiz" validate:"required"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port     int    `mapstructure:"port" validate:"required,gt=0,lt=65536"`
	LogLevel string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
	// SessionSecret signs the browser session cookie and the API quiz tokens.
	SessionSecret      string   `mapstructure:"session_secret" validate:"required,min=32"`
	CORSAllowedOrigins []string `mapstructure:"cors_allowed_origins"`
	// SecureCookies marks the session cookie Secure; enable behind TLS.
	SecureCookies bool `mapstructure:"secure_cookies"`
}

// DatabaseConfig contains all database-related configuration settings.
type DatabaseConfig struct {
	Driver string `mapstructure:"driver" validate:"required,oneof=sqlite postgres"`
	URL    string `mapstructure:"url" validate:"required"`
}

// LLMConfig contains all LLM integration related settings.
type LLMConfig struct {
	Provider     string `mapstructure:"provider" validate:"required,oneof=gemini openai"`
	GeminiAPIKey string `mapstructure:"gemini_api_key" validate:"required_if=Provider gemini"`
	OpenAIAPIKey string `mapstructure:"openai_api_key" validate:"required_if=Provider openai"`
	// OpenAIBaseURL points the OpenAI client at any compatible endpoint.
	OpenAIBaseURL string `mapstructure:"openai_base_url" validate:"omitempty,url"`
	ModelName     string `mapstructure:"model_name" validate:"required"`
	// RequestTimeoutSeconds bounds a single completion round trip. Zero waits forever.
	RequestTimeoutSeconds int `mapstructure:"request_timeout_seconds" validate:"gte=0"`

	// Optional overrides for the embedded prompt templates.
	QuizPromptTemplatePath      string `mapstructure:"quiz_prompt_template_path" validate:"omitempty,file"`
	FlashcardPromptTemplatePath string `mapstructure:"flashcard_prompt_template_path" validate:"omitempty,file"`
}

// QuizConfig contains settings for quiz generation and grading sessions.
type QuizConfig struct {
	MaxQuestions         int `mapstructure:"max_questions" validate:"required,gt=0"`
	TokenLifetimeMinutes int `mapstructure:"token_lifetime_minutes" validate:"required,gt=0"`
}
