package config

import (
	"log/slog"

	"github.com/caarlos0/env/v10"
)

// Config holds runtime configuration for the chatbot services.
type Config struct {
	// Server
	Port       int    `env:"PORT" envDefault:"8080"`
	HealthPort int    `env:"HEALTH_PORT" envDefault:"8090"`
	LogLevel   string `env:"LOG_LEVEL" envDefault:"info"`

	// Documents
	DocumentsDir  string `env:"DOCUMENTS_DIR" envDefault:"data/documents"`
	MaxUploadSize int64  `env:"MAX_UPLOAD_SIZE" envDefault:"10485760"` // 10MB in bytes

	// Store
	DBURL string `env:"DB_URL"`

	// Cache; the insight cache falls back to no-op when unset
	RedisAddr     string `env:"REDIS_ADDR"`
	RedisPassword string `env:"REDIS_PASSWORD"`

	// Queue
	QueueURL string `env:"QUEUE_URL"`

	// LLM
	OpenAIKey    string  `env:"OPENAI_API_KEY"`
	ChatModel    string  `env:"CHAT_MODEL" envDefault:"gpt-4o-mini"`
	InsightModel string  `env:"INSIGHT_MODEL" envDefault:"gpt-4o-mini"`
	ChatTemp     float64 `env:"CHAT_TEMPERATURE" envDefault:"0.7"`

	// Persona presented by the chat assistant
	PersonaName  string `env:"PERSONA_NAME" envDefault:"Denver Magtibay"`
	PersonaTitle string `env:"PERSONA_TITLE" envDefault:"AI Engineer & Electronics Engineering Expert"`
}

// Load reads configuration from environment variables with defaults.
func Load() Config {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		slog.Warn("failed to parse env; using defaults where set", "err", err)
	}
	return cfg
}
