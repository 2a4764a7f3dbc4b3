// Package config loads service configuration from the environment.
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

type Config struct {
	AppEnv     string `env:"APP_ENV" envDefault:"local"`
	APIPort    int    `env:"API_PORT" envDefault:"8080"`
	HealthPort int    `env:"HEALTH_PORT" envDefault:"8081"`

	// Upload handling
	MaxUploadBytes int64         `env:"MAX_UPLOAD_BYTES" envDefault:"33554432"`
	RateLimitRPS   float64       `env:"RATE_LIMIT_RPS" envDefault:"2"`
	RateLimitBurst int           `env:"RATE_LIMIT_BURST" envDefault:"5"`
	SessionTTL     time.Duration `env:"SESSION_TTL" envDefault:"1h"`

	// Analysis defaults
	TopicCount   int    `env:"TOPIC_COUNT" envDefault:"5"`
	TopTermCount int    `env:"TOP_TERM_COUNT" envDefault:"5"`
	StopwordPath string `env:"STOPWORD_PATH"`

	// Word cloud rendering
	WordcloudFont   string `env:"WORDCLOUD_FONT" envDefault:"./fonts/Roboto-Regular.ttf"`
	WordcloudWidth  int    `env:"WORDCLOUD_WIDTH" envDefault:"800"`
	WordcloudHeight int    `env:"WORDCLOUD_HEIGHT" envDefault:"400"`

	// CORS
	AllowedOrigins []string `env:"ALLOWED_ORIGINS" envSeparator:"," envDefault:"*"`
}

func Load() (*Config, error) {
	_ = godotenv.Load() //nolint:errcheck // .env file is optional, error is expected when not present

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parsing environment config: %w", err)
	}

	return cfg, nil
}
