package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

type Config struct {
	Port             int           `env:"PORT"               envDefault:"3001"`
	RoomCleanupDelay time.Duration `env:"ROOM_CLEANUP_DELAY" envDefault:"5m"`
	ShutdownTimeout  time.Duration `env:"SHUTDOWN_TIMEOUT"   envDefault:"10s"`

	// Word catalog source, in priority order: Postgres, a CSV file, the
	// embedded defaults.
	DatabaseURL string `env:"DATABASE_URL"`
	WordsCSV    string `env:"WORDS_CSV"`

	AllowedOrigin     string  `env:"ALLOWED_ORIGIN"         envDefault:"*"`
	MessagesPerSecond float64 `env:"WS_MESSAGES_PER_SECOND" envDefault:"5"`
	Burst             int     `env:"WS_BURST"               envDefault:"10"`

	LogLevel  string `env:"LOG_LEVEL"  envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"text"`
}

// Load reads an optional .env file and then the process environment.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}
	return Parse()
}

// Parse reads the process environment only.
func Parse() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	switch {
	case c.Port <= 0 || c.Port > 65535:
		return fmt.Errorf("PORT out of range: %d", c.Port)
	case c.RoomCleanupDelay <= 0:
		return fmt.Errorf("ROOM_CLEANUP_DELAY must be positive, got %v", c.RoomCleanupDelay)
	case c.MessagesPerSecond <= 0:
		return fmt.Errorf("WS_MESSAGES_PER_SECOND must be positive, got %v", c.MessagesPerSecond)
	case c.Burst <= 0:
		return fmt.Errorf("WS_BURST must be positive, got %d", c.Burst)
	case c.LogFormat != "text" && c.LogFormat != "json":
		return fmt.Errorf("LOG_FORMAT must be text or json, got %q", c.LogFormat)
	}
	if _, err := logrus.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("LOG_LEVEL: %w", err)
	}
	return nil
}

// Addr is the listen address for the HTTP server.
func (c Config) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}

// ConfigureLogging applies the level and formatter to the standard logrus
// logger.
func (c Config) ConfigureLogging() {
	level, err := logrus.ParseLevel(c.LogLevel)
	if err != nil {
		level = logrus.InfoLevel
	}
	logrus.SetLevel(level)

	if c.LogFormat == "json" {
		logrus.SetFormatter(&logrus.JSONFormatter{TimestampFormat: time.RFC3339})
		return
	}
	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true, TimestampFormat: "2006-01-02 15:04:05"})
}
