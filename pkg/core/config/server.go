// Package config loads process settings from the environment and the fan chart model
// settings from an optional YAML file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// ServerConfig holds process-level settings
type ServerConfig struct {
	Port       int           `env:"FANCHART_PORT" envDefault:"8080"`
	LogLevel   string        `env:"FANCHART_LOG_LEVEL" envDefault:"info"`
	LogPretty  bool          `env:"FANCHART_LOG_PRETTY" envDefault:"false"`
	ConfigPath string        `env:"FANCHART_CONFIG" envDefault:"config/fanchart.yaml"`
	RedisAddr  string        `env:"FANCHART_REDIS_ADDR"` // Empty uses the in-memory cache
	CacheTTL   time.Duration `env:"FANCHART_CACHE_TTL" envDefault:"10m"`
}

// ParseEnv loads configuration from environment variables.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// LoadServerConfig reads .env files (when present) into the environment, then parses
// ServerConfig. Variables already set in the environment win over .env values.
func LoadServerConfig(envFiles ...string) (ServerConfig, error) {
	if err := godotenv.Load(envFiles...); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return ServerConfig{}, fmt.Errorf("load .env: %w", err)
	}

	var cfg ServerConfig
	if err := ParseEnv(&cfg); err != nil {
		return ServerConfig{}, err
	}
	if cfg.Port < 1 || cfg.Port > 65535 {
		return ServerConfig{}, fmt.Errorf("FANCHART_PORT must be between 1 and 65535, got %d", cfg.Port)
	}
	return cfg, nil
}

// Addr returns the listen address for the HTTP server
func (c ServerConfig) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}
