// Package config loads runtime configuration from the environment.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

// ParseEnv loads configuration from environment variables.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// Server holds the API server runtime configuration.
type Server struct {
	Addr        string        `env:"INTERNHUB_ADDR"          envDefault:":8080"`
	DBPath      string        `env:"INTERNHUB_DB_PATH"       envDefault:"data/internhub.db"`
	TokenSecret string        `env:"INTERNHUB_TOKEN_SECRET"`
	TokenTTL    time.Duration `env:"INTERNHUB_TOKEN_TTL"     envDefault:"24h"`
}

// LoadServer reads and validates server configuration from the environment.
func LoadServer() (Server, error) {
	var cfg Server
	if err := ParseEnv(&cfg); err != nil {
		return Server{}, err
	}
	cfg.Addr = strings.TrimSpace(cfg.Addr)
	cfg.DBPath = strings.TrimSpace(cfg.DBPath)
	cfg.TokenSecret = strings.TrimSpace(cfg.TokenSecret)
	if cfg.Addr == "" {
		return Server{}, fmt.Errorf("INTERNHUB_ADDR is required")
	}
	if cfg.DBPath == "" {
		return Server{}, fmt.Errorf("INTERNHUB_DB_PATH is required")
	}
	if cfg.TokenSecret == "" {
		return Server{}, fmt.Errorf("INTERNHUB_TOKEN_SECRET is required")
	}
	if cfg.TokenTTL <= 0 {
		return Server{}, fmt.Errorf("token ttl must be positive")
	}
	return cfg, nil
}
