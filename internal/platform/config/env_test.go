package config

import (
	"strings"
	"testing"
)

type envTestConfig struct {
	Port int `env:"INTERNHUB_TEST_PORT" envDefault:"123"`
}

func TestParseEnvDefaults(t *testing.T) {
	var cfg envTestConfig

	if err := ParseEnv(&cfg); err != nil {
		t.Fatalf("parse env: %v", err)
	}
	if cfg.Port != 123 {
		t.Fatalf("expected default port 123, got %d", cfg.Port)
	}
}

func TestLoadServer(t *testing.T) {
	t.Setenv("INTERNHUB_ADDR", ":9090")
	t.Setenv("INTERNHUB_DB_PATH", "test.db")
	t.Setenv("INTERNHUB_TOKEN_SECRET", "secret-secret-secret")
	t.Setenv("INTERNHUB_TOKEN_TTL", "1h")

	cfg, err := LoadServer()
	if err != nil {
		t.Fatalf("load server: %v", err)
	}
	if cfg.Addr != ":9090" {
		t.Fatalf("addr = %q, want :9090", cfg.Addr)
	}
	if cfg.TokenTTL.Hours() != 1 {
		t.Fatalf("token ttl = %v, want 1h", cfg.TokenTTL)
	}
}

func TestLoadServerRequiresSecret(t *testing.T) {
	t.Setenv("INTERNHUB_ADDR", ":9090")
	t.Setenv("INTERNHUB_DB_PATH", "test.db")
	t.Setenv("INTERNHUB_TOKEN_SECRET", "")

	if _, err := LoadServer(); err == nil {
		t.Fatal("expected error for missing token secret")
	}
}

func TestParseEnvError(t *testing.T) {
	var cfg envTestConfig
	t.Setenv("INTERNHUB_TEST_PORT", "not-an-int")

	err := ParseEnv(&cfg)
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "parse env:") {
		t.Fatalf("expected parse env prefix, got %v", err)
	}
}
