package config

import (
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/his_test")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Port != "8000" {
		t.Errorf("expected default port 8000, got %s", cfg.Port)
	}
	if cfg.Env != "development" {
		t.Errorf("expected default env development, got %s", cfg.Env)
	}
	if cfg.TokenTTL != 8 {
		t.Errorf("expected default token TTL 8h, got %d", cfg.TokenTTL)
	}
	if cfg.DBMaxConns != 20 {
		t.Errorf("expected default max conns 20, got %d", cfg.DBMaxConns)
	}
}

func TestLoad_MissingDatabaseURL(t *testing.T) {
	t.Setenv("DATABASE_URL", "")

	if _, err := Load(); err == nil {
		t.Error("expected error when DATABASE_URL is missing")
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/his_test")
	t.Setenv("PORT", "9090")
	t.Setenv("TOKEN_TTL_HOURS", "2")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Port != "9090" {
		t.Errorf("expected port 9090, got %s", cfg.Port)
	}
	if cfg.TokenLifetime() != 2*time.Hour {
		t.Errorf("expected 2h token lifetime, got %s", cfg.TokenLifetime())
	}
}

func TestValidate_ProductionRejectsDevSecret(t *testing.T) {
	cfg := &Config{Env: "production", JWTSecret: devJWTSecret, TokenTTL: 8}
	if err := cfg.Validate(); err == nil {
		t.Error("expected validation error for dev secret in production")
	}

	cfg.JWTSecret = "a-real-secret"
	if err := cfg.Validate(); err != nil {
		t.Errorf("unexpected error with real secret: %v", err)
	}
}

func TestValidate_DevAllowsDefaultSecret(t *testing.T) {
	cfg := &Config{Env: "development", JWTSecret: devJWTSecret, TokenTTL: 8}
	if err := cfg.Validate(); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestValidate_RejectsNonPositiveTokenTTL(t *testing.T) {
	for _, ttl := range []int{0, -1} {
		cfg := &Config{Env: "development", JWTSecret: devJWTSecret, TokenTTL: ttl}
		if err := cfg.Validate(); err == nil {
			t.Errorf("expected validation error for TOKEN_TTL_HOURS=%d", ttl)
		}
	}
}

func TestTokenLifetime_ZeroFallsBack(t *testing.T) {
	cfg := &Config{}
	if cfg.TokenLifetime() != 8*time.Hour {
		t.Errorf("expected 8h fallback, got %s", cfg.TokenLifetime())
	}
}
