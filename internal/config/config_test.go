package config

import (
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	if cfg.ServerPort != "8080" {
		t.Errorf("expected default port 8080, got %s", cfg.ServerPort)
	}
	if cfg.DatabaseType != "sqlite" {
		t.Errorf("expected default database type sqlite, got %s", cfg.DatabaseType)
	}
	if cfg.JWTExpiration != 72 {
		t.Errorf("expected default JWT expiration 72, got %d", cfg.JWTExpiration)
	}
	if cfg.DueSoonDays != 3 {
		t.Errorf("expected default due-soon window of 3 days, got %d", cfg.DueSoonDays)
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("SERVER_PORT", "9999")
	t.Setenv("DUE_SOON_DAYS", "7")
	t.Setenv("JWT_EXPIRATION", "not-a-number")

	cfg := Load()

	if cfg.ServerPort != "9999" {
		t.Errorf("expected port 9999, got %s", cfg.ServerPort)
	}
	if cfg.DueSoonDays != 7 {
		t.Errorf("expected due-soon window of 7 days, got %d", cfg.DueSoonDays)
	}
	// Malformed numeric values fall back to the default.
	if cfg.JWTExpiration != 72 {
		t.Errorf("expected fallback JWT expiration 72, got %d", cfg.JWTExpiration)
	}
}
