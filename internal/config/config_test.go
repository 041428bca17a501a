package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}

	if cfg.App.Name != "todo-service" {
		t.Fatalf("unexpected app name: %q", cfg.App.Name)
	}
	if cfg.App.Addr() != "0.0.0.0:8080" {
		t.Fatalf("unexpected addr: %q", cfg.App.Addr())
	}
	if cfg.Auth.ResetTokenTTL() != 2*time.Hour {
		t.Fatalf("reset TTL should default to 2h, got %v", cfg.Auth.ResetTokenTTL())
	}
	if cfg.Auth.BcryptCost != 10 {
		t.Fatalf("bcrypt cost should default to 10, got %d", cfg.Auth.BcryptCost)
	}
	if cfg.Auth.CookieName != "token" {
		t.Fatalf("unexpected cookie name: %q", cfg.Auth.CookieName)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("APP_PORT", "9090")
	t.Setenv("AUTH_RESET_TOKEN_TTL_MINUTES", "30")
	t.Setenv("HTTP_REQUEST_TIMEOUT_SECONDS", "5")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}

	if cfg.App.Port != "9090" {
		t.Fatalf("APP_PORT override ignored: %q", cfg.App.Port)
	}
	if cfg.Auth.ResetTokenTTL() != 30*time.Minute {
		t.Fatalf("TTL override ignored: %v", cfg.Auth.ResetTokenTTL())
	}
	if cfg.App.RequestTimeout() != 5*time.Second {
		t.Fatalf("timeout override ignored: %v", cfg.App.RequestTimeout())
	}
}

func TestLoadInvalidRedisDB(t *testing.T) {
	t.Setenv("REDIS_DB", "not-a-number")

	if _, err := Load(); err == nil {
		t.Fatal("expected error for invalid REDIS_DB")
	}
}
