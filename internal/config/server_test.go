package config

import (
	"testing"
)

func TestLoadServerConfigDefaults(t *testing.T) {
	for _, key := range []string{"ENV", "PORT", "REVISION_HISTORY_LIMIT", "RATE_LIMIT_REQUESTS", "RATE_LIMIT_PERIOD", "CORS_ORIGINS"} {
		t.Setenv(key, "")
	}

	cfg := LoadServerConfig()

	if cfg.Environment != EnvDevelopment {
		t.Fatalf("expected development default, got %s", cfg.Environment)
	}
	if cfg.Port != 8080 {
		t.Fatalf("expected default port 8080, got %d", cfg.Port)
	}
	if cfg.RevisionHistoryLimit != 0 {
		t.Fatalf("expected unbounded revision history by default, got %d", cfg.RevisionHistoryLimit)
	}
	if cfg.RateLimitRequests != 100 || cfg.RateLimitPeriod != "1m" {
		t.Fatalf("unexpected rate limit defaults: %d per %s", cfg.RateLimitRequests, cfg.RateLimitPeriod)
	}
}

func TestLoadServerConfigFromEnv(t *testing.T) {
	t.Setenv("ENV", "production")
	t.Setenv("PORT", "9090")
	t.Setenv("REVISION_HISTORY_LIMIT", "25")
	t.Setenv("RATE_LIMIT_REQUESTS", "50")
	t.Setenv("RATE_LIMIT_PERIOD", "30s")
	t.Setenv("CORS_ORIGINS", "https://cms.example.com, https://admin.example.com")

	cfg := LoadServerConfig()

	if cfg.Environment != EnvProduction {
		t.Fatalf("expected production, got %s", cfg.Environment)
	}
	if cfg.Port != 9090 {
		t.Fatalf("expected port 9090, got %d", cfg.Port)
	}
	if cfg.RevisionHistoryLimit != 25 {
		t.Fatalf("expected revision limit 25, got %d", cfg.RevisionHistoryLimit)
	}
	if cfg.RateLimitRequests != 50 || cfg.RateLimitPeriod != "30s" {
		t.Fatalf("unexpected rate limit: %d per %s", cfg.RateLimitRequests, cfg.RateLimitPeriod)
	}
	if len(cfg.AllowedOrigins) != 2 || cfg.AllowedOrigins[1] != "https://admin.example.com" {
		t.Fatalf("unexpected origins: %v", cfg.AllowedOrigins)
	}
}

func TestLoadServerConfigRejectsInvalidValues(t *testing.T) {
	t.Setenv("ENV", "sandbox")
	t.Setenv("PORT", "99999")
	t.Setenv("REVISION_HISTORY_LIMIT", "-3")
	t.Setenv("RATE_LIMIT_REQUESTS", "0")

	cfg := LoadServerConfig()

	if cfg.Environment != EnvDevelopment {
		t.Fatalf("expected fallback to development, got %s", cfg.Environment)
	}
	if cfg.Port != 8080 {
		t.Fatalf("expected fallback port, got %d", cfg.Port)
	}
	if cfg.RevisionHistoryLimit != 0 {
		t.Fatalf("expected negative limit coerced to 0, got %d", cfg.RevisionHistoryLimit)
	}
	if cfg.RateLimitRequests != 100 {
		t.Fatalf("expected fallback rate limit, got %d", cfg.RateLimitRequests)
	}
}
