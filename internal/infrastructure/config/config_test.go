package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "0123456789abcdef")

	cfg, err := Load(context.Background())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Port != "3000" {
		t.Fatalf("expected default port 3000, got %s", cfg.Port)
	}
	if cfg.TokenTTL != 7*24*time.Hour {
		t.Fatalf("expected 7 day TTL, got %s", cfg.TokenTTL)
	}
	if cfg.Store.Driver != StoreFile {
		t.Fatalf("expected file store, got %s", cfg.Store.Driver)
	}
	if cfg.IsProduction() {
		t.Fatalf("expected development by default")
	}
	if cfg.Redis.Enabled {
		t.Fatalf("expected redis disabled by default")
	}
	if cfg.Redis.Timeout != 500*time.Millisecond || cfg.Redis.PoolSize != 10 {
		t.Fatalf("unexpected redis client defaults: %+v", cfg.Redis)
	}
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("JWT_SECRET", "0123456789abcdef")
	t.Setenv("ENV", "production")
	t.Setenv("STORE_DRIVER", "mongo")
	t.Setenv("TOKEN_TTL", "1h")
	t.Setenv("LOGIN_MAX_ATTEMPTS", "3")
	t.Setenv("REDIS_ENABLED", "true")

	cfg, err := Load(context.Background())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if !cfg.IsProduction() {
		t.Fatalf("expected production")
	}
	if cfg.Store.Driver != StoreMongo {
		t.Fatalf("expected mongo store, got %s", cfg.Store.Driver)
	}
	if cfg.TokenTTL != time.Hour {
		t.Fatalf("expected 1h TTL, got %s", cfg.TokenTTL)
	}
	if cfg.Login.MaxAttempts != 3 {
		t.Fatalf("expected 3 attempts, got %d", cfg.Login.MaxAttempts)
	}
	if !cfg.Redis.Enabled {
		t.Fatalf("expected redis enabled")
	}
}

func TestLoad_MissingSecretFails(t *testing.T) {
	t.Setenv("JWT_SECRET", "")
	os.Unsetenv("JWT_SECRET")

	if _, err := Load(context.Background()); err == nil {
		t.Fatalf("expected error without JWT_SECRET")
	}
}

func TestLoad_ShortSecretFails(t *testing.T) {
	t.Setenv("JWT_SECRET", "short")

	if _, err := Load(context.Background()); err == nil {
		t.Fatalf("expected error for short secret")
	}
}

func TestLoad_UnknownDriverFails(t *testing.T) {
	t.Setenv("JWT_SECRET", "0123456789abcdef")
	t.Setenv("STORE_DRIVER", "sqlite")

	if _, err := Load(context.Background()); err == nil {
		t.Fatalf("expected error for unknown store driver")
	}
}

func TestLoadDotEnv(t *testing.T) {
	if err := LoadDotEnv(filepath.Join(t.TempDir(), "missing.env")); err != nil {
		t.Fatalf("missing file must be ignored, got %v", err)
	}

	path := filepath.Join(t.TempDir(), ".env")
	if err := os.WriteFile(path, []byte("STARGAZERS_DOTENV_PROBE=loaded\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv("STARGAZERS_DOTENV_PROBE", "")
	os.Unsetenv("STARGAZERS_DOTENV_PROBE")

	if err := LoadDotEnv(path); err != nil {
		t.Fatalf("load: %v", err)
	}
	if got := os.Getenv("STARGAZERS_DOTENV_PROBE"); got != "loaded" {
		t.Fatalf("expected variable from .env, got %q", got)
	}
}
