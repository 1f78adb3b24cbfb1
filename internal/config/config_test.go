package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	t.Setenv("PORT", "")
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Server.Port != "8080" {
		t.Fatalf("expected default port, got %q", cfg.Server.Port)
	}
	if cfg.Quiz.DefaultID != "buddy-hunt" {
		t.Fatalf("expected default quiz, got %q", cfg.Quiz.DefaultID)
	}
	if cfg.Confetti.Particles != 80 {
		t.Fatalf("expected 80 particles, got %d", cfg.Confetti.Particles)
	}
}

func TestLoadFileOverridesDefaults(t *testing.T) {
	t.Setenv("PORT", "")
	path := filepath.Join(t.TempDir(), "config.yaml")
	body := `
server:
  port: "9000"
confetti:
  success: 2s
redis:
  addr: localhost:6379
`
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Server.Port != "9000" {
		t.Fatalf("expected port 9000, got %q", cfg.Server.Port)
	}
	if cfg.Redis.Addr != "localhost:6379" {
		t.Fatalf("unexpected redis addr %q", cfg.Redis.Addr)
	}
	if got := TTLDuration(cfg.Confetti.Success, 0); got != 2*time.Second {
		t.Fatalf("expected 2s success, got %v", got)
	}
	if got := TTLDuration(cfg.Confetti.Final, 0); got != 900*time.Millisecond {
		t.Fatalf("expected default final, got %v", got)
	}
}

func TestEnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("server:\n  port: \"9000\"\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	t.Setenv("PORT", "7000")
	t.Setenv("TELEGRAM_BOT_TOKEN", "token")
	t.Setenv("APP_ENV", "production")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Server.Port != "7000" || cfg.Telegram.Token != "token" || cfg.Env != "production" {
		t.Fatalf("env not applied: %+v", cfg)
	}
}

func TestLoadDotenv(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	if err := os.WriteFile(path, []byte("BUDDY_HUNT_TEST_VAR=from-dotenv\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	t.Setenv("BUDDY_HUNT_TEST_VAR", "")
	os.Unsetenv("BUDDY_HUNT_TEST_VAR")

	if err := LoadDotenv(path); err != nil {
		t.Fatalf("LoadDotenv: %v", err)
	}
	if got := os.Getenv("BUDDY_HUNT_TEST_VAR"); got != "from-dotenv" {
		t.Fatalf("expected dotenv value, got %q", got)
	}
	if err := LoadDotenv(filepath.Join(t.TempDir(), "missing.env")); err != nil {
		t.Fatalf("missing .env should be ignored: %v", err)
	}
}

func TestTTLDurationFallback(t *testing.T) {
	if got := TTLDuration("", time.Minute); got != time.Minute {
		t.Fatalf("empty: %v", got)
	}
	if got := TTLDuration("bogus", time.Minute); got != time.Minute {
		t.Fatalf("bogus: %v", got)
	}
	if got := TTLDuration("5s", time.Minute); got != 5*time.Second {
		t.Fatalf("5s: %v", got)
	}
}
