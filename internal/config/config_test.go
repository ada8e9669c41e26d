package config

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	for _, k := range []string{"MONGO_URI", "DATABASE_URL", "PORT", "STORE_DRIVER", "MINIO_ENDPOINT", "TOKEN_TTL"} {
		t.Setenv(k, "")
	}

	cfg := Load()

	if cfg.Port != 8000 {
		t.Fatalf("port: got %d want 8000", cfg.Port)
	}
	if cfg.StoreDriver != "mongo" {
		t.Fatalf("store driver: got %q", cfg.StoreDriver)
	}
	if cfg.MongoURISet {
		t.Fatal("mongo uri should be reported as not set")
	}
	if cfg.MongoURI != "mongodb://localhost:27017" {
		t.Fatalf("mongo uri: got %q", cfg.MongoURI)
	}
	if cfg.StorageEnabled() {
		t.Fatal("storage should be disabled without MINIO_ENDPOINT")
	}
	if cfg.TokenTTL != 0 {
		t.Fatalf("token ttl: got %s want 0", cfg.TokenTTL)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("MONGO_URI", "")
	t.Setenv("DATABASE_URL", "mongodb://db:27017")
	t.Setenv("PORT", "9090")
	t.Setenv("STORE_DRIVER", "Memory")
	t.Setenv("TOKEN_TTL", "2h")
	t.Setenv("MINIO_ENDPOINT", "minio:9000")
	t.Setenv("BCRYPT_COST", "not-a-number")

	cfg := Load()

	if cfg.MongoURI != "mongodb://db:27017" || !cfg.MongoURISet {
		t.Fatalf("DATABASE_URL alias not honoured: %q", cfg.MongoURI)
	}
	if cfg.Port != 9090 {
		t.Fatalf("port: got %d", cfg.Port)
	}
	if cfg.StoreDriver != "memory" {
		t.Fatalf("store driver should be lower-cased, got %q", cfg.StoreDriver)
	}
	if cfg.TokenTTL != 2*time.Hour {
		t.Fatalf("token ttl: got %s", cfg.TokenTTL)
	}
	if !cfg.StorageEnabled() {
		t.Fatal("storage should be enabled")
	}
	if cfg.BcryptCost != 10 {
		t.Fatalf("invalid BCRYPT_COST should fall back to 10, got %d", cfg.BcryptCost)
	}
}

func captureLogs(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	prev := slog.Default()
	slog.SetDefault(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelWarn})))
	t.Cleanup(func() { slog.SetDefault(prev) })
	return &buf
}

func TestLoadWarnsOnDefaultTokenSecret(t *testing.T) {
	t.Setenv("TOKEN_SECRET", "")
	t.Setenv("APP_ENV", "production")
	logs := captureLogs(t)

	cfg := Load()

	if cfg.TokenSecret != DefaultTokenSecret {
		t.Fatalf("token secret: got %q", cfg.TokenSecret)
	}
	if !strings.Contains(logs.String(), "TOKEN_SECRET not set") {
		t.Fatalf("expected warning, logs=%q", logs.String())
	}
}

func TestLoadNoSecretWarningInDevOrWhenSet(t *testing.T) {
	t.Setenv("TOKEN_SECRET", "")
	t.Setenv("APP_ENV", "dev")
	logs := captureLogs(t)
	Load()
	if strings.Contains(logs.String(), "TOKEN_SECRET") {
		t.Fatalf("unexpected warning in dev: %q", logs.String())
	}

	t.Setenv("TOKEN_SECRET", "s3cret")
	t.Setenv("APP_ENV", "production")
	logs.Reset()
	Load()
	if strings.Contains(logs.String(), "TOKEN_SECRET") {
		t.Fatalf("unexpected warning with secret set: %q", logs.String())
	}
}
