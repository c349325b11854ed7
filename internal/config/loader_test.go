package config

import (
	"os"
	"strings"
	"testing"
)

func TestLoader_ParseEnvironment(t *testing.T) {

	t.Run("applies defaults when variables are missing", func(t *testing.T) {
		unset := []string{
			"DOMUS_STORE_BACKEND",
			"DOMUS_SQLITE_DSN",
			"DOMUS_REDIS_ADDR",
			"DOMUS_REDIS_DB",
			"DOMUS_SIMULATED_LATENCY",
			"DOMUS_AUDIT_LOG",
		}
		for _, key := range unset {
			if err := os.Unsetenv(key); err != nil {
				t.Fatalf("failed to unset %s: %v", key, err)
			}
		}

		cfg, err := Load()
		if err != nil {
			t.Fatalf("Load returned error: %v", err)
		}

		if cfg.StoreBackend != BackendMemory {
			t.Fatalf("expected default backend %q, got %q", BackendMemory, cfg.StoreBackend)
		}
		if cfg.SQLiteDSN != "file:domus.db" {
			t.Fatalf("unexpected default DSN: %q", cfg.SQLiteDSN)
		}
		if cfg.RedisAddr != "localhost:6379" {
			t.Fatalf("unexpected default redis address: %q", cfg.RedisAddr)
		}
		if cfg.SimulatedLatency {
			t.Fatal("expected simulated latency to default to off")
		}
	})

	t.Run("normalizes the backend name", func(t *testing.T) {
		t.Setenv("DOMUS_STORE_BACKEND", "  SQLite ")
		t.Setenv("DOMUS_SQLITE_DSN", "file:parish.db")

		cfg, err := Load()
		if err != nil {
			t.Fatalf("Load returned error: %v", err)
		}
		if cfg.StoreBackend != BackendSQLite {
			t.Fatalf("expected backend %q, got %q", BackendSQLite, cfg.StoreBackend)
		}
		if cfg.SQLiteDSN != "file:parish.db" {
			t.Fatalf("unexpected DSN: %q", cfg.SQLiteDSN)
		}
	})

	t.Run("rejects unknown backends", func(t *testing.T) {
		t.Setenv("DOMUS_STORE_BACKEND", "localstorage")

		_, err := Load()
		if err == nil {
			t.Fatal("expected error for unknown backend")
		}
		if !strings.Contains(err.Error(), "DOMUS_STORE_BACKEND") {
			t.Fatalf("error should name the offending variable, got %q", err.Error())
		}
	})

	t.Run("rejects a blank DSN for the sqlite backend", func(t *testing.T) {
		t.Setenv("DOMUS_STORE_BACKEND", "sqlite")
		t.Setenv("DOMUS_SQLITE_DSN", "   ")

		_, err := Load()
		if err == nil {
			t.Fatal("expected error for blank sqlite DSN")
		}
	})

	t.Run("rejects a blank address for the redis backend", func(t *testing.T) {
		t.Setenv("DOMUS_STORE_BACKEND", "redis")
		t.Setenv("DOMUS_REDIS_ADDR", " ")

		_, err := Load()
		if err == nil {
			t.Fatal("expected error for blank redis address")
		}
	})
}
