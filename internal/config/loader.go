package config

import (
	"fmt"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Store backend identifiers accepted by DOMUS_STORE_BACKEND.
const (
	BackendMemory = "memory"
	BackendSQLite = "sqlite"
	BackendRedis  = "redis"
)

// Config captures environment driven configuration values for the booking
// gateway and its storage backends.
type Config struct {
	StoreBackend     string `env:"DOMUS_STORE_BACKEND" envDefault:"memory"`
	SQLiteDSN        string `env:"DOMUS_SQLITE_DSN" envDefault:"file:domus.db"`
	RedisAddr        string `env:"DOMUS_REDIS_ADDR" envDefault:"localhost:6379"`
	RedisPassword    string `env:"DOMUS_REDIS_PASSWORD"`
	RedisDB          int    `env:"DOMUS_REDIS_DB" envDefault:"0"`
	SimulatedLatency bool   `env:"DOMUS_SIMULATED_LATENCY" envDefault:"false"`
	AuditLogPath     string `env:"DOMUS_AUDIT_LOG"`
}

// Load parses configuration from the process environment, after loading a
// .env file when one is present in the working directory.
func Load() (Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}

	cfg.StoreBackend = strings.ToLower(strings.TrimSpace(cfg.StoreBackend))
	switch cfg.StoreBackend {
	case BackendMemory, BackendSQLite, BackendRedis:
	default:
		return Config{}, fmt.Errorf("invalid DOMUS_STORE_BACKEND %q: must be one of %s, %s, %s",
			cfg.StoreBackend, BackendMemory, BackendSQLite, BackendRedis)
	}

	if cfg.StoreBackend == BackendSQLite && strings.TrimSpace(cfg.SQLiteDSN) == "" {
		return Config{}, fmt.Errorf("DOMUS_SQLITE_DSN must not be empty when the sqlite backend is selected")
	}
	if cfg.StoreBackend == BackendRedis && strings.TrimSpace(cfg.RedisAddr) == "" {
		return Config{}, fmt.Errorf("DOMUS_REDIS_ADDR must not be empty when the redis backend is selected")
	}

	return cfg, nil
}
