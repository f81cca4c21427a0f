// Package config loads application configuration from CATALOG_-prefixed
// environment variables.
//
// The first underscore after the prefix separates the block from the field:
// CATALOG_DATABASE_MAX_CONNS maps to database.max_conns, which lands in
// Config.Database.MaxConns. Values not present in the environment keep the
// defaults returned by Default.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"
)

const envPrefix = "CATALOG_"

// Store drivers
const (
	DriverPostgres  = "postgres"
	DriverSurrealDB = "surrealdb"
	DriverMemory    = "memory"
)

// Config is the root configuration object.
type Config struct {
	App      AppConfig      `koanf:"app"`
	Store    StoreConfig    `koanf:"store"`
	Database DatabaseConfig `koanf:"database"`
	Redis    RedisConfig    `koanf:"redis"`
	Surreal  SurrealConfig  `koanf:"surreal"`
}

type AppConfig struct {
	Name        string `koanf:"name" validate:"required"`
	Environment string `koanf:"env" validate:"oneof=development staging production test"`
	Port        string `koanf:"port" validate:"required,numeric"`
	Version     string `koanf:"version"`
	LogLevel    string `koanf:"log_level" validate:"omitempty,oneof=debug info warn error"`
}

// StoreConfig selects the Record Store implementation.
type StoreConfig struct {
	Driver string `koanf:"driver" validate:"oneof=postgres surrealdb memory"`
}

type DatabaseConfig struct {
	Host              string        `koanf:"host"`
	Port              int           `koanf:"port" validate:"gte=0,lte=65535"`
	User              string        `koanf:"user"`
	Password          string        `koanf:"password"`
	Name              string        `koanf:"name"`
	SSLMode           string        `koanf:"ssl_mode" validate:"omitempty,oneof=disable allow prefer require verify-ca verify-full"`
	MaxConns          int           `koanf:"max_conns" validate:"gte=1"`
	MinConns          int           `koanf:"min_conns" validate:"gte=0,ltefield=MaxConns"`
	MaxConnLifetime   time.Duration `koanf:"max_conn_lifetime"`
	MaxConnIdleTime   time.Duration `koanf:"max_conn_idle_time"`
	HealthCheckPeriod time.Duration `koanf:"health_check_period"`
	MaxRetries        int           `koanf:"max_retries" validate:"gte=1"`
	RetryDelay        time.Duration `koanf:"retry_delay"`
	ConnectTimeout    time.Duration `koanf:"connect_timeout"`
}

// RedisConfig controls the author look-up cache. A disabled or unreachable
// Redis falls back to a cache that always misses.
type RedisConfig struct {
	Enabled  bool          `koanf:"enabled"`
	Host     string        `koanf:"host"`
	Password string        `koanf:"password"`
	DB       int           `koanf:"db" validate:"gte=0"`
	TTL      time.Duration `koanf:"ttl"`
}

type SurrealConfig struct {
	Host      string `koanf:"host"`
	Port      string `koanf:"port"`
	User      string `koanf:"user"`
	Password  string `koanf:"password"`
	Namespace string `koanf:"namespace"`
	Database  string `koanf:"database"`
}

// Default returns the configuration used for anything the environment omits.
func Default() *Config {
	return &Config{
		App: AppConfig{
			Name:        "Catalog API",
			Environment: "development",
			Port:        "8080",
			Version:     "1.0.0",
			LogLevel:    "info",
		},
		Store: StoreConfig{
			Driver: DriverPostgres,
		},
		Database: DatabaseConfig{
			Host:              "localhost",
			Port:              5432,
			User:              "catalog",
			Password:          "secret",
			Name:              "catalog_dev",
			SSLMode:           "disable",
			MaxConns:          25,
			MinConns:          5,
			MaxConnLifetime:   5 * time.Minute,
			MaxConnIdleTime:   time.Minute,
			HealthCheckPeriod: time.Minute,
			MaxRetries:        5,
			RetryDelay:        time.Second,
			ConnectTimeout:    10 * time.Second,
		},
		Redis: RedisConfig{
			Enabled: true,
			Host:    "localhost:6379",
			DB:      0,
			TTL:     15 * time.Minute,
		},
		Surreal: SurrealConfig{
			Host:      "localhost",
			Port:      "8000",
			User:      "root",
			Password:  "root",
			Namespace: "catalog",
			Database:  "catalog",
		},
	}
}

// Load reads CATALOG_* variables over the defaults and validates the result.
// A .env file, if any, must already be loaded into the process environment.
func Load() (*Config, error) {
	k := koanf.New(".")

	err := k.Load(env.Provider(envPrefix, ".", envKey), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to load env: %w", err)
	}

	cfg := Default()
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// envKey maps CATALOG_DATABASE_MAX_CONNS to database.max_conns.
func envKey(s string) string {
	key := strings.ToLower(strings.TrimPrefix(s, envPrefix))
	return strings.Replace(key, "_", ".", 1)
}

// Validate checks struct rules and the per-environment requirements.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return err
	}

	switch c.Store.Driver {
	case DriverPostgres:
		if c.Database.Host == "" || c.Database.Name == "" {
			return fmt.Errorf("CATALOG_DATABASE_HOST and CATALOG_DATABASE_NAME must be set for the postgres driver")
		}
	case DriverSurrealDB:
		if c.Surreal.Host == "" || c.Surreal.Namespace == "" || c.Surreal.Database == "" {
			return fmt.Errorf("CATALOG_SURREAL_HOST, CATALOG_SURREAL_NAMESPACE and CATALOG_SURREAL_DATABASE must be set for the surrealdb driver")
		}
	}

	if c.IsProduction() {
		if c.Store.Driver == DriverPostgres && c.Database.Password == "" {
			return fmt.Errorf("CATALOG_DATABASE_PASSWORD must be set in production")
		}
		if c.Store.Driver == DriverSurrealDB && c.Surreal.Password == "" {
			return fmt.Errorf("CATALOG_SURREAL_PASSWORD must be set in production")
		}
		if c.Store.Driver == DriverMemory {
			return fmt.Errorf("the memory store driver is not allowed in production")
		}
	}

	return nil
}

func (c *Config) IsProduction() bool {
	return c.App.Environment == "production"
}
