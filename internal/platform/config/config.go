// Copyright (c) 2026 ERApp. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package config handles application-wide settings and environment parsing.

It leverages 'caarlos0/env' to map OS environment variables into a strongly-typed
Go struct, providing early validation and default values. A local '.env' file is
read first (via 'joho/godotenv') so development machines do not need to export
every variable by hand; real environment variables always win.

Usage:

	cfg, err := config.Load()
	if err != nil {
	    log.Fatal(err)
	}

Architecture:

  - Immutability: Once loaded, configuration is read-only.
  - DI-Friendly: Passed to core components (DB, Redis) via constructors.
  - Zero Hidden State: No global variables are used to store config.
*/
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// # Configuration Schema

// Config holds all runtime configuration for the ERApp API server.
type Config struct {

	// Server settings
	ServerPort  string `env:"SERVER_PORT"  envDefault:"5000"`
	Environment string `env:"ENVIRONMENT"  envDefault:"development"`
	Debug       bool   `env:"DEBUG"        envDefault:"false"`

	// Relational Database (PostgreSQL)
	DatabaseURL string `env:"DATABASE_URL,required,notEmpty"`

	// MigrationPath is the filesystem path to the SQL migrations directory.
	MigrationPath string `env:"MIGRATION_PATH" envDefault:"./data/migrations"`

	// Key-Value Cache (Redis)
	RedisURL string `env:"REDIS_URL,required,notEmpty"`

	// CorpusCacheTTL is how long the legal section listing is cached.
	CorpusCacheTTL time.Duration `env:"CORPUS_CACHE_TTL" envDefault:"5m"`

	// Cryptographic keys for identity signing
	JWTPrivKeyPath string `env:"JWT_PRIVATE_KEY_PATH,required,notEmpty"`
	JWTPubKeyPath  string `env:"JWT_PUBLIC_KEY_PATH,required,notEmpty"`

	// Point-of-interest provider for the facility lookup
	OverpassURL     string        `env:"OVERPASS_URL"     envDefault:"https://overpass-api.de/api/interpreter"`
	OverpassTimeout time.Duration `env:"OVERPASS_TIMEOUT" envDefault:"25s"`

	// Cross-Origin Resource Sharing
	AllowedOriginSuffix string `env:"ALLOWED_ORIGIN_SUFFIX" envDefault:"erapp.in"`
}

// # Configuration Loading

// Load parses environment variables into a [Config] struct.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := parse(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ToolConfig is the narrower settings set used by the operator CLI, which
// talks to the database directly and to Redis only for cache invalidation.
type ToolConfig struct {
	DatabaseURL   string `env:"DATABASE_URL,required,notEmpty"`
	MigrationPath string `env:"MIGRATION_PATH" envDefault:"./data/migrations"`

	// RedisURL is optional here. When empty, seeding skips cache invalidation.
	RedisURL string `env:"REDIS_URL"`

	// SeedFile overrides the embedded legal dataset for `erctl seed`.
	SeedFile string `env:"SEED_FILE"`
}

// LoadTool parses environment variables into a [ToolConfig].
func LoadTool() (*ToolConfig, error) {
	cfg := &ToolConfig{}
	if err := parse(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// parse loads a local .env and maps the environment onto target.
func parse(target any) error {

	// Pull a local .env into the process environment. A missing file is fine.
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("config: failed to read .env file: %w", err)
	}

	// This will fail if any field marked with 'required' is missing.
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("config: failed to parse environment variables: %w", err)
	}

	return nil
}

// IsDevelopment reports whether the server is running in development mode.
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// IsProduction reports whether the server is running in production mode.
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// OriginSuffix returns the domain suffix trusted by the CORS middleware outside development.
func (c *Config) OriginSuffix() string {
	return c.AllowedOriginSuffix
}
