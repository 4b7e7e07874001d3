package config

import (
	"fmt"

	"github.com/kelseyhightower/envconfig"
)

// Environment represents different deployment environments.
type Environment string

const (
	EnvDevelopment Environment = "development"
	EnvProduction  Environment = "production"
)

// Config holds the configuration for the character registry. Variable
// names are unprefixed (ELIZA_SERVER_URL, SQLITE_DB_FILE, PORT, ...)
// to stay compatible with existing deployments.
type Config struct {
	Environment Environment `envconfig:"ENVIRONMENT" default:"development"`

	// HTTP listener
	Port int `envconfig:"PORT" default:"3000"`

	// Storage: sqlite is the default; DBDriver "auto" picks postgres
	// when a DSN is configured.
	DBDriver     string `envconfig:"DB_DRIVER" default:"auto"`
	SQLiteDBFile string `envconfig:"SQLITE_DB_FILE" default:"characters.db"`
	PostgresDSN  string `envconfig:"POSTGRES_DSN" default:""`

	// Base URL of the external orchestration (Eliza) server the
	// init relay posts character summaries to.
	ElizaServerURL string `envconfig:"ELIZA_SERVER_URL" default:""`
}

// ResolveDefaults validates DBDriver and derives it when set to "auto".
func (c *Config) ResolveDefaults() error {
	if c.DBDriver == "" || c.DBDriver == "auto" {
		if c.PostgresDSN != "" {
			c.DBDriver = "postgres"
		} else {
			c.DBDriver = "sqlite"
		}
	}

	switch c.DBDriver {
	case "sqlite":
		if c.SQLiteDBFile == "" {
			return fmt.Errorf("SQLITE_DB_FILE must not be empty with the sqlite driver")
		}
	case "postgres":
		if c.PostgresDSN == "" {
			return fmt.Errorf("POSTGRES_DSN is required with the postgres driver")
		}
	default:
		return fmt.Errorf("unsupported DB_DRIVER: %s", c.DBDriver)
	}
	return nil
}

// New creates a Config by parsing environment variables.
func New() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process environment variables: %w", err)
	}
	if err := cfg.ResolveDefaults(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// IsProduction returns true if the environment is set to production.
// Verbose logging is suppressed in production.
func (c *Config) IsProduction() bool {
	return c.Environment == EnvProduction
}

// HTTPAddr returns the HTTP server listen address.
func (c *Config) HTTPAddr() string {
	return fmt.Sprintf(":%d", c.Port)
}
