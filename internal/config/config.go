// Package config manages environment variables.
//
// It reads variables from the process environment (optionally seeded
// from a `.env` file), loads them into structured Go types, and
// validates that required values are present so they can be reused
// across the application runtime.
package config

import (
	"fmt"
	"net"
	"net/url"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	// Side-effect import: loads a `.env` file into the process
	// environment before any env var is read.
	_ "github.com/joho/godotenv/autoload"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"
)

// EnvPrefix is the prefix every configuration variable carries.
// CLEANINGS_DATABASE__HOST maps to Config.Database.Host.
const EnvPrefix = "CLEANINGS_"

// Config is the root configuration object for the application.
//
// The `koanf:"..."` tags specify where koanf maps values from and the
// `validate:"required"` tags enforce that the value is populated.
type Config struct {
	Primary  Primary        `koanf:"primary" validate:"required"`
	Server   ServerConfig   `koanf:"server" validate:"required"`
	Database DatabaseConfig `koanf:"database" validate:"required"`
	Logging  LoggingConfig  `koanf:"logging"`
}

// Primary holds top-level information about the runtime environment.
type Primary struct {
	Env string `koanf:"env" validate:"required"`

	// Testing signals testing mode to downstream configuration: the
	// database name gets a "_test" suffix so test sessions never touch
	// the development schema.
	Testing bool `koanf:"testing"`
}

// ServerConfig groups settings for the HTTP server runtime.
// Timeouts are seconds.
type ServerConfig struct {
	Port               string   `koanf:"port" validate:"required"`
	ReadTimeout        int      `koanf:"read_timeout" validate:"required"`
	WriteTimeout       int      `koanf:"write_timeout" validate:"required"`
	IdleTimeout        int      `koanf:"idle_timeout" validate:"required"`
	CORSAllowedOrigins []string `koanf:"cors_allowed_origins" validate:"required"`
}

// DatabaseConfig contains PostgreSQL connection parameters and pool tuning.
type DatabaseConfig struct {
	Host            string `koanf:"host" validate:"required"`
	Port            int    `koanf:"port" validate:"required"`
	User            string `koanf:"user" validate:"required"`
	Password        string `koanf:"password" validate:"required"`
	Name            string `koanf:"name" validate:"required"`
	SSLMode         string `koanf:"ssl_mode" validate:"required"`
	MaxConns        int    `koanf:"max_conns"`
	MinConns        int    `koanf:"min_conns"`
	ConnMaxLifetime int    `koanf:"conn_max_lifetime"`
	ConnMaxIdleTime int    `koanf:"conn_max_idle_time"`
}

// LoggingConfig controls structured logger behavior.
// Level defaults to "info", Format to "json" ("console" in local env).
type LoggingConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
}

// Load reads configuration from environment variables, unmarshals it
// into Config, validates it, and applies defaults.
//
// Env keys use the CLEANINGS_ prefix with "__" as the nesting
// delimiter, e.g. CLEANINGS_DATABASE__SSL_MODE -> database.ssl_mode.
func Load() (*Config, error) {
	k := koanf.New(".")

	err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		return strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(s, EnvPrefix)), "__", ".")
	}), nil)
	if err != nil {
		return nil, fmt.Errorf("loading environment variables: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
	if cfg.Logging.Format == "" {
		if cfg.Primary.Env == "local" {
			cfg.Logging.Format = "console"
		} else {
			cfg.Logging.Format = "json"
		}
	}

	return cfg, nil
}

// DatabaseName reports the effective database name. In testing mode
// the name carries a "_test" suffix so migrations and fixtures operate
// on a throwaway schema.
func (c *Config) DatabaseName() string {
	if c.Primary.Testing {
		return c.Database.Name + "_test"
	}
	return c.Database.Name
}

// DatabaseURL builds the postgres connection string from config.
//
// The password is URL-escaped so characters like '@' or ':' cannot
// break the DSN structure, and host/port joining handles IPv6.
func (c *Config) DatabaseURL() string {
	hostPort := net.JoinHostPort(c.Database.Host, strconv.Itoa(c.Database.Port))

	return fmt.Sprintf("postgres://%s:%s@%s/%s?sslmode=%s",
		c.Database.User,
		url.QueryEscape(c.Database.Password),
		hostPort,
		c.DatabaseName(),
		c.Database.SSLMode,
	)
}
