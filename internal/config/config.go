// Package config manages environment-driven configuration.
//
// Variables are read from the process environment (optionally seeded from
// a `.env` file via godotenv autoload), mapped into structured Go types
// with koanf, and validated so the app fails fast on broken config.
//
// Naming convention: the PROFILES_ prefix with a double underscore as the
// nesting delimiter, e.g.
//
//	PROFILES_SERVER__PORT        -> Config.Server.Port
//	PROFILES_DATABASE__PATH      -> Config.Database.Path
//	PROFILES_DATABASE__MAX_OPEN_CONNS -> Config.Database.MaxOpenConns
//
// Every value has a default except the ones that identify the storage
// location for the postgres driver.
package config

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	// Side-effect import: loads `.env` into the process env before any
	// variable is read.
	_ "github.com/joho/godotenv/autoload"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"
)

const envPrefix = "PROFILES_"

// Supported database drivers.
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// Config is the root configuration object for the application.
type Config struct {
	Primary  Primary        `koanf:"primary"`
	Server   ServerConfig   `koanf:"server"`
	Database DatabaseConfig `koanf:"database"`
}

// Primary holds top-level information about the runtime environment,
// used to tag logs and switch log formatting.
type Primary struct {
	Env string `koanf:"env" validate:"required,oneof=local development staging production"`
}

// ServerConfig groups settings for the HTTP server runtime. Timeouts are
// in seconds.
type ServerConfig struct {
	Port               string   `koanf:"port" validate:"required"`
	ReadTimeout        int      `koanf:"read_timeout" validate:"required,min=1"`
	WriteTimeout       int      `koanf:"write_timeout" validate:"required,min=1"`
	IdleTimeout        int      `koanf:"idle_timeout" validate:"required,min=1"`
	CORSAllowedOrigins []string `koanf:"cors_allowed_origins" validate:"required,min=1"`
}

// DatabaseConfig selects the storage engine and its connection location.
//
// Driver "sqlite" uses Path; driver "postgres" uses the connection
// fields. The pool settings apply to either.
type DatabaseConfig struct {
	Driver string `koanf:"driver" validate:"required,oneof=sqlite postgres"`

	// sqlite
	Path string `koanf:"path" validate:"required_if=Driver sqlite"`

	// postgres
	Host     string `koanf:"host" validate:"required_if=Driver postgres"`
	Port     int    `koanf:"port" validate:"required_if=Driver postgres"`
	User     string `koanf:"user" validate:"required_if=Driver postgres"`
	Password string `koanf:"password"`
	Name     string `koanf:"name" validate:"required_if=Driver postgres"`
	SSLMode  string `koanf:"ssl_mode"`

	MaxOpenConns    int `koanf:"max_open_conns" validate:"required,min=1"`
	MaxIdleConns    int `koanf:"max_idle_conns" validate:"required,min=1"`
	ConnMaxLifetime int `koanf:"conn_max_lifetime" validate:"required,min=1"`
	ConnMaxIdleTime int `koanf:"conn_max_idle_time" validate:"required,min=1"`
}

// New loads configuration from the environment, applies defaults,
// validates the result, and returns it.
func New() (*Config, error) {
	k := koanf.New(".")

	// Defaults first, so the environment only has to supply overrides.
	// The only thing a deployment must set is the storage location when
	// it is not the default sqlite file.
	cfg := &Config{
		Primary: Primary{Env: "local"},
		Server: ServerConfig{
			Port:               "8080",
			ReadTimeout:        15,
			WriteTimeout:       15,
			IdleTimeout:        60,
			CORSAllowedOrigins: []string{"*"},
		},
		Database: DatabaseConfig{
			Driver:          DriverSQLite,
			Path:            "profiles.db",
			SSLMode:         "disable",
			MaxOpenConns:    10,
			MaxIdleConns:    5,
			ConnMaxLifetime: 300,
			ConnMaxIdleTime: 60,
		},
	}

	// PROFILES_SERVER__PORT -> "server.port". A single underscore stays
	// part of the key ("max_open_conns"); the double underscore nests.
	err := k.Load(env.Provider(envPrefix, ".", func(s string) string {
		key := strings.ToLower(strings.TrimPrefix(s, envPrefix))
		return strings.ReplaceAll(key, "__", ".")
	}), nil)
	if err != nil {
		return nil, fmt.Errorf("loading environment variables: %w", err)
	}

	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}

	validate := validator.New()
	if err := validate.Struct(cfg); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return cfg, nil
}
