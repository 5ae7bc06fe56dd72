package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"
)

const (
	DriverPostgres = "postgres"
	DriverPgx      = "pgx"
)

type Config struct {
	Port string

	PostgresAddress  string
	PostgresPort     string
	PostgresDB       string
	PostgresUsername string
	PostgresPassword string
	PostgresSSLMode  string
	DatabaseDriver   string

	RoutePrefix     string
	SessionMaxAge   time.Duration
	LogLevel        string
	ShutdownTimeout time.Duration
}

// In all cases the default behavior should be for the docker compose setup.
var defaults = map[string]interface{}{
	"port":              "3333",
	"postgres_address":  "localhost",
	"postgres_port":     "5433",
	"postgres_db":       "postgres",
	"postgres_username": "postgres",
	"postgres_password": "testpassword",
	"postgres_sslmode":  "disable",
	"database_driver":   DriverPostgres,
	"route_prefix":      "",
	"session_max_age":   "168h",
	"log_level":         "info",
	"shutdown_timeout":  "10s",
}

func ProcessEnvironmentVariables() (*Config, error) {
	// A missing .env is the normal case outside local development.
	_ = godotenv.Load()

	return load()
}

func load() (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(confmap.Provider(defaults, "."), nil); err != nil {
		return nil, fmt.Errorf("config: load defaults: %w", err)
	}

	// Unset and empty variables keep their defaults.
	err := k.Load(env.ProviderWithValue("", ".", func(name string, value string) (string, interface{}) {
		key := strings.ToLower(name)
		if _, ok := defaults[key]; !ok || len(value) == 0 {
			return "", nil
		}
		return key, value
	}), nil)
	if err != nil {
		return nil, fmt.Errorf("config: load environment: %w", err)
	}

	cfg := Config{
		Port:             k.String("port"),
		PostgresAddress:  k.String("postgres_address"),
		PostgresPort:     k.String("postgres_port"),
		PostgresDB:       k.String("postgres_db"),
		PostgresUsername: k.String("postgres_username"),
		PostgresPassword: k.String("postgres_password"),
		PostgresSSLMode:  k.String("postgres_sslmode"),
		DatabaseDriver:   strings.ToLower(k.String("database_driver")),
		RoutePrefix:      strings.TrimSuffix(k.String("route_prefix"), "/"),
		SessionMaxAge:    k.Duration("session_max_age"),
		LogLevel:         k.String("log_level"),
		ShutdownTimeout:  k.Duration("shutdown_timeout"),
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *Config) validate() error {
	if c.Port == "" {
		return errors.New("config: PORT must be set")
	}
	if c.DatabaseDriver != DriverPostgres && c.DatabaseDriver != DriverPgx {
		return fmt.Errorf("config: unsupported DATABASE_DRIVER %q", c.DatabaseDriver)
	}
	if c.SessionMaxAge <= 0 {
		return errors.New("config: SESSION_MAX_AGE must be a positive duration")
	}
	if c.RoutePrefix != "" && !strings.HasPrefix(c.RoutePrefix, "/") {
		return fmt.Errorf("config: ROUTE_PREFIX %q must start with /", c.RoutePrefix)
	}
	return nil
}

// PostgresURL is the connection string shared by the server and the migration script.
func (c *Config) PostgresURL() string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.PostgresUsername, c.PostgresPassword),
		Host:     c.PostgresAddress + ":" + c.PostgresPort,
		Path:     "/" + c.PostgresDB,
		RawQuery: "sslmode=" + url.QueryEscape(c.PostgresSSLMode),
	}
	return u.String()
}
