package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	env "github.com/caarlos0/env/v7"
	"github.com/joho/godotenv"
)

// Config holds everything the portal needs at startup. Values come from the
// environment, optionally seeded from a .env file.
type Config struct {
	Env     string `env:"PORTAL_ENV" envDefault:"DEV"`
	AppName string `env:"APP_NAME" envDefault:"ERP Portal"`
	Port    string `env:"PORT" envDefault:"8080"`

	APIBaseURL  string        `env:"ERP_API_BASE_URL" envDefault:"http://localhost:9000"`
	APITimeout  time.Duration `env:"ERP_API_TIMEOUT" envDefault:"10s"`
	APIRetryMax int           `env:"ERP_API_RETRY_MAX" envDefault:"3"`

	SessionCookieName string        `env:"SESSION_COOKIE_NAME" envDefault:"portal_session"`
	SessionTTL        time.Duration `env:"SESSION_TTL" envDefault:"12h"`

	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`
}

// New loads configuration from envPath (ignored when the file does not exist)
// and then from the process environment.
func New(envPath string) (Config, error) {
	var c Config

	err := godotenv.Load(envPath)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, fmt.Errorf("load env file: %w", err)
	}

	if err := env.Parse(&c); err != nil {
		return Config{}, fmt.Errorf("parse environment: %w", err)
	}

	return c, nil
}

// Addr returns the listen address for the HTTP server.
func (c Config) Addr() string {
	if len(c.Port) > 0 && c.Port[0] == ':' {
		return c.Port
	}
	return ":" + c.Port
}

// IsDev reports whether the portal runs in development mode.
func (c Config) IsDev() bool {
	return c.Env == "DEV"
}
