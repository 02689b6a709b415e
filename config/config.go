package config

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/go-playground/validator/v10"
)

type Config struct {
	Env      string `env:"ENV" envDefault:"local" validate:"required,oneof=local staging production"`
	Port     string `env:"PORT" envDefault:"8080" validate:"required"`
	LogLevel string `env:"LOG_LEVEL" envDefault:"info" validate:"oneof=debug info warn error"`

	MetricsPort string `env:"METRICS_PORT" envDefault:"9090"`

	MongoURI      string `env:"MONGO_URI,required" validate:"required"`
	MongoDatabase string `env:"MONGO_DATABASE"     envDefault:"unighana"`

	// Self-issued session tokens. One unified TTL covers both the password
	// and the federated login path.
	JWTSecret       string        `env:"JWT_SECRET,required" validate:"required,min=32"`
	SessionTokenTTL time.Duration `env:"SESSION_TOKEN_TTL"   envDefault:"2h"`

	// Managed identity provider: account records and password verification.
	IdentityBaseURL string `env:"IDENTITY_BASE_URL" envDefault:"https://identitytoolkit.googleapis.com"`
	IdentityAPIKey  string `env:"IDENTITY_API_KEY,required" validate:"required"`

	ResendAPIKey string `env:"RESEND_API_KEY" validate:"required_if=Env production,required_if=Env staging"`
	ResendFrom   string `env:"RESEND_FROM"    validate:"required_if=Env production,required_if=Env staging"`

	GoogleClientID     string `env:"GOOGLE_CLIENT_ID"     validate:"required_if=Env production,required_if=Env staging"`
	GoogleClientSecret string `env:"GOOGLE_CLIENT_SECRET" validate:"required_if=Env production,required_if=Env staging"`
	OAuthCallbackURL   string `env:"OAUTH_CALLBACK_URL"   envDefault:"http://localhost:8080/auth/google/callback"`
	FrontendBaseURL    string `env:"FRONTEND_BASE_URL"    envDefault:"http://localhost:3000"`

	AdmissionPageURL string `env:"ADMISSION_PAGE_URL" envDefault:"https://www.knust.edu.gh/announcements/undergraduate-admissions/admission-candidates-undergraduate-degree-programmes-20252026-academic-year"`
	AdmissionRefresh string `env:"ADMISSION_REFRESH_SCHEDULE" envDefault:"@every 6h"`
}

func Load() (*Config, error) {
	cfg := &Config{}

	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

func (c *Config) SlogLevel() slog.Level {
	switch c.LogLevel {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
