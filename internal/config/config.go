package config

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

const (
	defaultJWTSecret  = "change-me-jwt-secret-32-characters"
	defaultCSRFSecret = "change-me-csrf-secret-32-characters"
)

type Config struct {
	AppEnv      string `env:"APP_ENV" envDefault:"dev"`
	Port        string `env:"PORT" envDefault:"4000"`
	DatabaseURL string `env:"DATABASE_URL" envDefault:"petcare.db"`

	FrontendOrigin string `env:"FRONTEND_URL" envDefault:"http://localhost:5173"`

	JWTSecret    string        `env:"JWT_SECRET" envDefault:"change-me-jwt-secret-32-characters"`
	JWTAccessTTL time.Duration `env:"JWT_ACCESS_TTL" envDefault:"15m"`
	JWTIssuer    string        `env:"JWT_ISSUER" envDefault:"petcare-api"`
	JWTAudience  string        `env:"JWT_AUDIENCE" envDefault:"petcare-app"`

	RefreshTTLDays int    `env:"REFRESH_TOKEN_TTL_DAYS" envDefault:"7"`
	CSRFSecret     string `env:"CSRF_SECRET" envDefault:"change-me-csrf-secret-32-characters"`

	CookiePath string `env:"COOKIE_PATH" envDefault:"/api/auth"`

	GoogleClientID     string `env:"GOOGLE_CLIENT_ID"`
	GoogleClientSecret string `env:"GOOGLE_CLIENT_SECRET"`
	FacebookAppID      string `env:"FACEBOOK_APP_ID"`

	// Requests per window, original rate limiter defaults.
	RateLimitGlobal int `env:"RATE_LIMIT_GLOBAL" envDefault:"300"`
	RateLimitAuth   int `env:"RATE_LIMIT_AUTH" envDefault:"20"`
}

// Load reads .env (if present) and the process environment.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	cfg.AppEnv = strings.ToLower(strings.TrimSpace(cfg.AppEnv))

	if err := validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Production() bool {
	return c.AppEnv == "prod" || c.AppEnv == "production" || c.AppEnv == "release"
}

// RefreshTTL is the refresh cookie and session lifetime.
func (c *Config) RefreshTTL() time.Duration {
	return time.Duration(c.RefreshTTLDays) * 24 * time.Hour
}

// CookieSecure and CookieSameSite follow the environment: strict+secure in
// production, lax otherwise.
func (c *Config) CookieSecure() bool { return c.Production() }

func (c *Config) CookieSameSite() http.SameSite {
	if c.Production() {
		return http.SameSiteStrictMode
	}
	return http.SameSiteLaxMode
}

// CSRFCookieName is __Host- prefixed in production so the cookie is locked to
// the origin host over HTTPS.
func (c *Config) CSRFCookieName() string {
	if c.Production() {
		return "__Host-csrf_token"
	}
	return "csrf_token"
}

func validate(c *Config) error {
	if c.JWTAccessTTL <= 0 {
		return fmt.Errorf("JWT_ACCESS_TTL must be > 0")
	}
	if c.RefreshTTLDays <= 0 {
		return fmt.Errorf("REFRESH_TOKEN_TTL_DAYS must be > 0")
	}
	if c.CookiePath == "" {
		return fmt.Errorf("COOKIE_PATH must not be empty")
	}

	if c.Production() {
		if isEmptyOrDefault(c.JWTSecret, defaultJWTSecret) {
			return fmt.Errorf("in prod JWT_SECRET must be set and not default")
		}
		if isEmptyOrDefault(c.CSRFSecret, defaultCSRFSecret) {
			return fmt.Errorf("in prod CSRF_SECRET must be set and not default")
		}
	}
	if len(c.JWTSecret) < 32 {
		return fmt.Errorf("JWT_SECRET must be at least 32 characters")
	}
	if len(c.CSRFSecret) < 32 {
		return fmt.Errorf("CSRF_SECRET must be at least 32 characters")
	}

	return nil
}

func isEmptyOrDefault(v, def string) bool {
	trimmed := strings.TrimSpace(v)
	return trimmed == "" || trimmed == def
}
