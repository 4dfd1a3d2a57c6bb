// File: internal/config/config.go
package config

import (
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all configuration for the application.
type Config struct {
	// Server Configuration
	GinMode       string        `mapstructure:"GIN_MODE"`
	ServerHost    string        `mapstructure:"SERVER_HOST"`
	ServerPort    string        `mapstructure:"SERVER_PORT"`
	ServerTimeout time.Duration `mapstructure:"-"` // SERVER_TIMEOUT_SECONDS

	// Logging Configuration
	LogLevel  string `mapstructure:"LOG_LEVEL"`
	LogFormat string `mapstructure:"LOG_FORMAT"`

	// Upstream REST service
	UpstreamBaseURL string        `mapstructure:"UPSTREAM_BASE_URL"`
	UpstreamTimeout time.Duration `mapstructure:"-"` // UPSTREAM_TIMEOUT_SECONDS

	// Registration field mapping
	DefaultPhoneRegion string `mapstructure:"DEFAULT_PHONE_REGION"`

	// PIN flow
	PinResendCooldownSeconds int `mapstructure:"PIN_RESEND_COOLDOWN_SECONDS"`

	// Sessions
	SessionTTL           time.Duration `mapstructure:"-"` // SESSION_TTL_HOURS
	SessionSweepSchedule string        `mapstructure:"SESSION_SWEEP_SCHEDULE"`

	// Rate limiting for /api and /api/v1
	RateLimitRequests int           `mapstructure:"RATE_LIMIT_REQUESTS"`
	RateLimitInterval time.Duration `mapstructure:"-"` // RATE_LIMIT_INTERVAL_SECONDS

	// CORS
	CORSAllowedOrigins []string `mapstructure:"CORS_ALLOWED_ORIGINS"`
}

// Load attempts to load configuration from a .env file (if present) and environment variables.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("error loading .env file: %w", err)
		}
	}

	v := viper.New()
	setDefaults(v)
	v.AutomaticEnv()

	return fromViper(v)
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("GIN_MODE", "debug")
	v.SetDefault("SERVER_HOST", "0.0.0.0")
	v.SetDefault("SERVER_PORT", "8080")
	v.SetDefault("SERVER_TIMEOUT_SECONDS", 30)

	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "console")

	v.SetDefault("UPSTREAM_BASE_URL", "https://nutrisnap.climdesdata.com/api/v1")
	v.SetDefault("UPSTREAM_TIMEOUT_SECONDS", 10)

	v.SetDefault("DEFAULT_PHONE_REGION", "US")
	v.SetDefault("PIN_RESEND_COOLDOWN_SECONDS", 60)

	v.SetDefault("SESSION_TTL_HOURS", 24)
	v.SetDefault("SESSION_SWEEP_SCHEDULE", "@every 5m")

	v.SetDefault("RATE_LIMIT_REQUESTS", 20)
	v.SetDefault("RATE_LIMIT_INTERVAL_SECONDS", 60)

	v.SetDefault("CORS_ALLOWED_ORIGINS", "*")
}

func fromViper(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshalling configuration: %w", err)
	}

	// Duration settings are whole numbers of seconds or hours, not Go duration strings
	cfg.ServerTimeout = time.Duration(v.GetInt("SERVER_TIMEOUT_SECONDS")) * time.Second
	cfg.UpstreamTimeout = time.Duration(v.GetInt("UPSTREAM_TIMEOUT_SECONDS")) * time.Second
	cfg.SessionTTL = time.Duration(v.GetInt("SESSION_TTL_HOURS")) * time.Hour
	cfg.RateLimitInterval = time.Duration(v.GetInt("RATE_LIMIT_INTERVAL_SECONDS")) * time.Second

	// Env vars arrive as a single comma separated string
	cfg.CORSAllowedOrigins = splitList(v.GetString("CORS_ALLOWED_ORIGINS"))
	cfg.UpstreamBaseURL = strings.TrimRight(strings.TrimSpace(cfg.UpstreamBaseURL), "/")

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	u, err := url.Parse(c.UpstreamBaseURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("FATAL: UPSTREAM_BASE_URL (%q) must be an absolute http(s) URL", c.UpstreamBaseURL)
	}
	if c.UpstreamTimeout <= 0 {
		return fmt.Errorf("FATAL: UPSTREAM_TIMEOUT_SECONDS must be positive")
	}
	if c.PinResendCooldownSeconds < 0 {
		return fmt.Errorf("FATAL: PIN_RESEND_COOLDOWN_SECONDS must not be negative")
	}
	return nil
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
