package config

import (
	"fmt"
	"os"
	"strconv"
)

// Config holds all runtime configuration, populated from the environment.
type Config struct {
	Server        ServerConfig
	Database      DatabaseConfig
	Observability ObservabilityConfig
}

type ServerConfig struct {
	Port               int
	Environment        string
	RateLimitPerMinute int
	RateLimitBurst     int
}

type DatabaseConfig struct {
	URL      string
	Host     string
	Port     int
	User     string
	Password string
	Name     string
	SSLMode  string
}

type ObservabilityConfig struct {
	MetricsEnabled bool
}

// DSN returns the Postgres connection string. DATABASE_URL wins when set;
// the discrete DB_* variables are the local-development fallback.
func (d DatabaseConfig) DSN() string {
	if d.URL != "" {
		return d.URL
	}
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.Name, d.SSLMode)
}

// Load reads configuration from the environment with development defaults.
func Load() (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Port:               envInt("PORT", 3001),
			Environment:        envString("APP_ENV", "development"),
			RateLimitPerMinute: envInt("RATE_LIMIT_PER_MINUTE", 60),
			RateLimitBurst:     envInt("RATE_LIMIT_BURST", 20),
		},
		Database: DatabaseConfig{
			URL:      os.Getenv("DATABASE_URL"),
			Host:     envString("DB_HOST", "localhost"),
			Port:     envInt("DB_PORT", 5432),
			User:     envString("DB_USER", "postgres"),
			Password: envString("DB_PASSWORD", "postgres"),
			Name:     envString("DB_NAME", "citydata"),
			SSLMode:  envString("DB_SSLMODE", "disable"),
		},
		Observability: ObservabilityConfig{
			MetricsEnabled: envBool("METRICS_ENABLED", true),
		},
	}

	if cfg.Server.Port <= 0 || cfg.Server.Port > 65535 {
		return nil, fmt.Errorf("invalid PORT %d", cfg.Server.Port)
	}

	return cfg, nil
}

func envString(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

func envBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return b
}
