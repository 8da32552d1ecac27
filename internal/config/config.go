// internal/config/config.go
package config

import (
	"errors"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application.
type Config struct {
	LogLevel      string        `mapstructure:"LOG_LEVEL"`
	DBURL         string        `mapstructure:"DB_URL"`
	GithubToken   string        `mapstructure:"GITHUB_TOKEN"`
	HTTPAddr      string        `mapstructure:"HTTP_ADDR"`
	GithubTimeout time.Duration `mapstructure:"GITHUB_TIMEOUT"`
}

// LoadConfig reads configuration from file and/or environment variables.
// GITHUB_TOKEN is intentionally optional: without it the service still works
// against GitHub's unauthenticated rate limit.
func LoadConfig() (*Config, error) {
	// Set default values
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("HTTP_ADDR", ":8080")
	viper.SetDefault("GITHUB_TIMEOUT", "20s")

	// Load from .env file if it exists
	viper.SetConfigName(".env")
	viper.SetConfigType("env")
	viper.AddConfigPath(".")
	_ = viper.ReadInConfig() // Ignore error if file not found

	// Bind environment variables
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	// Validate required fields
	if cfg.DBURL == "" {
		return nil, errors.New("DB_URL is a required configuration field")
	}
	if cfg.GithubTimeout <= 0 {
		return nil, errors.New("GITHUB_TIMEOUT must be a positive duration")
	}

	return &cfg, nil
}
