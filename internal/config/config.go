package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v10"
)

// Config holds all environment backed configuration for the gateway.
type Config struct {
	ServiceName string `env:"SERVICE_NAME" envDefault:"llm-gateway"`
	Environment string `env:"ENVIRONMENT" envDefault:"development"`

	// Providers
	ProvidersConfigFile string           `env:"PROVIDERS_CONFIG_FILE"`
	Providers           *ProvidersConfig `env:"-"`

	// Logging
	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"console"`

	// Internal
	EnvReloadedAt time.Time
}

// Load parses environment variables into Config and resolves the active
// providers configuration: the file named by PROVIDERS_CONFIG_FILE when set,
// the embedded default dataset otherwise.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	cfg.ProvidersConfigFile = strings.TrimSpace(cfg.ProvidersConfigFile)
	if cfg.ProvidersConfigFile != "" {
		providers, err := LoadProvidersConfig(cfg.ProvidersConfigFile)
		if err != nil {
			return nil, fmt.Errorf("load providers config: %w", err)
		}
		cfg.Providers = providers
	} else {
		cfg.Providers = DefaultProvidersConfig()
	}

	cfg.LogLevel = strings.ToLower(cfg.LogLevel)
	cfg.LogFormat = strings.ToLower(cfg.LogFormat)
	cfg.EnvReloadedAt = time.Now()

	return cfg, nil
}

// Version is stamped at build time via -ldflags.
var Version = "dev"
