package config

import (
	"golang.org/x/crypto/bcrypt"

	"jobly/pkg/config"
)

// Config holds the full configuration for the jobly service.
type Config struct {
	App      config.App      `mapstructure:"app"`
	Logger   config.Logger   `mapstructure:"logger"`
	Database config.Database `mapstructure:"database"`
	Security config.Security `mapstructure:"security"`
}

// Load loads the jobly configuration from the given path.
func Load(path string) (*Config, error) {
	var cfg Config
	if err := config.Load(path, &cfg); err != nil {
		return nil, err
	}
	if cfg.Security.BcryptWorkFactor == 0 {
		cfg.Security.BcryptWorkFactor = bcrypt.DefaultCost
	}
	return &cfg, nil
}
