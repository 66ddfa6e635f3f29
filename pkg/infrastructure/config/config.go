// Package config loads CLI settings from an optional YAML file
package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/vsinha/ptconfig/pkg/infrastructure/logging"
)

// Config holds the settings shared by every command
type Config struct {
	Locale      string         `yaml:"locale" validate:"required,bcp47_language_tag"`
	Format      string         `yaml:"format" validate:"required,oneof=text json csv"`
	CatalogPath string         `yaml:"catalog_path" validate:"omitempty,file"`
	Log         logging.Config `yaml:"log"`
}

// Default returns the built-in settings
func Default() Config {
	return Config{
		Locale: "en",
		Format: "text",
		Log: logging.Config{
			Level:  "warn",
			Format: "console",
		},
	}
}

var validate = validator.New()

// Load reads filename over the defaults. A missing file is not an error when
// optional is true.
func Load(filename string, optional bool) (Config, error) {
	cfg := Default()
	if filename == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(filename)
	if err != nil {
		if optional && errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("failed to read config %s: %w", filename, err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config %s: %w", filename, err)
	}

	return cfg, Validate(cfg)
}

// Validate checks cfg against its field constraints
func Validate(cfg Config) error {
	if err := validate.Struct(cfg); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}
