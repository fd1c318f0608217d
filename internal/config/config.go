// Package config loads and saves the tool configuration, a JSON file in the
// per-user config directory.
package config

import (
	"fmt"

	"github.com/aip-heidelberg/codeeval/internal/application"
	"github.com/aip-heidelberg/codeeval/internal/encoding"
	"github.com/aip-heidelberg/codeeval/internal/model"
)

// Load returns the saved configuration, or defaults when none exists yet.
func Load() (model.Config, error) {
	path, err := application.ConfigPath()
	if err != nil {
		return model.Config{}, err
	}

	return LoadFrom(path)
}

// LoadFrom reads the configuration from an explicit path.
func LoadFrom(path string) (model.Config, error) {
	cfg, err := encoding.LoadJSON[model.Config](path)
	if err != nil {
		return model.Config{}, fmt.Errorf("loading configuration: %w", err)
	}

	if cfg == nil {
		return model.DefaultConfig(), nil
	}

	return *cfg, nil
}

// Save persists the configuration.
func Save(cfg model.Config) error {
	path, err := application.ConfigPath()
	if err != nil {
		return err
	}

	return SaveTo(path, cfg)
}

// SaveTo writes the configuration to an explicit path.
func SaveTo(path string, cfg model.Config) error {
	if err := encoding.SaveJSON(path, cfg); err != nil {
		return fmt.Errorf("saving configuration: %w", err)
	}

	return nil
}
