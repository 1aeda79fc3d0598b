// Copyright 2026 The Estatedeck Authors
// SPDX-License-Identifier: Apache-2.0

// Package config provides configuration loading for estatedeck.
//
// Configuration is loaded from a single YAML file specified by:
//   - ESTATEDECK_CONFIG environment variable, or
//   - --config flag passed to the command
//
// There are no fallbacks or automatic discovery; with no file, the
// built-in defaults apply and the API URL must come from --api-url.
package config

import (
	"fmt"
	"net/url"
	"os"

	"gopkg.in/yaml.v3"
)

// DefaultAPIBaseURL is the hosted service origin, used when neither
// the config file nor --api-url overrides it.
const DefaultAPIBaseURL = "https://real-state-bk.onrender.com/api"

// Config is the full configuration for the console.
type Config struct {
	// APIBaseURL is the management API origin including any path
	// prefix.
	APIBaseURL string `yaml:"api_base_url"`

	// SessionFile overrides where the auth token persists.
	SessionFile string `yaml:"session_file,omitempty"`

	// PrefsFile overrides where UI preferences persist.
	PrefsFile string `yaml:"prefs_file,omitempty"`

	// Theme forces "dark" or "light", overriding both the persisted
	// preference and terminal detection. Empty means no override.
	Theme string `yaml:"theme,omitempty"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{APIBaseURL: DefaultAPIBaseURL}
}

// Load reads the configuration file at path. An empty path consults
// ESTATEDECK_CONFIG; if that is also empty, defaults are returned
// without touching the filesystem.
func Load(path string) (Config, error) {
	if path == "" {
		path = os.Getenv("ESTATEDECK_CONFIG")
	}
	if path == "" {
		return Default(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: reading %s: %w", path, err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: parsing %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("config: %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks field values. Called by Load and again after flag
// overrides are applied.
func (cfg Config) Validate() error {
	if cfg.APIBaseURL == "" {
		return fmt.Errorf("api_base_url is required")
	}
	if _, err := url.Parse(cfg.APIBaseURL); err != nil {
		return fmt.Errorf("invalid api_base_url %q: %w", cfg.APIBaseURL, err)
	}
	switch cfg.Theme {
	case "", "dark", "light":
	default:
		return fmt.Errorf("theme must be \"dark\" or \"light\", got %q", cfg.Theme)
	}
	return nil
}
