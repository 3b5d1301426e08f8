// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config provides configuration loading for the securebank TUI.
//
// Supports both TOML and JSON configuration formats, with sensible defaults,
// environment variable overrides, and validation.
//
// Configuration file locations (in order of precedence):
//   - ~/.securebank/config.toml
//   - ~/.securebank/config.json
//   - Built-in defaults
package config

import (
	"encoding/json"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

// =============================================================================
// CONFIG STRUCTURES
// =============================================================================

// Config represents the complete securebank client configuration.
type Config struct {
	API     APIConfig     `toml:"api" json:"api"`
	Storage StorageConfig `toml:"storage" json:"storage"`
	UI      UIConfig      `toml:"ui" json:"ui"`
}

// APIConfig contains the remote banking service endpoints.
type APIConfig struct {
	// CustomerBaseURL is the base URL of the customer service
	CustomerBaseURL string `toml:"customer_base_url" json:"customer_base_url"`
	// AccountBaseURL is the base URL of the account service
	AccountBaseURL string `toml:"account_base_url" json:"account_base_url"`
	// TimeoutSecs is the per-request timeout in seconds
	TimeoutSecs int `toml:"timeout_secs" json:"timeout_secs"`
}

// StorageConfig controls where the persisted session record lives.
type StorageConfig struct {
	// Backend selects the storage implementation: "file" or "sqlite"
	Backend string `toml:"backend" json:"backend"`
	// Dir is the storage directory (empty = ~/.securebank/state)
	Dir string `toml:"dir" json:"dir"`
}

// UIConfig contains display options.
type UIConfig struct {
	// CompactMode reduces vertical padding in views
	CompactMode bool `toml:"compact_mode" json:"compact_mode"`
	// ShowRequestIDs displays the request correlation ID next to errors
	ShowRequestIDs bool `toml:"show_request_ids" json:"show_request_ids"`
}

// =============================================================================
// DEFAULTS
// =============================================================================

// Default returns the built-in default configuration.
func Default() *Config {
	return &Config{
		API: APIConfig{
			CustomerBaseURL: "http://localhost:8090/customer",
			AccountBaseURL:  "http://localhost:8090/account",
			TimeoutSecs:     15,
		},
		Storage: StorageConfig{
			Backend: "file",
		},
		UI: UIConfig{},
	}
}

// fillDefaults replaces zero values with defaults after decoding a file.
func fillDefaults(cfg *Config) {
	def := Default()
	if cfg.API.CustomerBaseURL == "" {
		cfg.API.CustomerBaseURL = def.API.CustomerBaseURL
	}
	if cfg.API.AccountBaseURL == "" {
		cfg.API.AccountBaseURL = def.API.AccountBaseURL
	}
	if cfg.API.TimeoutSecs == 0 {
		cfg.API.TimeoutSecs = def.API.TimeoutSecs
	}
	if cfg.Storage.Backend == "" {
		cfg.Storage.Backend = def.Storage.Backend
	}
}

// =============================================================================
// PATHS
// =============================================================================

// ConfigDir returns the securebank configuration directory.
func ConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("could not determine home directory: %w", err)
	}
	return filepath.Join(home, ".securebank"), nil
}

// ConfigPathTOML returns the path to the TOML config file.
func ConfigPathTOML() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// ConfigPathJSON returns the path to the JSON config file.
func ConfigPathJSON() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}

// StateDir returns the storage directory for cfg, falling back to the
// default under the config dir.
func (c *Config) StateDir() (string, error) {
	if c.Storage.Dir != "" {
		return c.Storage.Dir, nil
	}
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "state"), nil
}

// =============================================================================
// LOAD FUNCTIONS
// =============================================================================

// Load loads configuration from the config file(s).
// Tries TOML first, then JSON, and falls back to defaults.
// Environment overrides are applied last.
func Load() (*Config, error) {
	cfg := Default()

	tomlPath, err := ConfigPathTOML()
	if err == nil {
		if _, statErr := os.Stat(tomlPath); statErr == nil {
			if err := LoadTOML(cfg, tomlPath); err != nil {
				return nil, err
			}
			return finish(cfg)
		}
	}

	jsonPath, err := ConfigPathJSON()
	if err == nil {
		if _, statErr := os.Stat(jsonPath); statErr == nil {
			if err := LoadJSON(cfg, jsonPath); err != nil {
				return nil, err
			}
			return finish(cfg)
		}
	}

	return finish(cfg)
}

// finish applies env overrides, fills defaults, and validates.
func finish(cfg *Config) (*Config, error) {
	cfg.ApplyEnvOverrides()
	fillDefaults(cfg)
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// LoadTOML loads configuration from a TOML file.
func LoadTOML(cfg *Config, path string) error {
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return fmt.Errorf("failed to decode TOML file: %w", err)
	}
	return nil
}

// LoadJSON loads configuration from a JSON file.
func LoadJSON(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read JSON file: %w", err)
	}
	if err := json.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("failed to decode JSON file: %w", err)
	}
	return nil
}

// LoadFromPath loads configuration from an explicit file path, picking the
// decoder from the extension.
func LoadFromPath(path string) (*Config, error) {
	cfg := Default()
	var err error
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		err = LoadTOML(cfg, path)
	case ".json":
		err = LoadJSON(cfg, path)
	default:
		err = fmt.Errorf("unsupported config format: %s", filepath.Ext(path))
	}
	if err != nil {
		return nil, err
	}
	return finish(cfg)
}

// =============================================================================
// ENVIRONMENT OVERRIDES
// =============================================================================

// ApplyEnvOverrides applies SECUREBANK_* environment variables on top of
// whatever was loaded from disk.
func (c *Config) ApplyEnvOverrides() {
	if v := os.Getenv("SECUREBANK_CUSTOMER_URL"); v != "" {
		c.API.CustomerBaseURL = v
	}
	if v := os.Getenv("SECUREBANK_ACCOUNT_URL"); v != "" {
		c.API.AccountBaseURL = v
	}
	if v := os.Getenv("SECUREBANK_STORAGE_BACKEND"); v != "" {
		c.Storage.Backend = v
	}
	if v := os.Getenv("SECUREBANK_STORAGE_DIR"); v != "" {
		c.Storage.Dir = v
	}
}

// =============================================================================
// VALIDATION
// =============================================================================

// ValidationError describes a single invalid config field.
type ValidationError struct {
	Field   string
	Message string
}

// Error implements the error interface.
func (e ValidationError) Error() string {
	return e.Field + ": " + e.Message
}

// Validate checks the configuration for consistency.
func (c *Config) Validate() error {
	for _, ep := range []struct {
		field string
		value string
	}{
		{"api.customer_base_url", c.API.CustomerBaseURL},
		{"api.account_base_url", c.API.AccountBaseURL},
	} {
		u, err := url.Parse(ep.value)
		if err != nil || u.Scheme == "" || u.Host == "" {
			return ValidationError{Field: ep.field, Message: "must be an absolute http(s) URL"}
		}
		if u.Scheme != "http" && u.Scheme != "https" {
			return ValidationError{Field: ep.field, Message: "scheme must be http or https"}
		}
	}

	if c.API.TimeoutSecs < 0 {
		return ValidationError{Field: "api.timeout_secs", Message: "must not be negative"}
	}

	switch c.Storage.Backend {
	case "file", "sqlite", "memory":
	default:
		return ValidationError{Field: "storage.backend", Message: "must be one of: file, sqlite, memory"}
	}

	return nil
}

// =============================================================================
// SAVE
// =============================================================================

// Save writes the configuration as TOML to the default location.
func Save(cfg *Config) error {
	dir, err := ConfigDir()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	path := filepath.Join(dir, "config.toml")
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
	if err != nil {
		return fmt.Errorf("failed to open config file: %w", err)
	}
	defer f.Close()

	if err := toml.NewEncoder(f).Encode(cfg); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	return nil
}
