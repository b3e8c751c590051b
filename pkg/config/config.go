// Package config handles loading and saving tm configuration.
//
// Configuration follows the XDG Base Directory specification:
//   - Config: ~/.config/tm/config.yaml
//
// Everything in the config has a sensible default, so tm runs without a
// config file at all.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// StorageConfig locates the persisted document and attachments.
type StorageConfig struct {
	DataPath  string `yaml:"data_path,omitempty"`  // tenders.json location
	AttachDir string `yaml:"attach_dir,omitempty"` // attachments directory
}

// UIConfig holds UI preference settings.
type UIConfig struct {
	DefaultStageFilter string `yaml:"default_stage_filter,omitempty"` // "All" or a stage name
	Accessible         bool   `yaml:"accessible,omitempty"`           // Force accessible forms
}

// Config is the top-level configuration for tm.
type Config struct {
	Storage  StorageConfig `yaml:"storage,omitempty"`
	Operator string        `yaml:"operator,omitempty"` // recorded as last_modified_by on submissions
	UI       UIConfig      `yaml:"ui,omitempty"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Storage: StorageConfig{
			DataPath:  filepath.Join("data", "tenders.json"),
			AttachDir: filepath.Join("data", "attachments"),
		},
		Operator: "Tender Desk",
		UI: UIConfig{
			DefaultStageFilter: "All",
		},
	}
}

// ConfigDir returns the XDG config directory for tm.
func ConfigDir() string {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, "tm")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "tm")
}

// ConfigPath returns the full path to config.yaml.
func ConfigPath() string {
	dir := ConfigDir()
	if dir == "" {
		return ""
	}
	return filepath.Join(dir, "config.yaml")
}

// Load reads the config file from the XDG config directory.
// Returns DefaultConfig if the file doesn't exist.
func Load() (Config, error) {
	path := ConfigPath()
	if path == "" {
		return DefaultConfig(), nil
	}
	return LoadFrom(path)
}

// LoadFrom reads config from a specific path.
// Returns DefaultConfig if the file doesn't exist.
func LoadFrom(path string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config: %w", err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config: %w", err)
	}

	cfg.Storage.DataPath = expandHome(cfg.Storage.DataPath)
	cfg.Storage.AttachDir = expandHome(cfg.Storage.AttachDir)

	if cfg.Operator == "" {
		cfg.Operator = "Tender Desk"
	}
	if cfg.UI.DefaultStageFilter == "" {
		cfg.UI.DefaultStageFilter = "All"
	}

	return cfg, nil
}

// Save writes the config to the XDG config directory.
func Save(cfg Config) error {
	path := ConfigPath()
	if path == "" {
		return fmt.Errorf("cannot determine config directory")
	}
	return SaveTo(cfg, path)
}

// SaveTo writes the config to a specific path.
func SaveTo(cfg Config, path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	return nil
}

func expandHome(path string) string {
	if !strings.HasPrefix(path, "~") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[1:])
}
