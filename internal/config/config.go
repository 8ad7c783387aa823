package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Default config file path.
const DefaultConfigPath = "~/.config/homehub/config.yaml"

// Storage backends understood by storage.Open.
const (
	BackendSQLite = "sqlite"
	BackendFile   = "file"
	BackendMemory = "memory"
)

// Config holds all homehub configuration.
type Config struct {
	Storage  StorageConfig  `yaml:"storage"`
	Catalog  CatalogConfig  `yaml:"catalog"`
	Logging  LoggingConfig  `yaml:"logging"`
	Server   ServerConfig   `yaml:"server"`
	Mortgage MortgageConfig `yaml:"mortgage"`
	Map      MapConfig      `yaml:"map"`
}

type StorageConfig struct {
	Backend       string `yaml:"backend"`
	Path          string `yaml:"path"`
	SQLiteFile    string `yaml:"sqlite_file"`
	FavoritesFile string `yaml:"favorites_file"`
	FavoritesKey  string `yaml:"favorites_key"`
}

// CatalogConfig points at an alternative property dataset. An empty
// Dataset selects the embedded one.
type CatalogConfig struct {
	Dataset string `yaml:"dataset"`
}

type LoggingConfig struct {
	Level  string       `yaml:"level"`
	JSON   bool         `yaml:"json"`
	Color  bool         `yaml:"color"`
	Fluent FluentConfig `yaml:"fluent"`
}

type FluentConfig struct {
	Enabled   bool   `yaml:"enabled"`
	Host      string `yaml:"host"`
	Port      int    `yaml:"port"`
	TagPrefix string `yaml:"tag_prefix"`
	Level     string `yaml:"level"`
}

type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

type MortgageConfig struct {
	LoanTermYears      int     `yaml:"loan_term_years"`
	InterestRate       float64 `yaml:"interest_rate"`
	DownPaymentPercent float64 `yaml:"down_payment_percent"`
}

type MapConfig struct {
	Precision uint `yaml:"precision"`
}

// Load reads a YAML config file at path, merges it with defaults and applies
// HOMEHUB_* environment overrides.
// Returns an error if the file cannot be read or contains invalid YAML.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	ApplyEnv(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate reports settings that no component can work with.
func (c *Config) Validate() error {
	switch c.Storage.Backend {
	case BackendSQLite, BackendFile, BackendMemory:
	default:
		return fmt.Errorf("invalid storage backend %q (want sqlite, file or memory)", c.Storage.Backend)
	}
	if c.Storage.FavoritesKey == "" {
		return fmt.Errorf("storage.favorites_key must not be empty")
	}
	if c.Server.Port < 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port %d", c.Server.Port)
	}
	if c.Map.Precision < 1 || c.Map.Precision > 12 {
		return fmt.Errorf("map precision must be between 1 and 12, got %d", c.Map.Precision)
	}
	return nil
}

// ResolvedPath returns the storage directory with ~ expanded.
func (s StorageConfig) ResolvedPath() (string, error) {
	return expandPath(s.Path)
}

// ResolvedDataset returns the dataset path with ~ expanded, or "" for the
// embedded dataset.
func (c CatalogConfig) ResolvedDataset() (string, error) {
	if c.Dataset == "" {
		return "", nil
	}
	return expandPath(c.Dataset)
}

// expandPath replaces a leading ~ with the user's home directory.
func expandPath(path string) (string, error) {
	if len(path) > 0 && path[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolving home directory: %w", err)
		}
		return filepath.Join(home, path[1:]), nil
	}
	return path, nil
}

// LoadOrCreate loads the config from the default path. If the file does
// not exist, it creates the directory structure and writes defaults.
func LoadOrCreate() (*Config, error) {
	path, err := expandPath(DefaultConfigPath)
	if err != nil {
		return nil, err
	}
	return LoadOrCreateAt(path)
}

// LoadOrCreateAt loads the config from the given path. If the file does
// not exist, it creates the directory structure and writes defaults.
func LoadOrCreateAt(path string) (*Config, error) {
	path, err := expandPath(path)
	if err != nil {
		return nil, err
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		cfg := DefaultConfig()

		dir := filepath.Dir(path)
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("creating config directory: %w", err)
		}

		data, err := yaml.Marshal(cfg)
		if err != nil {
			return nil, fmt.Errorf("marshaling default config: %w", err)
		}

		if err := os.WriteFile(path, data, 0644); err != nil {
			return nil, fmt.Errorf("writing default config: %w", err)
		}

		// The file holds plain defaults; the environment still wins.
		ApplyEnv(cfg)
		if err := cfg.Validate(); err != nil {
			return nil, err
		}
		return cfg, nil
	}

	return Load(path)
}
