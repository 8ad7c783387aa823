package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Environment variables that override file settings.
const (
	EnvLogLevel       = "HOMEHUB_LOG_LEVEL"
	EnvStorageBackend = "HOMEHUB_STORAGE_BACKEND"
	EnvStoragePath    = "HOMEHUB_STORAGE_PATH"
	EnvServerPort     = "HOMEHUB_SERVER_PORT"
	EnvFluentEnabled  = "HOMEHUB_FLUENT_ENABLED"
)

// LoadEnvFile loads KEY=VALUE pairs from a dotenv file into the process
// environment. Variables that are already set are left alone. A missing
// file is not an error.
func LoadEnvFile(path string) error {
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("loading env file %s: %w", path, err)
	}
	return nil
}

// ApplyEnv overlays HOMEHUB_* variables onto cfg. Values that fail to parse
// keep the current setting.
func ApplyEnv(cfg *Config) {
	cfg.Logging.Level = getEnvAsString(EnvLogLevel, cfg.Logging.Level)
	cfg.Storage.Backend = getEnvAsString(EnvStorageBackend, cfg.Storage.Backend)
	cfg.Storage.Path = getEnvAsString(EnvStoragePath, cfg.Storage.Path)
	cfg.Server.Port = getEnvAsInt(EnvServerPort, cfg.Server.Port)
	cfg.Logging.Fluent.Enabled = getEnvAsBool(EnvFluentEnabled, cfg.Logging.Fluent.Enabled)
}

func getEnvAsString(key string, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists && value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}

	valueInt, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return valueInt
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valStr, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}

	valBool, err := strconv.ParseBool(valStr)
	if err != nil {
		return defaultValue
	}
	return valBool
}
