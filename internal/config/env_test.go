package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplyEnv_OverridesFileValues(t *testing.T) {
	t.Setenv(EnvLogLevel, "debug")
	t.Setenv(EnvStorageBackend, "memory")
	t.Setenv(EnvStoragePath, "/tmp/homehub-env")
	t.Setenv(EnvServerPort, "9100")
	t.Setenv(EnvFluentEnabled, "true")

	cfg := DefaultConfig()
	ApplyEnv(cfg)

	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "memory", cfg.Storage.Backend)
	assert.Equal(t, "/tmp/homehub-env", cfg.Storage.Path)
	assert.Equal(t, 9100, cfg.Server.Port)
	assert.True(t, cfg.Logging.Fluent.Enabled)
}

func TestApplyEnv_MalformedValuesKeepCurrent(t *testing.T) {
	t.Setenv(EnvServerPort, "eighty")
	t.Setenv(EnvFluentEnabled, "sometimes")

	cfg := DefaultConfig()
	ApplyEnv(cfg)

	assert.Equal(t, 8731, cfg.Server.Port)
	assert.False(t, cfg.Logging.Fluent.Enabled)
}

func TestLoad_EnvWinsOverYAML(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("logging:\n  level: warn\n"), 0644))

	t.Setenv(EnvLogLevel, "error")

	cfg, err := Load(cfgPath)
	require.NoError(t, err)
	assert.Equal(t, "error", cfg.Logging.Level)
}

func TestLoadEnvFile_MissingFileIsNotAnError(t *testing.T) {
	err := LoadEnvFile(filepath.Join(t.TempDir(), ".env"))
	assert.NoError(t, err)
}

func TestLoadEnvFile_SetsVariables(t *testing.T) {
	dir := t.TempDir()
	envPath := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(envPath, []byte("HOMEHUB_TEST_ONLY_VAR=from-dotenv\n"), 0644))
	t.Cleanup(func() { os.Unsetenv("HOMEHUB_TEST_ONLY_VAR") })

	require.NoError(t, LoadEnvFile(envPath))
	assert.Equal(t, "from-dotenv", os.Getenv("HOMEHUB_TEST_ONLY_VAR"))
}
