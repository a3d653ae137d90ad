package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// chdir switches to a temp dir so project-local ultrai.yml lookups are isolated.
func chdir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	old, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(old) })
	return dir
}

func TestLoad_Defaults(t *testing.T) {
	chdir(t)
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:8085", cfg.BackendURL)
	assert.Equal(t, "gut", cfg.Pattern)
	assert.Equal(t, "txt", cfg.OutputFormat)
	assert.Equal(t, 2, cfg.MinModels)
	assert.Equal(t, 10.0, cfg.EstTokensK)
	assert.Equal(t, ".ultrai", cfg.DataDir)
	assert.Equal(t, "info", cfg.LogLevel)
}

func TestLoad_EnvOverridesDefaults(t *testing.T) {
	chdir(t)
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("ULTRAI_BACKEND_URL", "http://api.example.com")
	t.Setenv("ULTRAI_MIN_MODELS", "3")
	t.Setenv("ULTRAI_EST_TOKENS", "25")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "http://api.example.com", cfg.BackendURL)
	assert.Equal(t, 3, cfg.MinModels)
	assert.Equal(t, 25.0, cfg.EstTokensK)
}

func TestLoad_ProjectConfigOverridesGlobal(t *testing.T) {
	dir := chdir(t)
	xdg := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", xdg)

	globalDir := filepath.Join(xdg, "ultrai")
	require.NoError(t, os.MkdirAll(globalDir, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(globalDir, "ultrai.yml"),
		[]byte("pattern: critique\nmin_models: 4\n"), 0644))

	require.NoError(t, os.WriteFile(filepath.Join(dir, "ultrai.yml"),
		[]byte("pattern: confidence\n"), 0644))

	cfg, err := Load()
	require.NoError(t, err)

	// Project wins on pattern, global still supplies min_models.
	assert.Equal(t, "confidence", cfg.Pattern)
	assert.Equal(t, 4, cfg.MinModels)
}

func TestLoad_RejectsInvalidMinModels(t *testing.T) {
	chdir(t)
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("ULTRAI_MIN_MODELS", "0")

	_, err := Load()
	assert.Error(t, err)
}

func TestWriteGlobal_RoundTrip(t *testing.T) {
	chdir(t)
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cfg := &Config{
		BackendURL:   "http://localhost:9000",
		Pattern:      "gut",
		OutputFormat: "markdown",
		MinModels:    2,
		EstTokensK:   10,
		DataDir:      ".ultrai",
		LogLevel:     "debug",
	}
	require.NoError(t, WriteGlobal(cfg))
	assert.True(t, Exists())

	loaded, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:9000", loaded.BackendURL)
	assert.Equal(t, "markdown", loaded.OutputFormat)
	assert.Equal(t, "debug", loaded.LogLevel)
}
