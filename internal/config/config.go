// Package config provides centralized configuration management using Viper.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Config holds all configuration values for ultrai. A wizard session reads
// its configuration once at construction; the values are immutable within a
// session.
type Config struct {
	BackendURL   string  `mapstructure:"backend_url" yaml:"backend_url"`
	StepsFile    string  `mapstructure:"steps_file" yaml:"steps_file"`
	StatusFile   string  `mapstructure:"status_file" yaml:"status_file"`
	Pattern      string  `mapstructure:"pattern" yaml:"pattern"`
	OutputFormat string  `mapstructure:"output_format" yaml:"output_format"`
	MinModels    int     `mapstructure:"min_models" yaml:"min_models"`
	EstTokensK   float64 `mapstructure:"est_tokens" yaml:"est_tokens"`
	DataDir      string  `mapstructure:"data_dir" yaml:"data_dir"`
	LogLevel     string  `mapstructure:"log_level" yaml:"log_level"`
	LogFile      string  `mapstructure:"log_file" yaml:"log_file"`
}

// Load loads configuration with full precedence:
// CLI flags > ENV vars > project config > XDG global config > defaults
func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigType("yaml")
	v.SetConfigName("ultrai")

	// Defaults
	v.SetDefault("backend_url", "http://localhost:8085")
	v.SetDefault("steps_file", "")
	v.SetDefault("status_file", "")
	v.SetDefault("pattern", "gut")
	v.SetDefault("output_format", "txt")
	v.SetDefault("min_models", 2)
	// Flat "assume ~10k tokens" heuristic for per-model cost estimation,
	// expressed in thousands of tokens. Not a metering contract.
	v.SetDefault("est_tokens", 10.0)
	v.SetDefault("data_dir", ".ultrai")
	v.SetDefault("log_level", "info")
	v.SetDefault("log_file", "")

	// Setup ENV binding with ULTRAI_ prefix
	v.SetEnvPrefix("ULTRAI")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Explicit ENV bindings for better number/bool parsing
	bindings := map[string]string{
		"backend_url":   "ULTRAI_BACKEND_URL",
		"steps_file":    "ULTRAI_STEPS_FILE",
		"status_file":   "ULTRAI_STATUS_FILE",
		"pattern":       "ULTRAI_PATTERN",
		"output_format": "ULTRAI_OUTPUT_FORMAT",
		"min_models":    "ULTRAI_MIN_MODELS",
		"est_tokens":    "ULTRAI_EST_TOKENS",
		"data_dir":      "ULTRAI_DATA_DIR",
		"log_level":     "ULTRAI_LOG_LEVEL",
		"log_file":      "ULTRAI_LOG_FILE",
	}
	for key, env := range bindings {
		if err := v.BindEnv(key, env); err != nil {
			return nil, fmt.Errorf("binding %s env: %w", key, err)
		}
	}

	// Load global config first (if exists)
	globalPath := GlobalPath()
	if fileExists(globalPath) {
		v.SetConfigFile(globalPath)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading global config: %w", err)
		}
	}

	// Merge project config on top (if exists)
	projectPath := ProjectPath()
	if fileExists(projectPath) {
		v.SetConfigFile(projectPath)
		if err := v.MergeInConfig(); err != nil {
			return nil, fmt.Errorf("merging project config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	if cfg.MinModels < 1 {
		return nil, fmt.Errorf("min_models must be at least 1, got %d", cfg.MinModels)
	}
	if cfg.EstTokensK < 0 {
		return nil, fmt.Errorf("est_tokens must be non-negative, got %v", cfg.EstTokensK)
	}

	return &cfg, nil
}

// Exists returns true if any config file exists (global or project).
func Exists() bool {
	return fileExists(GlobalPath()) || fileExists(ProjectPath())
}

// GlobalPath returns the XDG global config path.
// Returns ~/.config/ultrai/ultrai.yml or $XDG_CONFIG_HOME/ultrai/ultrai.yml.
func GlobalPath() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "ultrai", "ultrai.yml")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "ultrai", "ultrai.yml")
}

// ProjectPath returns the project-local config path.
// Returns ./ultrai.yml in the current working directory.
func ProjectPath() string {
	return "ultrai.yml"
}

// WriteGlobal writes the config to the XDG global location.
func WriteGlobal(cfg *Config) error {
	path := GlobalPath()

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	return nil
}

// WriteProject writes the config to the project-local location.
func WriteProject(cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	if err := os.WriteFile(ProjectPath(), data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	return nil
}

// fileExists checks if a file exists.
func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
