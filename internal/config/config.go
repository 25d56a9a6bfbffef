package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config holds the workspace settings. Every field has a working default; a
// missing config file is not an error.
type Config struct {
	DBPath string `yaml:"db_path"`
	Model  string `yaml:"model"`
	LogDir string `yaml:"log_dir"`
}

// Default returns the built-in configuration rooted at ~/.quill.
func Default() Config {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	base := filepath.Join(home, ".quill")
	return Config{
		DBPath: filepath.Join(base, "tasks.db"),
		LogDir: filepath.Join(base, "logs"),
	}
}

// Load reads the config file at ~/.quill/config.yaml, falling back to
// defaults when it does not exist.
func Load() (Config, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return Default(), nil
	}
	return LoadFrom(filepath.Join(home, ".quill", "config.yaml"))
}

// LoadFrom reads the config file at path. Unset fields keep their defaults.
func LoadFrom(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("failed to read config: %w", err)
	}

	var file Config
	if err := yaml.Unmarshal(data, &file); err != nil {
		return cfg, fmt.Errorf("failed to parse config: %w", err)
	}

	if file.DBPath != "" {
		cfg.DBPath = file.DBPath
	}
	if file.Model != "" {
		cfg.Model = file.Model
	}
	if file.LogDir != "" {
		cfg.LogDir = file.LogDir
	}
	return cfg, nil
}
