// Package config loads the CLI's optional TOML configuration file:
// default atlas path, default output directory, and logging defaults.
package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

// Config holds the CLI's persisted defaults. AtlasPath, LogLevel and
// LogFormat are overridden by the --atlas, --log-level and --log-format
// flags; OutputDir has no counterpart flag.
type Config struct {
	AtlasPath string `toml:"atlas_path"`
	OutputDir string `toml:"output_dir"`
	LogLevel  string `toml:"log_level"`
	LogFormat string `toml:"log_format"`
}

// Default returns the built-in defaults used when no config file exists.
func Default() Config {
	return Config{
		LogLevel:  "info",
		LogFormat: "console",
	}
}

// SampleConfig returns the embedded sample TOML, written out by the CLI's
// "init-config" support.
func SampleConfig() string { return sampleConfig }

// Load locates, parses, and normalizes the configuration file at path. An
// empty path resolves to "~/.config/spine2krb/config.toml"; a missing
// file (at either the explicit or default path) is not an error — Load
// returns the built-in defaults and exists=false.
func Load(path string) (cfg Config, resolvedPath string, exists bool, err error) {
	cfg = Default()

	resolvedPath, exists, err = resolveConfigPath(path)
	if err != nil {
		return Config{}, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return Config{}, "", false, fmt.Errorf("config: open: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		if err := decoder.Decode(&cfg); err != nil {
			return Config{}, "", false, fmt.Errorf("config: parse: %w", err)
		}
	}

	if cfg.AtlasPath != "" {
		expanded, err := expandPath(cfg.AtlasPath)
		if err != nil {
			return Config{}, "", false, err
		}
		cfg.AtlasPath = expanded
	}
	if cfg.OutputDir != "" {
		expanded, err := expandPath(cfg.OutputDir)
		if err != nil {
			return Config{}, "", false, err
		}
		cfg.OutputDir = expanded
	}

	return cfg, resolvedPath, exists, nil
}

// DefaultConfigPath returns the config path Load resolves to when no
// explicit path is given.
func DefaultConfigPath() (string, error) {
	return expandPath("~/.config/spine2krb/config.toml")
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		if _, err := os.Stat(expanded); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("config: stat: %w", err)
		}
		return expanded, true, nil
	}

	defaultPath, err := expandPath("~/.config/spine2krb/config.toml")
	if err != nil {
		return "", false, err
	}
	if _, err := os.Stat(defaultPath); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return defaultPath, false, nil
		}
		return "", false, fmt.Errorf("config: stat: %w", err)
	}
	return defaultPath, true, nil
}

func expandPath(path string) (string, error) {
	if !strings.HasPrefix(path, "~") {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("config: resolve home directory: %w", err)
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~")), nil
}
