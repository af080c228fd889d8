// Package config loads runtime settings for the voyager CLI. Values come
// from .voyager.yaml, VOYAGER_* environment variables, and command flags,
// in ascending precedence.
package config

import (
	"fmt"

	"github.com/spf13/viper"
)

// Config holds all runtime configuration for a voyager session. It covers
// the CLI surface only; the physics of a run lives in the world file.
type Config struct {
	// DataDir is the directory the run archive lands in when ArchivePath is
	// relative. TelemetryPath is not joined under it.
	DataDir string `mapstructure:"data_dir"`
	// ArchivePath is the SQLite run archive, joined under DataDir when not
	// absolute.
	ArchivePath string `mapstructure:"archive_path"`
	// TelemetryPath is the default JSONL telemetry file; empty disables
	// telemetry unless a flag provides a path.
	TelemetryPath string `mapstructure:"telemetry_path"`
	// Graphics enables the playback TUI after a sim by default.
	Graphics bool `mapstructure:"graphics"`
	// Verbose enables slog diagnostics on stderr.
	Verbose bool `mapstructure:"verbose"`
}

// Load reads configuration from viper, applying built-in defaults for any
// values not set by config file, environment, or flags.
func Load() (Config, error) {
	viper.SetEnvPrefix("VOYAGER")
	viper.AutomaticEnv()

	viper.SetDefault("data_dir", ".voyager")
	viper.SetDefault("archive_path", "archive.db")
	viper.SetDefault("telemetry_path", "")
	viper.SetDefault("graphics", false)
	viper.SetDefault("verbose", false)

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("config: %w", err)
	}
	return cfg, nil
}
