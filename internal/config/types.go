// Package config loads lintpreset's own settings: which document to resolve,
// where project presets live and how results are printed.
//
// Values are layered with koanf, highest precedence last: defaults, the
// lintpreset.yaml file, LINTPRESET_* environment variables, then CLI flags
// that were explicitly set.
package config

import (
	"log/slog"
	"time"
)

// Config holds all CLI configuration options.
type Config struct {
	Document      string        `koanf:"document"`
	PresetDirs    []string      `koanf:"preset_dirs"`
	OutputFormat  string        `koanf:"output"`
	Verbose       bool          `koanf:"verbose"`
	LogLevel      string        `koanf:"log_level"`
	Concurrency   int           `koanf:"concurrency"`
	WatchDebounce time.Duration `koanf:"watch_debounce"`

	// ProjectRoot is the directory relative paths are resolved against.
	ProjectRoot string `koanf:"-"`

	// ConfigFile is the config file that was loaded, if any.
	ConfigFile string `koanf:"-"`
}

// Default returns a Config populated with default values.
func Default() *Config {
	return &Config{
		Document:      DefaultDocument,
		OutputFormat:  DefaultOutput,
		LogLevel:      DefaultLogLevel,
		Concurrency:   DefaultConcurrency,
		WatchDebounce: DefaultWatchDebounce,
	}
}

// Level returns the configured log level. Verbose lowers it to debug.
func (c *Config) Level() slog.Level {
	if c.Verbose {
		return slog.LevelDebug
	}
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return slog.LevelWarn
	}
	return level
}
