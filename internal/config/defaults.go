package config

import "time"

// ConfigFileName is the name of the config file.
const ConfigFileName = "lintpreset.yaml"

// ConfigFileNameAlt is the alternate name of the config file.
const ConfigFileNameAlt = "lintpreset.yml"

// EnvPrefix prefixes environment variables that override config values.
const EnvPrefix = "LINTPRESET_"

// Default configuration values.
const (
	DefaultDocument      = ".lintrc.yaml"
	DefaultOutput        = "auto"
	DefaultLogLevel      = "warn"
	DefaultConcurrency   = 8
	DefaultWatchDebounce = 200 * time.Millisecond
)

// OutputFormats lists the accepted values of the output setting.
var OutputFormats = []string{"auto", "text", "markdown", "json"}

// defaultValues is the lowest configuration layer.
func defaultValues() map[string]any {
	return map[string]any{
		"document":       DefaultDocument,
		"preset_dirs":    []string{},
		"output":         DefaultOutput,
		"verbose":        false,
		"log_level":      DefaultLogLevel,
		"concurrency":    DefaultConcurrency,
		"watch_debounce": DefaultWatchDebounce.String(),
	}
}
