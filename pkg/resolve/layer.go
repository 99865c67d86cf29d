package resolve

import "github.com/leapstack-labs/lintpreset/pkg/core"

// Layer is an optionally glob-scoped bundle of rule settings.
type Layer struct {
	// Name labels the layer in traces. Unnamed layers get a positional label.
	Name string `yaml:"name,omitempty" json:"name,omitempty"`

	// Files scopes the layer. Empty means the layer applies to every path.
	Files []string `yaml:"files,omitempty" json:"files,omitempty"`

	// ExcludedFiles skips the layer for paths it would otherwise match.
	ExcludedFiles []string `yaml:"excluded_files,omitempty" json:"excluded_files,omitempty"`

	// Rules is overlaid onto the working map when the layer matches.
	Rules core.RuleMap `yaml:"rules,omitempty" json:"rules,omitempty"`

	// Parser names the parser for matched files. The last layer that sets it wins.
	Parser string `yaml:"parser,omitempty" json:"parser,omitempty"`

	// ParserOptions are passed to the parser, deep-merged like Settings.
	ParserOptions map[string]any `yaml:"parser_options,omitempty" json:"parser_options,omitempty"`

	// Settings are shared settings made available to every rule, deep-merged.
	Settings map[string]any `yaml:"settings,omitempty" json:"settings,omitempty"`

	// Plugins lists rule providers the layer relies on.
	Plugins []string `yaml:"plugins,omitempty" json:"plugins,omitempty"`

	// Overrides are nested layers, applied after Rules and only when this layer matches.
	Overrides []Layer `yaml:"overrides,omitempty" json:"overrides,omitempty"`
}

// Configuration is a base layer plus ordered override layers.
// The zero value is a valid, empty configuration.
type Configuration struct {
	// BaseDir is the directory paths are made relative to before matching.
	BaseDir string `yaml:"base_dir,omitempty" json:"base_dir,omitempty"`

	// IgnorePatterns marks paths that are not linted at all.
	IgnorePatterns []string `yaml:"ignore_patterns,omitempty" json:"ignore_patterns,omitempty"`

	// Base always applies.
	Base Layer `yaml:"base,omitempty" json:"base,omitempty"`

	// Overrides apply in declaration order to the paths they match.
	Overrides []Layer `yaml:"overrides,omitempty" json:"overrides,omitempty"`
}

// LayerCount returns the total number of layers, nested ones included.
func (c Configuration) LayerCount() int {
	n := 1 + countLayers(c.Base.Overrides)
	return n + countLayers(c.Overrides)
}

func countLayers(layers []Layer) int {
	n := 0
	for _, l := range layers {
		n += 1 + countLayers(l.Overrides)
	}
	return n
}
