package document

import (
	"errors"

	"github.com/leapstack-labs/lintpreset/pkg/core"
	"github.com/leapstack-labs/lintpreset/pkg/resolve"
)

var (
	// ErrInvalidRule is returned when a rule value is not a severity or a [severity, options...] list.
	ErrInvalidRule = errors.New("invalid rule setting")

	// ErrUnsupportedFormat is returned for document formats that cannot be decoded.
	ErrUnsupportedFormat = errors.New("unsupported document format")
)

// Document is a configuration document: a base layer plus overrides, and the
// names of presets it extends.
type Document struct {
	Name           string         `mapstructure:"name" yaml:"name,omitempty" json:"name,omitempty"`
	Description    string         `mapstructure:"description" yaml:"description,omitempty" json:"description,omitempty"`
	Extends        []string       `mapstructure:"extends" yaml:"extends,omitempty" json:"extends,omitempty"`
	IgnorePatterns []string       `mapstructure:"ignore_patterns" yaml:"ignore_patterns,omitempty" json:"ignore_patterns,omitempty"`
	Parser         string         `mapstructure:"parser" yaml:"parser,omitempty" json:"parser,omitempty"`
	ParserOptions  map[string]any `mapstructure:"parser_options" yaml:"parser_options,omitempty" json:"parser_options,omitempty"`
	Plugins        []string       `mapstructure:"plugins" yaml:"plugins,omitempty" json:"plugins,omitempty"`
	Settings       map[string]any `mapstructure:"settings" yaml:"settings,omitempty" json:"settings,omitempty"`
	Rules          core.RuleMap   `mapstructure:"rules" yaml:"rules,omitempty" json:"rules,omitempty"`
	Overrides      []Override     `mapstructure:"overrides" yaml:"overrides,omitempty" json:"overrides,omitempty"`

	// Unused lists document keys the schema does not know. They are ignored.
	Unused []string `mapstructure:"-" yaml:"-" json:"-"`
}

// Override is a glob-scoped block inside a document.
type Override struct {
	Name          string         `mapstructure:"name" yaml:"name,omitempty" json:"name,omitempty"`
	Files         []string       `mapstructure:"files" yaml:"files,omitempty" json:"files,omitempty"`
	ExcludedFiles []string       `mapstructure:"excluded_files" yaml:"excluded_files,omitempty" json:"excluded_files,omitempty"`
	Extends       []string       `mapstructure:"extends" yaml:"extends,omitempty" json:"extends,omitempty"`
	Parser        string         `mapstructure:"parser" yaml:"parser,omitempty" json:"parser,omitempty"`
	ParserOptions map[string]any `mapstructure:"parser_options" yaml:"parser_options,omitempty" json:"parser_options,omitempty"`
	Plugins       []string       `mapstructure:"plugins" yaml:"plugins,omitempty" json:"plugins,omitempty"`
	Settings      map[string]any `mapstructure:"settings" yaml:"settings,omitempty" json:"settings,omitempty"`
	Rules         core.RuleMap   `mapstructure:"rules" yaml:"rules,omitempty" json:"rules,omitempty"`
	Overrides     []Override     `mapstructure:"overrides" yaml:"overrides,omitempty" json:"overrides,omitempty"`
}

// BaseLayer returns the document's own base layer, without extended presets.
func (d *Document) BaseLayer() resolve.Layer {
	return resolve.Layer{
		Name:          d.Name,
		Rules:         d.Rules,
		Parser:        d.Parser,
		ParserOptions: d.ParserOptions,
		Settings:      d.Settings,
		Plugins:       d.Plugins,
	}
}

// Configuration converts the document to a Configuration, ignoring extends.
// Use the preset package to expand extended presets.
func (d *Document) Configuration() resolve.Configuration {
	cfg := resolve.Configuration{
		IgnorePatterns: d.IgnorePatterns,
		Base:           d.BaseLayer(),
	}
	for _, o := range d.Overrides {
		cfg.Overrides = append(cfg.Overrides, o.Layer())
	}
	return cfg
}

// Layer converts the override to a Layer, ignoring extends.
func (o Override) Layer() resolve.Layer {
	l := resolve.Layer{
		Name:          o.Name,
		Files:         o.Files,
		ExcludedFiles: o.ExcludedFiles,
		Rules:         o.Rules,
		Parser:        o.Parser,
		ParserOptions: o.ParserOptions,
		Settings:      o.Settings,
		Plugins:       o.Plugins,
	}
	for _, nested := range o.Overrides {
		l.Overrides = append(l.Overrides, nested.Layer())
	}
	return l
}

// RuleCount returns the number of rule entries in the document, overrides included.
func (d *Document) RuleCount() int {
	n := len(d.Rules)
	for _, o := range d.Overrides {
		n += o.ruleCount()
	}
	return n
}

func (o Override) ruleCount() int {
	n := len(o.Rules)
	for _, nested := range o.Overrides {
		n += nested.ruleCount()
	}
	return n
}
