package preset

import (
	"fmt"
	"slices"
	"strings"

	"github.com/leapstack-labs/lintpreset/pkg/document"
	"github.com/leapstack-labs/lintpreset/pkg/resolve"
)

// Expand converts a document to a Configuration with every extended preset
// expanded in place. Ignore patterns of extended presets are kept.
func (r *Registry) Expand(doc *document.Document) (resolve.Configuration, error) {
	e := &expander{registry: r}

	extended, err := e.extends(doc.Extends, nameOf(doc))
	if err != nil {
		return resolve.Configuration{}, err
	}
	overrides, err := e.overrides(doc.Overrides, nameOf(doc))
	if err != nil {
		return resolve.Configuration{}, err
	}

	base := doc.BaseLayer()
	base.Name = nameOf(doc)
	if len(extended) > 0 {
		own := base
		base = resolve.Layer{
			Name:      base.Name + " (extends)",
			Overrides: append(extended, own),
		}
	}

	return resolve.Configuration{
		IgnorePatterns: appendUnique(e.ignore, doc.IgnorePatterns...),
		Base:           base,
		Overrides:      overrides,
	}, nil
}

// ExpandName expands the preset registered under name.
func (r *Registry) ExpandName(name string) (resolve.Configuration, error) {
	doc, ok := r.Get(name)
	if !ok {
		return resolve.Configuration{}, fmt.Errorf("%w: %q", ErrUnknownPreset, name)
	}
	return r.Expand(doc)
}

type expander struct {
	registry *Registry
	stack    []string
	ignore   []string
}

// extends returns one unscoped layer per extended preset, in order.
func (e *expander) extends(names []string, from string) ([]resolve.Layer, error) {
	layers := make([]resolve.Layer, 0, len(names))
	for _, name := range names {
		l, err := e.preset(name, from)
		if err != nil {
			return nil, err
		}
		layers = append(layers, l)
	}
	return layers, nil
}

// preset expands a named preset into a single unscoped layer: its own
// extends first, then its rules, then its overrides.
func (e *expander) preset(name, from string) (resolve.Layer, error) {
	for i, seen := range e.stack {
		if seen == name {
			chain := append(append([]string{}, e.stack[i:]...), name)
			return resolve.Layer{}, fmt.Errorf("%w: %s", ErrExtendsCycle, strings.Join(chain, " -> "))
		}
	}
	doc, ok := e.registry.Get(name)
	if !ok {
		return resolve.Layer{}, fmt.Errorf("%w: %q (extended by %s)", ErrUnknownPreset, name, from)
	}

	e.stack = append(e.stack, name)
	defer func() { e.stack = e.stack[:len(e.stack)-1] }()

	nested, err := e.extends(doc.Extends, name)
	if err != nil {
		return resolve.Layer{}, err
	}
	own := doc.BaseLayer()
	own.Name = name
	own.Overrides, err = e.overrides(doc.Overrides, name)
	if err != nil {
		return resolve.Layer{}, err
	}
	e.ignore = appendUnique(e.ignore, doc.IgnorePatterns...)

	if len(nested) == 0 {
		return own, nil
	}
	return resolve.Layer{
		Name:      name + " (extends)",
		Overrides: append(nested, own),
	}, nil
}

func (e *expander) overrides(overrides []document.Override, parent string) ([]resolve.Layer, error) {
	if len(overrides) == 0 {
		return nil, nil
	}
	layers := make([]resolve.Layer, 0, len(overrides))
	for i, o := range overrides {
		l, err := e.override(o, overrideName(parent, i, o))
		if err != nil {
			return nil, err
		}
		layers = append(layers, l)
	}
	return layers, nil
}

// override expands an override. Extended presets become nested layers that
// apply before the override's own rules, within the override's scope.
func (e *expander) override(o document.Override, name string) (resolve.Layer, error) {
	nested, err := e.overrides(o.Overrides, name)
	if err != nil {
		return resolve.Layer{}, err
	}

	l := resolve.Layer{
		Name:          name,
		Files:         o.Files,
		ExcludedFiles: o.ExcludedFiles,
		Rules:         o.Rules,
		Parser:        o.Parser,
		ParserOptions: o.ParserOptions,
		Settings:      o.Settings,
		Plugins:       o.Plugins,
		Overrides:     nested,
	}
	if len(o.Extends) == 0 {
		return l, nil
	}

	extended, err := e.extends(o.Extends, name)
	if err != nil {
		return resolve.Layer{}, err
	}
	own := l
	own.Name = name + " (rules)"
	own.Files = nil
	own.ExcludedFiles = nil
	return resolve.Layer{
		Name:          name,
		Files:         o.Files,
		ExcludedFiles: o.ExcludedFiles,
		Overrides:     append(extended, own),
	}, nil
}

func nameOf(doc *document.Document) string {
	if doc.Name == "" {
		return "document"
	}
	return doc.Name
}

func overrideName(parent string, i int, o document.Override) string {
	if o.Name != "" {
		return parent + " > " + o.Name
	}
	return fmt.Sprintf("%s > overrides[%d]", parent, i)
}

func appendUnique(dst []string, values ...string) []string {
	for _, v := range values {
		if !slices.Contains(dst, v) {
			dst = append(dst, v)
		}
	}
	return dst
}
