package resolve

import (
	"fmt"
	"log/slog"

	"github.com/leapstack-labs/lintpreset/pkg/core"
)

// compiledLayer is a Layer with its globs compiled.
type compiledLayer struct {
	layer    *Layer
	label    string
	scoped   bool
	files    []*Pattern
	excluded []*Pattern
	nested   []compiledLayer
}

// matches reports whether the layer applies to a normalized path.
func (c *compiledLayer) matches(filePath string) bool {
	if c.scoped && !matchAny(c.files, filePath) {
		return false
	}
	return !matchAny(c.excluded, filePath)
}

// Resolver resolves paths against a compiled Configuration.
// It is read-only after New and safe for concurrent use.
type Resolver struct {
	baseDir   string
	ignore    []*Pattern
	base      compiledLayer
	overrides []compiledLayer
	logger    *slog.Logger
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithLogger sets the logger used for debug output.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Resolver) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// New compiles a Configuration. It fails if any glob pattern is invalid.
func New(cfg Configuration, opts ...Option) (*Resolver, error) {
	r, err := compile(cfg, false)
	if err != nil {
		return nil, err
	}
	for _, opt := range opts {
		opt(r)
	}
	r.logger.Debug("compiled configuration",
		"layers", cfg.LayerCount(),
		"ignore_patterns", len(cfg.IgnorePatterns),
		"base_dir", cfg.BaseDir)
	return r, nil
}

// Resolve returns the effective rule map for filePath.
//
// It never fails: invalid glob patterns never match. Use New to validate a
// configuration up front and to reuse the compiled form across many paths.
func Resolve(cfg Configuration, filePath string) core.RuleMap {
	r, _ := compile(cfg, true)
	return r.Resolve(filePath)
}

func compile(cfg Configuration, lenient bool) (*Resolver, error) {
	ignore, err := compilePatterns(cfg.IgnorePatterns, lenient)
	if err != nil {
		return nil, fmt.Errorf("ignore_patterns: %w", err)
	}

	base, err := compileLayer(&cfg.Base, "base", lenient)
	if err != nil {
		return nil, err
	}
	// The base layer applies to every path regardless of its own globs.
	base.scoped = false
	base.files = nil
	base.excluded = nil

	overrides, err := compileLayers(cfg.Overrides, "overrides", lenient)
	if err != nil {
		return nil, err
	}

	return &Resolver{
		baseDir:   cfg.BaseDir,
		ignore:    ignore,
		base:      base,
		overrides: overrides,
		logger:    slog.New(slog.DiscardHandler),
	}, nil
}

func compileLayers(layers []Layer, prefix string, lenient bool) ([]compiledLayer, error) {
	if len(layers) == 0 {
		return nil, nil
	}
	out := make([]compiledLayer, 0, len(layers))
	for i := range layers {
		cl, err := compileLayer(&layers[i], fmt.Sprintf("%s[%d]", prefix, i), lenient)
		if err != nil {
			return nil, err
		}
		out = append(out, cl)
	}
	return out, nil
}

func compileLayer(l *Layer, position string, lenient bool) (compiledLayer, error) {
	label := position
	if l.Name != "" {
		label = l.Name
	}

	files, err := compilePatterns(l.Files, lenient)
	if err != nil {
		return compiledLayer{}, fmt.Errorf("%s: files: %w", label, err)
	}
	excluded, err := compilePatterns(l.ExcludedFiles, lenient)
	if err != nil {
		return compiledLayer{}, fmt.Errorf("%s: excluded_files: %w", label, err)
	}
	nested, err := compileLayers(l.Overrides, position+".overrides", lenient)
	if err != nil {
		return compiledLayer{}, err
	}

	return compiledLayer{
		layer:    l,
		label:    label,
		scoped:   len(l.Files) > 0,
		files:    files,
		excluded: excluded,
		nested:   nested,
	}, nil
}

// walk visits the layers that apply to a normalized path, in overlay order.
func (r *Resolver) walk(filePath string, visit func(*compiledLayer)) {
	visit(&r.base)
	walkLayers(r.base.nested, filePath, visit)
	walkLayers(r.overrides, filePath, visit)
}

func walkLayers(layers []compiledLayer, filePath string, visit func(*compiledLayer)) {
	for i := range layers {
		cl := &layers[i]
		if !cl.matches(filePath) {
			continue
		}
		visit(cl)
		walkLayers(cl.nested, filePath, visit)
	}
}

// Resolve returns the effective rule map for filePath.
func (r *Resolver) Resolve(filePath string) core.RuleMap {
	p := NormalizePath(filePath, r.baseDir)
	rules := make(core.RuleMap)
	r.walk(p, func(cl *compiledLayer) {
		Merge(rules, cl.layer.Rules)
	})
	return rules
}

// IsIgnored reports whether filePath matches one of the ignore patterns.
func (r *Resolver) IsIgnored(filePath string) bool {
	return matchAny(r.ignore, NormalizePath(filePath, r.baseDir))
}

// Merge overlays src onto dst: every key in src replaces or inserts the entry
// in dst, explicit off included. Merging the same src twice is a no-op.
func Merge(dst, src core.RuleMap) {
	for k, v := range src {
		dst[k] = v
	}
}
