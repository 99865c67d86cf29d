package resolve

import "github.com/leapstack-labs/lintpreset/pkg/core"

// Result is the complete resolution for a single path.
type Result struct {
	Path          string         `json:"path"`
	Ignored       bool           `json:"ignored"`
	Rules         core.RuleMap   `json:"rules"`
	Parser        string         `json:"parser,omitempty"`
	ParserOptions map[string]any `json:"parser_options,omitempty"`
	Settings      map[string]any `json:"settings,omitempty"`
	Plugins       []string       `json:"plugins,omitempty"`
}

// ResolveFile resolves rules, parser, settings and plugins for filePath.
// Ignored paths get an empty rule map.
func (r *Resolver) ResolveFile(filePath string) Result {
	p := NormalizePath(filePath, r.baseDir)
	res := Result{
		Path:  filePath,
		Rules: make(core.RuleMap),
	}
	if matchAny(r.ignore, p) {
		res.Ignored = true
		return res
	}

	seen := make(map[string]bool)
	r.walk(p, func(cl *compiledLayer) {
		Merge(res.Rules, cl.layer.Rules)
		if cl.layer.Parser != "" {
			res.Parser = cl.layer.Parser
		}
		if len(cl.layer.ParserOptions) > 0 {
			res.ParserOptions = MergeSettings(res.ParserOptions, cl.layer.ParserOptions)
		}
		if len(cl.layer.Settings) > 0 {
			res.Settings = MergeSettings(res.Settings, cl.layer.Settings)
		}
		for _, plugin := range cl.layer.Plugins {
			if !seen[plugin] {
				seen[plugin] = true
				res.Plugins = append(res.Plugins, plugin)
			}
		}
	})
	return res
}

// MergeSettings deep-merges override into base and returns a new map.
// Nested maps are merged key by key; any other value in override replaces
// the one in base. Neither input is modified.
func MergeSettings(base, override map[string]any) map[string]any {
	if base == nil && override == nil {
		return nil
	}
	merged := make(map[string]any, len(base)+len(override))
	for k, v := range base {
		merged[k] = v
	}
	for k, v := range override {
		if ov, ok := v.(map[string]any); ok {
			if bv, ok := merged[k].(map[string]any); ok {
				merged[k] = MergeSettings(bv, ov)
				continue
			}
		}
		merged[k] = v
	}
	return merged
}
