package resolve

import (
	"sort"

	"github.com/leapstack-labs/lintpreset/pkg/core"
)

// Assignment records one layer setting a rule.
type Assignment struct {
	Layer   string           `json:"layer"`
	Setting core.RuleSetting `json:"setting"`
}

// RuleTrace is the provenance of a single rule for a path.
// The last assignment is the effective one.
type RuleTrace struct {
	Key         string           `json:"key"`
	Final       core.RuleSetting `json:"final"`
	Assignments []Assignment     `json:"assignments"`
}

// Winner returns the label of the layer whose setting took effect.
func (t RuleTrace) Winner() string {
	if len(t.Assignments) == 0 {
		return ""
	}
	return t.Assignments[len(t.Assignments)-1].Layer
}

// Trace explains how the rule map for a path was produced.
type Trace struct {
	Path    string      `json:"path"`
	Ignored bool        `json:"ignored"`
	Layers  []string    `json:"layers"`
	Rules   []RuleTrace `json:"rules"`
}

// Rule returns the trace for a rule key.
func (t Trace) Rule(key string) (RuleTrace, bool) {
	i := sort.Search(len(t.Rules), func(i int) bool { return t.Rules[i].Key >= key })
	if i < len(t.Rules) && t.Rules[i].Key == key {
		return t.Rules[i], true
	}
	return RuleTrace{}, false
}

// Explain reports, for every rule that applies to filePath, each layer that
// assigned it in overlay order. Rules are sorted by key.
func (r *Resolver) Explain(filePath string) Trace {
	p := NormalizePath(filePath, r.baseDir)
	trace := Trace{Path: filePath}
	if matchAny(r.ignore, p) {
		trace.Ignored = true
		return trace
	}

	byKey := make(map[string]*RuleTrace)
	r.walk(p, func(cl *compiledLayer) {
		trace.Layers = append(trace.Layers, cl.label)
		// Keys are visited sorted so that assignment order is stable.
		for _, key := range cl.layer.Rules.Keys() {
			setting := cl.layer.Rules[key]
			rt, ok := byKey[key]
			if !ok {
				rt = &RuleTrace{Key: key}
				byKey[key] = rt
			}
			rt.Final = setting
			rt.Assignments = append(rt.Assignments, Assignment{Layer: cl.label, Setting: setting})
		}
	})

	trace.Rules = make([]RuleTrace, 0, len(byKey))
	for _, rt := range byKey {
		trace.Rules = append(trace.Rules, *rt)
	}
	sort.Slice(trace.Rules, func(i, j int) bool {
		return trace.Rules[i].Key < trace.Rules[j].Key
	})
	return trace
}
