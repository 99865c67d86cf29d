package core

import (
	"encoding/json"
	"fmt"
	"reflect"
	"sort"
)

// =============================================================================
// Rule settings
// =============================================================================

// RuleSetting is the value assigned to a rule: a severity plus optional rule options.
// A setting without options is written in documents as a bare severity ("error");
// with options it is written as a list ([error, {max: 3}]).
type RuleSetting struct {
	Severity Severity
	Options  []any
}

// Setting builds a RuleSetting from a severity and options.
func Setting(sev Severity, opts ...any) RuleSetting {
	if len(opts) == 0 {
		return RuleSetting{Severity: sev}
	}
	return RuleSetting{Severity: sev, Options: opts}
}

// HasOptions reports whether the setting carries rule options.
func (r RuleSetting) HasOptions() bool {
	return len(r.Options) > 0
}

// Value returns the document form of the setting: a severity string, or a list
// whose first element is the severity string followed by the options.
func (r RuleSetting) Value() any {
	if !r.HasOptions() {
		return r.Severity.String()
	}
	out := make([]any, 0, len(r.Options)+1)
	out = append(out, r.Severity.String())
	return append(out, r.Options...)
}

// String returns a compact representation, e.g. "error" or "error [map[max:3]]".
func (r RuleSetting) String() string {
	if !r.HasOptions() {
		return r.Severity.String()
	}
	return fmt.Sprintf("%s %v", r.Severity, r.Options)
}

// Equal reports whether two settings have the same severity and deeply equal options.
func (r RuleSetting) Equal(other RuleSetting) bool {
	if r.Severity != other.Severity {
		return false
	}
	if len(r.Options) == 0 && len(other.Options) == 0 {
		return true
	}
	return reflect.DeepEqual(r.Options, other.Options)
}

// MarshalJSON encodes the setting in its document form.
func (r RuleSetting) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.Value())
}

// UnmarshalJSON decodes a bare severity or a [severity, options...] list.
func (r *RuleSetting) UnmarshalJSON(data []byte) error {
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	parsed, err := ParseRuleSetting(raw)
	if err != nil {
		return err
	}
	*r = parsed
	return nil
}

// MarshalYAML encodes the setting in its document form.
func (r RuleSetting) MarshalYAML() (any, error) {
	return r.Value(), nil
}

// ParseRuleSetting converts a decoded document value into a RuleSetting.
// Accepted shapes: a severity (string or number), or a non-empty list whose
// first element is a severity and whose remaining elements are options.
func ParseRuleSetting(v any) (RuleSetting, error) {
	switch val := v.(type) {
	case RuleSetting:
		return val, nil
	case []any:
		if len(val) == 0 {
			return RuleSetting{}, fmt.Errorf("empty rule setting: expected a severity")
		}
		sev, err := SeverityFromValue(val[0])
		if err != nil {
			return RuleSetting{}, err
		}
		return Setting(sev, val[1:]...), nil
	case []string:
		if len(val) == 0 {
			return RuleSetting{}, fmt.Errorf("empty rule setting: expected a severity")
		}
		sev, err := SeverityFromValue(val[0])
		if err != nil {
			return RuleSetting{}, err
		}
		opts := make([]any, 0, len(val)-1)
		for _, s := range val[1:] {
			opts = append(opts, s)
		}
		return Setting(sev, opts...), nil
	default:
		sev, err := SeverityFromValue(v)
		if err != nil {
			return RuleSetting{}, err
		}
		return RuleSetting{Severity: sev}, nil
	}
}

// =============================================================================
// Rule maps
// =============================================================================

// RuleMap maps rule keys to their settings.
type RuleMap map[string]RuleSetting

// Keys returns the rule keys in sorted order.
func (m RuleMap) Keys() []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Clone returns a copy of the map. Option values are shared, they are never mutated.
func (m RuleMap) Clone() RuleMap {
	out := make(RuleMap, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

// Equal reports whether both maps define the same keys with equal settings.
func (m RuleMap) Equal(other RuleMap) bool {
	if len(m) != len(other) {
		return false
	}
	for k, v := range m {
		o, ok := other[k]
		if !ok || !v.Equal(o) {
			return false
		}
	}
	return true
}

// Enabled returns the sorted keys of rules whose severity is not off.
func (m RuleMap) Enabled() []string {
	var keys []string
	for _, k := range m.Keys() {
		if m[k].Severity != SeverityOff {
			keys = append(keys, k)
		}
	}
	return keys
}

// Count returns the number of rules at the given severity.
func (m RuleMap) Count(sev Severity) int {
	n := 0
	for _, v := range m {
		if v.Severity == sev {
			n++
		}
	}
	return n
}
