package core

import (
	"fmt"
	"strconv"
	"strings"
)

// =============================================================================
// Severity
// =============================================================================

// Severity is the enforcement level assigned to a rule.
// The ordinal values match the numeric form accepted in configuration documents.
type Severity int

// Severity levels, ordered by strength.
const (
	// SeverityOff disables a rule. An explicit off is different from an absent rule.
	SeverityOff Severity = iota
	// SeverityWarn reports violations without failing the run.
	SeverityWarn
	// SeverityError reports violations and fails the run.
	SeverityError
)

// String returns the string representation of the severity.
func (s Severity) String() string {
	switch s {
	case SeverityOff:
		return "off"
	case SeverityWarn:
		return "warn"
	case SeverityError:
		return "error"
	default:
		return "unknown"
	}
}

// IsValid reports whether s is one of the defined levels.
func (s Severity) IsValid() bool {
	return s >= SeverityOff && s <= SeverityError
}

// ParseSeverity converts a string to a Severity value.
// Accepts "off", "warn", "warning", "error" (any case) and the numeric forms "0", "1", "2".
// Returns the severity and true if valid, or SeverityOff and false if invalid.
func ParseSeverity(s string) (Severity, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "off", "0":
		return SeverityOff, true
	case "warn", "warning", "1":
		return SeverityWarn, true
	case "error", "2":
		return SeverityError, true
	default:
		return SeverityOff, false
	}
}

// SeverityFromValue converts a decoded document value (string or number) to a Severity.
func SeverityFromValue(v any) (Severity, error) {
	switch val := v.(type) {
	case Severity:
		if val.IsValid() {
			return val, nil
		}
	case string:
		if sev, ok := ParseSeverity(val); ok {
			return sev, nil
		}
	case int:
		return severityFromInt(int64(val))
	case int64:
		return severityFromInt(val)
	case uint64:
		return severityFromInt(int64(val))
	case float64:
		if val == float64(int64(val)) {
			return severityFromInt(int64(val))
		}
	}
	return SeverityOff, fmt.Errorf("invalid severity %v: expected off, warn, error or 0, 1, 2", v)
}

func severityFromInt(n int64) (Severity, error) {
	sev := Severity(n)
	if !sev.IsValid() {
		return SeverityOff, fmt.Errorf("invalid severity %s: expected 0, 1 or 2", strconv.FormatInt(n, 10))
	}
	return sev, nil
}

// MarshalText implements encoding.TextMarshaler.
func (s Severity) MarshalText() ([]byte, error) {
	if !s.IsValid() {
		return nil, fmt.Errorf("invalid severity %d", int(s))
	}
	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *Severity) UnmarshalText(text []byte) error {
	sev, ok := ParseSeverity(string(text))
	if !ok {
		return fmt.Errorf("invalid severity %q", string(text))
	}
	*s = sev
	return nil
}
