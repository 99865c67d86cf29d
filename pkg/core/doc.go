// Package core defines the shared value types of lintpreset.
//
// This package contains:
//   - Severity (off, warn, error) and its parsing rules
//   - RuleSetting, a severity plus optional rule options
//   - RuleMap, the mapping from rule key to setting
//
// The Golden Rule: pkg/core imports ONLY stdlib.
// All other packages depend on core, not the reverse.
package core
