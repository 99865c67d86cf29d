package output

import (
	"strings"

	"github.com/goccy/go-json"
	"github.com/leapstack-labs/lintpreset/pkg/core"
)

// FormatOptions renders rule options compactly, e.g. `{"max":3}`.
func FormatOptions(setting core.RuleSetting) string {
	parts := make([]string, 0, len(setting.Options))
	for _, opt := range setting.Options {
		data, err := json.Marshal(opt)
		if err != nil {
			parts = append(parts, "?")
			continue
		}
		parts = append(parts, string(data))
	}
	return strings.Join(parts, " ")
}
