// Package output renders command results for terminals, pipes and machines.
//
// A Renderer picks one of three presentations: styled text for a terminal,
// markdown when output is piped, or JSON. ModeAuto chooses between text and
// markdown by checking whether stdout is a terminal.
package output

import "strings"

// OutputMode selects how results are presented.
type OutputMode string //nolint:revive // output.OutputMode reads better at call sites than output.Kind

// Output modes.
const (
	ModeAuto     OutputMode = "auto"
	ModeText     OutputMode = "text"
	ModeMarkdown OutputMode = "markdown"
	ModeJSON     OutputMode = "json"
)

// Mode converts a format name to an OutputMode. Unknown names select ModeAuto.
func Mode(s string) OutputMode {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "text":
		return ModeText
	case "markdown", "md":
		return ModeMarkdown
	case "json":
		return ModeJSON
	default:
		return ModeAuto
	}
}
