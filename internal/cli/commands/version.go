package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewVersionCommand creates the version command.
func NewVersionCommand(version, buildDate, commit string) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Long:  `Display lintpreset version and build information.`,
		Run: func(cmd *cobra.Command, _ []string) {
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "lintpreset v%s\n", version)
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), "Layered lint configuration presets and resolver")
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Built %s from commit %s\n", buildDate, commit)
		},
	}
}
