package commands

import (
	"strings"

	"github.com/leapstack-labs/lintpreset/internal/cli/output"
	"github.com/leapstack-labs/lintpreset/pkg/preset"
	"github.com/spf13/cobra"
)

// NewPresetsCommand creates the presets command.
func NewPresetsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "presets",
		Short: "List available presets",
		Long: `List the presets built into lintpreset and those found in the
configured preset directories.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmdCtx := NewCommandContext(cmd)
			reg, err := cmdCtx.Registry()
			if err != nil {
				return err
			}
			return renderPresets(cmdCtx.Renderer, reg.List())
		},
	}
}

func renderPresets(r *output.Renderer, infos []preset.Info) error {
	if r.EffectiveMode() == output.ModeJSON {
		return r.JSON(infos)
	}

	rows := make([][]any, 0, len(infos))
	for _, info := range infos {
		rows = append(rows, []any{info.Name, info.Rules, info.Overrides, strings.Join(info.Extends, ", "), info.Source})
	}
	if r.EffectiveMode() == output.ModeMarkdown {
		r.Println("# Presets")
		r.Println("")
	}
	r.Table([]string{"Name", "Rules", "Overrides", "Extends", "Source"}, rows)
	r.Println("")
	return nil
}
