package commands

import (
	"fmt"

	"github.com/leapstack-labs/lintpreset/internal/cli/output"
	"github.com/leapstack-labs/lintpreset/pkg/document"
	"github.com/spf13/cobra"
)

// ShowOptions holds options for the show command.
type ShowOptions struct {
	Expanded bool   // Print the configuration with extends expanded
	Format   string // yaml or json
}

// NewShowCommand creates the show command.
func NewShowCommand() *cobra.Command {
	opts := &ShowOptions{}
	cmd := &cobra.Command{
		Use:   "show [preset]",
		Short: "Print a preset or the project document",
		Long: `Print a preset as a document. Without an argument the project
document is printed.

With --expanded the presets it extends are expanded into nested layers,
showing exactly what the resolver applies.`,
		Example: `  # The ts preset
  lintpreset show ts

  # The project document with everything it extends
  lintpreset show --expanded --format json`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runShow(cmd, args, opts)
		},
	}

	cmd.Flags().BoolVarP(&opts.Expanded, "expanded", "e", false, "Expand extended presets")
	cmd.Flags().StringVarP(&opts.Format, "format", "f", "", "Output format: yaml, json (default yaml, json with --output json)")

	return cmd
}

func runShow(cmd *cobra.Command, args []string, opts *ShowOptions) error {
	cmdCtx := NewCommandContext(cmd)

	format := document.FormatYAML
	if cmdCtx.Renderer.EffectiveMode() == output.ModeJSON {
		format = document.FormatJSON
	}
	if opts.Format != "" {
		f, err := document.ParseFormat(opts.Format)
		if err != nil {
			return err
		}
		format = f
	}

	var name string
	if len(args) > 0 {
		name = args[0]
	}

	var v any
	if opts.Expanded {
		cfg, err := cmdCtx.Configuration(name)
		if err != nil {
			return err
		}
		v = cfg
	} else {
		doc, err := showDocument(cmdCtx, name)
		if err != nil {
			return err
		}
		v = doc
	}

	data, err := document.Encode(format, v)
	if err != nil {
		return err
	}
	_, err = cmdCtx.Renderer.Writer().Write(data)
	return err
}

func showDocument(cmdCtx *CommandContext, name string) (*document.Document, error) {
	if name == "" {
		return cmdCtx.LoadDocument()
	}
	reg, err := cmdCtx.Registry()
	if err != nil {
		return nil, err
	}
	doc, ok := reg.Get(name)
	if !ok {
		return nil, fmt.Errorf("preset %q not found (available: %v)", name, reg.Names())
	}
	return doc, nil
}
