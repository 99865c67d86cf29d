package commands

import (
	"fmt"

	"github.com/leapstack-labs/lintpreset/internal/cli/output"
	"github.com/leapstack-labs/lintpreset/pkg/resolve"
	"github.com/spf13/cobra"
)

// ExplainOptions holds options for the explain command.
type ExplainOptions struct {
	Preset string // Explain a named preset instead of the document
}

// NewExplainCommand creates the explain command.
func NewExplainCommand() *cobra.Command {
	opts := &ExplainOptions{}
	cmd := &cobra.Command{
		Use:   "explain <path> [rule]",
		Short: "Show which layers set each rule for a file",
		Long: `Explain where each effective rule for a path comes from.

Every layer that assigned a rule is listed in the order it was applied;
the last one wins.`,
		Example: `  # Provenance of every rule
  lintpreset explain src/app.test.ts

  # A single rule
  lintpreset explain src/app.test.ts no-console`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExplain(cmd, args, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.Preset, "preset", "p", "", "Explain a named preset instead of the document")

	return cmd
}

func runExplain(cmd *cobra.Command, args []string, opts *ExplainOptions) error {
	cmdCtx := NewCommandContext(cmd)
	res, err := cmdCtx.Resolver(opts.Preset)
	if err != nil {
		return err
	}

	trace := res.Explain(absPaths(args[:1])[0])
	trace.Path = args[0]

	if len(args) == 2 {
		rt, ok := trace.Rule(args[1])
		if !ok && !trace.Ignored {
			return fmt.Errorf("rule %q is not set for %s", args[1], args[0])
		}
		trace.Rules = nil
		if ok {
			trace.Rules = []resolve.RuleTrace{rt}
		}
	}

	return renderTrace(cmdCtx.Renderer, trace)
}

func renderTrace(r *output.Renderer, trace resolve.Trace) error {
	switch r.EffectiveMode() {
	case output.ModeJSON:
		return r.JSON(trace)
	case output.ModeMarkdown:
		renderTraceMarkdown(r, trace)
	default:
		renderTraceText(r, trace)
	}
	return nil
}

// renderTraceText outputs a trace in styled text format.
func renderTraceText(r *output.Renderer, trace resolve.Trace) {
	styles := r.Styles()

	r.Println(styles.Header1.Render(trace.Path))
	if trace.Ignored {
		r.Println(styles.Muted.Render("  ignored by ignore patterns"))
		return
	}
	r.Println(styles.Muted.Render(fmt.Sprintf("  %d matching layers", len(trace.Layers))))
	r.Println("")

	for _, rt := range trace.Rules {
		r.Println(styles.Bold.Render(rt.Key) + "  " + styles.Severity(rt.Final.Severity).Render(rt.Final.Severity.String()))
		for i, a := range rt.Assignments {
			marker := "  "
			if i == len(rt.Assignments)-1 {
				marker = styles.Success.Render("→ ")
			}
			r.Printf("  %s%s  %s\n", marker, styles.Muted.Render(a.Layer), a.Setting)
		}
	}
}

// renderTraceMarkdown outputs a trace in markdown format.
func renderTraceMarkdown(r *output.Renderer, trace resolve.Trace) {
	r.Println("## " + trace.Path)
	r.Println("")
	if trace.Ignored {
		r.Println("_Ignored by ignore patterns._")
		return
	}

	rows := make([][]any, 0, len(trace.Rules))
	for _, rt := range trace.Rules {
		for i, a := range rt.Assignments {
			winner := ""
			if i == len(rt.Assignments)-1 {
				winner = "✓"
			}
			rows = append(rows, []any{rt.Key, a.Layer, a.Setting.String(), winner})
		}
	}
	r.Table([]string{"Rule", "Layer", "Setting", "Effective"}, rows)
	r.Println("")
}
