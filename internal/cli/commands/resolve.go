package commands

import (
	"context"
	"fmt"
	"slices"

	"github.com/leapstack-labs/lintpreset/internal/cli/output"
	"github.com/leapstack-labs/lintpreset/pkg/core"
	"github.com/leapstack-labs/lintpreset/pkg/resolve"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

// ResolveOptions holds options for the resolve command.
type ResolveOptions struct {
	Preset  string   // Resolve a named preset instead of the document
	Rules   []string // Only print these rule keys
	Enabled bool     // Hide rules that are off
}

// NewResolveCommand creates the resolve command.
func NewResolveCommand() *cobra.Command {
	opts := &ResolveOptions{}
	cmd := &cobra.Command{
		Use:   "resolve <path>...",
		Short: "Print the effective rules for files",
		Long: `Resolve the effective rule map for each path.

The project document (or --preset) is expanded with every preset it extends,
then each override whose files match the path is applied in order.

Output adapts to environment:
  - Terminal: Styled output with colors
  - Piped/Scripted: Markdown format
  - JSON: Machine-readable format`,
		Example: `  # Rules for a source file
  lintpreset resolve src/index.ts

  # Several files, only two rules
  lintpreset resolve src/a.ts src/a.test.ts --rule no-console --rule no-var

  # Rules a preset gives a file
  lintpreset resolve --preset ts src/app.ts -o json`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runResolve(cmd, args, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.Preset, "preset", "p", "", "Resolve a named preset instead of the document")
	cmd.Flags().StringSliceVarP(&opts.Rules, "rule", "r", nil, "Only show these rules")
	cmd.Flags().BoolVar(&opts.Enabled, "enabled", false, "Hide rules that are off")

	return cmd
}

func runResolve(cmd *cobra.Command, args []string, opts *ResolveOptions) error {
	cmdCtx := NewCommandContext(cmd)
	res, err := cmdCtx.Resolver(opts.Preset)
	if err != nil {
		return err
	}

	results, err := resolvePaths(cmd.Context(), res, args, cmdCtx.Cfg.Concurrency)
	if err != nil {
		return err
	}
	for i := range results {
		results[i].Rules = filterRules(results[i].Rules, opts)
	}

	return renderResults(cmdCtx.Renderer, results)
}

// resolvePaths resolves every path with at most limit workers. Results keep
// the order of paths.
func resolvePaths(ctx context.Context, res *resolve.Resolver, paths []string, limit int) ([]resolve.Result, error) {
	results := make([]resolve.Result, len(paths))
	abs := absPaths(paths)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)
	for i := range paths {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			result := res.ResolveFile(abs[i])
			result.Path = paths[i]
			results[i] = result
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func filterRules(rules core.RuleMap, opts *ResolveOptions) core.RuleMap {
	if len(opts.Rules) == 0 && !opts.Enabled {
		return rules
	}
	out := make(core.RuleMap, len(rules))
	for key, setting := range rules {
		if len(opts.Rules) > 0 && !slices.Contains(opts.Rules, key) {
			continue
		}
		if opts.Enabled && setting.Severity == core.SeverityOff {
			continue
		}
		out[key] = setting
	}
	return out
}

func renderResults(r *output.Renderer, results []resolve.Result) error {
	switch r.EffectiveMode() {
	case output.ModeJSON:
		return r.JSON(results)
	case output.ModeMarkdown:
		renderResultsMarkdown(r, results)
	default:
		renderResultsText(r, results)
	}
	return nil
}

// renderResultsText outputs results in styled text format.
func renderResultsText(r *output.Renderer, results []resolve.Result) {
	styles := r.Styles()

	for i, result := range results {
		if i > 0 {
			r.Println("")
		}
		if result.Ignored {
			r.Println(styles.Bold.Render(result.Path) + " " + styles.Muted.Render("(ignored)"))
			continue
		}

		r.Println(styles.Header1.Render(result.Path))
		if result.Parser != "" {
			r.Println("  " + styles.Muted.Render("parser: "+result.Parser))
		}
		for _, key := range result.Rules.Keys() {
			setting := result.Rules[key]
			line := "  " + styles.Key.Render(key) + "  " + styles.Severity(setting.Severity).Render(setting.Severity.String())
			if setting.HasOptions() {
				line += "  " + styles.Muted.Render(output.FormatOptions(setting))
			}
			r.Println(line)
		}
		r.Println(styles.Muted.Render(summarize(result.Rules)))
	}
}

// renderResultsMarkdown outputs results in markdown format.
func renderResultsMarkdown(r *output.Renderer, results []resolve.Result) {
	for _, result := range results {
		r.Println("## " + result.Path)
		r.Println("")
		if result.Ignored {
			r.Println("_Ignored by ignore patterns._")
			r.Println("")
			continue
		}
		if result.Parser != "" {
			r.Printf("Parser: `%s`\n\n", result.Parser)
		}
		for _, key := range result.Rules.Keys() {
			setting := result.Rules[key]
			if setting.HasOptions() {
				r.Printf("- `%s`: **%s** `%s`\n", key, setting.Severity, output.FormatOptions(setting))
			} else {
				r.Printf("- `%s`: **%s**\n", key, setting.Severity)
			}
		}
		r.Println("")
		r.Println(summarize(result.Rules))
		r.Println("")
	}
}

func summarize(rules core.RuleMap) string {
	noun := "rules"
	if len(rules) == 1 {
		noun = "rule"
	}
	return fmt.Sprintf("%d %s: %d error, %d warn, %d off", len(rules), noun,
		rules.Count(core.SeverityError), rules.Count(core.SeverityWarn), rules.Count(core.SeverityOff))
}
