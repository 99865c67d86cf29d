package commands

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/chzyer/readline"
	"github.com/leapstack-labs/lintpreset/pkg/preset"
	"github.com/leapstack-labs/lintpreset/pkg/resolve"
	"github.com/spf13/cobra"
)

const replPrompt = "lintpreset> "

// NewREPLCommand creates the repl command.
func NewREPLCommand() *cobra.Command {
	var presetName string
	cmd := &cobra.Command{
		Use:   "repl",
		Short: "Resolve paths interactively",
		Long: `Start an interactive prompt. Type a path to print its effective rules.

Commands:
  .explain <path> [rule]  Show which layers set each rule
  .presets                List available presets
  .help                   Show help
  .quit                   Exit`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runREPL(cmd, presetName)
		},
	}

	cmd.Flags().StringVarP(&presetName, "preset", "p", "", "Resolve a named preset instead of the document")

	return cmd
}

// replSession holds what the REPL resolves against.
type replSession struct {
	cmdCtx   *CommandContext
	resolver *resolve.Resolver
	registry *preset.Registry
	out      io.Writer
	errOut   io.Writer
}

func runREPL(cmd *cobra.Command, presetName string) error {
	cmdCtx := NewCommandContext(cmd)
	res, err := cmdCtx.Resolver(presetName)
	if err != nil {
		return err
	}
	reg, err := cmdCtx.Registry()
	if err != nil {
		return err
	}

	// Setup history file (project-local)
	historyFile := ""
	if cmdCtx.Cfg.ProjectRoot != "" {
		historyFile = filepath.Join(cmdCtx.Cfg.ProjectRoot, ".lintpreset_history")
	}

	rl, err := readline.NewEx(&readline.Config{
		Prompt:          replPrompt,
		HistoryFile:     historyFile,
		AutoComplete:    newREPLCompleter(),
		InterruptPrompt: "^C",
		EOFPrompt:       ".quit",
		Stdin:           io.NopCloser(cmd.InOrStdin()),
		Stdout:          cmd.OutOrStdout(),
		Stderr:          cmd.ErrOrStderr(),
	})
	if err != nil {
		return fmt.Errorf("failed to initialize REPL: %w", err)
	}
	defer func() { _ = rl.Close() }()

	s := &replSession{
		cmdCtx:   cmdCtx,
		resolver: res,
		registry: reg,
		out:      cmd.OutOrStdout(),
		errOut:   cmd.ErrOrStderr(),
	}

	source := cmdCtx.Cfg.Document
	if presetName != "" {
		source = "preset " + presetName
	}
	_, _ = fmt.Fprintf(s.out, "lintpreset REPL (%s)\n", source)
	_, _ = fmt.Fprintln(s.out, "Type a path to resolve it, .help for commands, .quit to exit")
	_, _ = fmt.Fprintln(s.out)

	for {
		line, err := rl.Readline()
		if errors.Is(err, readline.ErrInterrupt) {
			continue
		}
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return err
		}

		if quit := s.handle(strings.TrimSpace(line)); quit {
			break
		}
	}

	return nil
}

// handle runs one REPL line and reports whether the session should end.
func (s *replSession) handle(line string) bool {
	if line == "" {
		return false
	}
	if !strings.HasPrefix(line, ".") {
		s.resolve(line)
		return false
	}

	parts := strings.Fields(line)
	switch strings.ToLower(parts[0]) {
	case ".quit", ".exit":
		return true

	case ".help":
		printREPLHelp(s.out)

	case ".explain":
		if len(parts) < 2 || len(parts) > 3 {
			_, _ = fmt.Fprintln(s.errOut, "Usage: .explain <path> [rule]")
			return false
		}
		trace := s.resolver.Explain(absPaths(parts[1:2])[0])
		trace.Path = parts[1]
		if len(parts) == 3 {
			rt, ok := trace.Rule(parts[2])
			if !ok {
				_, _ = fmt.Fprintf(s.errOut, "Rule %q is not set for %s\n", parts[2], parts[1])
				return false
			}
			trace.Rules = []resolve.RuleTrace{rt}
		}
		if err := renderTrace(s.cmdCtx.Renderer, trace); err != nil {
			_, _ = fmt.Fprintf(s.errOut, "Error: %v\n", err)
		}

	case ".presets":
		if err := renderPresets(s.cmdCtx.Renderer, s.registry.List()); err != nil {
			_, _ = fmt.Fprintf(s.errOut, "Error: %v\n", err)
		}

	case ".clear":
		_, _ = fmt.Fprint(s.out, "\033[H\033[2J")

	default:
		_, _ = fmt.Fprintf(s.errOut, "Unknown command: %s (type .help for commands)\n", parts[0])
	}
	return false
}

func (s *replSession) resolve(path string) {
	result := s.resolver.ResolveFile(absPaths([]string{path})[0])
	result.Path = path
	if err := renderResults(s.cmdCtx.Renderer, []resolve.Result{result}); err != nil {
		_, _ = fmt.Fprintf(s.errOut, "Error: %v\n", err)
	}
}

func printREPLHelp(w io.Writer) {
	help := `
Commands:
  <path>                  Print the effective rules for a path
  .explain <path> [rule]  Show which layers set each rule
  .presets                List available presets
  .clear                  Clear the screen
  .help                   Show this help message
  .quit / .exit           Exit the REPL

Tips:
  - Paths are relative to the current directory
  - Use arrow keys to navigate history
`
	_, _ = fmt.Fprintln(w, help)
}

// newREPLCompleter creates a readline completer for dot-commands.
func newREPLCompleter() *readline.PrefixCompleter {
	return readline.NewPrefixCompleter(
		readline.PcItem(".explain"),
		readline.PcItem(".presets"),
		readline.PcItem(".clear"),
		readline.PcItem(".help"),
		readline.PcItem(".quit"),
		readline.PcItem(".exit"),
	)
}
