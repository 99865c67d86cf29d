package commands

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/goccy/go-json"
	"github.com/leapstack-labs/lintpreset/internal/cli/testutil"
	"github.com/leapstack-labs/lintpreset/internal/config"
	logtest "github.com/leapstack-labs/lintpreset/internal/testutil"
	"github.com/leapstack-labs/lintpreset/pkg/core"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const projectDocument = `name: project
extends: [base]
ignore_patterns: ["dist/**"]
rules:
  no-console: error
overrides:
  - files: ["*.test.ts"]
    rules:
      no-console: off
`

// setupProject writes a project document to a temp dir, changes into it and
// returns a config pointing at it.
func setupProject(t *testing.T) *config.Config {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".lintrc.yaml"), []byte(projectDocument), 0600))
	t.Chdir(dir)

	cfg := config.Default()
	cfg.Document = filepath.Join(dir, ".lintrc.yaml")
	cfg.ProjectRoot = dir
	cfg.OutputFormat = "json"
	return cfg
}

// execute runs cmd with cfg and a test logger in its context.
func execute(t *testing.T, cmd *cobra.Command, cfg *config.Config, args ...string) (string, string, error) {
	t.Helper()
	out, errOut := &bytes.Buffer{}, &bytes.Buffer{}
	cmd.SetOut(out)
	cmd.SetErr(errOut)
	cmd.SetArgs(args)

	ctx := config.WithConfig(context.Background(), cfg)
	ctx = config.WithLogger(ctx, logtest.NewTestLogger(t))
	err := cmd.ExecuteContext(ctx)
	return out.String(), errOut.String(), err
}

type resultJSON struct {
	Path    string         `json:"path"`
	Ignored bool           `json:"ignored"`
	Rules   map[string]any `json:"rules"`
	Plugins []string       `json:"plugins"`
}

func TestResolveCommand(t *testing.T) {
	cfg := setupProject(t)

	out, _, err := execute(t, NewResolveCommand(), cfg, "src/index.ts", "src/app.test.ts", "dist/bundle.js")
	require.NoError(t, err)

	var results []resultJSON
	require.NoError(t, json.Unmarshal([]byte(out), &results))
	require.Len(t, results, 3)

	assert.Equal(t, "src/index.ts", results[0].Path)
	assert.Equal(t, "error", results[0].Rules["no-console"])
	assert.Equal(t, "error", results[0].Rules["no-var"])

	assert.Equal(t, "src/app.test.ts", results[1].Path)
	assert.Equal(t, "off", results[1].Rules["no-console"])

	assert.Equal(t, "dist/bundle.js", results[2].Path)
	assert.True(t, results[2].Ignored)
	assert.Empty(t, results[2].Rules)
}

func TestResolveCommand_Filters(t *testing.T) {
	cfg := setupProject(t)

	out, _, err := execute(t, NewResolveCommand(), cfg, "--rule", "no-console,no-var", "src/app.test.ts")
	require.NoError(t, err)
	var results []resultJSON
	require.NoError(t, json.Unmarshal([]byte(out), &results))
	assert.Equal(t, map[string]any{"no-console": "off", "no-var": "error"}, results[0].Rules)

	out, _, err = execute(t, NewResolveCommand(), cfg, "--enabled", "--rule", "no-console,no-var", "src/app.test.ts")
	require.NoError(t, err)
	results = nil
	require.NoError(t, json.Unmarshal([]byte(out), &results))
	assert.Equal(t, map[string]any{"no-var": "error"}, results[0].Rules)
}

func TestResolveCommand_Preset(t *testing.T) {
	cfg := setupProject(t)

	out, _, err := execute(t, NewResolveCommand(), cfg, "--preset", "ts", "--rule", "dot-notation", "src/app.ts", "src/types.d.ts")
	require.NoError(t, err)

	var results []resultJSON
	require.NoError(t, json.Unmarshal([]byte(out), &results))
	require.Len(t, results, 2)
	assert.Equal(t, map[string]any{"dot-notation": "off"}, results[0].Rules)
	assert.Contains(t, results[0].Plugins, "import")
	assert.True(t, results[1].Ignored)

	_, _, err = execute(t, NewResolveCommand(), cfg, "--preset", "nope", "a.ts")
	assert.ErrorContains(t, err, "unknown preset")
}

func TestResolveCommand_Markdown(t *testing.T) {
	cfg := setupProject(t)
	cfg.OutputFormat = "markdown"

	out, _, err := execute(t, NewResolveCommand(), cfg, "--rule", "no-console", "src/app.test.ts", "dist/x.js")
	require.NoError(t, err)
	testutil.AssertValidMarkdown(t, out)
	assert.Contains(t, out, "## src/app.test.ts")
	assert.Contains(t, out, "- `no-console`: **off**")
	assert.Contains(t, out, "1 rule: 0 error, 0 warn, 1 off")
	assert.Contains(t, out, "_Ignored by ignore patterns._")
}

func TestResolveCommand_MissingDocument(t *testing.T) {
	cfg := setupProject(t)
	cfg.Document = filepath.Join(cfg.ProjectRoot, "missing.yaml")

	_, _, err := execute(t, NewResolveCommand(), cfg, "a.ts")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestResolveCommand_RequiresPath(t *testing.T) {
	cfg := setupProject(t)
	_, _, err := execute(t, NewResolveCommand(), cfg)
	assert.Error(t, err)
}

func TestExplainCommand(t *testing.T) {
	cfg := setupProject(t)

	out, _, err := execute(t, NewExplainCommand(), cfg, "src/app.test.ts", "no-console")
	require.NoError(t, err)

	var trace struct {
		Path  string `json:"path"`
		Rules []struct {
			Key         string `json:"key"`
			Final       any    `json:"final"`
			Assignments []struct {
				Layer   string `json:"layer"`
				Setting any    `json:"setting"`
			} `json:"assignments"`
		} `json:"rules"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &trace))
	assert.Equal(t, "src/app.test.ts", trace.Path)
	require.Len(t, trace.Rules, 1)
	assert.Equal(t, "off", trace.Rules[0].Final)

	var layers []string
	for _, a := range trace.Rules[0].Assignments {
		layers = append(layers, a.Layer)
	}
	assert.Equal(t, []string{"base", "project", "project > overrides[0]"}, layers)

	_, _, err = execute(t, NewExplainCommand(), cfg, "src/app.test.ts", "not-a-rule")
	assert.ErrorContains(t, err, `rule "not-a-rule" is not set`)
}

func TestExplainCommand_Text(t *testing.T) {
	cfg := setupProject(t)
	cfg.OutputFormat = "text"

	out, _, err := execute(t, NewExplainCommand(), cfg, "src/app.test.ts", "no-console")
	require.NoError(t, err)
	testutil.AssertNoANSI(t, out)
	assert.Contains(t, out, "src/app.test.ts")
	assert.Contains(t, out, "→ project > overrides[0]  off")
}

func TestPresetsCommand(t *testing.T) {
	cfg := setupProject(t)
	extra := filepath.Join(cfg.ProjectRoot, "presets")
	require.NoError(t, os.MkdirAll(extra, 0750))
	require.NoError(t, os.WriteFile(filepath.Join(extra, "team.yaml"), []byte("extends: [base]\nrules:\n  eqeqeq: error\n"), 0600))
	cfg.PresetDirs = []string{extra}

	out, _, err := execute(t, NewPresetsCommand(), cfg)
	require.NoError(t, err)

	var infos []struct {
		Name    string   `json:"name"`
		Rules   int      `json:"rules"`
		Extends []string `json:"extends"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &infos))
	require.Len(t, infos, 8)
	names := make([]string, 0, len(infos))
	for _, info := range infos {
		names = append(names, info.Name)
	}
	assert.Contains(t, names, "team")
	assert.Contains(t, names, "vendor/typescript-eslint-all")

	cfg.OutputFormat = "markdown"
	out, _, err = execute(t, NewPresetsCommand(), cfg)
	require.NoError(t, err)
	testutil.AssertValidMarkdown(t, out)
	assert.Contains(t, out, "| team | 1 | 0 | base |")
}

func TestShowCommand(t *testing.T) {
	cfg := setupProject(t)
	cfg.OutputFormat = "markdown"

	out, _, err := execute(t, NewShowCommand(), cfg, "jest")
	require.NoError(t, err)
	assert.Contains(t, out, "name: jest")
	assert.Contains(t, out, "jest/no-focused-tests: error")

	out, _, err = execute(t, NewShowCommand(), cfg)
	require.NoError(t, err)
	assert.Contains(t, out, "name: project")

	out, _, err = execute(t, NewShowCommand(), cfg, "--expanded", "--format", "json")
	require.NoError(t, err)
	var expanded map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &expanded))
	assert.Equal(t, []any{"dist/**"}, expanded["ignore_patterns"])
	assert.Equal(t, cfg.ProjectRoot, expanded["base_dir"])

	_, _, err = execute(t, NewShowCommand(), cfg, "nope")
	assert.ErrorContains(t, err, `preset "nope" not found`)

	_, _, err = execute(t, NewShowCommand(), cfg, "--format", "toml", "jest")
	assert.ErrorContains(t, err, "unsupported document format")
}

func TestCommandDefinitions(t *testing.T) {
	tests := []struct {
		cmd   *cobra.Command
		use   string
		flags []string
	}{
		{NewResolveCommand(), "resolve <path>...", []string{"preset", "rule", "enabled"}},
		{NewExplainCommand(), "explain <path> [rule]", []string{"preset"}},
		{NewPresetsCommand(), "presets", nil},
		{NewShowCommand(), "show [preset]", []string{"expanded", "format"}},
		{NewWatchCommand(), "watch <path>...", []string{"preset", "rule", "enabled"}},
		{NewREPLCommand(), "repl", []string{"preset"}},
	}

	for _, tt := range tests {
		t.Run(tt.use, func(t *testing.T) {
			assert.Equal(t, tt.use, tt.cmd.Use)
			assert.NotEmpty(t, tt.cmd.Short, "Short should not be empty")
			for _, flag := range tt.flags {
				assert.NotNil(t, tt.cmd.Flags().Lookup(flag), "flag %q should exist", flag)
			}
		})
	}
}

func mustRules(t *testing.T, raw map[string]any) core.RuleMap {
	t.Helper()
	rules := make(core.RuleMap, len(raw))
	for key, v := range raw {
		setting, err := core.ParseRuleSetting(v)
		require.NoError(t, err)
		rules[key] = setting
	}
	return rules
}
