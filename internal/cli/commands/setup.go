package commands

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"path/filepath"

	"github.com/leapstack-labs/lintpreset/internal/cli/output"
	"github.com/leapstack-labs/lintpreset/internal/config"
	"github.com/leapstack-labs/lintpreset/pkg/document"
	"github.com/leapstack-labs/lintpreset/pkg/preset"
	"github.com/leapstack-labs/lintpreset/pkg/resolve"
	"github.com/spf13/cobra"
)

// CommandContext holds common dependencies for CLI commands.
type CommandContext struct {
	Cfg      *config.Config
	Logger   *slog.Logger
	Renderer *output.Renderer
}

// NewCommandContext creates a CommandContext from the command's context.
func NewCommandContext(cmd *cobra.Command) *CommandContext {
	cfg := config.FromContext(cmd.Context())
	logger := config.GetLogger(cmd.Context())
	r := output.NewRenderer(cmd.OutOrStdout(), cmd.ErrOrStderr(), output.Mode(cfg.OutputFormat))

	return &CommandContext{
		Cfg:      cfg,
		Logger:   logger,
		Renderer: r,
	}
}

// Registry returns the embedded presets plus those in the configured preset directories.
func (c *CommandContext) Registry() (*preset.Registry, error) {
	reg, err := preset.Default()
	if err != nil {
		return nil, err
	}
	for _, dir := range c.Cfg.PresetDirs {
		if err := reg.LoadDir(dir); err != nil {
			return nil, err
		}
		c.Logger.Debug("loaded preset directory", slog.String("dir", dir))
	}
	return reg, nil
}

// LoadDocument loads the configured document and logs keys it does not use.
func (c *CommandContext) LoadDocument() (*document.Document, error) {
	doc, err := document.Load(c.Cfg.Document)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("document %s not found\nHint: create it or use --document to point at another file, or --preset to resolve a preset", c.Cfg.Document)
		}
		return nil, err
	}
	for _, key := range doc.Unused {
		c.Logger.Warn("ignoring unknown document key", slog.String("document", c.Cfg.Document), slog.String("key", key))
	}
	return doc, nil
}

// Configuration builds the expanded configuration to resolve against: the
// named preset if presetName is set, the project document otherwise.
// Paths are matched relative to the document's directory.
func (c *CommandContext) Configuration(presetName string) (resolve.Configuration, error) {
	reg, err := c.Registry()
	if err != nil {
		return resolve.Configuration{}, err
	}

	if presetName != "" {
		cfg, err := reg.ExpandName(presetName)
		if err != nil {
			return resolve.Configuration{}, err
		}
		cfg.BaseDir = c.Cfg.ProjectRoot
		return cfg, nil
	}

	doc, err := c.LoadDocument()
	if err != nil {
		return resolve.Configuration{}, err
	}
	cfg, err := reg.Expand(doc)
	if err != nil {
		return resolve.Configuration{}, fmt.Errorf("%s: %w", c.Cfg.Document, err)
	}
	cfg.BaseDir = filepath.Dir(c.Cfg.Document)
	return cfg, nil
}

// Resolver compiles the configuration selected by presetName.
func (c *CommandContext) Resolver(presetName string) (*resolve.Resolver, error) {
	cfg, err := c.Configuration(presetName)
	if err != nil {
		return nil, err
	}
	res, err := resolve.New(cfg, resolve.WithLogger(c.Logger))
	if err != nil {
		return nil, err
	}
	c.Logger.Debug("configuration compiled",
		slog.Int("layers", cfg.LayerCount()),
		slog.String("base_dir", cfg.BaseDir))
	return res, nil
}

// absPaths makes command-line paths absolute so they match relative to the
// configuration's base directory.
func absPaths(paths []string) []string {
	out := make([]string, len(paths))
	for i, p := range paths {
		abs, err := filepath.Abs(p)
		if err != nil {
			abs = p
		}
		out[i] = abs
	}
	return out
}
