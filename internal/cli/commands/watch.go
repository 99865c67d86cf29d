package commands

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/leapstack-labs/lintpreset/pkg/document"
	"github.com/spf13/cobra"
)

// NewWatchCommand creates the watch command.
func NewWatchCommand() *cobra.Command {
	opts := &ResolveOptions{}
	cmd := &cobra.Command{
		Use:   "watch <path>...",
		Short: "Re-resolve files whenever the configuration changes",
		Long: `Resolve the effective rules for each path, then resolve again every
time the project document or a preset directory changes. Press Ctrl+C to stop.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWatch(cmd, args, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.Preset, "preset", "p", "", "Resolve a named preset instead of the document")
	cmd.Flags().StringSliceVarP(&opts.Rules, "rule", "r", nil, "Only show these rules")
	cmd.Flags().BoolVar(&opts.Enabled, "enabled", false, "Hide rules that are off")

	return cmd
}

func runWatch(cmd *cobra.Command, args []string, opts *ResolveOptions) error {
	ctx := cmd.Context()
	cmdCtx := NewCommandContext(cmd)
	r := cmdCtx.Renderer

	rerun := func() {
		if err := runResolve(cmd, args, opts); err != nil {
			r.Error(err.Error())
		}
	}
	rerun()

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer func() { _ = watcher.Close() }()

	if opts.Preset == "" {
		if err := watcher.Add(filepath.Dir(cmdCtx.Cfg.Document)); err != nil {
			return fmt.Errorf("failed to watch document: %w", err)
		}
	}
	for _, dir := range cmdCtx.Cfg.PresetDirs {
		if err := watchDir(watcher, dir); err != nil {
			return fmt.Errorf("failed to watch preset dir: %w", err)
		}
	}

	relevant := func(name string) bool {
		if filepath.Clean(name) == filepath.Clean(cmdCtx.Cfg.Document) {
			return true
		}
		for _, dir := range cmdCtx.Cfg.PresetDirs {
			if rel, err := filepath.Rel(dir, name); err == nil && !strings.HasPrefix(rel, "..") {
				return slices.Contains(document.Extensions, strings.ToLower(filepath.Ext(name)))
			}
		}
		return false
	}

	r.Println("")
	r.Println(r.Styles().Muted.Render("Watching for changes. Press Ctrl+C to stop."))

	watchLoop(ctx, watcher, cmdCtx.Cfg.WatchDebounce, relevant, func(changed string) {
		cmdCtx.Logger.Info("change detected", slog.String("file", changed))
		r.Println("")
		r.Println(r.Styles().Muted.Render("Change detected: " + filepath.Base(changed)))
		rerun()
	}, cmdCtx.Logger)
	return nil
}

// watchDir recursively adds a directory to the watcher.
func watchDir(watcher *fsnotify.Watcher, dir string) error {
	return filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			// Skip hidden directories
			if path != dir && strings.HasPrefix(info.Name(), ".") {
				return filepath.SkipDir
			}
			return watcher.Add(path)
		}
		return nil
	})
}

// watchLoop calls onChange once events for relevant files have been quiet
// for the debounce interval. It returns when ctx is done or the watcher closes.
func watchLoop(ctx context.Context, watcher *fsnotify.Watcher, debounce time.Duration,
	relevant func(string) bool, onChange func(string), logger *slog.Logger) {
	var (
		timer   *time.Timer
		fire    <-chan time.Time
		changed string
	)
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return

		case event, ok := <-watcher.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}
			if !relevant(event.Name) {
				continue
			}

			// Debounce rebuilds
			changed = event.Name
			if timer == nil {
				timer = time.NewTimer(debounce)
			} else {
				timer.Reset(debounce)
			}
			fire = timer.C

		case <-fire:
			fire = nil
			onChange(changed)

		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			logger.Warn("watcher error", slog.Any("error", err))
		}
	}
}
