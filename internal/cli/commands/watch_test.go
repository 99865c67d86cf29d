package commands

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
	logtest "github.com/leapstack-labs/lintpreset/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWatchLoop_DebouncesRelevantChanges(t *testing.T) {
	dir := t.TempDir()
	docPath := filepath.Join(dir, ".lintrc.yaml")
	require.NoError(t, os.WriteFile(docPath, []byte("rules: {}\n"), 0600))

	watcher, err := fsnotify.NewWatcher()
	require.NoError(t, err)
	defer func() { _ = watcher.Close() }()
	require.NoError(t, watcher.Add(dir))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	changes := make(chan string, 10)
	done := make(chan struct{})
	go func() {
		defer close(done)
		watchLoop(ctx, watcher, 50*time.Millisecond,
			func(name string) bool { return filepath.Base(name) == ".lintrc.yaml" },
			func(name string) { changes <- name },
			logtest.NewTestLogger(t))
	}()

	// Irrelevant file first, then several writes to the document.
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0600))
	for _, rules := range []string{"rules: {a: warn}\n", "rules: {a: error}\n", "rules: {a: off}\n"} {
		require.NoError(t, os.WriteFile(docPath, []byte(rules), 0600))
	}

	select {
	case name := <-changes:
		assert.Equal(t, docPath, name)
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for change")
	}

	// The burst collapses into a single callback.
	select {
	case name := <-changes:
		t.Fatalf("unexpected second change: %s", name)
	case <-time.After(300 * time.Millisecond):
	}

	cancel()
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("watchLoop did not stop on cancel")
	}
}

func TestWatchDir_SkipsHiddenDirectories(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "team", "strict"), 0750))
	require.NoError(t, os.MkdirAll(filepath.Join(dir, ".git", "objects"), 0750))

	watcher, err := fsnotify.NewWatcher()
	require.NoError(t, err)
	defer func() { _ = watcher.Close() }()

	require.NoError(t, watchDir(watcher, dir))

	watched := watcher.WatchList()
	assert.ElementsMatch(t, []string{
		dir,
		filepath.Join(dir, "team"),
		filepath.Join(dir, "team", "strict"),
	}, watched)
}

func TestWatchDir_MissingDirectory(t *testing.T) {
	watcher, err := fsnotify.NewWatcher()
	require.NoError(t, err)
	defer func() { _ = watcher.Close() }()

	assert.Error(t, watchDir(watcher, filepath.Join(t.TempDir(), "missing")))
}
