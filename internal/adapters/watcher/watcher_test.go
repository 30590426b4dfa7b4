package watcher

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStart_ExcludesNestedOutputDirectory(t *testing.T) {
	root := t.TempDir()
	for _, dir := range []string{"src", "build/out/assets", "node_modules/pkg"} {
		require.NoError(t, os.MkdirAll(filepath.Join(root, filepath.FromSlash(dir)), 0o755))
	}

	w, err := New("build/out")
	require.NoError(t, err)
	t.Cleanup(func() { _ = w.Stop() })

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	require.NoError(t, w.Start(ctx, root))

	watched := w.fsWatcher.WatchList()
	assert.Contains(t, watched, root)
	assert.Contains(t, watched, filepath.Join(root, "src"))
	assert.Contains(t, watched, filepath.Join(root, "build"))
	assert.NotContains(t, watched, filepath.Join(root, "build", "out"))
	assert.NotContains(t, watched, filepath.Join(root, "build", "out", "assets"))
	assert.NotContains(t, watched, filepath.Join(root, "node_modules"))
}

func TestShouldSkip_ComparesFullPath(t *testing.T) {
	w := &Watcher{outPath: filepath.Join("proj", "build", "out")}

	assert.True(t, w.shouldSkip(filepath.Join("proj", "build", "out")))
	assert.False(t, w.shouldSkip(filepath.Join("proj", "build")))
	// A sibling directory that happens to share the base name stays watched.
	assert.False(t, w.shouldSkip(filepath.Join("proj", "src", "out")))
	assert.True(t, w.shouldSkip(filepath.Join("proj", "node_modules")))
}
