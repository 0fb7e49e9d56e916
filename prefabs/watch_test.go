package prefabs

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWatcherReportsNamedChanges(t *testing.T) {
	dir := t.TempDir()
	w, err := NewWatcher(dir)
	require.NoError(t, err)
	defer w.Close()

	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644))
	stats := filepath.Join(dir, "stats.yaml")
	for i := 0; i < 3; i++ {
		require.NoError(t, os.WriteFile(stats, []byte("kinds: {}"), 0o644))
	}

	select {
	case got := <-w.Changes:
		assert.Equal(t, Change{Kind: CatalogChanged, Name: "stats.yaml", Path: stats}, got)
	case <-time.After(2 * time.Second):
		t.Fatal("no change for stats.yaml")
	}
	select {
	case got := <-w.Changes:
		t.Fatalf("burst not coalesced: %+v", got)
	case <-time.After(3 * settle):
	}

	script := filepath.Join(dir, "knotwood.tengo")
	require.NoError(t, os.WriteFile(script, []byte("x := 1"), 0o644))
	select {
	case got := <-w.Changes:
		assert.Equal(t, ScriptChanged, got.Kind)
		assert.Equal(t, "knotwood", got.Name)
	case <-time.After(2 * time.Second):
		t.Fatal("no change for knotwood.tengo")
	}
}

func TestWatcherCloseIsIdempotent(t *testing.T) {
	w, err := NewWatcher(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, w.Close())
	assert.NoError(t, w.Close())

	_, open := <-w.Changes
	assert.False(t, open)
}

func TestWatcherMissingDir(t *testing.T) {
	_, err := NewWatcher(filepath.Join(t.TempDir(), "missing"))
	assert.Error(t, err)
}
