package state

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/grovetools/fswatch/testutil"
	"github.com/grovetools/fswatch/watcher"
)

func TestLoadMissingFileIsEmpty(t *testing.T) {
	snaps, err := Load(filepath.Join(t.TempDir(), "state.yml"))
	require.NoError(t, err)
	assert.Empty(t, snaps)
}

func TestSaveAndLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".fswatch", "state.yml")

	in := map[string]watcher.FileData{
		"/project/a.go": {
			ModTime: time.Date(2026, 3, 14, 9, 26, 53, 0, time.UTC),
			Size:    1234,
			Hash:    "deadbeef",
		},
		"/project/b.go": {
			ModTime: time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC),
			Size:    0,
			Hash:    "cafef00d",
		},
	}

	require.NoError(t, Save(path, in))

	out, err := Load(path)
	require.NoError(t, err)
	require.Len(t, out, 2)
	for p, want := range in {
		got, ok := out[p]
		require.True(t, ok, "missing %s", p)
		assert.True(t, got.ModTime.Equal(want.ModTime))
		assert.Equal(t, want.Size, got.Size)
		assert.Equal(t, want.Hash, got.Hash)
	}
}

func TestLoadCorruptFile(t *testing.T) {
	dir := t.TempDir()
	path := testutil.WriteFile(t, dir, "state.yml", "{not: [valid")

	_, err := Load(path)
	require.Error(t, err)
}

func TestSeedRestoresSnapshots(t *testing.T) {
	w := watcher.New(nil)

	Seed(w, map[string]watcher.FileData{
		"/a": {Size: 1, Hash: "h1"},
		"/b": {Size: 2, Hash: "h2"},
	})

	snaps := w.Snapshots()
	require.Len(t, snaps, 2)
	assert.Equal(t, "h1", snaps["/a"].Hash)

	paths := w.WatchedPaths()
	assert.Len(t, paths, 2)
}
