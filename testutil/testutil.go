package testutil

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// WriteFile creates a file under dir with the given content, creating parent
// directories as needed, and returns its path.
func WriteFile(t *testing.T, dir, name, content string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

// Touch bumps a file's modification time without changing its content.
// The offset is applied relative to the file's current mtime so the change is
// visible regardless of filesystem timestamp resolution.
func Touch(t *testing.T, path string, offset time.Duration) {
	t.Helper()

	info, err := os.Stat(path)
	require.NoError(t, err)

	newTime := info.ModTime().Add(offset)
	require.NoError(t, os.Chtimes(path, newTime, newTime))
}

// Remove deletes a file, failing the test on error.
func Remove(t *testing.T, path string) {
	t.Helper()
	require.NoError(t, os.Remove(path))
}

// Chdir switches the working directory for the duration of the test.
func Chdir(t *testing.T, dir string) {
	t.Helper()

	oldWd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() {
		_ = os.Chdir(oldWd)
	})
}
