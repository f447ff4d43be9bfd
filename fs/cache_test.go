package fs

import (
	"crypto/sha256"
	"encoding/hex"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/grovetools/fswatch/errors"
	"github.com/grovetools/fswatch/testutil"
)

func sha256hex(content string) string {
	sum := sha256.Sum256([]byte(content))
	return hex.EncodeToString(sum[:])
}

func TestStat(t *testing.T) {
	dir := t.TempDir()
	path := testutil.WriteFile(t, dir, "a.txt", "hello")

	cache := NewCache()

	meta, err := cache.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, int64(5), meta.Size)
	assert.False(t, meta.ModTime.IsZero())
}

func TestStatMissingPathIsCodedNotFound(t *testing.T) {
	cache := NewCache()

	_, err := cache.Stat(filepath.Join(t.TempDir(), "nope.txt"))
	require.Error(t, err)
	assert.Equal(t, errors.ErrCodePathNotFound, errors.GetCode(err))
}

func TestContentHash(t *testing.T) {
	dir := t.TempDir()
	path := testutil.WriteFile(t, dir, "a.txt", "hello")

	cache := NewCache()

	digest, err := cache.ContentHash(path)
	require.NoError(t, err)
	assert.Equal(t, sha256hex("hello"), digest)
}

func TestReadMemoizedUntilFlush(t *testing.T) {
	dir := t.TempDir()
	path := testutil.WriteFile(t, dir, "a.txt", "before")

	cache := NewCache()

	data, err := cache.Read(path)
	require.NoError(t, err)
	assert.Equal(t, "before", string(data))

	// Without a flush the cache keeps serving the old view
	testutil.WriteFile(t, dir, "a.txt", "after, and longer")

	data, err = cache.Read(path)
	require.NoError(t, err)
	assert.Equal(t, "before", string(data))

	meta, err := cache.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, int64(len("before")), meta.Size)

	cache.Flush()

	data, err = cache.Read(path)
	require.NoError(t, err)
	assert.Equal(t, "after, and longer", string(data))

	meta, err = cache.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, int64(len("after, and longer")), meta.Size)
}

func TestNegativeCaching(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "late.txt")

	cache := NewCache()

	_, err := cache.Stat(path)
	require.Error(t, err)

	// The file appears mid-cycle; the cached NotFound keeps the cycle's view
	// consistent until Flush
	testutil.WriteFile(t, dir, "late.txt", "here now")

	_, err = cache.Stat(path)
	require.Error(t, err)
	assert.Equal(t, errors.ErrCodePathNotFound, errors.GetCode(err))

	cache.Flush()

	meta, err := cache.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, int64(len("here now")), meta.Size)
}

func TestHashConsistentWithRead(t *testing.T) {
	dir := t.TempDir()
	path := testutil.WriteFile(t, dir, "a.txt", "first")

	cache := NewCache()

	// Read first, then mutate, then hash: the hash must cover the bytes the
	// cycle already observed, not the new ones
	_, err := cache.Read(path)
	require.NoError(t, err)

	testutil.WriteFile(t, dir, "a.txt", "second")
	testutil.Touch(t, path, time.Second)

	digest, err := cache.ContentHash(path)
	require.NoError(t, err)
	assert.Equal(t, sha256hex("first"), digest)
}
