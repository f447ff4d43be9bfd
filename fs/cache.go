// Package fs provides cached filesystem access for change detection.
//
// All queries are memoized until Flush is called, including "not found"
// results, so that repeated queries within one poll cycle see a single
// consistent view of the filesystem. The embedding caller is responsible
// for flushing between cycles; the watcher never flushes on its own.
package fs

import (
	"crypto/sha256"
	"encoding/hex"
	"hash"
	"os"
	"sync"
	"time"

	"github.com/grovetools/fswatch/errors"
)

var hashPool = sync.Pool{
	New: func() interface{} {
		return sha256.New()
	},
}

// FileMeta holds the cheap stat metadata used for the fast path of change
// detection.
type FileMeta struct {
	Size    int64
	ModTime time.Time
}

// FileSystemCache memoizes stat, read and content hash queries per flush cycle.
type FileSystemCache struct {
	mu sync.Mutex

	statCache  map[string]FileMeta
	statErrors map[string]error
	readCache  map[string][]byte
	readErrors map[string]error
	hashCache  map[string]string
}

// NewCache creates an empty FileSystemCache.
func NewCache() *FileSystemCache {
	c := &FileSystemCache{}
	c.reset()
	return c
}

func (c *FileSystemCache) reset() {
	c.statCache = make(map[string]FileMeta)
	c.statErrors = make(map[string]error)
	c.readCache = make(map[string][]byte)
	c.readErrors = make(map[string]error)
	c.hashCache = make(map[string]string)
}

// Flush drops all memoized entries. Call between poll cycles; without a flush
// the cache keeps reporting the state observed when each path was first queried.
func (c *FileSystemCache) Flush() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.reset()
}

// Stat returns the size and modification time of path. A missing path is
// reported as a PATH_NOT_FOUND error; any other failure is a STAT_FAILED
// error. Both outcomes are cached until the next Flush.
func (c *FileSystemCache) Stat(path string) (FileMeta, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if meta, ok := c.statCache[path]; ok {
		return meta, nil
	}
	if err, ok := c.statErrors[path]; ok {
		return FileMeta{}, err
	}

	info, err := os.Stat(path)
	if err != nil {
		var ferr error
		if os.IsNotExist(err) {
			ferr = errors.PathNotFound(path)
		} else {
			ferr = errors.StatFailed(path, err)
		}
		c.statErrors[path] = ferr
		return FileMeta{}, ferr
	}

	meta := FileMeta{Size: info.Size(), ModTime: info.ModTime()}
	c.statCache[path] = meta
	return meta, nil
}

// Read returns the full content of path, memoized until the next Flush.
func (c *FileSystemCache) Read(path string) ([]byte, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.read(path)
}

func (c *FileSystemCache) read(path string) ([]byte, error) {
	if data, ok := c.readCache[path]; ok {
		return data, nil
	}
	if err, ok := c.readErrors[path]; ok {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		var ferr error
		if os.IsNotExist(err) {
			ferr = errors.PathNotFound(path)
		} else {
			ferr = errors.ReadFailed(path, err)
		}
		c.readErrors[path] = ferr
		return nil, ferr
	}

	c.readCache[path] = data
	return data, nil
}

// ContentHash returns the hex SHA-256 digest of the full content of path.
// Assumed expensive relative to Stat; callers should compare metadata first.
func (c *FileSystemCache) ContentHash(path string) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if digest, ok := c.hashCache[path]; ok {
		return digest, nil
	}

	data, err := c.read(path)
	if err != nil {
		if errors.Is(err, errors.ErrCodePathNotFound) || errors.Is(err, errors.ErrCodeReadFailed) {
			return "", err
		}
		return "", errors.HashFailed(path, err)
	}

	h := hashPool.Get().(hash.Hash)
	h.Write(data)
	digest := hex.EncodeToString(h.Sum(nil))
	h.Reset()
	hashPool.Put(h)

	c.hashCache[path] = digest
	return digest, nil
}
