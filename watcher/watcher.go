// Package watcher detects content changes among an explicit set of watched
// files by polling, without OS-level change notification.
//
// All filesystem access goes through an Accessor. Changed files are detected
// by stat()ing every watched path and comparing content hashes of potentially
// changed files. If a file has both size and mtime unmodified, the file is
// assumed to be unchanged.
//
// The watcher does not flush the accessor's cache. If the embedding caller
// never flushes it, changes will not be seen.
package watcher

import (
	"sync"
	"time"

	"github.com/grovetools/fswatch/errors"
	"github.com/grovetools/fswatch/fs"
)

// Accessor is the filesystem collaborator the watcher polls through. A
// missing path must be reported by Stat as an ErrCodePathNotFound coded
// error; ContentHash is assumed expensive relative to Stat.
type Accessor interface {
	Stat(path string) (fs.FileMeta, error)
	ContentHash(path string) (string, error)
}

// FileData is the last observed metadata and content hash for a watched path.
type FileData struct {
	ModTime time.Time `yaml:"mod_time"`
	Size    int64     `yaml:"size"`
	Hash    string    `yaml:"hash"`
}

// Watcher tracks a set of watched paths and their last known snapshots.
// A nil snapshot entry means the path is watched but has never been
// successfully observed (newly added, or known to be missing).
//
// Invariant: the snapshot map and the watched set hold exactly the same keys
// between public operations.
type Watcher struct {
	mu       sync.Mutex
	accessor Accessor
	paths    map[string]struct{}
	fileData map[string]*FileData
}

// New creates a Watcher polling through the given accessor.
func New(accessor Accessor) *Watcher {
	return &Watcher{
		accessor: accessor,
		paths:    make(map[string]struct{}),
		fileData: make(map[string]*FileData),
	}
}

// AddPaths adds paths to the watched set. Paths not yet watched get a nil
// snapshot, so the next FindChanged reports them if they exist. Already
// watched paths are left untouched. No filesystem access happens here.
func (w *Watcher) AddPaths(paths []string) {
	w.mu.Lock()
	defer w.mu.Unlock()

	for _, path := range paths {
		if _, ok := w.paths[path]; !ok {
			w.fileData[path] = nil
		}
		w.paths[path] = struct{}{}
	}
}

// RemovePaths removes paths from the watched set along with their snapshots.
// Removing a path that is not watched is a no-op.
func (w *Watcher) RemovePaths(paths []string) {
	w.mu.Lock()
	defer w.mu.Unlock()

	for _, path := range paths {
		delete(w.fileData, path)
		delete(w.paths, path)
	}
}

// WatchedPaths returns a copy of the watched set.
func (w *Watcher) WatchedPaths() []string {
	w.mu.Lock()
	defer w.mu.Unlock()

	paths := make([]string, 0, len(w.paths))
	for path := range w.paths {
		paths = append(paths, path)
	}
	return paths
}

// SetFileData seeds the snapshot for a path, so a subsequent FindChanged
// compares against it instead of treating the path as never observed. Used
// to restore persisted snapshots across runs.
func (w *Watcher) SetFileData(path string, data FileData) {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.paths[path] = struct{}{}
	w.fileData[path] = &data
}

// Snapshots returns a copy of the current Present snapshots, keyed by path.
// Paths without a prior observation are omitted.
func (w *Watcher) Snapshots() map[string]FileData {
	w.mu.Lock()
	defer w.mu.Unlock()

	out := make(map[string]FileData, len(w.fileData))
	for path, data := range w.fileData {
		if data != nil {
			out[path] = *data
		}
	}
	return out
}

// FindChanged returns the watched paths whose observable content changed
// since the previous call.
//
// For each watched path the cheap stat metadata is compared first; the
// content hash is only computed when size or mtime differ, or the path was
// never observed. A path whose mtime changed but whose size and hash are
// identical is not reported. A path that disappeared is reported once and
// its snapshot cleared, so a reappearance is reported again.
//
// Any accessor failure other than path-not-found aborts the pass; the
// snapshot of the path being processed is left at its pre-poll value.
func (w *Watcher) FindChanged() ([]string, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	var changed []string
	for path := range w.paths {
		old := w.fileData[path]

		meta, err := w.accessor.Stat(path)
		if err != nil {
			if !errors.Is(err, errors.ErrCodePathNotFound) {
				return nil, err
			}
			if old != nil {
				// File was deleted.
				changed = append(changed, path)
				w.fileData[path] = nil
			}
			continue
		}

		if old == nil {
			// File is new.
			if err := w.update(path); err != nil {
				return nil, err
			}
			changed = append(changed, path)
		} else if meta.Size != old.Size || !meta.ModTime.Equal(old.ModTime) {
			// Only look for changes if size or mtime has changed as an
			// optimization, since hashing is expensive.
			newHash, err := w.accessor.ContentHash(path)
			if err != nil {
				return nil, err
			}
			w.fileData[path] = &FileData{ModTime: meta.ModTime, Size: meta.Size, Hash: newHash}
			if meta.Size != old.Size || newHash != old.Hash {
				// Changed file.
				changed = append(changed, path)
			}
		}
	}
	return changed, nil
}

// update captures a fresh snapshot for a path known to exist: one stat query
// and one hash query. The snapshot is replaced whole; a failure leaves the
// previous value in place. Relies on the accessor returning consistent
// results for the same path within one poll cycle.
func (w *Watcher) update(path string) error {
	meta, err := w.accessor.Stat(path)
	if err != nil {
		return err
	}
	hash, err := w.accessor.ContentHash(path)
	if err != nil {
		return err
	}
	w.fileData[path] = &FileData{ModTime: meta.ModTime, Size: meta.Size, Hash: hash}
	return nil
}
