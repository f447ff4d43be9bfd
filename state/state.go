// Package state persists watcher snapshots between runs, so a single-shot
// scan can report what changed since the previous invocation. The watcher
// core itself keeps snapshots only in memory; persistence is strictly a
// concern of the embedding tool.
package state

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/grovetools/fswatch/errors"
	"github.com/grovetools/fswatch/watcher"
)

// DefaultPath is the state file location relative to the project root.
const DefaultPath = ".fswatch/state.yml"

// File is the on-disk layout of the state file.
type File struct {
	Version   int                         `yaml:"version"`
	Snapshots map[string]watcher.FileData `yaml:"snapshots"`
}

// Load loads persisted snapshots from path. A missing file yields an empty
// map, not an error.
func Load(path string) (map[string]watcher.FileData, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return make(map[string]watcher.FileData), nil
		}
		return nil, fmt.Errorf("read state file: %w", err)
	}

	var file File
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, errors.StateInvalid(path, err)
	}

	if file.Snapshots == nil {
		file.Snapshots = make(map[string]watcher.FileData)
	}

	return file.Snapshots, nil
}

// Save writes snapshots to path, creating the parent directory if needed.
func Save(path string, snapshots map[string]watcher.FileData) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("create state directory: %w", err)
	}

	data, err := yaml.Marshal(File{Version: 1, Snapshots: snapshots})
	if err != nil {
		return fmt.Errorf("marshal state: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write state file: %w", err)
	}

	return nil
}

// Seed restores persisted snapshots into a watcher.
func Seed(w *watcher.Watcher, snapshots map[string]watcher.FileData) {
	for path, data := range snapshots {
		w.SetFileData(path, data)
	}
}
