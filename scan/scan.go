// Package scan expands configured root directories into the flat list of
// file paths handed to the watcher. Directory recursion happens here, never
// in the watcher itself.
package scan

import (
	"io/fs"
	"os"
	"path/filepath"

	fserrors "github.com/grovetools/fswatch/errors"
	"github.com/grovetools/fswatch/patterns"
	"github.com/grovetools/fswatch/util/pathutil"
)

// Collect walks each root and returns the matcher-approved regular files,
// plus the explicit paths verbatim. Results are absolute, normalized and
// deduplicated. A missing root is an error; a missing explicit path is not,
// since the watcher reports its later appearance as a change.
func Collect(roots []string, matcher *patterns.Matcher, explicit []string) ([]string, error) {
	seen := make(map[string]struct{})
	var result []string

	add := func(path string) error {
		normalized, err := pathutil.NormalizeForLookup(path)
		if err != nil {
			return err
		}
		if _, ok := seen[normalized]; !ok {
			seen[normalized] = struct{}{}
			result = append(result, normalized)
		}
		return nil
	}

	for _, root := range roots {
		if _, err := os.Stat(root); err != nil {
			if os.IsNotExist(err) {
				return nil, fserrors.PathNotFound(root)
			}
			return nil, fserrors.StatFailed(root, err)
		}

		err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return nil // Skip unreadable entries
			}
			if d.IsDir() {
				if matcher != nil && matcher.IsIgnored(path) {
					return filepath.SkipDir
				}
				return nil
			}
			if !d.Type().IsRegular() {
				return nil
			}
			if matcher != nil && !matcher.Matches(path) {
				return nil
			}
			return add(path)
		})
		if err != nil {
			return nil, fserrors.Wrap(err, fserrors.ErrCodeInternal, "directory walk failed").
				WithDetail("root", root)
		}
	}

	for _, path := range explicit {
		if err := add(path); err != nil {
			return nil, err
		}
	}

	return result, nil
}
