package cmd

import (
	"github.com/spf13/cobra"

	"github.com/grovetools/fswatch/cli"
	"github.com/grovetools/fswatch/config"
	"github.com/grovetools/fswatch/fs"
	"github.com/grovetools/fswatch/patterns"
	"github.com/grovetools/fswatch/scan"
	"github.com/grovetools/fswatch/state"
	"github.com/grovetools/fswatch/watcher"
)

// session bundles everything a command needs to poll: the configured watcher,
// the shared accessor cache and the state file location.
type session struct {
	cfg       *config.Config
	cache     *fs.FileSystemCache
	watcher   *watcher.Watcher
	statePath string
}

// newSession loads configuration, expands the watch set and builds a watcher
// seeded with the persisted snapshots from the previous run.
func newSession(cmd *cobra.Command) (*session, error) {
	opts := cli.GetOptions(cmd)

	var cfg *config.Config
	var err error
	if opts.ConfigFile != "" {
		cfg, err = config.Load(opts.ConfigFile)
	} else {
		cfg, err = config.LoadDefault()
	}
	if err != nil {
		return nil, err
	}

	matcher := patterns.NewMatcher()
	if err := matcher.SetIncludePatterns(cfg.Watch.Include); err != nil {
		return nil, err
	}
	if err := matcher.SetIgnorePatterns(cfg.Watch.Ignore); err != nil {
		return nil, err
	}

	paths, err := scan.Collect(cfg.Watch.Roots, matcher, cfg.Watch.Paths)
	if err != nil {
		return nil, err
	}

	snapshots, err := state.Load(cfg.State.Path)
	if err != nil {
		return nil, err
	}

	cache := fs.NewCache()
	w := watcher.New(cache)

	// Seed persisted snapshots first, then add the scan result. Paths that
	// vanished from the scan since the snapshot was taken are dropped so the
	// watched set tracks the current configuration.
	state.Seed(w, snapshots)
	w.AddPaths(paths)

	current := make(map[string]struct{}, len(paths))
	for _, p := range paths {
		current[p] = struct{}{}
	}
	var stale []string
	for _, p := range w.WatchedPaths() {
		if _, ok := current[p]; !ok {
			stale = append(stale, p)
		}
	}
	w.RemovePaths(stale)

	return &session{
		cfg:       cfg,
		cache:     cache,
		watcher:   w,
		statePath: cfg.State.Path,
	}, nil
}

// saveState persists the watcher's current snapshots for the next run.
func (s *session) saveState() error {
	return state.Save(s.statePath, s.watcher.Snapshots())
}
