package cmd

import (
	"os/signal"
	"sort"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/grovetools/fswatch/cli"
)

// NewWatchCmd creates the watch command: a continuous poll loop that prints
// changed files until interrupted, then persists the final snapshots.
func NewWatchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Poll continuously and print files as they change",
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := cli.GetLogger(cmd)
			opts := cli.GetOptions(cmd)
			handler := cli.NewErrorHandler(opts.Verbose)

			sess, err := newSession(cmd)
			if err != nil {
				return handler.Handle(err)
			}

			interval, err := sess.cfg.Poll.IntervalDuration()
			if err != nil {
				return handler.Handle(err)
			}
			if flagInterval, _ := cmd.Flags().GetDuration("interval"); flagInterval > 0 {
				interval = flagInterval
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			logger.WithField("interval", interval).
				WithField("watched", len(sess.watcher.WatchedPaths())).
				Info("Watching for changes")

			ticker := time.NewTicker(interval)
			defer ticker.Stop()

			for {
				select {
				case <-ticker.C:
					// The cache memoizes within one pass; flushing here is
					// what lets the next pass observe new filesystem state.
					sess.cache.Flush()

					changed, err := sess.watcher.FindChanged()
					if err != nil {
						return handler.Handle(err)
					}
					if len(changed) > 0 {
						sort.Strings(changed)
						if err := printPaths(cmd, changed, opts.JSONOutput); err != nil {
							return err
						}
					}
				case <-ctx.Done():
					logger.Debug("Stopping watch loop")
					if err := sess.saveState(); err != nil {
						return handler.Handle(err)
					}
					return nil
				}
			}
		},
	}

	cmd.Flags().Duration("interval", 0, "Override the configured poll interval")
	return cmd
}
