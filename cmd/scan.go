package cmd

import (
	"encoding/json"
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/grovetools/fswatch/cli"
)

// NewScanCmd creates the scan command: a single poll pass against the
// persisted snapshots, reporting what changed since the previous run.
func NewScanCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "scan",
		Short: "Report files changed since the last scan",
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := cli.GetLogger(cmd)
			opts := cli.GetOptions(cmd)
			handler := cli.NewErrorHandler(opts.Verbose)

			sess, err := newSession(cmd)
			if err != nil {
				return handler.Handle(err)
			}

			changed, err := sess.watcher.FindChanged()
			if err != nil {
				return handler.Handle(err)
			}

			if err := sess.saveState(); err != nil {
				return handler.Handle(err)
			}

			logger.WithField("watched", len(sess.watcher.WatchedPaths())).
				WithField("changed", len(changed)).
				Debug("Scan complete")

			sort.Strings(changed)
			return printPaths(cmd, changed, opts.JSONOutput)
		},
	}
}

func printPaths(cmd *cobra.Command, paths []string, jsonOutput bool) error {
	if jsonOutput {
		if paths == nil {
			paths = []string{}
		}
		data, err := json.Marshal(paths)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(data))
		return nil
	}
	for _, path := range paths {
		fmt.Fprintln(cmd.OutOrStdout(), path)
	}
	return nil
}
