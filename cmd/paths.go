package cmd

import (
	"sort"

	"github.com/spf13/cobra"

	"github.com/grovetools/fswatch/cli"
)

// NewPathsCmd creates the paths command, printing the expanded watch set.
func NewPathsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "paths",
		Short: "Print the files the current configuration watches",
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := cli.GetOptions(cmd)
			handler := cli.NewErrorHandler(opts.Verbose)

			sess, err := newSession(cmd)
			if err != nil {
				return handler.Handle(err)
			}

			paths := sess.watcher.WatchedPaths()
			sort.Strings(paths)
			return printPaths(cmd, paths, opts.JSONOutput)
		},
	}
}
