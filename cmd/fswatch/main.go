package main

import (
	"os"

	"github.com/grovetools/fswatch/cli"
	"github.com/grovetools/fswatch/cmd"
)

func main() {
	rootCmd := cli.NewStandardCommand(
		"fswatch",
		"Polling change detection over an explicit set of watched files",
	)

	// Add subcommands
	rootCmd.AddCommand(cmd.NewScanCmd())
	rootCmd.AddCommand(cmd.NewWatchCmd())
	rootCmd.AddCommand(cmd.NewPathsCmd())
	rootCmd.AddCommand(cmd.NewVersionCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
