package cmd

import (
	"runtime"

	"github.com/spf13/cobra"

	"github.com/grovetools/fswatch/cli"
)

// Build metadata, overridden at link time via -ldflags.
var (
	Version   = "dev"
	Commit    = "unknown"
	BuildDate = "unknown"
)

// NewVersionCmd creates the version command
func NewVersionCmd() *cobra.Command {
	return cli.NewVersionCommand("fswatch", cli.VersionInfo{
		Version:   Version,
		Commit:    Commit,
		BuildDate: BuildDate,
		BuildArch: runtime.GOOS + "/" + runtime.GOARCH,
	})
}
