package cmd

import (
	"runtime"

	"github.com/spf13/cobra"
)

var (
	Version   = "0.1.0"
	GitCommit = "development"
	BuildDate = "unknown"
)

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Run: func(cmd *cobra.Command, args []string) {
			out := cmd.OutOrStdout()
			fprintf(out, "ivy v%s\n", Version)
			fprintf(out, "  Git Commit: %s\n", GitCommit)
			fprintf(out, "  Build Date: %s\n", BuildDate)
			fprintf(out, "  Go Version: %s\n", runtime.Version())
			fprintf(out, "  OS/Arch:    %s/%s\n", runtime.GOOS, runtime.GOARCH)
		},
	}
}
