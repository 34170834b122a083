// Package cmd implements the ivy command line.
package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/metaphox/ivy-lang/internal/config"
)

// errReported signals that diagnostics were already written and only the
// exit status is left to set.
var errReported = errors.New("errors reported")

var errColor = color.New(color.FgRed)

type rootOptions struct {
	cfgFile string
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	rootCmd := &cobra.Command{
		Use:   "ivy",
		Short: "ivy - parser front end for the ivy language",
		Long: `ivy reads pre-lexed token files and parses them into syntax trees.

Token files are either word files (.tok), one whitespace-separated token
per word, or YAML files (.yaml, .yml) with an explicit token list.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.PersistentFlags().StringVar(&opts.cfgFile, "config", "", "config file (default: $"+config.EnvVar+")")

	rootCmd.AddCommand(newParseCmd(opts))
	rootCmd.AddCommand(newTokensCmd())
	rootCmd.AddCommand(newVersionCmd())
	return rootCmd
}

// Execute runs the ivy command tree against os.Args.
func Execute() error {
	rootCmd := newRootCmd()
	err := rootCmd.Execute()
	if err != nil && !errors.Is(err, errReported) {
		printError(rootCmd.ErrOrStderr(), err)
	}
	return err
}

func (o *rootOptions) loadConfig() (*config.Config, error) {
	if o.cfgFile != "" {
		return config.Load(o.cfgFile)
	}
	return config.LoadFromEnv()
}

func printError(w io.Writer, err error) {
	if w == nil {
		w = os.Stderr
	}
	errColor.Fprintf(w, "ivy: %v\n", err)
}

// printDiagnostic writes one located diagnostic as file:line:col: message.
func printDiagnostic(w io.Writer, file string, err error) {
	errColor.Fprintf(w, "%s:%v\n", file, err)
}

func fprintf(w io.Writer, format string, args ...any) {
	_, _ = fmt.Fprintf(w, format, args...)
}
