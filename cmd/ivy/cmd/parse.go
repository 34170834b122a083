package cmd

import (
	"context"
	"io"
	"log/slog"

	"github.com/davecgh/go-spew/spew"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/metaphox/ivy-lang/ast"
	"github.com/metaphox/ivy-lang/parser"
	"github.com/metaphox/ivy-lang/tokenfile"
)

type parseFlags struct {
	maxDepth int
	flatScan bool
	trace    bool
	dump     bool
}

// parseResult is the outcome for one input file.
type parseResult struct {
	file string
	root *ast.Root
	err  error // parse diagnostic; load failures abort the command instead
}

func newParseCmd(root *rootOptions) *cobra.Command {
	flags := &parseFlags{}
	parseCmd := &cobra.Command{
		Use:   "parse file...",
		Short: "Parse token files and print their syntax trees",
		Long: `Parse each token file and print its syntax tree to stdout.

Files are parsed concurrently; trees are printed in argument order.
Diagnostics go to stderr as file:line:col: message, and the command
exits non-zero if any file fails to parse.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runParse(cmd, root, flags, args)
		},
	}
	parseCmd.Flags().IntVar(&flags.maxDepth, "max-depth", 0, "maximum nesting depth (default from config)")
	parseCmd.Flags().BoolVar(&flags.flatScan, "flat-scan", false, "classify tuples with the flat scan")
	parseCmd.Flags().BoolVar(&flags.trace, "trace", false, "log every grammar production to stderr")
	parseCmd.Flags().BoolVar(&flags.dump, "dump", false, "print a Go value dump instead of the tree")
	return parseCmd
}

func runParse(cmd *cobra.Command, root *rootOptions, flags *parseFlags, files []string) error {
	cfg, err := root.loadConfig()
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("max-depth") {
		cfg.Parser.MaxDepth = flags.maxDepth
	}
	if flags.flatScan {
		cfg.Parser.TupleScan = parser.ScanFlat.String()
	}
	if flags.trace {
		cfg.Parser.Trace = true
		cfg.Log.Level = "debug"
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	logger := cfg.Logger(cmd.ErrOrStderr())

	results, err := parseFiles(cmd.Context(), files, func(file string) parser.Options {
		return cfg.ParserOptions(logger.With(slog.String("file", file)))
	})
	if err != nil {
		return err
	}

	out, errOut := cmd.OutOrStdout(), cmd.ErrOrStderr()
	failed := false
	for _, r := range results {
		if r.err != nil {
			printDiagnostic(errOut, r.file, r.err)
			failed = true
			continue
		}
		if len(results) > 1 {
			fprintf(out, "==> %s <==\n", r.file)
		}
		if err := printTree(out, r.root, flags.dump); err != nil {
			return err
		}
	}
	if failed {
		return errReported
	}
	return nil
}

// parseFiles loads and parses every file concurrently. The first file that
// cannot be loaded cancels the rest and is returned as the error; parse
// failures are recorded per file.
func parseFiles(ctx context.Context, files []string, options func(file string) parser.Options) ([]parseResult, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	results := make([]parseResult, len(files))
	g, ctx := errgroup.WithContext(ctx)
	for i, file := range files {
		i, file := i, file
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			toks, err := tokenfile.Load(file)
			if err != nil {
				return err
			}
			root, err := parser.Parse(toks, options(file))
			results[i] = parseResult{file: file, root: root, err: err}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// dumpConfig prints node fields, not the String forms the nodes implement.
var dumpConfig = spew.ConfigState{
	Indent:                  "  ",
	DisableMethods:          true,
	DisablePointerAddresses: true,
	DisableCapacities:       true,
	SortKeys:                true,
}

func printTree(w io.Writer, root *ast.Root, dump bool) error {
	if dump {
		dumpConfig.Fdump(w, root)
		return nil
	}
	return ast.Fprint(w, root)
}
