package cmd

import (
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/metaphox/ivy-lang/ast"
	"github.com/metaphox/ivy-lang/tokenfile"
)

func newTokensCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tokens file",
		Short: "Print the token stream of a token file as a table",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			toks, err := tokenfile.Load(args[0])
			if err != nil {
				return err
			}

			table := tablewriter.NewWriter(cmd.OutOrStdout())
			table.SetHeader([]string{"#", "Pos", "Type", "Value"})
			table.SetAutoFormatHeaders(false)
			table.SetAutoWrapText(false)
			for i, tok := range toks {
				table.Append([]string{strconv.Itoa(i), tok.Pos().String(), tok.Type.String(), tokenValue(tok)})
			}
			table.Render()
			return nil
		},
	}
}

// tokenValue is the payload column: what a payload token carries, blank for
// fixed spellings.
func tokenValue(tok ast.Token) string {
	switch tok.Type {
	case ast.Integer:
		return strconv.FormatInt(tok.Int, 10)
	case ast.String:
		return strconv.Quote(tok.Literal)
	case ast.Symbol, ast.Illegal:
		return tok.Literal
	}
	return ""
}
