package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/dhamidi/formula/lexer"
	"github.com/spf13/cobra"
)

func newTokensCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tokens [expression]",
		Short: "Print the tokens of a formula",
		RunE: func(cmd *cobra.Command, args []string) error {
			file, src, err := readExpression(cmd.InOrStdin(), args)
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			for _, tok := range lexer.Tokenize([]byte(src), file) {
				fmt.Fprintf(w, "%s\t%s\t%s\n", tok.Span.Start, tok.Kind, tok.Literal)
			}
			return w.Flush()
		},
	}
}
