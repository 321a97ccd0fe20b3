package main

import (
	"bytes"
	"fmt"
	"os"

	"github.com/dhamidi/formula/grammar"
	"github.com/spf13/cobra"
)

func newGrammarCmd() *cobra.Command {
	var check bool
	var file string
	var startProduction string

	cmd := &cobra.Command{
		Use:   "grammar",
		Short: "Print or verify the formula EBNF grammar",
		Long: `Print the EBNF grammar of the formula language.

With --check the grammar is verified instead. --file checks another EBNF
file, starting from --start when given.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			if !check && file == "" {
				_, err := out.Write(grammar.Source())
				return err
			}

			if file == "" {
				g, err := grammar.Check("formula.ebnf", bytes.NewReader(grammar.Source()), grammar.Start)
				if err != nil {
					printErrors(cmd, err)
					return fmt.Errorf("formula grammar is invalid")
				}
				fmt.Fprintf(out, "ok: %d productions\n", len(g))
				return nil
			}

			f, err := os.Open(file)
			if err != nil {
				return fmt.Errorf("open file: %w", err)
			}
			defer f.Close()

			g, err := grammar.Check(file, f, startProduction)
			if err != nil {
				printErrors(cmd, err)
				return fmt.Errorf("%s is invalid", file)
			}
			fmt.Fprintf(out, "ok: %d productions\n", len(g))
			return nil
		},
	}

	cmd.Flags().BoolVar(&check, "check", false, "verify the grammar instead of printing it")
	cmd.Flags().StringVar(&file, "file", "", "EBNF file to check instead of the formula grammar")
	cmd.Flags().StringVar(&startProduction, "start", "", "start production for --file (if empty, only checks syntax)")

	return cmd
}

func printErrors(cmd *cobra.Command, err error) {
	for _, e := range grammar.Errors(err) {
		fmt.Fprintln(cmd.ErrOrStderr(), e)
	}
}
