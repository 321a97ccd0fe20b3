package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/dhamidi/formula/lsp"
	"github.com/dhamidi/formula/parser"
	"github.com/spf13/cobra"
)

func newCheckCmd(root *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "check <file>...",
		Short: "Check a file of formulas, one per line",
		Long: `Check files of formulas, one per line.

Blank lines and lines starting with # are ignored. Each error is printed
as file:line:column: message. The command fails if any formula does.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := root.parserOptions()
			if err != nil {
				return err
			}
			cache := lsp.NewCache(parser.New(opts...), lsp.DefaultCacheSize)

			failed, total := 0, 0
			for _, filename := range args {
				data, err := os.ReadFile(filename)
				if err != nil {
					return fmt.Errorf("read file: %w", err)
				}

				doc := lsp.Analyze(filename, string(data), cache)
				total += len(doc.Formulas)
				for _, f := range doc.Formulas {
					if f.Err == nil {
						continue
					}
					failed++
					fmt.Fprintln(cmd.OutOrStdout(), describeFailure(filename, f))
				}
			}

			log.Infof("checked %d formulas in %d files", total, len(args))
			if failed > 0 {
				return fmt.Errorf("%d of %d formulas failed to parse", failed, total)
			}
			return nil
		},
	}
}

func describeFailure(filename string, f lsp.Formula) string {
	var perr *parser.Error
	if !errors.As(f.Err, &perr) {
		return fmt.Sprintf("%s:%d: %s", filename, f.Line+1, f.Err)
	}
	msg := perr.Message
	if perr.Expected != "" {
		msg += ": expected " + perr.Expected + ", found " + perr.Found
	}
	return fmt.Sprintf("%s:%d:%d: %s", filename, f.Line+1, perr.Position.Column, msg)
}
