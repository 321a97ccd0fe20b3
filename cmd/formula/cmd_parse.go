package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/dhamidi/formula/format"
	"github.com/dhamidi/formula/parser"
	"github.com/spf13/cobra"
)

func newParseCmd(root *rootOptions) *cobra.Command {
	var outputFormat string
	var includePositions bool

	cmd := &cobra.Command{
		Use:   "parse [expression]",
		Short: "Parse a formula and print its syntax tree",
		Long: `Parse a formula and print its syntax tree.

The expression is taken from the arguments. Without arguments, or with
"-", it is read from stdin.

Examples:
  formula parse 'a + b * c'
  formula parse -f tree --positions 'ok ? 1 : 2'
  echo 'f(x, y)' | formula parse -f sexpr`,
		RunE: func(cmd *cobra.Command, args []string) error {
			file, src, err := readExpression(cmd.InOrStdin(), args)
			if err != nil {
				return err
			}

			opts, err := root.parserOptions()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			encoder, err := format.New(outputFormat, out, includePositions)
			if err != nil {
				return err
			}

			node, err := parser.ParseString(file, src, opts...)
			if err != nil {
				if enc, ok := encoder.(*format.JSONEncoder); ok {
					if encErr := enc.EncodeError(err); encErr != nil {
						return fmt.Errorf("encode json: %w", encErr)
					}
				}
				return err
			}

			if err := encoder.Encode(node); err != nil {
				return fmt.Errorf("encode: %w", err)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&outputFormat, "format", "f", "json", "output format (json, tree, sexpr)")
	cmd.Flags().BoolVar(&includePositions, "positions", false, "include source positions in tree output")

	return cmd
}

// readExpression joins the arguments into one expression, or reads stdin.
// It returns the file name to use in positions.
func readExpression(stdin io.Reader, args []string) (string, string, error) {
	if len(args) == 0 || (len(args) == 1 && args[0] == "-") {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return "", "", fmt.Errorf("read stdin: %w", err)
		}
		return "<stdin>", strings.TrimRight(string(data), "\r\n"), nil
	}
	return "", strings.Join(args, " "), nil
}
