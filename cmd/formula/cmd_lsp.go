package main

import (
	"github.com/dhamidi/formula/lsp"
	"github.com/spf13/cobra"
)

func newLSPCmd(root *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "lsp",
		Short: "Start the Language Server Protocol server on stdio",
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := root.parserOptions()
			if err != nil {
				return err
			}
			log.Infof("starting language server %s", version)
			server := lsp.NewLSPServer(version, opts...)
			return server.RunStdio()
		},
	}
}
