package main

import (
	"fmt"
	"os"

	"github.com/dhamidi/formula/config"
	"github.com/dhamidi/formula/parser"
	"github.com/spf13/cobra"
	"github.com/tliron/commonlog"
)

var version = "0.1.0"

var log = commonlog.GetLogger("formula.cli")

type rootOptions struct {
	configPath string
	verbose    int
	logFile    string
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	rootCmd := &cobra.Command{
		Use:           "formula",
		Short:         "Parse and check formula expressions",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			opts.configureLogging()
		},
	}

	rootCmd.PersistentFlags().StringVarP(&opts.configPath, "config", "c", "", "operator table and limits (.toml, .yaml)")
	rootCmd.PersistentFlags().CountVarP(&opts.verbose, "verbose", "v", "log more (repeat for debug output)")
	rootCmd.PersistentFlags().StringVar(&opts.logFile, "log-file", "", "write logs to a file instead of stderr")

	rootCmd.AddCommand(newParseCmd(opts))
	rootCmd.AddCommand(newTokensCmd())
	rootCmd.AddCommand(newCheckCmd(opts))
	rootCmd.AddCommand(newGrammarCmd())
	rootCmd.AddCommand(newLSPCmd(opts))

	return rootCmd
}

// Warnings are always shown; each -v raises the level by one.
func (o *rootOptions) configureLogging() {
	verbosity := o.verbose - 1
	if o.logFile != "" {
		commonlog.Configure(verbosity, &o.logFile)
		return
	}
	commonlog.Configure(verbosity, nil)
}

func (o *rootOptions) parserOptions() ([]parser.Option, error) {
	if o.configPath == "" {
		return nil, nil
	}
	cfg, err := config.Load(o.configPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	log.Debugf("loaded config %s", o.configPath)
	return cfg.Options()
}
