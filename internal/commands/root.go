package commands

import (
	"github.com/spf13/cobra"

	"github.com/tallybook/tally/internal/buildinfo"
	"github.com/tallybook/tally/internal/config"
)

// rootOptions holds the flags shared by every subcommand.
type rootOptions struct {
	configPath string
}

// NewRootCommand creates the root CLI command with all subcommands registered.
func NewRootCommand() *cobra.Command {
	opts := &rootOptions{}

	rootCmd := &cobra.Command{
		Use:     "tally",
		Short:   "Personal income and expense ledger in BRL and EUR",
		Version: buildinfo.String(),
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringVar(&opts.configPath, "config", config.FileName, "path to tally.yaml")

	rootCmd.AddCommand(newInitCommand())
	rootCmd.AddCommand(newTxCommand(opts))
	rootCmd.AddCommand(newCatCommand(opts))
	rootCmd.AddCommand(newBalanceCommand(opts))

	return rootCmd
}
