package commands

import (
	"github.com/spf13/cobra"

	"github.com/tallybook/tally/internal/ledger"
	"github.com/tallybook/tally/internal/render"
)

func newBalanceCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "balance",
		Short: "Show the balance of each currency",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStore(cmd, opts.configPath, func(s *ledger.Store) error {
				return render.Balances(cmd.OutOrStdout(), s.TotalsByCurrency())
			})
		},
	}
}
