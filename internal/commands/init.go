package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/tallybook/tally/internal/blobstore"
	"github.com/tallybook/tally/internal/config"
	"github.com/tallybook/tally/internal/ledger"
)

func newInitCommand() *cobra.Command {
	var backend string

	cmd := &cobra.Command{
		Use:   "init [directory]",
		Short: "Initialize a new ledger",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) > 0 {
				dir = args[0]
			}

			absDir, err := filepath.Abs(dir)
			if err != nil {
				return fmt.Errorf("resolving path: %w", err)
			}

			if err := runInit(absDir, backend); err != nil {
				return err
			}
			return withStore(cmd, filepath.Join(absDir, config.FileName), func(s *ledger.Store) error {
				fmt.Fprintf(cmd.OutOrStdout(), "Initialized tally ledger at %s (%d categories)\n",
					absDir, len(s.Categories()))
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&backend, "backend", blobstore.BackendFile, "storage backend: file or sqlite")

	return cmd
}

func runInit(dir, backend string) error {
	cfgPath := filepath.Join(dir, config.FileName)
	if _, err := os.Stat(cfgPath); err == nil {
		return fmt.Errorf("%s already exists", cfgPath)
	}

	cfg := config.Default()
	cfg.Storage.Backend = backend
	switch backend {
	case blobstore.BackendFile:
	case blobstore.BackendSQLite:
		cfg.Storage.Path = "tally.db"
	default:
		return fmt.Errorf("unsupported backend %q for init", backend)
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating directory %s: %w", dir, err)
	}
	if err := config.Save(cfgPath, cfg); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}
