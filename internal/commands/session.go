package commands

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/spf13/cobra"

	"github.com/tallybook/tally/internal/blobstore"
	"github.com/tallybook/tally/internal/config"
	"github.com/tallybook/tally/internal/ledger"
	"github.com/tallybook/tally/internal/logging"
)

// withStore loads the configured ledger, runs fn against it and releases
// the storage afterwards.
func withStore(cmd *cobra.Command, configPath string, fn func(*ledger.Store) error) error {
	cfg, err := config.Load(configPath)
	if errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("no %s found at %s (run 'tally init' first)", config.FileName, configPath)
	}
	if err != nil {
		return err
	}

	logger, err := logging.New(cmd.ErrOrStderr(), cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		return fmt.Errorf("setting up logging: %w", err)
	}

	blobs, err := blobstore.Open(cfg.Storage.Backend, cfg.Storage.Path)
	if err != nil {
		return fmt.Errorf("opening storage: %w", err)
	}
	defer func() {
		if err := blobstore.Close(blobs); err != nil {
			logger.Warn("closing storage failed", "error", err)
		}
	}()

	opts := []ledger.Option{ledger.WithKey(cfg.Storage.Key), ledger.WithLogger(logger)}
	if seed := cfg.Seed(); seed != nil {
		opts = append(opts, ledger.WithSeed(seed))
	}
	store := ledger.NewStore(blobs, opts...)

	switch store.Load() {
	case ledger.Recovered:
		fmt.Fprintf(cmd.ErrOrStderr(), "warning: stored ledger was unreadable; kept a copy under %q and started over\n",
			cfg.Storage.Key+".corrupt")
	case ledger.Fallback:
		fmt.Fprintln(cmd.ErrOrStderr(), "warning: storage is unavailable; showing defaults and refusing changes")
	}

	return fn(store)
}
