package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ledgersight/ledgersight/internal/config"
	"github.com/ledgersight/ledgersight/internal/ledger"
)

func newInitCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Write a default config file and create the ledger database",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := cmd.Flags().GetString("config")
			if err != nil {
				return err
			}

			cfg := config.Default()
			if err := config.Save(path, cfg); err != nil {
				return err
			}

			store, err := ledger.OpenSQLite(cfg.Database.Path)
			if err != nil {
				return err
			}
			defer store.Close()

			fmt.Printf("Initialized %s and ledger database %s\n", path, cfg.Database.Path)
			return nil
		},
	}
}
