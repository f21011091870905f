package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ledgersight/ledgersight/internal/ledger"
)

func newLoadCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "load <file.csv>",
		Short: "Load normalized transactions from a CSV file into the ledger",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}

			f, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("opening %s: %w", args[0], err)
			}
			defer f.Close()

			txs, err := ledger.ReadTransactions(f)
			if err != nil {
				return fmt.Errorf("reading %s: %w", args[0], err)
			}

			store, err := ledger.OpenSQLite(cfg.Database.Path)
			if err != nil {
				return err
			}
			defer store.Close()

			if err := store.InsertTransactions(txs); err != nil {
				return err
			}

			fmt.Printf("Loaded %d transactions into %s\n", len(txs), cfg.Database.Path)
			return nil
		},
	}
}
