package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ledgersight/ledgersight/internal/buildinfo"
)

// NewRootCommand creates the root CLI command with all subcommands registered.
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:     "ledgersight",
		Short:   "Bank-statement ledger analytics",
		Version: fmt.Sprintf("%s (commit: %s, built: %s)", buildinfo.Version, buildinfo.Commit, buildinfo.Date),
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().String("config", "ledgersight.yaml", "path to config file")

	rootCmd.AddCommand(newInitCommand())
	rootCmd.AddCommand(newServeCommand())
	rootCmd.AddCommand(newTrendCommand())
	rootCmd.AddCommand(newMetricsCommand())
	rootCmd.AddCommand(newCompositionCommand())
	rootCmd.AddCommand(newRecurringCommand())
	rootCmd.AddCommand(newFlexibleCommand())
	rootCmd.AddCommand(newLoadCommand())
	rootCmd.AddCommand(newSeedCommand())

	return rootCmd
}
