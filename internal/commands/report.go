package commands

import (
	"encoding/json"
	"os"

	"github.com/spf13/cobra"

	"github.com/ledgersight/ledgersight/internal/analytics"
)

func printJSON(payload any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(payload)
}

func newTrendCommand() *cobra.Command {
	var granularity string

	cmd := &cobra.Command{
		Use:   "trend",
		Short: "Print the total-asset trajectory for a date range",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, store, err := openService(cmd)
			if err != nil {
				return err
			}
			defer store.Close()

			start, end, err := parseRange(cmd)
			if err != nil {
				return err
			}

			trend, err := svc.GetNetWorthTrend(start, end, analytics.Granularity(granularity))
			if err != nil {
				return err
			}
			return printJSON(trend)
		},
	}

	addRangeFlags(cmd)
	cmd.Flags().StringVar(&granularity, "granularity", "day", "day, week, or month")
	return cmd
}

func newMetricsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "metrics",
		Short: "Print core financial metrics for a date range",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, store, err := openService(cmd)
			if err != nil {
				return err
			}
			defer store.Close()

			start, end, err := parseRange(cmd)
			if err != nil {
				return err
			}

			metrics, err := svc.GetCoreMetrics(start, end)
			if err != nil {
				return err
			}
			return printJSON(metrics)
		},
	}

	addRangeFlags(cmd)
	return cmd
}

func newCompositionCommand() *cobra.Command {
	var kind string

	cmd := &cobra.Command{
		Use:   "composition",
		Short: "Print the income or expense breakdown for a date range",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, store, err := openService(cmd)
			if err != nil {
				return err
			}
			defer store.Close()

			start, end, err := parseRange(cmd)
			if err != nil {
				return err
			}

			items, err := svc.GetComposition(start, end, analytics.Kind(kind))
			if err != nil {
				return err
			}
			return printJSON(items)
		},
	}

	addRangeFlags(cmd)
	cmd.Flags().StringVar(&kind, "kind", "expense", "income or expense")
	return cmd
}

func newRecurringCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "recurring",
		Short: "Classify recurring merchants over the full expense history",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, store, err := openService(cmd)
			if err != nil {
				return err
			}
			defer store.Close()

			recurring, err := svc.GetRecurringExpenses()
			if err != nil {
				return err
			}
			return printJSON(recurring)
		},
	}
}

func newFlexibleCommand() *cobra.Command {
	var month string

	cmd := &cobra.Command{
		Use:   "flexible",
		Short: "Print a month's flexible-spend breakdown",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, store, err := openService(cmd)
			if err != nil {
				return err
			}
			defer store.Close()

			items, err := svc.GetFlexibleComposition(month)
			if err != nil {
				return err
			}
			return printJSON(items)
		},
	}

	cmd.Flags().StringVar(&month, "month", "", "target month (YYYY-MM)")
	_ = cmd.MarkFlagRequired("month")
	return cmd
}
