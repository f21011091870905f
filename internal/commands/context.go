package commands

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/spf13/cobra"

	"github.com/ledgersight/ledgersight/internal/analytics"
	"github.com/ledgersight/ledgersight/internal/config"
	"github.com/ledgersight/ledgersight/internal/ledger"
)

// loadConfig reads the configured YAML file, falling back to defaults when
// the file does not exist.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	path, err := cmd.Flags().GetString("config")
	if err != nil {
		return nil, err
	}
	cfg, err := config.Load(path)
	if errors.Is(err, fs.ErrNotExist) {
		return config.Default(), nil
	}
	if err != nil {
		return nil, err
	}
	return cfg, nil
}

// openService opens the ledger store and wires the analytics service over it.
// The returned closer releases the store.
func openService(cmd *cobra.Command) (*analytics.Service, *ledger.SQLiteStore, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, nil, err
	}

	store, err := ledger.OpenSQLite(cfg.Database.Path)
	if err != nil {
		return nil, nil, err
	}

	svc := analytics.NewService(store, analytics.Options{
		MaxRangeDays:      cfg.Analytics.MaxRangeDays,
		ReserveWindowDays: cfg.Analytics.ReserveWindowDays,
		RecurringCutoff:   cfg.Classification.RecurringCutoff,
		Weights: analytics.Weights{
			Frequency: cfg.Classification.Weights.Frequency,
			Stability: cfg.Classification.Weights.Stability,
			Activity:  cfg.Classification.Weights.Activity,
			Scale:     cfg.Classification.Weights.Scale,
		},
		Rules: cfg.Rules(),
	})
	return svc, store, nil
}

// parseRange parses --start/--end flags, defaulting to the current month.
func parseRange(cmd *cobra.Command) (time.Time, time.Time, error) {
	startStr, _ := cmd.Flags().GetString("start")
	endStr, _ := cmd.Flags().GetString("end")

	if startStr == "" || endStr == "" {
		now := time.Now().UTC()
		first := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
		return first, first.AddDate(0, 1, -1), nil
	}

	start, err := time.ParseInLocation("2006-01-02", startStr, time.UTC)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("parsing start date %q: %w", startStr, err)
	}
	end, err := time.ParseInLocation("2006-01-02", endStr, time.UTC)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("parsing end date %q: %w", endStr, err)
	}
	return start, end, nil
}

func addRangeFlags(cmd *cobra.Command) {
	cmd.Flags().String("start", "", "range start (YYYY-MM-DD, default: first of current month)")
	cmd.Flags().String("end", "", "range end (YYYY-MM-DD, default: last of current month)")
}
