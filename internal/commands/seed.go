package commands

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/ledgersight/ledgersight/internal/ledger"
	"github.com/ledgersight/ledgersight/internal/model"
)

func newSeedCommand() *cobra.Command {
	var months int
	var seed int64

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Populate the ledger with a demo dataset",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}

			store, err := ledger.OpenSQLite(cfg.Database.Path)
			if err != nil {
				return err
			}
			defer store.Close()

			txs := demoLedger(months, rand.New(rand.NewSource(seed)))
			if err := store.InsertTransactions(txs); err != nil {
				return err
			}

			fmt.Printf("Seeded %d transactions into %s\n", len(txs), cfg.Database.Path)
			return nil
		},
	}

	cmd.Flags().IntVar(&months, "months", 6, "number of trailing months to generate")
	cmd.Flags().Int64Var(&seed, "seed", 1, "random seed")
	return cmd
}

// demoLedger generates a checking account with salary income, a recurring
// coffee merchant, monthly rent, and irregular shopping noise. Balances are
// accumulated as the events are generated so balance_after stays consistent.
func demoLedger(months int, rng *rand.Rand) []model.Transaction {
	const account = "checking-001"
	balance := decimal.NewFromInt(20000)
	start := model.Day(time.Now().UTC()).AddDate(0, -months, 0)
	end := model.Day(time.Now().UTC())

	var txs []model.Transaction
	add := func(day time.Time, amount decimal.Decimal, counterparty, desc string) {
		balance = balance.Add(amount)
		txs = append(txs, model.Transaction{
			ID:           uuid.NewString(),
			AccountID:    account,
			Date:         day,
			CreatedAt:    day.Add(time.Duration(len(txs)) * time.Minute),
			Amount:       amount,
			BalanceAfter: balance,
			Counterparty: counterparty,
			Description:  desc,
			Currency:     "CNY",
		})
	}

	for day := start; !day.After(end); day = day.AddDate(0, 0, 1) {
		if day.Day() == 10 {
			add(day, decimal.NewFromInt(12000), "Acme Corp Payroll", "monthly salary")
		}
		if day.Day() == 1 {
			add(day, decimal.NewFromInt(-3500), "Sunrise Property Management", "rent")
		}
		if day.Day()%3 == 0 {
			cents := 2200 + rng.Intn(600) // ~22-28
			add(day, decimal.New(int64(-cents), -2), "Corner Coffee Shop", "coffee")
		}
		if rng.Intn(10) == 0 {
			cents := 5000 + rng.Intn(40000)
			add(day, decimal.New(int64(-cents), -2), randomMerchant(rng), "one-off purchase")
		}
	}
	return txs
}

func randomMerchant(rng *rand.Rand) string {
	merchants := []string{
		"City Supermarket",
		"Metro Line 4",
		"Night Owl Bookstore",
		"Lucky Dumpling House",
		"Harbor Electronics",
	}
	return merchants[rng.Intn(len(merchants))]
}
