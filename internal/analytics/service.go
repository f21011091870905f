// Package analytics turns the append-only transaction ledger into derived
// time-series and classification views: net-worth trends, core metrics,
// income/expense composition, and recurring-vs-flexible spend.
package analytics

import (
	"errors"
	"fmt"
	"time"

	"github.com/ledgersight/ledgersight/internal/category"
	"github.com/ledgersight/ledgersight/internal/ledger"
	"github.com/ledgersight/ledgersight/internal/model"
)

// Validation errors. Invalid ranges are rejected, never silently clamped.
var (
	ErrInvalidRange   = errors.New("invalid date range")
	ErrRangeTooLarge  = errors.New("date range too large")
	ErrBadGranularity = errors.New("invalid granularity")
	ErrBadKind        = errors.New("invalid composition kind")
	ErrBadMonth       = errors.New("invalid target month")
)

// Kind selects a composition breakdown.
type Kind string

const (
	KindIncome  Kind = "income"
	KindExpense Kind = "expense"
)

// Options tune the analytics engine. Zero values fall back to defaults.
type Options struct {
	MaxRangeDays      int
	ReserveWindowDays int
	Weights           Weights
	RecurringCutoff   float64
	Rules             *category.Ruleset
	Now               func() time.Time
}

// Service is the caller-facing analytics surface consumed by the report
// assembler. All operations are synchronous, read-only, and side-effect-free;
// concurrent calls are independent.
type Service struct {
	store        ledger.Store
	history      *HistoryBuilder
	metrics      *MetricsCalculator
	classifier   *Classifier
	maxRangeDays int
	windowDays   int
	now          func() time.Time
}

// NewService wires the analytics engine over a ledger store.
func NewService(store ledger.Store, opts Options) *Service {
	if opts.MaxRangeDays <= 0 {
		opts.MaxRangeDays = 3650
	}
	if opts.ReserveWindowDays <= 0 {
		opts.ReserveWindowDays = 90
	}
	if opts.Weights == (Weights{}) {
		opts.Weights = DefaultWeights()
	}
	if opts.RecurringCutoff <= 0 {
		opts.RecurringCutoff = DefaultRecurringCutoff
	}
	if opts.Rules == nil {
		opts.Rules = category.Default()
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}

	metrics := NewMetricsCalculator(store)
	metrics.now = opts.Now
	classifier := NewClassifier(opts.Rules, opts.Weights, opts.RecurringCutoff)
	classifier.now = opts.Now

	return &Service{
		store:        store,
		history:      NewHistoryBuilder(store),
		metrics:      metrics,
		classifier:   classifier,
		maxRangeDays: opts.MaxRangeDays,
		windowDays:   opts.ReserveWindowDays,
		now:          opts.Now,
	}
}

// Metrics exposes the underlying calculator for callers that need individual
// aggregates rather than the assembled block.
func (s *Service) Metrics() *MetricsCalculator {
	return s.metrics
}

func (s *Service) validateRange(start, end time.Time) error {
	start, end = model.Day(start), model.Day(end)
	if start.After(end) {
		return fmt.Errorf("%w: start %s after end %s", ErrInvalidRange,
			start.Format("2006-01-02"), end.Format("2006-01-02"))
	}
	days := int(end.Sub(start).Hours()/24) + 1
	if days > s.maxRangeDays {
		return fmt.Errorf("%w: %d days exceeds maximum of %d", ErrRangeTooLarge, days, s.maxRangeDays)
	}
	return nil
}

// GetNetWorthTrend reconstructs the total-asset trajectory over [start, end]
// at the requested granularity.
func (s *Service) GetNetWorthTrend(start, end time.Time, g Granularity) ([]model.TrendPoint, error) {
	if err := s.validateRange(start, end); err != nil {
		return nil, err
	}
	if _, err := ParseGranularity(string(g)); err != nil {
		return nil, err
	}
	return s.history.Reconstruct(start, end, g)
}

// GetCoreMetrics assembles the point-in-time aggregate block for [start, end],
// comparing change percentages against the preceding period of equal length.
func (s *Service) GetCoreMetrics(start, end time.Time) (model.CoreMetrics, error) {
	if err := s.validateRange(start, end); err != nil {
		return model.CoreMetrics{}, err
	}
	start, end = model.Day(start), model.Day(end)

	income, expense, err := s.metrics.PeriodTotals(start, end)
	if err != nil {
		return model.CoreMetrics{}, err
	}

	days := int(end.Sub(start).Hours()/24) + 1
	prevEnd := start.AddDate(0, 0, -1)
	prevStart := prevEnd.AddDate(0, 0, -(days - 1))
	prevIncome, prevExpense, err := s.metrics.PeriodTotals(prevStart, prevEnd)
	if err != nil {
		return model.CoreMetrics{}, err
	}

	assets, err := s.metrics.CurrentTotalAssets()
	if err != nil {
		return model.CoreMetrics{}, err
	}
	assetsAtEnd, err := s.metrics.TotalAssetsAt(end)
	if err != nil {
		return model.CoreMetrics{}, err
	}
	assetsBefore, err := s.metrics.TotalAssetsAt(prevEnd)
	if err != nil {
		return model.CoreMetrics{}, err
	}

	reserve, err := s.metrics.EmergencyReserveMonths(s.windowDays)
	if err != nil {
		return model.CoreMetrics{}, err
	}

	net := income.Sub(expense)
	prevNet := prevIncome.Sub(prevExpense)
	return model.CoreMetrics{
		TotalIncome:            income,
		TotalExpense:           expense,
		NetIncome:              net,
		CurrentTotalAssets:     assets,
		IncomeChangePct:        ChangePercentage(income, prevIncome),
		ExpenseChangePct:       ChangePercentage(expense, prevExpense),
		NetChangePct:           ChangePercentage(net, prevNet),
		AssetsChangePct:        ChangePercentage(assetsAtEnd, assetsBefore),
		EmergencyReserveMonths: reserve,
	}, nil
}

// GetComposition returns the income or expense breakdown for [start, end],
// keyed by counterparty, sorted by amount descending.
func (s *Service) GetComposition(start, end time.Time, kind Kind) ([]model.CompositionItem, error) {
	if err := s.validateRange(start, end); err != nil {
		return nil, err
	}

	switch kind {
	case KindIncome:
		txs, err := s.store.ListTransactions(ledger.Filter{From: start, To: end, Sign: ledger.SignCredit})
		if err != nil {
			return nil, fmt.Errorf("loading income: %w", err)
		}
		return Compose(txs, ByCounterparty, SignedAmount), nil
	case KindExpense:
		txs, err := s.store.ListTransactions(ledger.Filter{From: start, To: end, Sign: ledger.SignDebit})
		if err != nil {
			return nil, fmt.Errorf("loading expenses: %w", err)
		}
		return Compose(txs, ByCounterparty, AbsoluteAmount), nil
	}
	return nil, fmt.Errorf("%w: %q (want income or expense)", ErrBadKind, kind)
}

// GetRecurringExpenses classifies the full expense history into recurring
// merchants, sorted by confidence descending.
func (s *Service) GetRecurringExpenses() ([]model.RecurringExpense, error) {
	expenses, err := s.store.ListTransactions(ledger.Filter{Sign: ledger.SignDebit})
	if err != nil {
		return nil, fmt.Errorf("loading expense history: %w", err)
	}
	return s.classifier.Classify(expenses), nil
}

// GetFlexibleComposition returns the target month's expense breakdown after
// removing recurring merchants. The month is given as "YYYY-MM".
func (s *Service) GetFlexibleComposition(targetMonth string) ([]model.CompositionItem, error) {
	monthStart, err := time.ParseInLocation("2006-01", targetMonth, time.UTC)
	if err != nil {
		return nil, fmt.Errorf("%w: %q (want YYYY-MM)", ErrBadMonth, targetMonth)
	}
	monthEnd := monthStart.AddDate(0, 1, -1)

	recurring, err := s.GetRecurringExpenses()
	if err != nil {
		return nil, err
	}

	monthExpenses, err := s.store.ListTransactions(ledger.Filter{From: monthStart, To: monthEnd, Sign: ledger.SignDebit})
	if err != nil {
		return nil, fmt.Errorf("loading month expenses: %w", err)
	}
	return FlexibleComposition(monthExpenses, recurring), nil
}
