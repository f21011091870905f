package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// TrendPoint is a single labeled point in a time series
// ("2024-01-05", "2024-W02", or "2024-01" depending on granularity).
type TrendPoint struct {
	Label string          `json:"label"`
	Value decimal.Decimal `json:"value"`
}

// CompositionItem is one bucket of a grouped breakdown (income, expense,
// or flexible spend). Percentage is of the whole breakdown, one decimal place.
type CompositionItem struct {
	Name       string          `json:"name"`
	Amount     decimal.Decimal `json:"amount"`
	Percentage float64         `json:"percentage"`
	Count      int             `json:"count"`
}

// RecurringExpense is a counterparty classified as periodic/fixed spend.
// CombinationKey is the raw counterparty string, used to re-link the
// classification back to ledger rows.
type RecurringExpense struct {
	Category        string          `json:"category"`
	TotalAmount     decimal.Decimal `json:"total_amount"`
	AverageAmount   decimal.Decimal `json:"average_amount"`
	FrequencyDays   float64         `json:"frequency_days"`
	ConfidenceScore float64         `json:"confidence_score"` // 0..100
	LastOccurrence  time.Time       `json:"last_occurrence"`
	OccurrenceCount int             `json:"occurrence_count"`
	CombinationKey  string          `json:"combination_key"`
}

// CoreMetrics is the point-in-time aggregate block of the dashboard.
// Change percentages compare against the preceding period of equal length.
type CoreMetrics struct {
	TotalIncome            decimal.Decimal `json:"total_income"`
	TotalExpense           decimal.Decimal `json:"total_expense"`
	NetIncome              decimal.Decimal `json:"net_income"`
	CurrentTotalAssets     decimal.Decimal `json:"current_total_assets"`
	IncomeChangePct        float64         `json:"income_change_percentage"`
	ExpenseChangePct       float64         `json:"expense_change_percentage"`
	NetChangePct           float64         `json:"net_change_percentage"`
	AssetsChangePct        float64         `json:"assets_change_percentage"`
	EmergencyReserveMonths float64         `json:"emergency_reserve_months"` // -1 = unbounded runway
}

// MerchantProfile holds the per-counterparty statistics extracted during
// recurring-expense classification. All four scores lie in [0,1].
type MerchantProfile struct {
	Counterparty   string
	Occurrences    []time.Time
	Amounts        []decimal.Decimal
	AvgInterval    float64 // days
	IntervalCV     float64 // +Inf when AvgInterval == 0
	AvgAmount      float64
	AmountCV       float64 // +Inf when AvgAmount == 0
	DaysSinceLast  float64
	FrequencyScore float64
	StabilityScore float64
	ActivityScore  float64
	ScaleScore     float64
}
