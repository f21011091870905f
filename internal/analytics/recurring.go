package analytics

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ledgersight/ledgersight/internal/category"
	"github.com/ledgersight/ledgersight/internal/model"
)

// minOccurrences is the smallest merchant history that carries statistical
// evidence; smaller groups fall through to flexible spend.
const minOccurrences = 3

// flexibleTopN caps the flexible-composition result.
const flexibleTopN = 10

// Weights distributes the four feature dimensions over the composite score.
type Weights struct {
	Frequency float64 `yaml:"frequency"`
	Stability float64 `yaml:"stability"`
	Activity  float64 `yaml:"activity"`
	Scale     float64 `yaml:"scale"`
}

// DefaultWeights returns the standard dimension weighting.
func DefaultWeights() Weights {
	return Weights{Frequency: 0.40, Stability: 0.30, Activity: 0.20, Scale: 0.10}
}

// DefaultRecurringCutoff is the composite score at or above which a merchant
// counts as recurring spend.
const DefaultRecurringCutoff = 60.0

// Classifier performs unsupervised recurring-vs-flexible classification of
// expense transactions. Thresholds adapt to the observed score distribution
// across all qualifying merchants rather than using fixed constants.
type Classifier struct {
	rules   *category.Ruleset
	weights Weights
	cutoff  float64
	now     func() time.Time
}

// NewClassifier creates a Classifier with the given keyword rules, dimension
// weights, and recurring cutoff.
func NewClassifier(rules *category.Ruleset, weights Weights, cutoff float64) *Classifier {
	return &Classifier{rules: rules, weights: weights, cutoff: cutoff, now: time.Now}
}

// thresholds holds the per-dimension adaptive cutoffs.
type thresholds struct {
	frequency float64
	stability float64
	activity  float64
	scale     float64
}

// Classify partitions expense transactions by counterparty, extracts feature
// vectors for merchants with at least minOccurrences rows, derives adaptive
// thresholds from the population, and returns merchants scoring at or above
// the cutoff, sorted by confidence descending.
func (c *Classifier) Classify(expenses []model.Transaction) []model.RecurringExpense {
	profiles := c.profile(expenses)
	if len(profiles) == 0 {
		return nil
	}

	th := adaptiveThresholds(profiles)

	var out []model.RecurringExpense
	for _, p := range profiles {
		score := c.score(p, th)
		if score < c.cutoff {
			continue
		}
		out = append(out, c.emit(p, score))
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].ConfidenceScore != out[j].ConfidenceScore {
			return out[i].ConfidenceScore > out[j].ConfidenceScore
		}
		return out[i].CombinationKey < out[j].CombinationKey
	})
	return out
}

// profile groups expenses by counterparty and extracts a feature vector per
// qualifying merchant, in deterministic (alphabetical) order.
func (c *Classifier) profile(expenses []model.Transaction) []model.MerchantProfile {
	groups := make(map[string][]model.Transaction)
	for _, tx := range expenses {
		if !tx.IsDebit() {
			continue
		}
		key := tx.Counterparty
		if key == "" {
			key = UnknownKey
		}
		groups[key] = append(groups[key], tx)
	}

	keys := make([]string, 0, len(groups))
	for key, txs := range groups {
		if len(txs) >= minOccurrences {
			keys = append(keys, key)
		}
	}
	sort.Strings(keys)

	today := model.Day(c.now())
	profiles := make([]model.MerchantProfile, 0, len(keys))
	for _, key := range keys {
		profiles = append(profiles, extractProfile(key, groups[key], today))
	}
	return profiles
}

func extractProfile(key string, txs []model.Transaction, today time.Time) model.MerchantProfile {
	sort.SliceStable(txs, func(i, j int) bool { return txs[i].Before(txs[j]) })

	p := model.MerchantProfile{Counterparty: key}
	amounts := make([]float64, 0, len(txs))
	for _, tx := range txs {
		p.Occurrences = append(p.Occurrences, model.Day(tx.Date))
		p.Amounts = append(p.Amounts, tx.Magnitude())
		f, _ := tx.Magnitude().Float64()
		amounts = append(amounts, f)
	}

	intervals := make([]float64, 0, len(p.Occurrences)-1)
	for i := 1; i < len(p.Occurrences); i++ {
		intervals = append(intervals, p.Occurrences[i].Sub(p.Occurrences[i-1]).Hours()/24)
	}

	p.AvgInterval = mean(intervals)
	p.IntervalCV = coefficientOfVariation(intervals)
	p.AvgAmount = mean(amounts)
	p.AmountCV = coefficientOfVariation(amounts)

	last := p.Occurrences[len(p.Occurrences)-1]
	p.DaysSinceLast = today.Sub(last).Hours() / 24

	p.FrequencyScore = decayScore(p.IntervalCV)
	p.StabilityScore = decayScore(p.AmountCV)
	p.ActivityScore = decayScore(p.DaysSinceLast / 30)
	p.ScaleScore = clamp01(float64(len(txs)) / 10)
	return p
}

// adaptiveThresholds computes, per dimension, the average of the top-quartile
// cutoff and the one-sigma z-threshold over the merchant population.
func adaptiveThresholds(profiles []model.MerchantProfile) thresholds {
	dim := func(pick func(model.MerchantProfile) float64) float64 {
		values := make([]float64, 0, len(profiles))
		for _, p := range profiles {
			values = append(values, pick(p))
		}
		percentile := topQuartileCutoff(values)
		zscore := mean(values) + stdev(values)
		return (percentile + zscore) / 2
	}

	return thresholds{
		frequency: dim(func(p model.MerchantProfile) float64 { return p.FrequencyScore }),
		stability: dim(func(p model.MerchantProfile) float64 { return p.StabilityScore }),
		activity:  dim(func(p model.MerchantProfile) float64 { return p.ActivityScore }),
		scale:     dim(func(p model.MerchantProfile) float64 { return p.ScaleScore }),
	}
}

// score is the weighted sum of per-dimension contributions: full marks at or
// above the threshold, a linear ramp below it.
func (c *Classifier) score(p model.MerchantProfile, th thresholds) float64 {
	return c.weights.Frequency*contribution(p.FrequencyScore, th.frequency) +
		c.weights.Stability*contribution(p.StabilityScore, th.stability) +
		c.weights.Activity*contribution(p.ActivityScore, th.activity) +
		c.weights.Scale*contribution(p.ScaleScore, th.scale)
}

func contribution(value, threshold float64) float64 {
	if threshold == 0 {
		return 0
	}
	if value >= threshold {
		return 100
	}
	return 100 * value / threshold
}

func (c *Classifier) emit(p model.MerchantProfile, score float64) model.RecurringExpense {
	total := decimal.Zero
	for _, m := range p.Amounts {
		total = total.Add(m)
	}
	avg := total.Div(decimal.NewFromInt(int64(len(p.Amounts))))
	frequencyDays := round1(p.AvgInterval)

	label := c.rules.Match(p.Counterparty)
	if label == "" {
		label = category.Fallback(frequencyDays, p.AvgAmount)
	}

	return model.RecurringExpense{
		Category:        label,
		TotalAmount:     total,
		AverageAmount:   avg,
		FrequencyDays:   frequencyDays,
		ConfidenceScore: score,
		LastOccurrence:  p.Occurrences[len(p.Occurrences)-1],
		OccurrenceCount: len(p.Amounts),
		CombinationKey:  p.Counterparty,
	}
}

// FlexibleComposition breaks down the month's expense rows whose counterparty
// is not among the recurring merchants, keyed by counterparty, top N by
// amount. Sub-threshold and sub-minimum merchants land here automatically.
func FlexibleComposition(monthExpenses []model.Transaction, recurring []model.RecurringExpense) []model.CompositionItem {
	skip := make(map[string]bool, len(recurring))
	for _, r := range recurring {
		skip[r.CombinationKey] = true
	}

	var flexible []model.Transaction
	for _, tx := range monthExpenses {
		if !tx.IsDebit() {
			continue
		}
		key := tx.Counterparty
		if key == "" {
			key = UnknownKey
		}
		if !skip[key] {
			flexible = append(flexible, tx)
		}
	}

	items := Compose(flexible, ByCounterparty, AbsoluteAmount)
	if len(items) > flexibleTopN {
		items = items[:flexibleTopN]
	}
	return items
}
