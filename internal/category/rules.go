// Package category assigns spend categories to counterparties via an ordered
// keyword table. Rules are data, not code: deployments can swap the table
// without touching the classifier.
package category

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Fallback labels used when no keyword rule matches; the classifier picks one
// of these from the merchant's cadence and ticket size.
const (
	DailyConsumption = "daily consumption"
	MonthlyExpense   = "monthly expense"
	Other            = "other"
)

// Rule maps a set of counterparty keywords to a category label. Matching is
// case-insensitive substring containment, first rule wins.
type Rule struct {
	Label    string   `yaml:"label"`
	Keywords []string `yaml:"keywords"`
}

// Ruleset is an ordered list of rules.
type Ruleset struct {
	rules []Rule
}

// NewRuleset creates a Ruleset from an ordered rule list.
func NewRuleset(rules []Rule) *Ruleset {
	return &Ruleset{rules: rules}
}

// Default returns the built-in keyword table.
func Default() *Ruleset {
	return NewRuleset([]Rule{
		{Label: "dining", Keywords: []string{"restaurant", "coffee", "cafe", "food", "dining", "bakery", "canteen"}},
		{Label: "transport", Keywords: []string{"taxi", "didi", "uber", "metro", "subway", "bus", "rail", "fuel", "parking"}},
		{Label: "healthcare", Keywords: []string{"pharmacy", "hospital", "clinic", "dental", "medical"}},
		{Label: "courier", Keywords: []string{"express", "courier", "post", "delivery", "logistics"}},
		{Label: "shopping", Keywords: []string{"mart", "store", "shop", "supermarket", "market", "mall"}},
	})
}

// Load reads a rule table from a YAML file.
func Load(path string) (*Ruleset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading category rules: %w", err)
	}
	var rules []Rule
	if err := yaml.Unmarshal(data, &rules); err != nil {
		return nil, fmt.Errorf("parsing category rules: %w", err)
	}
	return NewRuleset(rules), nil
}

// Match returns the label of the first rule whose keyword appears in the
// counterparty name, or "" if nothing matches.
func (r *Ruleset) Match(counterparty string) string {
	name := strings.ToLower(counterparty)
	for _, rule := range r.rules {
		for _, kw := range rule.Keywords {
			if strings.Contains(name, strings.ToLower(kw)) {
				return rule.Label
			}
		}
	}
	return ""
}

// Fallback buckets a merchant with no keyword match by cadence and ticket
// size: short-cycle small spend is daily consumption, monthly-cycle moderate
// spend is a monthly expense, everything else is other.
func Fallback(frequencyDays, averageAmount float64) string {
	switch {
	case frequencyDays <= 7 && averageAmount <= 100:
		return DailyConsumption
	case frequencyDays <= 30 && averageAmount <= 1000:
		return MonthlyExpense
	default:
		return Other
	}
}
