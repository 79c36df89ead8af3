// Package rules holds the classification and anomaly-detection rule set and
// its consistency checks. Rules are loaded once per run and treated as
// immutable by every component that consumes them.
package rules

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/ciflikli/igc-spending-insights/internal/models"
	"github.com/ciflikli/igc-spending-insights/internal/pipelineerror"
)

// Categories is the closed category enumeration, in declaration order. The
// keyword table must cover exactly this set and the classifier evaluates
// categories in this declared order.
var Categories = []string{
	models.CategoryIT,
	models.CategoryConsultancy,
	models.CategoryConstruction,
	models.CategoryOperations,
	models.CategoryLegal,
	models.CategoryHRStaffing,
	models.CategoryGrants,
	models.CategoryAdministrative,
}

// CategoryRule binds one category to its ordered keyword list. Keywords match
// as case-insensitive substrings.
type CategoryRule struct {
	Name     string   `yaml:"name"`
	Keywords []string `yaml:"keywords"`
}

// DirectMapping maps department → expense type → category, exact-string keyed.
type DirectMapping map[string]map[string]string

// Thresholds configures the anomaly detectors.
type Thresholds struct {
	// HighPayment holds per-department cutoffs; departments without an entry
	// are skipped by the high-payment detector.
	HighPayment map[string]decimal.Decimal
	// ConcentrationSpend and ConcentrationTxn are fractions in (0,1); a
	// supplier is flagged when its share strictly exceeds them.
	ConcentrationSpend decimal.Decimal
	ConcentrationTxn   decimal.Decimal
	// DuplicateWindowDays is the day window for duplicate-pattern grouping.
	DuplicateWindowDays int
}

// Ruleset is the complete injected configuration for a batch run.
type Ruleset struct {
	Categories     []CategoryRule
	DirectMappings DirectMapping
	Thresholds     Thresholds
}

// Validate checks the rule set against the category enumeration and the
// detector preconditions. All problems are collected into a single
// ConfigurationError so the rule files can be fixed in one pass. A run must
// not start on a rule set that fails validation.
func (r *Ruleset) Validate() error {
	var issues []string

	declared := make(map[string]bool, len(Categories))
	for _, name := range Categories {
		declared[name] = true
	}

	seen := make(map[string]bool, len(r.Categories))
	for i, rule := range r.Categories {
		if rule.Name == "" {
			issues = append(issues, fmt.Sprintf("categories[%d]: name is required", i))
			continue
		}
		if seen[rule.Name] {
			issues = append(issues, fmt.Sprintf("category %q declared more than once", rule.Name))
		}
		seen[rule.Name] = true
		if !declared[rule.Name] {
			issues = append(issues, fmt.Sprintf("keyword table category %q is not in the enumeration", rule.Name))
		}
		if len(rule.Keywords) == 0 {
			issues = append(issues, fmt.Sprintf("category %q has no keywords", rule.Name))
		}
	}
	for _, name := range Categories {
		if !seen[name] {
			issues = append(issues, fmt.Sprintf("keyword table is missing category %q", name))
		}
	}

	for dept, mapping := range r.DirectMappings {
		for expenseType, category := range mapping {
			if !declared[category] {
				issues = append(issues, fmt.Sprintf(
					"direct mapping %s/%q targets unknown category %q", dept, expenseType, category))
			}
		}
		// Every department with a direct mapping must have a high-payment
		// threshold; the detectors run over the same departments the
		// classifier knows about.
		if _, ok := r.Thresholds.HighPayment[dept]; !ok {
			issues = append(issues, fmt.Sprintf("missing high-payment threshold for department %q", dept))
		}
	}

	one := decimal.NewFromInt(1)
	if !r.Thresholds.ConcentrationSpend.IsPositive() || r.Thresholds.ConcentrationSpend.GreaterThanOrEqual(one) {
		issues = append(issues, fmt.Sprintf(
			"spend concentration threshold %s must be in (0,1)", r.Thresholds.ConcentrationSpend))
	}
	if !r.Thresholds.ConcentrationTxn.IsPositive() || r.Thresholds.ConcentrationTxn.GreaterThanOrEqual(one) {
		issues = append(issues, fmt.Sprintf(
			"transaction concentration threshold %s must be in (0,1)", r.Thresholds.ConcentrationTxn))
	}
	if r.Thresholds.DuplicateWindowDays < 0 {
		issues = append(issues, fmt.Sprintf(
			"duplicate window of %d days must not be negative", r.Thresholds.DuplicateWindowDays))
	}

	if len(issues) > 0 {
		return &pipelineerror.ConfigurationError{Issues: issues}
	}
	return nil
}
