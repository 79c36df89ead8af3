package rules

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ciflikli/igc-spending-insights/internal/models"
	"github.com/ciflikli/igc-spending-insights/internal/pipelineerror"
)

func validRuleset() *Ruleset {
	categories := make([]CategoryRule, 0, len(Categories))
	for _, name := range Categories {
		categories = append(categories, CategoryRule{Name: name, Keywords: []string{"keyword"}})
	}
	return &Ruleset{
		Categories: categories,
		DirectMappings: DirectMapping{
			models.DepartmentHMRC: {"Desktop Services": models.CategoryIT},
		},
		Thresholds: Thresholds{
			HighPayment: map[string]decimal.Decimal{
				models.DepartmentHMRC: decimal.NewFromInt(934000),
			},
			ConcentrationSpend:  decimal.NewFromFloat(0.15),
			ConcentrationTxn:    decimal.NewFromFloat(0.10),
			DuplicateWindowDays: 7,
		},
	}
}

func TestValidate_ValidRuleset(t *testing.T) {
	assert.NoError(t, validRuleset().Validate())
}

func TestValidate_Failures(t *testing.T) {
	tests := []struct {
		name          string
		mutate        func(r *Ruleset)
		expectedIssue string
	}{
		{
			name: "keyword table missing a category",
			mutate: func(r *Ruleset) {
				r.Categories = r.Categories[:len(r.Categories)-1]
			},
			expectedIssue: `keyword table is missing category "Administrative"`,
		},
		{
			name: "keyword table has an extra category",
			mutate: func(r *Ruleset) {
				r.Categories = append(r.Categories, CategoryRule{Name: "Misc", Keywords: []string{"misc"}})
			},
			expectedIssue: `keyword table category "Misc" is not in the enumeration`,
		},
		{
			name: "category declared twice",
			mutate: func(r *Ruleset) {
				r.Categories = append(r.Categories, CategoryRule{Name: models.CategoryIT, Keywords: []string{"x"}})
			},
			expectedIssue: `category "IT" declared more than once`,
		},
		{
			name: "category without keywords",
			mutate: func(r *Ruleset) {
				r.Categories[0].Keywords = nil
			},
			expectedIssue: `category "IT" has no keywords`,
		},
		{
			name: "direct mapping targets unknown category",
			mutate: func(r *Ruleset) {
				r.DirectMappings[models.DepartmentHMRC]["Desktop Services"] = "Hardware"
			},
			expectedIssue: `direct mapping HMRC/"Desktop Services" targets unknown category "Hardware"`,
		},
		{
			name: "mapped department without high payment threshold",
			mutate: func(r *Ruleset) {
				r.Thresholds.HighPayment = map[string]decimal.Decimal{}
			},
			expectedIssue: `missing high-payment threshold for department "HMRC"`,
		},
		{
			name: "spend concentration threshold at one",
			mutate: func(r *Ruleset) {
				r.Thresholds.ConcentrationSpend = decimal.NewFromInt(1)
			},
			expectedIssue: "spend concentration threshold 1 must be in (0,1)",
		},
		{
			name: "txn concentration threshold at zero",
			mutate: func(r *Ruleset) {
				r.Thresholds.ConcentrationTxn = decimal.Zero
			},
			expectedIssue: "transaction concentration threshold 0 must be in (0,1)",
		},
		{
			name: "negative duplicate window",
			mutate: func(r *Ruleset) {
				r.Thresholds.DuplicateWindowDays = -1
			},
			expectedIssue: "duplicate window of -1 days must not be negative",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ruleset := validRuleset()
			tt.mutate(ruleset)

			err := ruleset.Validate()
			require.Error(t, err)

			var configErr *pipelineerror.ConfigurationError
			require.ErrorAs(t, err, &configErr)
			assert.Contains(t, configErr.Issues, tt.expectedIssue)
		})
	}
}

func TestValidate_CollectsAllIssues(t *testing.T) {
	ruleset := validRuleset()
	ruleset.Categories = ruleset.Categories[:4]
	ruleset.Thresholds.ConcentrationSpend = decimal.NewFromInt(2)
	ruleset.Thresholds.DuplicateWindowDays = -7

	err := ruleset.Validate()
	require.Error(t, err)

	var configErr *pipelineerror.ConfigurationError
	require.ErrorAs(t, err, &configErr)
	assert.GreaterOrEqual(t, len(configErr.Issues), 6)
}
