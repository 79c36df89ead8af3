// Package classifier assigns each transaction exactly one category using a
// tiered, first-match-wins cascade: direct expense type mapping, description
// keywords, then expense type keywords. Records no tier claims fall back to
// Uncategorised. For a fixed rule set the cascade is a pure function of its
// input; row order is preserved.
package classifier

import (
	"github.com/sirupsen/logrus"

	"github.com/ciflikli/igc-spending-insights/internal/models"
	"github.com/ciflikli/igc-spending-insights/internal/rules"
)

// Summary is the diagnostic output of one classification run. It is
// observability only; nothing downstream depends on it.
type Summary struct {
	Total        int            `json:"total"`
	ByTier       map[string]int `json:"by_tier"`
	Fallback     int            `json:"uncategorised"`
	Distribution map[string]int `json:"distribution"`
}

// Classifier runs the classification cascade over a batch of records.
type Classifier struct {
	tiers  []Tier
	logger *logrus.Logger
}

// New builds the cascade from a validated rule set. When useDirectMap is
// false the direct-mapping tier is left out entirely; the keyword tiers
// behave identically either way, aside from which records remain for them.
func New(ruleset *rules.Ruleset, useDirectMap bool, logger *logrus.Logger) *Classifier {
	if logger == nil {
		logger = logrus.New()
	}

	var tiers []Tier
	if useDirectMap {
		tiers = append(tiers, NewDirectMappingTier(ruleset.DirectMappings))
	}
	tiers = append(tiers,
		NewDescriptionKeywordTier(ruleset.Categories),
		NewExpenseTypeKeywordTier(ruleset.Categories),
	)

	return &Classifier{tiers: tiers, logger: logger}
}

// Classify returns a new slice of records with the category column assigned.
// The input is not mutated. Any pre-existing category values on the input are
// ignored, so re-classifying an already classified batch yields the same
// assignments as the first run.
func (c *Classifier) Classify(records []models.Transaction) ([]models.Transaction, Summary) {
	summary := Summary{
		Total:        len(records),
		ByTier:       make(map[string]int, len(c.tiers)),
		Distribution: make(map[string]int),
	}
	for _, tier := range c.tiers {
		summary.ByTier[tier.Name()] = 0
	}

	classified := make([]models.Transaction, len(records))
	for i, record := range records {
		record.Category = ""
		for _, tier := range c.tiers {
			if category, ok := tier.Match(record); ok {
				record.Category = category
				summary.ByTier[tier.Name()]++
				break
			}
		}
		if record.Category == "" {
			record.Category = models.CategoryUncategorised
			summary.Fallback++
		}
		summary.Distribution[record.Category]++
		classified[i] = record
	}

	c.logSummary(summary)
	return classified, summary
}

func (c *Classifier) logSummary(summary Summary) {
	fields := logrus.Fields{
		"total":         summary.Total,
		"uncategorised": summary.Fallback,
	}
	for _, tier := range c.tiers {
		fields[tier.Name()] = summary.ByTier[tier.Name()]
	}
	c.logger.WithFields(fields).Info("Classification complete")

	for category, count := range summary.Distribution {
		c.logger.WithFields(logrus.Fields{
			"category": category,
			"count":    count,
		}).Debug("Category distribution")
	}
}
