package classifier

import (
	"github.com/ciflikli/igc-spending-insights/internal/models"
	"github.com/ciflikli/igc-spending-insights/internal/rules"
)

// DirectMappingTier resolves a category from the (department, expense type)
// pair. Lookup is exact-string only: keys were normalized at ingestion and no
// further trimming or case folding is applied here.
type DirectMappingTier struct {
	mappings rules.DirectMapping
}

// NewDirectMappingTier creates the tier-0 matcher over the given mappings.
func NewDirectMappingTier(mappings rules.DirectMapping) *DirectMappingTier {
	return &DirectMappingTier{mappings: mappings}
}

// Name implements Tier.
func (t *DirectMappingTier) Name() string {
	return "direct_mapping"
}

// Match implements Tier.
func (t *DirectMappingTier) Match(tx models.Transaction) (string, bool) {
	mapping, ok := t.mappings[tx.Department]
	if !ok {
		return "", false
	}
	category, ok := mapping[tx.ExpenseType]
	return category, ok
}
