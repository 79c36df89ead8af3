package classifier

import (
	"github.com/ciflikli/igc-spending-insights/internal/models"
)

// Tier is one stage of the classification cascade. Tiers are evaluated in
// order and the first match wins; a tier never sees a record an earlier tier
// already classified.
type Tier interface {
	// Match returns the category for the record and whether this tier
	// claimed it. Matching is pure: same record, same answer.
	Match(tx models.Transaction) (string, bool)

	// Name identifies the tier in logs and the classification summary.
	Name() string
}
