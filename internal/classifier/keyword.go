package classifier

import (
	"strings"

	"github.com/ciflikli/igc-spending-insights/internal/models"
	"github.com/ciflikli/igc-spending-insights/internal/rules"
)

// KeywordTier matches a single text field of the record against the category
// keyword table. Categories are evaluated in declaration order and the first
// category with any matching keyword wins, regardless of which keyword
// matched or how specific it is.
//
// Keywords match as raw case-insensitive substrings. This means a short
// keyword such as "IT" also matches inside longer words ("CAPITAL"); the
// keyword lists were curated against that behavior, so it is kept rather
// than tightened to word boundaries.
type KeywordTier struct {
	name       string
	categories []rules.CategoryRule
	field      func(models.Transaction) string
}

// NewDescriptionKeywordTier creates the tier-1 matcher over the description
// field.
func NewDescriptionKeywordTier(categories []rules.CategoryRule) *KeywordTier {
	return &KeywordTier{
		name:       "description_keywords",
		categories: categories,
		field:      func(tx models.Transaction) string { return tx.Description },
	}
}

// NewExpenseTypeKeywordTier creates the tier-2 matcher over the expense type
// field.
func NewExpenseTypeKeywordTier(categories []rules.CategoryRule) *KeywordTier {
	return &KeywordTier{
		name:       "expense_type_keywords",
		categories: categories,
		field:      func(tx models.Transaction) string { return tx.ExpenseType },
	}
}

// Name implements Tier.
func (t *KeywordTier) Name() string {
	return t.name
}

// Match implements Tier.
func (t *KeywordTier) Match(tx models.Transaction) (string, bool) {
	text := strings.ToUpper(t.field(tx))
	if text == "" {
		return "", false
	}
	for _, rule := range t.categories {
		for _, keyword := range rule.Keywords {
			if strings.Contains(text, strings.ToUpper(keyword)) {
				return rule.Name, true
			}
		}
	}
	return "", false
}
