package anomaly

import (
	"fmt"
	"sort"

	"github.com/ciflikli/igc-spending-insights/internal/models"
)

// DuplicatePatternDetector flags repeated payments of an identical amount to
// the same supplier within a day window, suggestive of double payment.
//
// Records are grouped by (department, supplier, amount). Within a group dates
// are sorted ascending and only adjacent pairs are compared: for sorted
// values the gap between any two dates is the sum of the intervening adjacent
// gaps, so if any pair falls within the window, so does some adjacent pair.
// The whole group is flagged as one anomaly counting every occurrence, not
// just the close ones.
type DuplicatePatternDetector struct {
	windowDays int
}

// NewDuplicatePatternDetector creates the detector for the given window.
func NewDuplicatePatternDetector(windowDays int) *DuplicatePatternDetector {
	return &DuplicatePatternDetector{windowDays: windowDays}
}

// Name implements Detector.
func (d *DuplicatePatternDetector) Name() string {
	return models.AnomalyDuplicatePattern
}

type duplicateKey struct {
	department string
	supplier   string
	amount     string
}

// Detect implements Detector.
func (d *DuplicatePatternDetector) Detect(records []models.Transaction) []models.Anomaly {
	groups := make(map[duplicateKey][]models.Transaction)
	for _, record := range records {
		key := duplicateKey{
			department: record.Department,
			supplier:   record.Supplier,
			// Decimal values are normalized through String so 100 and 100.00
			// land in the same group.
			amount: record.Amount.String(),
		}
		groups[key] = append(groups[key], record)
	}

	keys := make([]duplicateKey, 0, len(groups))
	for key := range groups {
		keys = append(keys, key)
	}
	sort.Slice(keys, func(i, j int) bool {
		a, b := keys[i], keys[j]
		if a.department != b.department {
			return a.department < b.department
		}
		if a.supplier != b.supplier {
			return a.supplier < b.supplier
		}
		return a.amount < b.amount
	})

	anomalies := make([]models.Anomaly, 0)
	for _, key := range keys {
		members := groups[key]
		if len(members) < 2 {
			continue
		}

		dates := make([]models.Date, len(members))
		for i, member := range members {
			dates[i] = member.Date
		}
		sort.Slice(dates, func(i, j int) bool { return dates[i].Before(dates[j]) })

		withinWindow := false
		for i := 0; i < len(dates)-1; i++ {
			if dates[i].DaysUntil(dates[i+1]) <= d.windowDays {
				withinWindow = true
				break
			}
		}
		if !withinWindow {
			continue
		}

		severity := models.SeverityMedium
		if len(members) >= 4 {
			severity = models.SeverityHigh
		}
		anomalies = append(anomalies, models.Anomaly{
			Type:       models.AnomalyDuplicatePattern,
			Severity:   severity,
			Department: key.department,
			Supplier:   key.supplier,
			Details: fmt.Sprintf("£%s paid %d times within %d days",
				members[0].Amount.StringFixed(0), len(members), d.windowDays),
			Amount: members[0].Amount,
			Count:  len(members),
		})
	}
	return anomalies
}
