package anomaly

import (
	"fmt"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/ciflikli/igc-spending-insights/internal/models"
)

// ConcentrationDetector flags suppliers that account for an outsized share of
// a department's spending. It runs two independent sub-analyses over the same
// (department, supplier) grouping: share of total spend and share of
// transaction count. A supplier exceeding both thresholds is reported twice;
// the findings are not deduplicated.
type ConcentrationDetector struct {
	spendThreshold decimal.Decimal
	txnThreshold   decimal.Decimal
}

// NewConcentrationDetector creates the detector for the given fractions,
// each in (0,1).
func NewConcentrationDetector(spendThreshold, txnThreshold decimal.Decimal) *ConcentrationDetector {
	return &ConcentrationDetector{
		spendThreshold: spendThreshold,
		txnThreshold:   txnThreshold,
	}
}

// Name implements Detector.
func (d *ConcentrationDetector) Name() string {
	return "supplier_concentration"
}

type supplierKey struct {
	department string
	supplier   string
}

type supplierAggregate struct {
	spend decimal.Decimal
	count int
}

type departmentAggregate struct {
	spend decimal.Decimal
	count int
}

var hundred = decimal.NewFromInt(100)

// Detect implements Detector.
func (d *ConcentrationDetector) Detect(records []models.Transaction) []models.Anomaly {
	departments := make(map[string]departmentAggregate)
	suppliers := make(map[supplierKey]supplierAggregate)

	for _, record := range records {
		dept := departments[record.Department]
		dept.spend = dept.spend.Add(record.Amount)
		dept.count++
		departments[record.Department] = dept

		key := supplierKey{department: record.Department, supplier: record.Supplier}
		agg := suppliers[key]
		agg.spend = agg.spend.Add(record.Amount)
		agg.count++
		suppliers[key] = agg
	}

	keys := make([]supplierKey, 0, len(suppliers))
	for key := range suppliers {
		keys = append(keys, key)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].department != keys[j].department {
			return keys[i].department < keys[j].department
		}
		return keys[i].supplier < keys[j].supplier
	})

	anomalies := make([]models.Anomaly, 0)

	for _, key := range keys {
		agg := suppliers[key]
		dept := departments[key.department]

		// A department with zero net spend has no meaningful spend share.
		if !dept.spend.IsZero() {
			share := agg.spend.Div(dept.spend)
			if share.GreaterThan(d.spendThreshold) {
				anomalies = append(anomalies, models.Anomaly{
					Type:       models.AnomalyConcentrationSpend,
					Severity:   models.SeverityHigh,
					Department: key.department,
					Supplier:   key.supplier,
					Details: fmt.Sprintf("%s%% of department total spend (>%s%% threshold)",
						share.Mul(hundred).StringFixed(1), d.spendThreshold.Mul(hundred)),
					Amount: agg.spend,
					Count:  agg.count,
				})
			}
		}
	}

	for _, key := range keys {
		agg := suppliers[key]
		dept := departments[key.department]

		share := decimal.NewFromInt(int64(agg.count)).Div(decimal.NewFromInt(int64(dept.count)))
		if share.GreaterThan(d.txnThreshold) {
			anomalies = append(anomalies, models.Anomaly{
				Type:       models.AnomalyConcentrationTxn,
				Severity:   models.SeverityMedium,
				Department: key.department,
				Supplier:   key.supplier,
				Details: fmt.Sprintf("%s%% of department transactions (>%s%% threshold)",
					share.Mul(hundred).StringFixed(1), d.txnThreshold.Mul(hundred)),
				Amount: agg.spend,
				Count:  agg.count,
			})
		}
	}

	return anomalies
}
