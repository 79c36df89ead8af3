package anomaly

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/ciflikli/igc-spending-insights/internal/models"
)

// HighPaymentDetector flags individual payments that strictly exceed their
// department's configured cutoff. It is a pure per-row filter: no grouping,
// no aggregation. Departments with no configured cutoff are skipped.
type HighPaymentDetector struct {
	thresholds map[string]decimal.Decimal
}

// NewHighPaymentDetector creates the detector over per-department cutoffs.
func NewHighPaymentDetector(thresholds map[string]decimal.Decimal) *HighPaymentDetector {
	return &HighPaymentDetector{thresholds: thresholds}
}

// Name implements Detector.
func (d *HighPaymentDetector) Name() string {
	return models.AnomalyHighPayment
}

// Detect implements Detector.
func (d *HighPaymentDetector) Detect(records []models.Transaction) []models.Anomaly {
	anomalies := make([]models.Anomaly, 0)
	for _, record := range records {
		threshold, ok := d.thresholds[record.Department]
		if !ok {
			continue
		}
		if record.Amount.GreaterThan(threshold) {
			anomalies = append(anomalies, models.Anomaly{
				Type:       models.AnomalyHighPayment,
				Severity:   models.SeverityHigh,
				Department: record.Department,
				Supplier:   record.Supplier,
				Details: fmt.Sprintf("Payment of £%s exceeds £%s threshold",
					record.Amount.StringFixed(0), threshold.StringFixed(0)),
				Amount: record.Amount,
				Count:  1,
			})
		}
	}
	return anomalies
}
