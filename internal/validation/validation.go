// Package validation produces a data-quality report over an ingested batch.
// The report is diagnostic: quality findings are surfaced to the analyst but
// never abort the run, since the pipeline tolerates refunds, zero amounts and
// sparse descriptions by design.
package validation

import (
	"fmt"
	"sort"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/ciflikli/igc-spending-insights/internal/models"
)

// AmountStats summarizes the amount distribution of a batch.
type AmountStats struct {
	Min    decimal.Decimal `json:"min"`
	Q25    decimal.Decimal `json:"q25"`
	Median decimal.Decimal `json:"median"`
	Q75    decimal.Decimal `json:"q75"`
	P95    decimal.Decimal `json:"p95"`
	Max    decimal.Decimal `json:"max"`
	Total  decimal.Decimal `json:"total"`
}

// Report is the outcome of validating one batch.
type Report struct {
	TotalRows       int            `json:"total_rows"`
	Issues          []string       `json:"issues"`
	Warnings        []string       `json:"warnings"`
	NegativeAmounts int            `json:"negative_amounts"`
	ZeroAmounts     int            `json:"zero_amounts"`
	DateRange       [2]string      `json:"date_range"`
	Departments     map[string]int `json:"departments"`
	UniqueSuppliers int            `json:"unique_suppliers"`
	DuplicateTxnIDs int            `json:"duplicate_txn_ids"`
	AmountStats     AmountStats    `json:"amount_stats"`
}

// Validate inspects the standardized batch and logs what it finds.
func Validate(records []models.Transaction, logger *logrus.Logger) Report {
	if logger == nil {
		logger = logrus.New()
	}

	report := Report{
		TotalRows:   len(records),
		Issues:      []string{},
		Warnings:    []string{},
		Departments: make(map[string]int),
	}
	if len(records) == 0 {
		report.Issues = append(report.Issues, "batch contains no records")
		logger.Error("Validation: batch contains no records")
		return report
	}

	emptyByField := map[string]int{"department": 0, "supplier": 0, "expense_type": 0}
	suppliers := make(map[string]bool)
	txnIDs := make(map[string]int)
	amounts := make([]decimal.Decimal, 0, len(records))
	minDate, maxDate := records[0].Date, records[0].Date
	total := decimal.Zero

	for _, record := range records {
		if record.Department == "" {
			emptyByField["department"]++
		}
		if record.Supplier == "" {
			emptyByField["supplier"]++
		}
		if record.ExpenseType == "" {
			emptyByField["expense_type"]++
		}
		report.Departments[record.Department]++
		suppliers[record.Supplier] = true
		if record.TransactionNumber != "" {
			txnIDs[record.TransactionNumber]++
		}

		if record.Amount.IsNegative() {
			report.NegativeAmounts++
		} else if record.Amount.IsZero() {
			report.ZeroAmounts++
		}
		amounts = append(amounts, record.Amount)
		total = total.Add(record.Amount)

		if record.Date.Before(minDate) {
			minDate = record.Date
		}
		if maxDate.Before(record.Date) {
			maxDate = record.Date
		}
	}

	for field, count := range emptyByField {
		if count > 0 {
			report.Warnings = append(report.Warnings,
				fmt.Sprintf("%s: %d empty values", field, count))
		}
	}
	if report.NegativeAmounts > 0 {
		report.Warnings = append(report.Warnings,
			fmt.Sprintf("negative amounts: %d (likely refunds)", report.NegativeAmounts))
	}
	if report.ZeroAmounts > 0 {
		report.Warnings = append(report.Warnings,
			fmt.Sprintf("zero amounts: %d", report.ZeroAmounts))
	}
	for _, count := range txnIDs {
		if count > 1 {
			report.DuplicateTxnIDs++
		}
	}
	if report.DuplicateTxnIDs > 0 {
		report.Warnings = append(report.Warnings,
			fmt.Sprintf("duplicate transaction numbers: %d IDs appear more than once", report.DuplicateTxnIDs))
	}
	sort.Strings(report.Warnings)

	report.UniqueSuppliers = len(suppliers)
	report.DateRange = [2]string{minDate.String(), maxDate.String()}

	sort.Slice(amounts, func(i, j int) bool { return amounts[i].LessThan(amounts[j]) })
	report.AmountStats = AmountStats{
		Min:    amounts[0],
		Q25:    quantile(amounts, 0.25),
		Median: quantile(amounts, 0.5),
		Q75:    quantile(amounts, 0.75),
		P95:    quantile(amounts, 0.95),
		Max:    amounts[len(amounts)-1],
		Total:  total,
	}

	logger.WithFields(logrus.Fields{
		"rows":       report.TotalRows,
		"warnings":   len(report.Warnings),
		"suppliers":  report.UniqueSuppliers,
		"date_start": report.DateRange[0],
		"date_end":   report.DateRange[1],
	}).Info("Data validation complete")
	for _, warning := range report.Warnings {
		logger.Warn(warning)
	}
	return report
}

// quantile returns the nearest-rank quantile of a sorted slice.
func quantile(sorted []decimal.Decimal, q float64) decimal.Decimal {
	if len(sorted) == 0 {
		return decimal.Zero
	}
	idx := int(q * float64(len(sorted)-1))
	return sorted[idx]
}
