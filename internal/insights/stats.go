// Package insights builds the summary statistics for a completed run and,
// optionally, an analyst briefing generated from them.
package insights

import (
	"fmt"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/ciflikli/igc-spending-insights/internal/models"
)

// topN bounds the top-item lists in the stats payload.
const topN = 5

// ShareEntry is one row of a top-items breakdown with its share of the batch.
type ShareEntry struct {
	Name            string          `json:"name"`
	Transactions    int             `json:"transactions"`
	Spend           decimal.Decimal `json:"spend"`
	PctOfTotalSpend float64         `json:"pct_of_total_spend"`
	PctOfTotalTxns  float64         `json:"pct_of_total_transactions"`
}

// Overview holds batch-level aggregates.
type Overview struct {
	DateStart           string          `json:"date_start"`
	DateEnd             string          `json:"date_end"`
	MonthsCovered       int             `json:"months_covered"`
	TotalTransactions   int             `json:"total_transactions"`
	TotalSpend          decimal.Decimal `json:"total_spend_gbp"`
	AverageValue        decimal.Decimal `json:"average_transaction_value"`
	MedianValue         decimal.Decimal `json:"median_transaction_value"`
	UniqueSuppliers     int             `json:"unique_suppliers"`
	UniqueDepartments   int             `json:"unique_departments"`
	AverageMonthlySpend decimal.Decimal `json:"average_monthly_spend_gbp"`
	NegativeCount       int             `json:"negative_transactions"`
	ZeroCount           int             `json:"zero_value_transactions"`
}

// ClassificationSummary reports how much of the batch stayed uncategorised.
type ClassificationSummary struct {
	UncategorisedTransactions int     `json:"uncategorised_transactions"`
	UncategorisedPct          float64 `json:"uncategorised_pct"`
}

// AnomalySummary breaks the anomaly report down for triage.
type AnomalySummary struct {
	Total        int              `json:"total"`
	ByType       map[string]int   `json:"by_type,omitempty"`
	BySeverity   map[string]int   `json:"by_severity,omitempty"`
	ByDepartment map[string]int   `json:"by_department,omitempty"`
	Examples     []models.Anomaly `json:"examples,omitempty"`
}

// Stats is the complete statistics payload for one run.
type Stats struct {
	RunID          string                `json:"run_id,omitempty"`
	Overview       Overview              `json:"overview"`
	TopDepartments []ShareEntry          `json:"top_departments"`
	TopCategories  []ShareEntry          `json:"top_categories"`
	TopSuppliers   []ShareEntry          `json:"top_suppliers"`
	MonthlyTrends  []ShareEntry          `json:"monthly_trends"`
	Classification ClassificationSummary `json:"classification"`
	Anomalies      AnomalySummary        `json:"anomalies"`
}

type bucket struct {
	transactions int
	spend        decimal.Decimal
}

// BuildStats computes the statistics payload from a classified batch and its
// anomaly report.
func BuildStats(records []models.Transaction, anomalies []models.Anomaly) (*Stats, error) {
	if len(records) == 0 {
		return nil, fmt.Errorf("cannot build statistics without transactions")
	}

	total := decimal.Zero
	amounts := make([]decimal.Decimal, 0, len(records))
	suppliers := make(map[string]bool)
	byDepartment := make(map[string]*bucket)
	byCategory := make(map[string]*bucket)
	bySupplier := make(map[string]*bucket)
	byMonth := make(map[string]*bucket)
	minDate, maxDate := records[0].Date, records[0].Date
	negative, zero, uncategorised := 0, 0, 0

	accumulate := func(m map[string]*bucket, key string, amount decimal.Decimal) {
		b := m[key]
		if b == nil {
			b = &bucket{}
			m[key] = b
		}
		b.transactions++
		b.spend = b.spend.Add(amount)
	}

	for _, record := range records {
		total = total.Add(record.Amount)
		amounts = append(amounts, record.Amount)
		suppliers[record.Supplier] = true
		accumulate(byDepartment, record.Department, record.Amount)
		accumulate(byCategory, record.Category, record.Amount)
		accumulate(bySupplier, record.Supplier, record.Amount)
		accumulate(byMonth, record.Date.MonthKey(), record.Amount)

		if record.Amount.IsNegative() {
			negative++
		} else if record.Amount.IsZero() {
			zero++
		}
		if record.Category == models.CategoryUncategorised {
			uncategorised++
		}
		if record.Date.Before(minDate) {
			minDate = record.Date
		}
		if maxDate.Before(record.Date) {
			maxDate = record.Date
		}
	}

	sort.Slice(amounts, func(i, j int) bool { return amounts[i].LessThan(amounts[j]) })
	median := amounts[len(amounts)/2]

	monthSpan := (maxDate.Year()-minDate.Year())*12 + int(maxDate.Month()) - int(minDate.Month()) + 1
	if monthSpan < 1 {
		monthSpan = 1
	}
	count := decimal.NewFromInt(int64(len(records)))

	stats := &Stats{
		Overview: Overview{
			DateStart:           minDate.String(),
			DateEnd:             maxDate.String(),
			MonthsCovered:       monthSpan,
			TotalTransactions:   len(records),
			TotalSpend:          total,
			AverageValue:        total.Div(count).Round(2),
			MedianValue:         median,
			UniqueSuppliers:     len(suppliers),
			UniqueDepartments:   len(byDepartment),
			AverageMonthlySpend: total.Div(decimal.NewFromInt(int64(monthSpan))).Round(2),
			NegativeCount:       negative,
			ZeroCount:           zero,
		},
		TopDepartments: topEntries(byDepartment, total, len(records), topN),
		TopCategories:  topEntries(byCategory, total, len(records), topN),
		TopSuppliers:   topEntries(bySupplier, total, len(records), topN),
		MonthlyTrends:  monthlyEntries(byMonth, total, len(records)),
		Classification: ClassificationSummary{
			UncategorisedTransactions: uncategorised,
			UncategorisedPct:          pct(uncategorised, len(records)),
		},
		Anomalies: summarizeAnomalies(anomalies),
	}
	return stats, nil
}

func topEntries(buckets map[string]*bucket, totalSpend decimal.Decimal, totalTxns, n int) []ShareEntry {
	entries := toEntries(buckets, totalSpend, totalTxns)
	sort.Slice(entries, func(i, j int) bool {
		if !entries[i].Spend.Equal(entries[j].Spend) {
			return entries[i].Spend.GreaterThan(entries[j].Spend)
		}
		return entries[i].Name < entries[j].Name
	})
	if len(entries) > n {
		entries = entries[:n]
	}
	return entries
}

func monthlyEntries(buckets map[string]*bucket, totalSpend decimal.Decimal, totalTxns int) []ShareEntry {
	entries := toEntries(buckets, totalSpend, totalTxns)
	sort.Slice(entries, func(i, j int) bool { return entries[i].Name < entries[j].Name })
	return entries
}

func toEntries(buckets map[string]*bucket, totalSpend decimal.Decimal, totalTxns int) []ShareEntry {
	entries := make([]ShareEntry, 0, len(buckets))
	for name, b := range buckets {
		entry := ShareEntry{
			Name:           name,
			Transactions:   b.transactions,
			Spend:          b.spend,
			PctOfTotalTxns: pct(b.transactions, totalTxns),
		}
		if !totalSpend.IsZero() {
			entry.PctOfTotalSpend, _ = b.spend.Div(totalSpend).Mul(decimal.NewFromInt(100)).Float64()
		}
		entries = append(entries, entry)
	}
	return entries
}

func summarizeAnomalies(anomalies []models.Anomaly) AnomalySummary {
	summary := AnomalySummary{Total: len(anomalies)}
	if len(anomalies) == 0 {
		return summary
	}

	summary.ByType = make(map[string]int)
	summary.BySeverity = make(map[string]int)
	summary.ByDepartment = make(map[string]int)
	for _, a := range anomalies {
		summary.ByType[a.Type]++
		summary.BySeverity[a.Severity]++
		summary.ByDepartment[a.Department]++
	}

	examples := make([]models.Anomaly, len(anomalies))
	copy(examples, anomalies)
	sort.SliceStable(examples, func(i, j int) bool {
		return examples[i].Amount.GreaterThan(examples[j].Amount)
	})
	if len(examples) > topN {
		examples = examples[:topN]
	}
	summary.Examples = examples
	return summary
}

func pct(part, whole int) float64 {
	if whole == 0 {
		return 0
	}
	return float64(part) / float64(whole) * 100
}
