// Package models provides the data structures used throughout the application.
package models

import (
	"github.com/shopspring/decimal"
)

// Transaction is a single spending record in the standardized schema produced
// by ingestion. Supplier is already trimmed and uppercased; ExpenseType and
// Description are trimmed and may be empty. Category is empty until the
// classifier has run.
type Transaction struct {
	Department        string          `csv:"department"`
	Entity            string          `csv:"entity"`
	Date              Date            `csv:"date"`
	Month             string          `csv:"month"`
	ExpenseType       string          `csv:"expense_type"`
	ExpenseArea       string          `csv:"expense_area"`
	Supplier          string          `csv:"supplier"`
	Amount            decimal.Decimal `csv:"amount"`
	Description       string          `csv:"description"`
	TransactionNumber string          `csv:"transaction_number"`
	Postcode          string          `csv:"postcode"`
	SourceFile        string          `csv:"source_file"`
	Category          string          `csv:"category"`
}
