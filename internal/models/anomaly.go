package models

import (
	"github.com/shopspring/decimal"
)

// Anomaly is one flagged finding from the anomaly engine. The column set is
// fixed: downstream consumers rely on the same seven columns whether or not
// any anomalies were found.
//
// Amount carries a type-dependent meaning: the flagged payment for
// high_payment, the repeated amount for duplicate_pattern, and the supplier's
// aggregate spend for both concentration types.
type Anomaly struct {
	Type       string          `csv:"anomaly_type" json:"anomaly_type"`
	Severity   string          `csv:"severity" json:"severity"`
	Department string          `csv:"department" json:"department"`
	Supplier   string          `csv:"supplier" json:"supplier"`
	Details    string          `csv:"details" json:"details"`
	Amount     decimal.Decimal `csv:"amount" json:"amount"`
	Count      int             `csv:"count" json:"count"`
}
