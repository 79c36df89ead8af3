package ingest

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/ciflikli/igc-spending-insights/internal/models"
)

// Each department publishes its ledger under a different column layout, so
// every source schema gets its own row type. A row converts itself into the
// standardized transaction, applying the shared normalization: supplier
// trimmed and uppercased, expense type and description trimmed with '#'
// stripped, amount cleaned of currency symbols and grouping commas.

type hmrcRow struct {
	Department        string `csv:"Department family"`
	Entity            string `csv:"Entity"`
	Date              string `csv:"Date"`
	ExpenseType       string `csv:"Expense type"`
	ExpenseArea       string `csv:"Expense area"`
	Supplier          string `csv:"Supplier"`
	TransactionNumber string `csv:"Transaction number"`
	Amount            string `csv:"Amount"`
	Description       string `csv:"Description"`
	Postcode          string `csv:"Supplier Postcode"`
}

type homeOfficeRow struct {
	Department        string `csv:"Department"`
	Entity            string `csv:"Entity"`
	Date              string `csv:"Date"`
	ExpenseType       string `csv:"Expense Type"`
	ExpenseArea       string `csv:"Expense Area"`
	Supplier          string `csv:"Supplier"`
	TransactionNumber string `csv:"Transaction Number"`
	Amount            string `csv:"Amount"`
}

type dftRow struct {
	Department        string `csv:"Department Family"`
	Entity            string `csv:"Entity"`
	Date              string `csv:"Date"`
	ExpenseType       string `csv:"Expense Type"`
	ExpenseArea       string `csv:"Expense Area"`
	Supplier          string `csv:"Supplier"`
	TransactionNumber string `csv:"Transaction No"`
	Amount            string `csv:" £ "`
	Description       string `csv:"Item Text"`
	Postcode          string `csv:"Postal Code"`
}

// requiredColumns lists the raw headers each schema cannot do without.
var requiredColumns = map[string][]string{
	models.DepartmentHMRC: {
		"Department family", "Date", "Expense type", "Supplier", "Amount", "Description",
	},
	models.DepartmentHomeOffice: {
		"Department", "Date", "Expense Type", "Supplier", "Amount",
	},
	models.DepartmentDfT: {
		"Department Family", "Date", "Expense Type", "Supplier", " £ ", "Item Text",
	},
}

var amountCleaner = strings.NewReplacer("£", "", ",", "", "\"", "", " ", "")

func parseAmount(raw string) (decimal.Decimal, error) {
	cleaned := amountCleaner.Replace(raw)
	if cleaned == "" {
		return decimal.Decimal{}, fmt.Errorf("empty amount")
	}
	return decimal.NewFromString(cleaned)
}

func cleanText(raw string) string {
	return strings.TrimSpace(strings.ReplaceAll(raw, "#", ""))
}

func normalizeSupplier(raw string) string {
	return strings.ToUpper(strings.TrimSpace(raw))
}

func standardize(dept, entity, date, expenseType, expenseArea, supplier, txnNumber, amount, description, postcode, sourceFile string) (models.Transaction, error) {
	parsedDate, err := models.ParseDate(strings.TrimSpace(date))
	if err != nil {
		return models.Transaction{}, err
	}
	parsedAmount, err := parseAmount(amount)
	if err != nil {
		return models.Transaction{}, err
	}

	expenseType = cleanText(expenseType)
	description = cleanText(description)
	if description == "" {
		// Schemas with no description column fall back to the expense type.
		description = expenseType
	}

	return models.Transaction{
		Department:        dept,
		Entity:            strings.TrimSpace(entity),
		Date:              parsedDate,
		Month:             parsedDate.MonthKey(),
		ExpenseType:       expenseType,
		ExpenseArea:       strings.TrimSpace(expenseArea),
		Supplier:          normalizeSupplier(supplier),
		Amount:            parsedAmount,
		Description:       description,
		TransactionNumber: strings.TrimSpace(txnNumber),
		Postcode:          strings.TrimSpace(postcode),
		SourceFile:        sourceFile,
	}, nil
}

func (r hmrcRow) toTransaction(sourceFile string) (models.Transaction, error) {
	return standardize(models.DepartmentHMRC, r.Entity, r.Date, r.ExpenseType, r.ExpenseArea,
		r.Supplier, r.TransactionNumber, r.Amount, r.Description, r.Postcode, sourceFile)
}

func (r homeOfficeRow) toTransaction(sourceFile string) (models.Transaction, error) {
	return standardize(models.DepartmentHomeOffice, r.Entity, r.Date, r.ExpenseType, r.ExpenseArea,
		r.Supplier, r.TransactionNumber, r.Amount, "", "", sourceFile)
}

func (r dftRow) toTransaction(sourceFile string) (models.Transaction, error) {
	return standardize(models.DepartmentDfT, r.Entity, r.Date, r.ExpenseType, r.ExpenseArea,
		r.Supplier, r.TransactionNumber, r.Amount, r.Description, r.Postcode, sourceFile)
}
