package anomaly

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ciflikli/igc-spending-insights/internal/models"
)

func duplicateRecord(dept, supplier string, amount int64, date models.Date) models.Transaction {
	return models.Transaction{
		Department: dept,
		Supplier:   supplier,
		Amount:     decimal.NewFromInt(amount),
		Date:       date,
	}
}

func TestDuplicatePatternDetector_Name(t *testing.T) {
	assert.Equal(t, models.AnomalyDuplicatePattern, NewDuplicatePatternDetector(7).Name())
}

func TestDuplicatePatternDetector_AdjacentGapWithinWindow(t *testing.T) {
	// Only one adjacent pair (Jan 1 to Jan 3) is close; the whole group of
	// three is still reported as a single finding.
	detector := NewDuplicatePatternDetector(7)
	records := []models.Transaction{
		duplicateRecord(models.DepartmentHMRC, "CAPITA", 50000, models.NewDate(2025, 1, 1)),
		duplicateRecord(models.DepartmentHMRC, "CAPITA", 50000, models.NewDate(2025, 1, 3)),
		duplicateRecord(models.DepartmentHMRC, "CAPITA", 50000, models.NewDate(2025, 2, 1)),
	}

	anomalies := detector.Detect(records)
	require.Len(t, anomalies, 1)
	a := anomalies[0]
	assert.Equal(t, models.AnomalyDuplicatePattern, a.Type)
	assert.Equal(t, models.SeverityMedium, a.Severity)
	assert.Equal(t, 3, a.Count)
	assert.Equal(t, "£50000 paid 3 times within 7 days", a.Details)
}

func TestDuplicatePatternDetector_GapOutsideWindow(t *testing.T) {
	detector := NewDuplicatePatternDetector(7)
	records := []models.Transaction{
		duplicateRecord(models.DepartmentHMRC, "CAPITA", 50000, models.NewDate(2025, 1, 1)),
		duplicateRecord(models.DepartmentHMRC, "CAPITA", 50000, models.NewDate(2025, 1, 20)),
	}

	assert.Empty(t, detector.Detect(records))
}

func TestDuplicatePatternDetector_SeverityEscalatesAtFour(t *testing.T) {
	detector := NewDuplicatePatternDetector(7)
	records := []models.Transaction{
		duplicateRecord(models.DepartmentDfT, "NETWORK RAIL", 120000, models.NewDate(2025, 4, 1)),
		duplicateRecord(models.DepartmentDfT, "NETWORK RAIL", 120000, models.NewDate(2025, 4, 2)),
		duplicateRecord(models.DepartmentDfT, "NETWORK RAIL", 120000, models.NewDate(2025, 4, 3)),
		duplicateRecord(models.DepartmentDfT, "NETWORK RAIL", 120000, models.NewDate(2025, 4, 4)),
	}

	anomalies := detector.Detect(records)
	require.Len(t, anomalies, 1)
	assert.Equal(t, models.SeverityHigh, anomalies[0].Severity)
	assert.Equal(t, 4, anomalies[0].Count)
}

func TestDuplicatePatternDetector_GroupingKey(t *testing.T) {
	detector := NewDuplicatePatternDetector(7)
	sameDay := models.NewDate(2025, 6, 10)

	tests := []struct {
		name     string
		records  []models.Transaction
		expected int
	}{
		{
			name: "different suppliers never group",
			records: []models.Transaction{
				duplicateRecord(models.DepartmentHMRC, "CAPITA", 50000, sameDay),
				duplicateRecord(models.DepartmentHMRC, "SERCO", 50000, sameDay),
			},
			expected: 0,
		},
		{
			name: "different departments never group",
			records: []models.Transaction{
				duplicateRecord(models.DepartmentHMRC, "CAPITA", 50000, sameDay),
				duplicateRecord(models.DepartmentDfT, "CAPITA", 50000, sameDay),
			},
			expected: 0,
		},
		{
			name: "different amounts never group",
			records: []models.Transaction{
				duplicateRecord(models.DepartmentHMRC, "CAPITA", 50000, sameDay),
				duplicateRecord(models.DepartmentHMRC, "CAPITA", 50001, sameDay),
			},
			expected: 0,
		},
		{
			name: "trailing zeros still group",
			records: []models.Transaction{
				{
					Department: models.DepartmentHMRC,
					Supplier:   "CAPITA",
					Amount:     decimal.RequireFromString("50000"),
					Date:       sameDay,
				},
				{
					Department: models.DepartmentHMRC,
					Supplier:   "CAPITA",
					Amount:     decimal.RequireFromString("50000.00"),
					Date:       sameDay,
				},
			},
			expected: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Len(t, detector.Detect(tt.records), tt.expected)
		})
	}
}

func TestDuplicatePatternDetector_UnsortedInput(t *testing.T) {
	// Dates arrive out of order; the window check must sort before comparing
	// adjacent gaps.
	detector := NewDuplicatePatternDetector(7)
	records := []models.Transaction{
		duplicateRecord(models.DepartmentHMRC, "CAPITA", 50000, models.NewDate(2025, 2, 1)),
		duplicateRecord(models.DepartmentHMRC, "CAPITA", 50000, models.NewDate(2025, 1, 1)),
		duplicateRecord(models.DepartmentHMRC, "CAPITA", 50000, models.NewDate(2025, 1, 3)),
	}

	require.Len(t, detector.Detect(records), 1)
}
