package report

import (
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ciflikli/igc-spending-insights/internal/insights"
	"github.com/ciflikli/igc-spending-insights/internal/models"
)

func newTestWriter(t *testing.T) (*Writer, string) {
	t.Helper()
	dir := filepath.Join(t.TempDir(), "output")
	writer, err := NewWriter(dir, nil)
	require.NoError(t, err)
	return writer, dir
}

func readCSV(t *testing.T, path string) [][]string {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	return rows
}

func TestNewWriter_CreatesOutputDirectory(t *testing.T) {
	_, dir := newTestWriter(t)
	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestWriteClassified(t *testing.T) {
	writer, dir := newTestWriter(t)

	records := []models.Transaction{{
		Department:  models.DepartmentHMRC,
		Supplier:    "FUJITSU SERVICES LTD",
		Amount:      decimal.RequireFromString("125000.50"),
		Date:        models.NewDate(2025, time.March, 14),
		ExpenseType: "Desktop Services",
		Category:    models.CategoryIT,
	}}
	require.NoError(t, writer.WriteClassified(records))

	rows := readCSV(t, filepath.Join(dir, ClassifiedFile))
	require.Len(t, rows, 2)
	assert.Contains(t, rows[0], "department")
	assert.Contains(t, rows[0], "category")
	assert.Contains(t, rows[1], "IT")
	assert.Contains(t, rows[1], "2025-03-14")
	assert.Contains(t, rows[1], "125000.5")
}

func TestWriteAnomalies(t *testing.T) {
	writer, dir := newTestWriter(t)

	anomalies := []models.Anomaly{{
		Type:       models.AnomalyHighPayment,
		Severity:   models.SeverityHigh,
		Department: models.DepartmentHMRC,
		Supplier:   "FUJITSU SERVICES LTD",
		Details:    "Payment of £1000000 exceeds £934000 threshold",
		Amount:     decimal.NewFromInt(1000000),
		Count:      1,
	}}
	require.NoError(t, writer.WriteAnomalies(anomalies))

	rows := readCSV(t, filepath.Join(dir, AnomaliesFile))
	require.Len(t, rows, 2)
	assert.Len(t, rows[0], 7)
	assert.Contains(t, rows[1], models.AnomalyHighPayment)
}

func TestWriteAnomalies_EmptyReportStillHasHeader(t *testing.T) {
	writer, dir := newTestWriter(t)

	require.NoError(t, writer.WriteAnomalies([]models.Anomaly{}))

	rows := readCSV(t, filepath.Join(dir, AnomaliesFile))
	require.Len(t, rows, 1, "an empty report is a header-only file, not an absent one")
	assert.Len(t, rows[0], 7)
}

func TestWriteStats(t *testing.T) {
	writer, dir := newTestWriter(t)

	stats := &insights.Stats{RunID: "run-1"}
	require.NoError(t, writer.WriteStats(stats))

	data, err := os.ReadFile(filepath.Join(dir, StatsFile))
	require.NoError(t, err)

	var restored insights.Stats
	require.NoError(t, json.Unmarshal(data, &restored))
	assert.Equal(t, "run-1", restored.RunID)
}

func TestWriteSummary(t *testing.T) {
	writer, dir := newTestWriter(t)

	require.NoError(t, writer.WriteSummary("Spending held steady through Q1."))

	data, err := os.ReadFile(filepath.Join(dir, SummaryFile))
	require.NoError(t, err)
	assert.Equal(t, "Spending held steady through Q1.\n", string(data))
}
