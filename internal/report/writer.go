// Package report writes the run outputs: the classified transaction table,
// the anomaly table, the statistics payload and the narrative summary.
package report

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gocarina/gocsv"
	"github.com/sirupsen/logrus"

	"github.com/ciflikli/igc-spending-insights/internal/insights"
	"github.com/ciflikli/igc-spending-insights/internal/models"
)

// Output file names within the output directory.
const (
	ClassifiedFile = "classified_transactions.csv"
	AnomaliesFile  = "anomalies.csv"
	StatsFile      = "stats.json"
	SummaryFile    = "summary.txt"
)

// Writer persists run outputs under a single output directory.
type Writer struct {
	outputDir string
	logger    *logrus.Logger
}

// NewWriter creates a Writer, creating the output directory if needed.
func NewWriter(outputDir string, logger *logrus.Logger) (*Writer, error) {
	if logger == nil {
		logger = logrus.New()
	}
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating output directory %s: %w", outputDir, err)
	}
	return &Writer{outputDir: outputDir, logger: logger}, nil
}

// WriteClassified writes the classified transaction table.
func (w *Writer) WriteClassified(records []models.Transaction) error {
	return w.writeCSV(ClassifiedFile, &records)
}

// WriteAnomalies writes the anomaly table. An empty report still produces the
// file with its full header so downstream consumers always find the same
// seven columns.
func (w *Writer) WriteAnomalies(anomalies []models.Anomaly) error {
	return w.writeCSV(AnomaliesFile, &anomalies)
}

// WriteStats writes the statistics payload as indented JSON.
func (w *Writer) WriteStats(stats *insights.Stats) error {
	data, err := json.MarshalIndent(stats, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal stats: %w", err)
	}
	return w.writeFile(StatsFile, append(data, '\n'))
}

// WriteSummary writes the narrative summary text.
func (w *Writer) WriteSummary(text string) error {
	return w.writeFile(SummaryFile, []byte(text+"\n"))
}

func (w *Writer) writeCSV(name string, rows interface{}) error {
	path := filepath.Join(w.outputDir, name)
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil {
			w.logger.WithError(cerr).Warn("Failed to close output file")
		}
	}()

	if err := gocsv.MarshalFile(rows, f); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	w.logger.WithField("path", path).Info("Wrote output file")
	return nil
}

func (w *Writer) writeFile(name string, data []byte) error {
	path := filepath.Join(w.outputDir, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	w.logger.WithField("path", path).Info("Wrote output file")
	return nil
}
