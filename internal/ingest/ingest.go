// Package ingest loads raw department ledgers and standardizes them into the
// unified transaction schema the classifier and detectors consume. Each known
// department has a fixed CSV layout; files from unknown departments are
// skipped, and rows whose date or amount cannot be parsed are dropped with a
// warning rather than failing the batch.
package ingest

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/gocarina/gocsv"
	"github.com/sirupsen/logrus"

	"github.com/ciflikli/igc-spending-insights/internal/metrics"
	"github.com/ciflikli/igc-spending-insights/internal/models"
	"github.com/ciflikli/igc-spending-insights/internal/pipelineerror"
)

// Loader reads department CSV files from a data directory laid out as
// <dir>/<Department>/<file>.csv.
type Loader struct {
	logger *logrus.Logger
}

// NewLoader creates a Loader.
func NewLoader(logger *logrus.Logger) *Loader {
	if logger == nil {
		logger = logrus.New()
	}
	return &Loader{logger: logger}
}

// Load walks the data directory and returns the standardized batch. It fails
// only when a file violates its column contract or nothing at all could be
// loaded.
func (l *Loader) Load(dataDir string) ([]models.Transaction, error) {
	entries, err := os.ReadDir(dataDir)
	if err != nil {
		return nil, fmt.Errorf("reading data directory %s: %w", dataDir, err)
	}

	var all []models.Transaction
	filesLoaded := 0

	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		department := entry.Name()
		if _, known := requiredColumns[department]; !known {
			l.logger.WithField("department", department).Warn("Skipping unknown department directory")
			continue
		}

		pattern := filepath.Join(dataDir, department, "*.csv")
		files, err := filepath.Glob(pattern)
		if err != nil {
			return nil, err
		}
		sort.Strings(files)

		for _, file := range files {
			records, err := l.loadFile(department, file)
			if err != nil {
				return nil, err
			}
			l.logger.WithFields(logrus.Fields{
				"department": department,
				"file":       filepath.Base(file),
				"records":    len(records),
			}).Info("Loaded transactions")
			all = append(all, records...)
			filesLoaded++
		}
	}

	if filesLoaded == 0 {
		return nil, fmt.Errorf("no transaction files found under %s", dataDir)
	}
	l.logger.WithFields(logrus.Fields{
		"files":   filesLoaded,
		"records": len(all),
	}).Info("Ingestion complete")
	return all, nil
}

func (l *Loader) loadFile(department, path string) ([]models.Transaction, error) {
	if err := checkColumns(path, requiredColumns[department]); err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, &pipelineerror.IngestError{FilePath: path, Err: err}
	}
	defer func() {
		if cerr := f.Close(); cerr != nil {
			l.logger.WithError(cerr).Warn("Failed to close input file")
		}
	}()

	sourceFile := filepath.Base(path)
	var converted []models.Transaction
	dropped := 0

	convert := func(tx models.Transaction, err error) {
		if err != nil {
			dropped++
			metrics.RowsDropped.WithLabelValues("unparseable").Inc()
			return
		}
		converted = append(converted, tx)
	}

	switch department {
	case models.DepartmentHMRC:
		var rows []*hmrcRow
		if err := gocsv.UnmarshalFile(f, &rows); err != nil {
			return nil, &pipelineerror.IngestError{FilePath: path, Err: err}
		}
		for _, row := range rows {
			convert(row.toTransaction(sourceFile))
		}
	case models.DepartmentHomeOffice:
		var rows []*homeOfficeRow
		if err := gocsv.UnmarshalFile(f, &rows); err != nil {
			return nil, &pipelineerror.IngestError{FilePath: path, Err: err}
		}
		for _, row := range rows {
			convert(row.toTransaction(sourceFile))
		}
	case models.DepartmentDfT:
		var rows []*dftRow
		if err := gocsv.UnmarshalFile(f, &rows); err != nil {
			return nil, &pipelineerror.IngestError{FilePath: path, Err: err}
		}
		for _, row := range rows {
			convert(row.toTransaction(sourceFile))
		}
	default:
		return nil, fmt.Errorf("no schema for department %q", department)
	}

	if dropped > 0 {
		l.logger.WithFields(logrus.Fields{
			"file":    sourceFile,
			"dropped": dropped,
		}).Warn("Dropped rows with unparseable amount or date")
	}
	return converted, nil
}

// standardizedColumns are the columns a pre-standardized table must carry.
var standardizedColumns = []string{
	"department", "supplier", "amount", "date", "expense_type", "description",
}

// LoadStandardized reads a table already in the standardized schema, as
// written by the report writer. Used when classification or detection runs
// over a previously exported table.
func (l *Loader) LoadStandardized(path string) ([]models.Transaction, error) {
	if err := checkColumns(path, standardizedColumns); err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, &pipelineerror.IngestError{FilePath: path, Err: err}
	}
	defer func() {
		if cerr := f.Close(); cerr != nil {
			l.logger.WithError(cerr).Warn("Failed to close input file")
		}
	}()

	records := make([]models.Transaction, 0)
	if err := gocsv.UnmarshalFile(f, &records); err != nil {
		return nil, &pipelineerror.IngestError{FilePath: path, Err: err}
	}
	return records, nil
}

// checkColumns enforces the column contract before any rows are parsed, so a
// malformed file aborts the batch instead of silently yielding empty fields.
func checkColumns(path string, required []string) error {
	f, err := os.Open(path)
	if err != nil {
		return &pipelineerror.IngestError{FilePath: path, Err: err}
	}
	defer f.Close() //nolint:errcheck // read-only handle

	header, err := csv.NewReader(f).Read()
	if err != nil {
		return &pipelineerror.IngestError{FilePath: path, Err: fmt.Errorf("reading header: %w", err)}
	}

	present := make(map[string]bool, len(header))
	for _, col := range header {
		present[strings.TrimPrefix(col, "\uFEFF")] = true
	}

	var missing []string
	for _, col := range required {
		if !present[col] {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return &pipelineerror.DataContractError{FilePath: path, MissingColumns: missing}
	}
	return nil
}
