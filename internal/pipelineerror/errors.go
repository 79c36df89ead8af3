// Package pipelineerror defines the typed errors shared by the analysis
// pipeline. Configuration and data-contract failures abort a run entirely;
// there are no per-record errors.
package pipelineerror

import (
	"fmt"
	"strings"
)

// ConfigurationError reports inconsistencies in the classification or
// threshold rules, found once before any batch runs. Issues holds every
// problem detected so operators can fix the rule files in one pass.
type ConfigurationError struct {
	Issues []string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("invalid rule configuration:\n  - %s", strings.Join(e.Issues, "\n  - "))
}

// DataContractError reports that an input file does not carry the columns the
// standardized schema requires.
type DataContractError struct {
	FilePath       string
	MissingColumns []string
}

func (e *DataContractError) Error() string {
	return fmt.Sprintf("input contract violation in %s: missing columns %s",
		e.FilePath, strings.Join(e.MissingColumns, ", "))
}

// IngestError wraps a failure to read or parse a source file.
type IngestError struct {
	FilePath string
	Err      error
}

func (e *IngestError) Error() string {
	return fmt.Sprintf("failed to ingest %s: %v", e.FilePath, e.Err)
}

func (e *IngestError) Unwrap() error {
	return e.Err
}
