// Package store loads the rule files (categories, direct mappings,
// thresholds) that drive classification and anomaly detection.
package store

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"github.com/ciflikli/igc-spending-insights/internal/rules"
)

// RuleStore resolves and parses the YAML rule files.
type RuleStore struct {
	CategoriesFile string
	MappingsFile   string
	ThresholdsFile string
	logger         *logrus.Logger
}

// NewRuleStore creates a store for the given rule file names. Relative names
// are resolved against the standard config locations.
func NewRuleStore(categoriesFile, mappingsFile, thresholdsFile string, logger *logrus.Logger) *RuleStore {
	if logger == nil {
		logger = logrus.New()
	}
	return &RuleStore{
		CategoriesFile: categoriesFile,
		MappingsFile:   mappingsFile,
		ThresholdsFile: thresholdsFile,
		logger:         logger,
	}
}

// FindConfigFile looks for a rule file in the standard locations.
func (s *RuleStore) FindConfigFile(filename string) (string, error) {
	if filepath.IsAbs(filename) {
		if _, err := os.Stat(filename); err == nil {
			return filename, nil
		}
		return "", os.ErrNotExist
	}

	locations := []string{
		filename,
		filepath.Join("config", filename),
	}
	if homeDir, err := os.UserHomeDir(); err == nil {
		locations = append(locations, filepath.Join(homeDir, ".config", "spending-insights", filename))
	}

	for _, location := range locations {
		if _, err := os.Stat(location); err == nil {
			return location, nil
		}
	}
	return "", os.ErrNotExist
}

type categoriesFile struct {
	Categories []rules.CategoryRule `yaml:"categories"`
}

type mappingsFile struct {
	Mappings map[string]map[string]string `yaml:"mappings"`
}

type thresholdsFile struct {
	HighPayment                 map[string]float64 `yaml:"high_payment"`
	ConcentrationThresholdSpend float64            `yaml:"concentration_threshold_spend"`
	ConcentrationThresholdTxn   float64            `yaml:"concentration_threshold_txn"`
	DuplicateWindowDays         int                `yaml:"duplicate_window_days"`
}

// LoadCategories loads the ordered category keyword table.
func (s *RuleStore) LoadCategories() ([]rules.CategoryRule, error) {
	var parsed categoriesFile
	if err := s.readYAML(s.CategoriesFile, &parsed); err != nil {
		return nil, err
	}
	s.logger.WithField("count", len(parsed.Categories)).Debug("Loaded category keyword table")
	return parsed.Categories, nil
}

// LoadDirectMappings loads the department → expense type → category mapping.
func (s *RuleStore) LoadDirectMappings() (rules.DirectMapping, error) {
	var parsed mappingsFile
	if err := s.readYAML(s.MappingsFile, &parsed); err != nil {
		return nil, err
	}
	s.logger.WithField("departments", len(parsed.Mappings)).Debug("Loaded direct expense type mappings")
	return rules.DirectMapping(parsed.Mappings), nil
}

// LoadThresholds loads the anomaly detector thresholds.
func (s *RuleStore) LoadThresholds() (rules.Thresholds, error) {
	var parsed thresholdsFile
	if err := s.readYAML(s.ThresholdsFile, &parsed); err != nil {
		return rules.Thresholds{}, err
	}

	highPayment := make(map[string]decimal.Decimal, len(parsed.HighPayment))
	for dept, cutoff := range parsed.HighPayment {
		highPayment[dept] = decimal.NewFromFloat(cutoff)
	}

	return rules.Thresholds{
		HighPayment:         highPayment,
		ConcentrationSpend:  decimal.NewFromFloat(parsed.ConcentrationThresholdSpend),
		ConcentrationTxn:    decimal.NewFromFloat(parsed.ConcentrationThresholdTxn),
		DuplicateWindowDays: parsed.DuplicateWindowDays,
	}, nil
}

// LoadRules loads and validates the complete rule set. A rule set that fails
// validation is never returned; the batch must not run on it.
func (s *RuleStore) LoadRules() (*rules.Ruleset, error) {
	categories, err := s.LoadCategories()
	if err != nil {
		return nil, err
	}
	mappings, err := s.LoadDirectMappings()
	if err != nil {
		return nil, err
	}
	thresholds, err := s.LoadThresholds()
	if err != nil {
		return nil, err
	}

	ruleset := &rules.Ruleset{
		Categories:     categories,
		DirectMappings: mappings,
		Thresholds:     thresholds,
	}
	if err := ruleset.Validate(); err != nil {
		return nil, err
	}
	return ruleset, nil
}

func (s *RuleStore) readYAML(filename string, out interface{}) error {
	filePath, err := s.FindConfigFile(filename)
	if err != nil {
		return fmt.Errorf("rule file not found: %s", filename)
	}

	data, err := os.ReadFile(filePath)
	if err != nil {
		return fmt.Errorf("error reading rule file %s: %w", filePath, err)
	}
	if err := yaml.Unmarshal(data, out); err != nil {
		return fmt.Errorf("error parsing rule file %s: %w", filePath, err)
	}
	return nil
}
