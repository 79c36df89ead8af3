package store

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ciflikli/igc-spending-insights/internal/models"
	"github.com/ciflikli/igc-spending-insights/internal/pipelineerror"
)

const validCategoriesYAML = `categories:
  - name: IT
    keywords: [software, hosting]
  - name: Consultancy
    keywords: [consultancy]
  - name: Construction
    keywords: [construction]
  - name: Operations
    keywords: [travel]
  - name: Legal
    keywords: [legal]
  - name: HR/Staffing
    keywords: [salary]
  - name: Grants
    keywords: [grant]
  - name: Administrative
    keywords: [training]
`

const validMappingsYAML = `mappings:
  HMRC:
    Desktop Services: IT
    Tribunal appellant costs: Legal
`

const validThresholdsYAML = `high_payment:
  HMRC: 934000
concentration_threshold_spend: 0.15
concentration_threshold_txn: 0.10
duplicate_window_days: 7
`

func writeRuleFiles(t *testing.T, categories, mappings, thresholds string) *RuleStore {
	t.Helper()
	dir := t.TempDir()

	files := map[string]string{
		"categories.yaml":      categories,
		"direct_mappings.yaml": mappings,
		"thresholds.yaml":      thresholds,
	}
	for name, content := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
	}

	return NewRuleStore(
		filepath.Join(dir, "categories.yaml"),
		filepath.Join(dir, "direct_mappings.yaml"),
		filepath.Join(dir, "thresholds.yaml"),
		nil,
	)
}

func TestLoadRules_Valid(t *testing.T) {
	store := writeRuleFiles(t, validCategoriesYAML, validMappingsYAML, validThresholdsYAML)

	ruleset, err := store.LoadRules()
	require.NoError(t, err)

	require.Len(t, ruleset.Categories, 8)
	assert.Equal(t, models.CategoryIT, ruleset.Categories[0].Name)
	assert.Equal(t, []string{"software", "hosting"}, ruleset.Categories[0].Keywords)

	assert.Equal(t, models.CategoryIT, ruleset.DirectMappings["HMRC"]["Desktop Services"])
	assert.Equal(t, models.CategoryLegal, ruleset.DirectMappings["HMRC"]["Tribunal appellant costs"])

	assert.True(t, ruleset.Thresholds.HighPayment["HMRC"].Equal(decimal.NewFromInt(934000)))
	assert.True(t, ruleset.Thresholds.ConcentrationSpend.Equal(decimal.NewFromFloat(0.15)))
	assert.True(t, ruleset.Thresholds.ConcentrationTxn.Equal(decimal.NewFromFloat(0.10)))
	assert.Equal(t, 7, ruleset.Thresholds.DuplicateWindowDays)
}

func TestLoadRules_InvalidRulesNeverReturned(t *testing.T) {
	// The keyword table covers a single category, so validation must reject
	// the whole rule set.
	incomplete := `categories:
  - name: IT
    keywords: [software]
`
	store := writeRuleFiles(t, incomplete, validMappingsYAML, validThresholdsYAML)

	ruleset, err := store.LoadRules()
	require.Error(t, err)
	assert.Nil(t, ruleset)

	var configErr *pipelineerror.ConfigurationError
	require.ErrorAs(t, err, &configErr)
	assert.Contains(t, configErr.Issues, `keyword table is missing category "Legal"`)
}

func TestLoadRules_MissingFile(t *testing.T) {
	store := writeRuleFiles(t, validCategoriesYAML, validMappingsYAML, validThresholdsYAML)
	store.ThresholdsFile = filepath.Join(t.TempDir(), "absent.yaml")

	_, err := store.LoadRules()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "rule file not found")
}

func TestLoadRules_MalformedYAML(t *testing.T) {
	store := writeRuleFiles(t, "categories: [not: valid: yaml", validMappingsYAML, validThresholdsYAML)

	_, err := store.LoadRules()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "error parsing rule file")
}

func TestFindConfigFile_RelativeLookup(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "config"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config", "thresholds.yaml"), []byte("{}"), 0o644))

	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })

	store := NewRuleStore("categories.yaml", "direct_mappings.yaml", "thresholds.yaml", nil)
	found, err := store.FindConfigFile("thresholds.yaml")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("config", "thresholds.yaml"), found)

	_, err = store.FindConfigFile("nonexistent.yaml")
	assert.Error(t, err)
}
