// Package root contains the root command for the application
package root

import (
	"path/filepath"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/ciflikli/igc-spending-insights/internal/config"
	"github.com/ciflikli/igc-spending-insights/internal/store"
)

// Default rule file names, resolved against the standard config locations.
const (
	CategoriesFile = "categories.yaml"
	MappingsFile   = "direct_mappings.yaml"
	ThresholdsFile = "thresholds.yaml"
)

var (
	// Log is the shared logger instance for commands
	Log = logrus.New()

	// Cfg is the application configuration, loaded before any command runs
	Cfg *config.Config

	// Cmd is the root command
	Cmd = &cobra.Command{
		Use:   "spending-insights",
		Short: "A CLI tool to classify UK government spending data and detect anomalies.",
		Long: `spending-insights ingests published UK government spend-over-threshold CSV files,
classifies each transaction into a spending category and flags anomalous payments.`,
		Run: func(cmd *cobra.Command, args []string) {
			Log.Info("Welcome to spending-insights!")
			Log.Info("Use --help to see available commands")
		},
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			cfg, err := config.InitializeConfig()
			if err != nil {
				Log.WithError(err).Fatal("Failed to load configuration")
			}
			Cfg = cfg
			Log = config.ConfigureLoggingFromConfig(cfg)
		},
	}

	// Flags shared across subcommands
	DataDir   string
	OutputDir string
	InputFile string
	RulesDir  string
)

// Init initializes the root command and all flags
func Init() {
	Cmd.PersistentFlags().StringVarP(&RulesDir, "rules", "r", "", "Directory holding the rule YAML files")
}

// NewRuleStore builds the rule store from the configured rule file locations.
func NewRuleStore() *store.RuleStore {
	dir := RulesDir
	if dir == "" && Cfg != nil {
		dir = Cfg.Rules.Directory
	}
	return store.NewRuleStore(
		filepath.Join(dir, CategoriesFile),
		filepath.Join(dir, MappingsFile),
		filepath.Join(dir, ThresholdsFile),
		Log,
	)
}
