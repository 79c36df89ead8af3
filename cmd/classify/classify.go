// Package classify handles standalone transaction classification
package classify

import (
	"github.com/spf13/cobra"

	"github.com/ciflikli/igc-spending-insights/cmd/root"
	"github.com/ciflikli/igc-spending-insights/internal/classifier"
	"github.com/ciflikli/igc-spending-insights/internal/ingest"
	"github.com/ciflikli/igc-spending-insights/internal/report"
)

var noDirectMap bool

// Cmd represents the classify command
var Cmd = &cobra.Command{
	Use:   "classify",
	Short: "Classify transactions from a standardized CSV file",
	Long: `Classify each transaction in a standardized CSV file into a spending
category and write the classified table to the output directory.`,
	Run: classifyFunc,
}

func init() {
	Cmd.Flags().StringVarP(&root.InputFile, "input", "i", "", "Standardized transaction CSV file")
	Cmd.Flags().StringVarP(&root.OutputDir, "output", "o", "", "Directory to write the classified table to")
	Cmd.Flags().BoolVar(&noDirectMap, "no-direct-map", false, "Skip the direct expense type mapping tier")
	_ = Cmd.MarkFlagRequired("input")
}

func classifyFunc(cmd *cobra.Command, args []string) {
	root.Log.Info("Classify command called")

	outputDir := root.OutputDir
	if outputDir == "" {
		outputDir = root.Cfg.Output.Directory
	}

	ruleset, err := root.NewRuleStore().LoadRules()
	if err != nil {
		root.Log.WithError(err).Fatal("Failed to load rule files")
	}

	records, err := ingest.NewLoader(root.Log).LoadStandardized(root.InputFile)
	if err != nil {
		root.Log.WithError(err).Fatal("Failed to read transactions")
	}

	useDirectMap := root.Cfg.Classification.UseDirectMapping && !noDirectMap
	classified, _ := classifier.New(ruleset, useDirectMap, root.Log).Classify(records)

	writer, err := report.NewWriter(outputDir, root.Log)
	if err != nil {
		root.Log.WithError(err).Fatal("Failed to prepare output directory")
	}
	if err := writer.WriteClassified(classified); err != nil {
		root.Log.WithError(err).Fatal("Failed to write classified transactions")
	}
}
