// Package detect handles standalone anomaly detection
package detect

import (
	"github.com/spf13/cobra"

	"github.com/ciflikli/igc-spending-insights/cmd/root"
	"github.com/ciflikli/igc-spending-insights/internal/anomaly"
	"github.com/ciflikli/igc-spending-insights/internal/ingest"
	"github.com/ciflikli/igc-spending-insights/internal/report"
)

// Cmd represents the detect command
var Cmd = &cobra.Command{
	Use:   "detect",
	Short: "Detect anomalous payments in a standardized CSV file",
	Long: `Run the anomaly detectors over a standardized transaction CSV file
and write the anomaly report to the output directory.`,
	Run: detectFunc,
}

func init() {
	Cmd.Flags().StringVarP(&root.InputFile, "input", "i", "", "Standardized transaction CSV file")
	Cmd.Flags().StringVarP(&root.OutputDir, "output", "o", "", "Directory to write the anomaly report to")
	_ = Cmd.MarkFlagRequired("input")
}

func detectFunc(cmd *cobra.Command, args []string) {
	root.Log.Info("Detect command called")

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

	anomalies := anomaly.NewEngine(ruleset, root.Log).Detect(records)

	writer, err := report.NewWriter(outputDir, root.Log)
	if err != nil {
		root.Log.WithError(err).Fatal("Failed to prepare output directory")
	}
	if err := writer.WriteAnomalies(anomalies); err != nil {
		root.Log.WithError(err).Fatal("Failed to write anomaly report")
	}
	root.Log.WithField("anomalies", len(anomalies)).Info("Detection complete")
}
