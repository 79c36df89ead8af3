// Package analyze handles the full ingest, classify, detect and report pipeline
package analyze

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/ciflikli/igc-spending-insights/cmd/root"
	"github.com/ciflikli/igc-spending-insights/internal/anomaly"
	"github.com/ciflikli/igc-spending-insights/internal/classifier"
	"github.com/ciflikli/igc-spending-insights/internal/ingest"
	"github.com/ciflikli/igc-spending-insights/internal/insights"
	"github.com/ciflikli/igc-spending-insights/internal/metrics"
	"github.com/ciflikli/igc-spending-insights/internal/report"
	"github.com/ciflikli/igc-spending-insights/internal/validation"
)

var narrative bool

// Cmd represents the analyze command
var Cmd = &cobra.Command{
	Use:   "analyze",
	Short: "Run the full spending analysis pipeline",
	Long: `Ingest departmental spend CSV files, classify every transaction,
detect anomalous payments and write the classified table, anomaly report
and run statistics to the output directory.`,
	Run: analyzeFunc,
}

func init() {
	Cmd.Flags().StringVarP(&root.DataDir, "data", "d", "", "Directory holding per-department spend CSV files")
	Cmd.Flags().StringVarP(&root.OutputDir, "output", "o", "", "Directory to write run outputs to")
	Cmd.Flags().BoolVarP(&narrative, "narrative", "n", false, "Generate an analyst briefing with the Gemini model")
}

func analyzeFunc(cmd *cobra.Command, args []string) {
	runID := uuid.NewString()
	log := root.Log.WithField("run_id", runID)
	log.Info("Analyze command called")

	dataDir := root.DataDir
	if dataDir == "" {
		dataDir = root.Cfg.Data.Directory
	}
	outputDir := root.OutputDir
	if outputDir == "" {
		outputDir = root.Cfg.Output.Directory
	}

	ruleset, err := root.NewRuleStore().LoadRules()
	if err != nil {
		metrics.RunsCompleted.WithLabelValues("failure").Inc()
		log.WithError(err).Fatal("Failed to load rule files")
	}

	records, err := ingest.NewLoader(root.Log).Load(dataDir)
	if err != nil {
		metrics.RunsCompleted.WithLabelValues("failure").Inc()
		log.WithError(err).Fatal("Failed to ingest spend data")
	}
	for _, record := range records {
		metrics.RecordsIngested.WithLabelValues(record.Department).Inc()
	}

	quality := validation.Validate(records, root.Log)
	log.WithField("issues", len(quality.Issues)).Info("Data quality checks complete")

	classified, summary := classifier.New(ruleset, root.Cfg.Classification.UseDirectMapping, root.Log).Classify(records)
	for tier, count := range summary.ByTier {
		metrics.RecordsClassified.WithLabelValues(tier).Add(float64(count))
	}
	metrics.RecordsClassified.WithLabelValues("fallback").Add(float64(summary.Fallback))

	anomalies := anomaly.NewEngine(ruleset, root.Log).Detect(classified)
	for _, a := range anomalies {
		metrics.AnomaliesDetected.WithLabelValues(a.Type, a.Severity).Inc()
	}

	stats, err := insights.BuildStats(classified, anomalies)
	if err != nil {
		metrics.RunsCompleted.WithLabelValues("failure").Inc()
		log.WithError(err).Fatal("Failed to build run statistics")
	}
	stats.RunID = runID

	writer, err := report.NewWriter(outputDir, root.Log)
	if err != nil {
		metrics.RunsCompleted.WithLabelValues("failure").Inc()
		log.WithError(err).Fatal("Failed to prepare output directory")
	}
	if err := writer.WriteClassified(classified); err != nil {
		metrics.RunsCompleted.WithLabelValues("failure").Inc()
		log.WithError(err).Fatal("Failed to write classified transactions")
	}
	if err := writer.WriteAnomalies(anomalies); err != nil {
		metrics.RunsCompleted.WithLabelValues("failure").Inc()
		log.WithError(err).Fatal("Failed to write anomaly report")
	}
	if err := writer.WriteStats(stats); err != nil {
		metrics.RunsCompleted.WithLabelValues("failure").Inc()
		log.WithError(err).Fatal("Failed to write run statistics")
	}

	if narrative || root.Cfg.AI.Enabled {
		if err := writeNarrative(writer, stats); err != nil {
			log.WithError(err).Error("Failed to generate analyst briefing")
		}
	}

	metrics.RunsCompleted.WithLabelValues("success").Inc()
	log.WithField("anomalies", len(anomalies)).Info("Analysis complete")
}

func writeNarrative(writer *report.Writer, stats *insights.Stats) error {
	ctx, cancel := context.WithTimeout(context.Background(),
		time.Duration(root.Cfg.AI.TimeoutSeconds)*time.Second)
	defer cancel()

	client, err := insights.NewNarrativeClient(ctx, root.Cfg.AI.APIKey, root.Cfg.AI.Model,
		int32(root.Cfg.AI.MaxTokens), float32(root.Cfg.AI.Temperature), root.Log)
	if err != nil {
		return err
	}
	defer client.Close()

	text, err := client.Generate(ctx, stats)
	if err != nil {
		return err
	}
	return writer.WriteSummary(text)
}
