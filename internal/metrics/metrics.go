// Package metrics exposes Prometheus counters for pipeline activity.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RecordsIngested counts transactions loaded per department.
	RecordsIngested = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "spending_records_ingested_total",
		Help: "Number of transactions ingested, by department",
	}, []string{"department"})

	// RowsDropped counts rows rejected during ingestion.
	RowsDropped = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "spending_rows_dropped_total",
		Help: "Number of rows dropped during ingestion, by reason",
	}, []string{"reason"})

	// RecordsClassified counts classification outcomes per tier.
	RecordsClassified = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "spending_records_classified_total",
		Help: "Number of transactions classified, by tier",
	}, []string{"tier"})

	// AnomaliesDetected counts anomalies per type and severity.
	AnomaliesDetected = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "spending_anomalies_detected_total",
		Help: "Number of anomalies detected, by type and severity",
	}, []string{"type", "severity"})

	// RunsCompleted counts finished pipeline runs per outcome.
	RunsCompleted = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "spending_runs_completed_total",
		Help: "Number of pipeline runs, by outcome",
	}, []string{"outcome"})
)
