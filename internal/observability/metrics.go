// Package observability provides Prometheus metrics for monitoring.
package observability

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds all Prometheus metrics for the prep pipeline.
type Metrics struct {
	// Ingestion metrics
	BarsParsed    prometheus.Counter
	BarsStored    prometheus.Counter
	BarsDeduped   prometheus.Counter
	IngestErrors  *prometheus.CounterVec
	FilesIngested prometheus.Counter

	// Prep metrics
	RowsLoaded           prometheus.Counter
	RowsDropped          prometheus.Counter
	FeatureColumns       prometheus.Gauge
	TargetColumns        prometheus.Gauge
	PartitionRowsWritten *prometheus.CounterVec

	// Run metrics
	PrepRunsTotal *prometheus.CounterVec
	StageDuration *prometheus.HistogramVec

	// Database metrics
	DBQueryDuration *prometheus.HistogramVec
	DBQueryErrors   *prometheus.CounterVec
}

// NewMetrics creates a new Metrics instance with all metrics registered.
func NewMetrics(namespace string) *Metrics {
	if namespace == "" {
		namespace = "trend_prep"
	}

	return &Metrics{
		BarsParsed: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "bars_parsed_total",
			Help:      "Total number of ASCII bar rows parsed",
		}),
		BarsStored: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "bars_stored_total",
			Help:      "Total number of bars written to the bar store",
		}),
		BarsDeduped: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "bars_deduped_total",
			Help:      "Total number of duplicate-timestamp bars discarded during ingestion",
		}),
		IngestErrors: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "ingest_errors_total",
			Help:      "Total number of ingestion errors by kind",
		}, []string{"kind"}),
		FilesIngested: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "files_ingested_total",
			Help:      "Total number of raw ASCII files ingested",
		}),

		RowsLoaded: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rows_loaded_total",
			Help:      "Total number of bar rows loaded into the prep frame",
		}),
		RowsDropped: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rows_dropped_total",
			Help:      "Total number of incomplete rows pruned after target/feature computation",
		}),
		FeatureColumns: promauto.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "feature_columns",
			Help:      "Number of model-input feature columns produced by the last run",
		}),
		TargetColumns: promauto.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "target_columns",
			Help:      "Number of target columns produced by the last run",
		}),
		PartitionRowsWritten: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "partition_rows_written_total",
			Help:      "Total number of dataset rows persisted by split",
		}, []string{"split"}),

		PrepRunsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "prep_runs_total",
			Help:      "Total number of prep runs by status",
		}, []string{"status"}),
		StageDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "stage_duration_seconds",
			Help:      "Duration of pipeline stages",
			Buckets:   prometheus.DefBuckets,
		}, []string{"stage"}),

		DBQueryDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "db_query_duration_seconds",
			Help:      "Duration of storage operations",
			Buckets:   prometheus.DefBuckets,
		}, []string{"store", "operation"}),
		DBQueryErrors: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "db_query_errors_total",
			Help:      "Total number of storage operation errors",
		}, []string{"store", "operation"}),
	}
}

// Handler returns the HTTP handler serving the default Prometheus registry.
func Handler() http.Handler {
	return promhttp.Handler()
}
