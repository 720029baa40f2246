package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	coremetrics "github.com/tigerroll/fantasyload/pkg/etl/core/metrics"
)

// PrometheusRecorder is a Prometheus implementation of the metrics.Recorder
// interface.
type PrometheusRecorder struct {
	registry *prometheus.Registry

	batchAttempts *prometheus.CounterVec
	batchSize     *prometheus.GaugeVec
	runDuration   *prometheus.HistogramVec
	runItems      *prometheus.CounterVec
	loadOutcomes  *prometheus.CounterVec
	stageDuration *prometheus.HistogramVec
	stageStatus   *prometheus.CounterVec
}

// NewPrometheusRecorder creates a new instance of PrometheusRecorder.
func NewPrometheusRecorder() *PrometheusRecorder {
	registry := prometheus.NewRegistry()

	// Register Go standard metrics and process/OS metrics.
	registry.MustRegister(collectors.NewGoCollector())
	registry.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	r := &PrometheusRecorder{
		registry: registry,
		batchAttempts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "etl_batch_attempts_total",
			Help: "Total batch attempts by entity type and outcome.",
		}, []string{"entity", "outcome"}),
		batchSize: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "etl_batch_size",
			Help: "Current adaptive batch size by entity type.",
		}, []string{"entity"}),
		runDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "etl_run_duration_seconds",
			Help:    "Duration of engine runs by entity type.",
			Buckets: prometheus.DefBuckets,
		}, []string{"entity"}),
		runItems: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "etl_run_items_total",
			Help: "Items processed by engine runs, by entity type and outcome.",
		}, []string{"entity", "outcome"}),
		loadOutcomes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "etl_load_records_total",
			Help: "Record outcomes of loader calls by entity type.",
		}, []string{"entity", "outcome"}),
		stageDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "etl_stage_duration_seconds",
			Help:    "Duration of orchestrator stages by dataset.",
			Buckets: prometheus.DefBuckets,
		}, []string{"dataset"}),
		stageStatus: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "etl_stage_status_total",
			Help: "Orchestrator stage completions by dataset and status.",
		}, []string{"dataset", "status"}),
	}

	registry.MustRegister(r.batchAttempts)
	registry.MustRegister(r.batchSize)
	registry.MustRegister(r.runDuration)
	registry.MustRegister(r.runItems)
	registry.MustRegister(r.loadOutcomes)
	registry.MustRegister(r.stageDuration)
	registry.MustRegister(r.stageStatus)

	return r
}

// GetRegistry returns the Prometheus registry.
func (r *PrometheusRecorder) GetRegistry() *prometheus.Registry {
	return r.registry
}

// RecordBatchAttempt records one attempt of one batch.
func (r *PrometheusRecorder) RecordBatchAttempt(entity string, size, attempt int, err error) {
	outcome := "success"
	if err != nil {
		outcome = "failure"
	}
	r.batchAttempts.WithLabelValues(entity, outcome).Inc()
}

// RecordRun records the aggregate outcome of one engine run.
func (r *PrometheusRecorder) RecordRun(entity string, processed, succeeded, failed, batches int, elapsed time.Duration) {
	r.runDuration.WithLabelValues(entity).Observe(elapsed.Seconds())
	r.runItems.WithLabelValues(entity, "succeeded").Add(float64(succeeded))
	r.runItems.WithLabelValues(entity, "failed").Add(float64(failed))
}

// RecordBatchSize records the engine's live batch size after adaptation.
func (r *PrometheusRecorder) RecordBatchSize(entity string, size int) {
	r.batchSize.WithLabelValues(entity).Set(float64(size))
}

// RecordLoad records per-record outcomes of one loader call.
func (r *PrometheusRecorder) RecordLoad(entity string, inserted, updated, skipped, failed int) {
	r.loadOutcomes.WithLabelValues(entity, "inserted").Add(float64(inserted))
	r.loadOutcomes.WithLabelValues(entity, "updated").Add(float64(updated))
	r.loadOutcomes.WithLabelValues(entity, "skipped").Add(float64(skipped))
	r.loadOutcomes.WithLabelValues(entity, "failed").Add(float64(failed))
}

// RecordStage records one orchestrator stage's duration and outcome.
func (r *PrometheusRecorder) RecordStage(dataset string, duration time.Duration, err error) {
	status := "success"
	if err != nil {
		status = "failure"
	}
	r.stageDuration.WithLabelValues(dataset).Observe(duration.Seconds())
	r.stageStatus.WithLabelValues(dataset, status).Inc()
}

var _ coremetrics.Recorder = (*PrometheusRecorder)(nil)
