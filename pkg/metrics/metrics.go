package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

const (
	isdpExport = "isdp_export"

	exportJobsTotal        = "export_jobs_total"
	documentsExportedTotal = "documents_exported_total"
	exportBatchSizeName    = "export_batch_size"
	jobStatusLabel         = "status"
	documentOutcomeLabel   = "outcome"
	integrationTypeLabel   = "integration_type"
)

var exportJobsTotalMetric = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Subsystem: isdpExport,
		Name:      exportJobsTotal,
		Help:      "number of export jobs by terminal status",
	},
	[]string{jobStatusLabel, integrationTypeLabel},
)

var documentsExportedTotalMetric = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Subsystem: isdpExport,
		Name:      documentsExportedTotal,
		Help:      "number of documents exported by outcome and integration type",
	},
	[]string{documentOutcomeLabel, integrationTypeLabel},
)

var exportBatchSizeMetric = prometheus.NewHistogram(
	prometheus.HistogramOpts{
		Subsystem: isdpExport,
		Name:      exportBatchSizeName,
		Help:      "distribution of export batch sizes",
		Buckets:   []float64{1, 2, 5, 10, 25, 50, 100},
	},
)

func IncreaseExportJobsTotalMetric(status, integrationType string) {
	exportJobsTotalMetric.With(prometheus.Labels{
		jobStatusLabel:       status,
		integrationTypeLabel: integrationType,
	}).Inc()
}

func IncreaseDocumentsExportedTotalMetric(outcome, integrationType string) {
	documentsExportedTotalMetric.With(prometheus.Labels{
		documentOutcomeLabel: outcome,
		integrationTypeLabel: integrationType,
	}).Inc()
}

func ObserveExportBatchSizeMetric(size int) {
	exportBatchSizeMetric.Observe(float64(size))
}

func init() {
	prometheus.MustRegister(exportJobsTotalMetric)
	prometheus.MustRegister(documentsExportedTotalMetric)
	prometheus.MustRegister(exportBatchSizeMetric)
}
