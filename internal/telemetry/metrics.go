package telemetry

import (
	"net/http"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	once sync.Once

	BatchesStarted  = prometheus.NewCounter(prometheus.CounterOpts{Name: "ingest_batches_started_total", Help: "Batches submitted for ingestion"})
	BatchesFinished = prometheus.NewCounter(prometheus.CounterOpts{Name: "ingest_batches_finished_total", Help: "Batches that ran to completion"})
	RecordsApproved = prometheus.NewCounter(prometheus.CounterOpts{Name: "ingest_records_approved_total", Help: "Records persisted as approved jobs"})
	RecordsRejected = prometheus.NewCounter(prometheus.CounterOpts{Name: "ingest_records_rejected_total", Help: "Records persisted as rejected jobs"})
	RecordsErrored  = prometheus.NewCounter(prometheus.CounterOpts{Name: "ingest_records_errored_total", Help: "Records that failed mapping, evaluation or persistence"})
)

// Handler exposes the /metrics HTTP handler with a singleton registry.
func Handler() http.Handler {
	once.Do(func() {
		prometheus.MustRegister(
			BatchesStarted,
			BatchesFinished,
			RecordsApproved,
			RecordsRejected,
			RecordsErrored,
		)
	})
	return promhttp.Handler()
}
