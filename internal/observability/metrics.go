package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "disaster_radar"

// Metrics holds the Prometheus collectors shared by the api and the worker.
type Metrics struct {
	SearchRequests  *prometheus.CounterVec // labels: mode={nlp,manual}
	SearchDegraded  *prometheus.CounterVec // labels: reason={unconfigured,unavailable}
	SearchDuration  prometheus.Histogram
	SearchHits      prometheus.Histogram
	EntityExtracted *prometheus.CounterVec // labels: field
	StoreOperations *prometheus.CounterVec // labels: op, outcome={success,error}

	PostsIngested   prometheus.Counter
	PostsDuplicate  prometheus.Counter
	IngestErrors    prometheus.Counter
	RetentionDelete prometheus.Counter
}

// NewMetrics creates the collectors and registers them with reg. A nil
// registerer leaves them unregistered, which suits tests.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		SearchRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "search_requests_total",
			Help:      "Search requests by extraction mode.",
		}, []string{"mode"}),
		SearchDegraded: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "search_degraded_total",
			Help:      "Searches answered with empty results because the store was missing or failing.",
		}, []string{"reason"}),
		SearchDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "search_duration_seconds",
			Help:      "Duration of a store search round trip.",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		}),
		SearchHits: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "search_hits",
			Help:      "Number of hits returned per search.",
			Buckets:   []float64{0, 1, 10, 50, 100, 250, 500, 1000},
		}),
		EntityExtracted: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "entities_extracted_total",
			Help:      "Entity fields populated by the query interpreter.",
		}, []string{"field"}),
		StoreOperations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "store_operations_total",
			Help:      "Document store operations by kind and outcome.",
		}, []string{"op", "outcome"}),
		PostsIngested: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "posts_ingested_total",
			Help:      "Posts indexed by the ingest worker.",
		}),
		PostsDuplicate: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "posts_duplicate_total",
			Help:      "Posts skipped by the ingest worker as recently seen.",
		}),
		IngestErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "ingest_errors_total",
			Help:      "Messages the ingest worker failed to process.",
		}),
		RetentionDelete: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "retention_deleted_total",
			Help:      "Posts removed by the retention job.",
		}),
	}

	if reg != nil {
		reg.MustRegister(
			m.SearchRequests,
			m.SearchDegraded,
			m.SearchDuration,
			m.SearchHits,
			m.EntityExtracted,
			m.StoreOperations,
			m.PostsIngested,
			m.PostsDuplicate,
			m.IngestErrors,
			m.RetentionDelete,
		)
	}

	return m
}

// StoreOp records the outcome of a store call.
func (m *Metrics) StoreOp(op string, err error) {
	outcome := "success"
	if err != nil {
		outcome = "error"
	}
	m.StoreOperations.WithLabelValues(op, outcome).Inc()
}
