package search

import (
	"context"
	"log/slog"
	"time"

	"github.com/DeafMist/disaster-radar/internal/logger"
	"github.com/DeafMist/disaster-radar/internal/models"
	"github.com/DeafMist/disaster-radar/internal/observability"
	"github.com/DeafMist/disaster-radar/internal/query"
)

// Messages attached to degraded results.
const (
	MsgUnconfigured = "Elasticsearch not available (demo mode)"
	MsgUnavailable  = "Elasticsearch not reachable, returning no results"
)

// Store runs compiled queries. *elasticsearch.Client satisfies it.
type Store interface {
	Search(ctx context.Context, q query.Compiled) ([]models.Hit, error)
}

// Result is what an executed query yields. Message is set only when the
// results were degraded.
type Result struct {
	Hits    []models.Hit
	Message string
}

// Executor sends compiled queries to an optional store. A nil store means
// search is not configured and every query yields no hits.
type Executor struct {
	store   Store
	timeout time.Duration
	log     *slog.Logger
	metrics *observability.Metrics
}

// NewExecutor builds an executor. timeout bounds every store call; zero
// leaves only the caller's deadline in effect.
func NewExecutor(store Store, timeout time.Duration, log *slog.Logger, metrics *observability.Metrics) *Executor {
	if log == nil {
		log = logger.Discard()
	}
	if metrics == nil {
		metrics = observability.NewMetrics(nil)
	}
	return &Executor{store: store, timeout: timeout, log: log, metrics: metrics}
}

// Enabled reports whether a store is configured.
func (e *Executor) Enabled() bool {
	return e.store != nil
}

// Execute runs q. It never fails: a missing or failing store produces an
// empty result with an explanatory message.
func (e *Executor) Execute(ctx context.Context, q query.Compiled) Result {
	if e.store == nil {
		e.metrics.SearchDegraded.WithLabelValues("unconfigured").Inc()
		return Result{Hits: []models.Hit{}, Message: MsgUnconfigured}
	}

	if e.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.timeout)
		defer cancel()
	}

	started := time.Now()
	hits, err := e.store.Search(ctx, q)
	e.metrics.SearchDuration.Observe(time.Since(started).Seconds())
	e.metrics.StoreOp("search", err)
	if err != nil {
		e.log.Warn("search failed, returning empty results", slog.Any("err", err))
		e.metrics.SearchDegraded.WithLabelValues("unavailable").Inc()
		return Result{Hits: []models.Hit{}, Message: MsgUnavailable}
	}

	if len(hits) > query.MaxResults {
		hits = hits[:query.MaxResults]
	}
	query.SortBySource(hits, models.Hit.Source)
	e.metrics.SearchHits.Observe(float64(len(hits)))

	return Result{Hits: hits}
}
