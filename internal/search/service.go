// Package search runs the full query pipeline: entity extraction, query
// compilation and execution against the document store.
package search

import (
	"context"
	"log/slog"

	"github.com/DeafMist/disaster-radar/internal/extract"
	"github.com/DeafMist/disaster-radar/internal/logger"
	"github.com/DeafMist/disaster-radar/internal/models"
	"github.com/DeafMist/disaster-radar/internal/observability"
	"github.com/DeafMist/disaster-radar/internal/query"
)

// Request is one search. With NLP set the Query text is interpreted;
// otherwise the explicit fields are used as given.
type Request struct {
	NLP    bool
	Query  string
	Manual extract.ManualFields
}

// Response mirrors the search endpoint's JSON body.
type Response struct {
	Parameters extract.Parameters `json:"parameters"`
	Results    []models.Hit       `json:"results"`
	Message    string             `json:"message,omitempty"`
}

// Service is safe for concurrent use; it holds no per-request state.
type Service struct {
	extractor *extract.Extractor
	executor  *Executor
	log       *slog.Logger
	metrics   *observability.Metrics
}

// NewService wires the pipeline.
func NewService(extractor *extract.Extractor, executor *Executor, log *slog.Logger, metrics *observability.Metrics) *Service {
	if log == nil {
		log = logger.Discard()
	}
	if metrics == nil {
		metrics = observability.NewMetrics(nil)
	}
	return &Service{extractor: extractor, executor: executor, log: log, metrics: metrics}
}

// Interpret extracts entities for req without touching the store.
func (s *Service) Interpret(req Request) extract.Entities {
	if req.NLP {
		s.metrics.SearchRequests.WithLabelValues("nlp").Inc()
		e := s.extractor.Extract(req.Query)
		s.countFields(e)
		return e
	}

	s.metrics.SearchRequests.WithLabelValues("manual").Inc()
	fields := req.Manual
	if fields.Query == "" {
		fields.Query = req.Query
	}
	return s.extractor.Manual(fields)
}

// Search interprets, compiles and executes req.
func (s *Service) Search(ctx context.Context, req Request) Response {
	entities := s.Interpret(req)
	compiled := query.Compile(entities)

	s.log.Debug("compiled search",
		slog.Bool("nlp", req.NLP),
		slog.Int("must", len(compiled.Must)),
		slog.Int("filter", len(compiled.Filter)),
	)

	result := s.executor.Execute(ctx, compiled)
	return Response{
		Parameters: entities.Parameters(),
		Results:    result.Hits,
		Message:    result.Message,
	}
}

func (s *Service) countFields(e extract.Entities) {
	fields := map[string]bool{
		"disaster_type": e.DisasterType != "",
		"location":      e.Location != "",
		"date":          e.Date != nil,
		"priority":      e.Priority != "",
	}
	for field, set := range fields {
		if set {
			s.metrics.EntityExtracted.WithLabelValues(field).Inc()
		}
	}
}
