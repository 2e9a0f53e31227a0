// Package httpapi exposes the post search routes over HTTP.
package httpapi

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/jonboulle/clockwork"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/time/rate"

	"github.com/DeafMist/disaster-radar/internal/elasticsearch"
	"github.com/DeafMist/disaster-radar/internal/logger"
	"github.com/DeafMist/disaster-radar/internal/models"
	"github.com/DeafMist/disaster-radar/internal/search"
)

// Searcher answers search requests. *search.Service satisfies it.
type Searcher interface {
	Search(ctx context.Context, req search.Request) search.Response
}

// Posts is the document store behind the maintenance routes.
// *elasticsearch.Client satisfies it.
type Posts interface {
	Health(ctx context.Context) error
	ArchivePost(ctx context.Context, post models.Post) error
	DeletePost(ctx context.Context, id string) (string, error)
	Count(ctx context.Context) (int64, error)
	CountByPostID(ctx context.Context, postID string) (int64, error)
	Autocomplete(ctx context.Context, prefix string, size int) ([]elasticsearch.Suggestion, error)
}

// Options configures the router. A nil Posts runs the maintenance routes
// in demo mode: they answer with an error payload.
type Options struct {
	Searcher         Searcher
	Posts            Posts
	Log              *slog.Logger
	Gatherer         prometheus.Gatherer
	Clock            clockwork.Clock
	RateLimit        rate.Limit
	RateBurst        int
	AutocompleteSize int
	StoreTimeout     time.Duration
}

type server struct {
	searcher         Searcher
	posts            Posts
	log              *slog.Logger
	clock            clockwork.Clock
	autocompleteSize int
	storeTimeout     time.Duration
}

type errorResponse struct {
	Error string `json:"error"`
}

// NewRouter builds the chi router with every route mounted.
func NewRouter(opts Options) http.Handler {
	srv := &server{
		searcher:         opts.Searcher,
		posts:            opts.Posts,
		log:              opts.Log,
		clock:            opts.Clock,
		autocompleteSize: opts.AutocompleteSize,
		storeTimeout:     opts.StoreTimeout,
	}
	if srv.log == nil {
		srv.log = logger.Discard()
	}
	if srv.clock == nil {
		srv.clock = clockwork.NewRealClock()
	}
	if srv.storeTimeout <= 0 {
		srv.storeTimeout = 5 * time.Second
	}
	gatherer := opts.Gatherer
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}
	limit, burst := opts.RateLimit, opts.RateBurst
	if limit <= 0 {
		limit = rate.Inf
	}
	if burst <= 0 {
		burst = 1
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)

	r.Get("/health", srv.handleHealth)
	r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))

	r.Route("/search", func(r chi.Router) {
		r.Get("/", srv.handleIndex)
		r.With(rateLimit(rate.NewLimiter(limit, burst))).Post("/elastic", srv.handleSearch)
		r.Get("/autocomplete", srv.handleAutocomplete)
		r.Post("/add-post", srv.handleAddPost)
		r.Post("/remove-post", srv.handleRemovePost)
		r.Get("/get-unverified-count", srv.handleUnverifiedCount)
		r.Post("/find-by-id", srv.handleFindByID)
	})

	return r
}

func rateLimit(limiter *rate.Limiter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !limiter.Allow() {
				writeJSON(w, http.StatusTooManyRequests, errorResponse{Error: "rate limit exceeded"})
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func (s *server) storeContext(r *http.Request) (context.Context, context.CancelFunc) {
	return context.WithTimeout(r.Context(), s.storeTimeout)
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
