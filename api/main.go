package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/time/rate"

	"github.com/DeafMist/disaster-radar/internal/config"
	"github.com/DeafMist/disaster-radar/internal/elasticsearch"
	"github.com/DeafMist/disaster-radar/internal/extract"
	"github.com/DeafMist/disaster-radar/internal/httpapi"
	"github.com/DeafMist/disaster-radar/internal/logger"
	"github.com/DeafMist/disaster-radar/internal/matcher"
	"github.com/DeafMist/disaster-radar/internal/nlp"
	"github.com/DeafMist/disaster-radar/internal/observability"
	"github.com/DeafMist/disaster-radar/internal/search"
	"github.com/DeafMist/disaster-radar/internal/taxonomy"
)

func main() {
	log := logger.New("api")
	cfg, err := config.LoadAPI()
	if err != nil {
		log.Error("load config", slog.Any("err", err))
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
	defer stop()

	var (
		store search.Store
		posts httpapi.Posts
	)
	if cfg.StoreEnabled() {
		esClient, err := elasticsearch.New(cfg.ElasticsearchAddr, cfg.ElasticsearchIndex, cfg.ElasticsearchArchive, log)
		if err != nil {
			log.Error("init elasticsearch", slog.Any("err", err))
			os.Exit(1)
		}

		pingCtx, cancel := context.WithTimeout(ctx, cfg.StoreTimeout)
		if err := esClient.Ping(pingCtx); err != nil {
			log.Warn("elasticsearch not reachable at startup, searches will return no results until it is",
				slog.Any("err", err),
				slog.String("addr", cfg.ElasticsearchAddr),
			)
		}
		cancel()

		store, posts = esClient, esClient
	} else {
		log.Warn("demo mode: elasticsearch disabled, searches return empty results")
	}

	clock := clockwork.NewRealClock()
	metrics := observability.NewMetrics(prometheus.DefaultRegisterer)
	extractor := extract.New(nlp.NewPipeline(nil), matcher.New(taxonomy.Default().Keywords()), clock)
	executor := search.NewExecutor(store, cfg.SearchTimeout, log, metrics)
	svc := search.NewService(extractor, executor, log, metrics)

	handler := httpapi.NewRouter(httpapi.Options{
		Searcher:         svc,
		Posts:            posts,
		Log:              log,
		Gatherer:         prometheus.DefaultGatherer,
		Clock:            clock,
		RateLimit:        rate.Limit(cfg.RateLimit),
		RateBurst:        cfg.RateBurst,
		AutocompleteSize: cfg.AutocompleteSize,
		StoreTimeout:     cfg.StoreTimeout,
	})

	httpServer := &http.Server{
		Addr:              cfg.BindAddr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      cfg.SearchTimeout + 5*time.Second,
	}

	go func() {
		log.Info("api server starting", slog.String("addr", cfg.BindAddr), slog.Bool("store", executor.Enabled()))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server stopped", slog.Any("err", err))
			os.Exit(1)
		}
	}()

	<-ctx.Done()
	log.Info("shutdown signal received")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Error("server shutdown", slog.Any("err", err))
	}
}
