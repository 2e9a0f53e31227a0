package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/DeafMist/disaster-radar/internal/config"
	"github.com/DeafMist/disaster-radar/internal/elasticsearch"
	"github.com/DeafMist/disaster-radar/internal/logger"
	"github.com/DeafMist/disaster-radar/internal/observability"
)

type pruner interface {
	DeleteOlderThan(ctx context.Context, cutoff time.Time, batchSize int) (int64, error)
}

type pinger interface {
	Ping(ctx context.Context) error
}

func main() {
	log := logger.New("retention")
	cfg, err := config.LoadRetention()
	if err != nil {
		log.Error("load config", slog.Any("err", err))
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
	defer stop()

	clock := clockwork.NewRealClock()

	esClient, err := elasticsearch.New(cfg.ElasticsearchAddr, cfg.ElasticsearchIndex, cfg.ElasticsearchArchive, log)
	if err != nil {
		log.Error("create elasticsearch client", slog.Any("err", err))
		os.Exit(1)
	}
	if err := waitForStore(ctx, log, clock, esClient, cfg.StoreTimeout); err != nil {
		log.Error("failed to connect to elasticsearch after retries", slog.Any("err", err))
		os.Exit(1)
	}
	log.Info("connected to elasticsearch")

	metrics := observability.NewMetrics(prometheus.DefaultRegisterer)

	ticker := clock.NewTicker(cfg.Interval)
	defer ticker.Stop()

	log.Info("retention job running",
		slog.Duration("interval", cfg.Interval),
		slog.Duration("max_age", cfg.MaxAge),
	)

	runOnce(ctx, log, esClient, clock, metrics, cfg)

	for {
		select {
		case <-ctx.Done():
			log.Info("shutdown signal received")
			return
		case <-ticker.Chan():
			runOnce(ctx, log, esClient, clock, metrics, cfg)
		}
	}
}

// waitForStore pings store with exponential backoff until it answers,
// the retries run out or ctx is cancelled.
func waitForStore(ctx context.Context, log *slog.Logger, clock clockwork.Clock, store pinger, timeout time.Duration) error {
	const maxRetries = 10
	retryDelay := 2 * time.Second
	for i := 0; ; i++ {
		pingCtx, cancel := context.WithTimeout(ctx, timeout)
		err := store.Ping(pingCtx)
		cancel()
		if err == nil {
			return nil
		}
		if i+1 >= maxRetries {
			return err
		}

		log.Warn("elasticsearch ping failed, retrying",
			slog.Any("err", err),
			slog.Int("attempt", i+1),
			slog.Int("max_retries", maxRetries),
			slog.Duration("retry_in", retryDelay),
		)

		select {
		case <-clock.After(retryDelay):
		case <-ctx.Done():
			return ctx.Err()
		}
		retryDelay = min(retryDelay*2, 30*time.Second)
	}
}

func runOnce(ctx context.Context, log *slog.Logger, store pruner, clock clockwork.Clock, metrics *observability.Metrics, cfg *config.Retention) {
	subCtx, cancel := context.WithTimeout(ctx, 2*time.Minute)
	defer cancel()

	cutoff := clock.Now().UTC().Add(-cfg.MaxAge)
	deleted, err := store.DeleteOlderThan(subCtx, cutoff, cfg.BatchSize)
	metrics.StoreOp("delete_older", err)
	if err != nil {
		log.Warn("retention run failed (will retry on next interval)", slog.Any("err", err))
		return
	}

	metrics.RetentionDelete.Add(float64(deleted))
	if deleted > 0 {
		log.Info("retention run completed", slog.Int64("deleted", deleted), slog.Time("cutoff", cutoff))
	} else {
		log.Debug("retention run completed, no old posts found")
	}
}
