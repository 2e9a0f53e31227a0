package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/segmentio/kafka-go"

	"github.com/DeafMist/disaster-radar/internal/config"
	"github.com/DeafMist/disaster-radar/internal/dedupe"
	"github.com/DeafMist/disaster-radar/internal/elasticsearch"
	"github.com/DeafMist/disaster-radar/internal/logger"
	"github.com/DeafMist/disaster-radar/internal/matcher"
	"github.com/DeafMist/disaster-radar/internal/models"
	"github.com/DeafMist/disaster-radar/internal/nlp"
	"github.com/DeafMist/disaster-radar/internal/observability"
	"github.com/DeafMist/disaster-radar/internal/processing"
	"github.com/DeafMist/disaster-radar/internal/taxonomy"
)

type postIndexer interface {
	IndexPost(ctx context.Context, post models.Post) error
}

type ingester struct {
	log        *slog.Logger
	store      postIndexer
	cache      *dedupe.Cache
	normalizer *processing.Normalizer
	metrics    *observability.Metrics
	timeout    time.Duration
}

func main() {
	log := logger.New("worker")
	cfg, err := config.LoadWorker()
	if err != nil {
		log.Error("load config", slog.Any("err", err))
		os.Exit(1)
	}

	esClient, err := elasticsearch.New(cfg.ElasticsearchAddr, cfg.ElasticsearchIndex, cfg.ElasticsearchArchive, log)
	if err != nil {
		log.Error("init elasticsearch", slog.Any("err", err))
		os.Exit(1)
	}

	metrics := observability.NewMetrics(prometheus.DefaultRegisterer)
	ing := &ingester{
		log:   log,
		store: esClient,
		cache: dedupe.NewCache(cfg.DedupeCapacity, cfg.DedupeTTL, nil),
		normalizer: processing.NewNormalizer(
			matcher.New(taxonomy.Default().Keywords()),
			nlp.NewPipeline(nil),
			cfg.ExcerptLength,
			nil,
		),
		metrics: metrics,
		timeout: cfg.StoreTimeout,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
	defer stop()

	if cfg.MetricsAddr != "" {
		go serveMetrics(log, cfg.MetricsAddr)
	}

	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers:        cfg.KafkaBrokers,
		Topic:          cfg.KafkaTopic,
		GroupID:        cfg.KafkaConsumer,
		QueueCapacity:  cfg.BatchSize,
		MinBytes:       1e3,
		MaxBytes:       10e6,
		CommitInterval: 0, // manual commit only
	})
	defer reader.Close()

	dlqTopic := cfg.KafkaTopic + "_dlq"
	dlqWriter := &kafka.Writer{
		Addr:        kafka.TCP(cfg.KafkaBrokers...),
		Topic:       dlqTopic,
		MaxAttempts: 3,
	}
	defer dlqWriter.Close()

	log.Info("worker started",
		slog.String("topic", cfg.KafkaTopic),
		slog.String("group", cfg.KafkaConsumer),
		slog.String("dlq_topic", dlqTopic),
	)

	for {
		msg, err := reader.FetchMessage(ctx)
		if err != nil {
			if errors.Is(err, context.Canceled) {
				log.Info("context canceled, stopping")
				return
			}
			log.Error("fetch message", slog.Any("err", err))
			continue
		}

		if err := ing.processMessage(ctx, msg); err != nil {
			ing.metrics.IngestErrors.Inc()
			log.Warn("process message failed, sending to DLQ",
				slog.Any("err", err),
				slog.Int("partition", msg.Partition),
				slog.Int64("offset", msg.Offset),
			)

			if !sendToDLQ(ctx, log, dlqWriter, msg, err) {
				// leave uncommitted so the message is redelivered after restart
				log.Error("DLQ write exhausted retries",
					slog.Int("partition", msg.Partition),
					slog.Int64("offset", msg.Offset),
				)
				if ctx.Err() != nil {
					return
				}
				continue
			}
		}

		if err := reader.CommitMessages(ctx, msg); err != nil {
			log.Error("commit message", slog.Any("err", err))
		}
	}
}

func (i *ingester) processMessage(ctx context.Context, msg kafka.Message) error {
	var raw processing.RawPost
	if err := json.Unmarshal(msg.Value, &raw); err != nil {
		return fmt.Errorf("decode post: %w", err)
	}

	post, err := i.normalizer.Normalize(raw)
	if err != nil {
		return err
	}

	if i.cache.IsSeen(post.PostID) {
		i.metrics.PostsDuplicate.Inc()
		i.log.Debug("duplicate post", slog.String("post_id", post.PostID))
		return nil
	}

	storeCtx := ctx
	if i.timeout > 0 {
		var cancel context.CancelFunc
		storeCtx, cancel = context.WithTimeout(ctx, i.timeout)
		defer cancel()
	}

	err = i.store.IndexPost(storeCtx, post)
	i.metrics.StoreOp("index", err)
	if err != nil {
		return err
	}

	i.cache.MarkSeen(post.PostID)
	i.metrics.PostsIngested.Inc()
	i.log.Info("indexed post",
		slog.String("post_id", post.PostID),
		slog.String("source", post.Source),
		slog.String("disaster_type", post.DisasterType),
		slog.String("location", post.Location),
	)
	return nil
}

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
}

func sendToDLQ(ctx context.Context, log *slog.Logger, w messageWriter, msg kafka.Message, cause error) bool {
	dlqMsg := kafka.Message{
		Key:   msg.Key,
		Value: msg.Value,
		Headers: append(msg.Headers,
			kafka.Header{Key: "original_partition", Value: []byte(fmt.Sprintf("%d", msg.Partition))},
			kafka.Header{Key: "original_offset", Value: []byte(fmt.Sprintf("%d", msg.Offset))},
			kafka.Header{Key: "error", Value: []byte(cause.Error())},
			kafka.Header{Key: "timestamp", Value: []byte(time.Now().UTC().Format(time.RFC3339))},
		),
	}

	for attempt := range 5 {
		dlqErr := w.WriteMessages(ctx, dlqMsg)
		if dlqErr == nil {
			log.Info("message sent to DLQ",
				slog.Int("partition", msg.Partition),
				slog.Int64("offset", msg.Offset),
				slog.Int("attempt", attempt+1),
			)
			return true
		}

		backoff := time.Duration(1<<uint(attempt)) * time.Second
		log.Warn("DLQ write failed, retrying",
			slog.Any("err", dlqErr),
			slog.Int("attempt", attempt+1),
			slog.Duration("backoff", backoff),
		)
		select {
		case <-time.After(backoff):
		case <-ctx.Done():
			return false
		}
	}
	return false
}

func serveMetrics(log *slog.Logger, addr string) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}
	log.Info("metrics server starting", slog.String("addr", addr))
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Error("metrics server stopped", slog.Any("err", err))
	}
}
