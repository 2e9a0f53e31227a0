package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/DeafMist/disaster-radar/internal/config"
)

func clearCommon(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"ELASTICSEARCH_ADDR", "ELASTICSEARCH_INDEX", "ELASTICSEARCH_ARCHIVE_INDEX",
		"DEMO_MODE", "STORE_TIMEOUT",
	} {
		t.Setenv(key, "")
	}
}

func TestLoadAPIDefaults(t *testing.T) {
	clearCommon(t)
	for _, key := range []string{"API_BIND_ADDR", "SEARCH_TIMEOUT", "API_RATE_LIMIT", "API_RATE_BURST", "AUTOCOMPLETE_SIZE"} {
		t.Setenv(key, "")
	}

	cfg, err := config.LoadAPI()
	require.NoError(t, err)

	require.Equal(t, "http://elasticsearch:9200", cfg.ElasticsearchAddr)
	require.Equal(t, "unverified_posts", cfg.ElasticsearchIndex)
	require.Equal(t, "archived_posts", cfg.ElasticsearchArchive)
	require.False(t, cfg.DemoMode)
	require.True(t, cfg.StoreEnabled())
	require.Equal(t, 5*time.Second, cfg.StoreTimeout)
	require.Equal(t, "0.0.0.0:8080", cfg.BindAddr)
	require.Equal(t, 10*time.Second, cfg.SearchTimeout)
	require.Equal(t, 20.0, cfg.RateLimit)
	require.Equal(t, 40, cfg.RateBurst)
	require.Equal(t, 25, cfg.AutocompleteSize)
}

func TestLoadAPIOverrides(t *testing.T) {
	clearCommon(t)
	t.Setenv("ELASTICSEARCH_ADDR", "http://api-es:9200")
	t.Setenv("ELASTICSEARCH_INDEX", "posts")
	t.Setenv("DEMO_MODE", "true")
	t.Setenv("API_BIND_ADDR", ":9090")
	t.Setenv("SEARCH_TIMEOUT", "3s")
	t.Setenv("API_RATE_LIMIT", "2.5")
	t.Setenv("API_RATE_BURST", "5")

	cfg, err := config.LoadAPI()
	require.NoError(t, err)
	require.Equal(t, "http://api-es:9200", cfg.ElasticsearchAddr)
	require.Equal(t, "posts", cfg.ElasticsearchIndex)
	require.True(t, cfg.DemoMode)
	require.False(t, cfg.StoreEnabled())
	require.Equal(t, ":9090", cfg.BindAddr)
	require.Equal(t, 3*time.Second, cfg.SearchTimeout)
	require.Equal(t, 2.5, cfg.RateLimit)
	require.Equal(t, 5, cfg.RateBurst)
}

func TestLoadAPIRejectsBadValues(t *testing.T) {
	clearCommon(t)
	t.Setenv("API_RATE_BURST", "0")

	_, err := config.LoadAPI()
	require.Error(t, err)
}

func TestLoadWorkerDefaults(t *testing.T) {
	clearCommon(t)
	t.Setenv("KAFKA_BROKERS", "")
	t.Setenv("KAFKA_TOPIC", "")
	t.Setenv("KAFKA_CONSUMER_GROUP", "")
	t.Setenv("WORKER_METRICS_ADDR", "")

	cfg, err := config.LoadWorker()
	require.NoError(t, err)

	require.Equal(t, []string{"kafka:9092"}, cfg.KafkaBrokers)
	require.Equal(t, "posts_raw", cfg.KafkaTopic)
	require.Equal(t, "posts-worker", cfg.KafkaConsumer)
	require.Equal(t, 280, cfg.ExcerptLength)
	require.Equal(t, 24*time.Hour, cfg.DedupeTTL)
	require.Empty(t, cfg.MetricsAddr)
}

func TestLoadWorkerOverrides(t *testing.T) {
	clearCommon(t)
	t.Setenv("KAFKA_BROKERS", "broker-a:29092, broker-b:29093")
	t.Setenv("KAFKA_TOPIC", "custom_topic")
	t.Setenv("KAFKA_CONSUMER_GROUP", "custom-group")
	t.Setenv("WORKER_EXCERPT_LENGTH", "120")
	t.Setenv("WORKER_DEDUPE_CAPACITY", "5")
	t.Setenv("WORKER_DEDUPE_TTL", "48h")
	t.Setenv("WORKER_BATCH_SIZE", "3")
	t.Setenv("WORKER_COMMIT_INTERVAL", "5s")

	cfg, err := config.LoadWorker()
	require.NoError(t, err)

	require.Equal(t, []string{"broker-a:29092", "broker-b:29093"}, cfg.KafkaBrokers)
	require.Equal(t, "custom_topic", cfg.KafkaTopic)
	require.Equal(t, "custom-group", cfg.KafkaConsumer)
	require.Equal(t, 120, cfg.ExcerptLength)
	require.Equal(t, 5, cfg.DedupeCapacity)
	require.Equal(t, 48*time.Hour, cfg.DedupeTTL)
	require.Equal(t, 3, cfg.BatchSize)
	require.Equal(t, 5*time.Second, cfg.CommitInterval)
}

func TestLoadWorkerRequiresStore(t *testing.T) {
	clearCommon(t)
	t.Setenv("DEMO_MODE", "true")

	_, err := config.LoadWorker()
	require.Error(t, err)
}

func TestLoadRetention(t *testing.T) {
	clearCommon(t)
	t.Setenv("ELASTICSEARCH_ADDR", "http://ret-es:9200")
	t.Setenv("ELASTICSEARCH_INDEX", "ret-index")
	t.Setenv("RETENTION_CRON", "12h")
	t.Setenv("RETENTION_MAX_AGE", "36h")
	t.Setenv("RETENTION_BATCH_SIZE", "123")

	cfg, err := config.LoadRetention()
	require.NoError(t, err)

	require.Equal(t, 12*time.Hour, cfg.Interval)
	require.Equal(t, 36*time.Hour, cfg.MaxAge)
	require.Equal(t, 123, cfg.BatchSize)
	require.Equal(t, "http://ret-es:9200", cfg.ElasticsearchAddr)
	require.Equal(t, "ret-index", cfg.ElasticsearchIndex)
}

func TestInvalidDurationFallsBack(t *testing.T) {
	clearCommon(t)
	t.Setenv("STORE_TIMEOUT", "soon")

	cfg, err := config.LoadAPI()
	require.NoError(t, err)
	require.Equal(t, 5*time.Second, cfg.StoreTimeout)
}
