package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Common contains document store parameters shared by every service.
type Common struct {
	ElasticsearchAddr    string
	ElasticsearchIndex   string
	ElasticsearchArchive string
	// DemoMode runs without a document store; searches return no results.
	DemoMode     bool
	StoreTimeout time.Duration
}

// StoreEnabled reports whether a document store should be used.
func (c Common) StoreEnabled() bool {
	return !c.DemoMode && c.ElasticsearchAddr != ""
}

// API describes HTTP-layer configuration.
type API struct {
	Common
	BindAddr         string
	SearchTimeout    time.Duration
	RateLimit        float64
	RateBurst        int
	AutocompleteSize int
}

// Worker holds configuration for the Kafka -> Elasticsearch ingest worker.
type Worker struct {
	Common
	KafkaBrokers   []string
	KafkaTopic     string
	KafkaConsumer  string
	ExcerptLength  int
	DedupeCapacity int
	DedupeTTL      time.Duration
	BatchSize      int
	CommitInterval time.Duration
	// MetricsAddr serves /metrics when set.
	MetricsAddr string
}

// Retention configures the cleanup loop.
type Retention struct {
	Common
	Interval  time.Duration
	MaxAge    time.Duration
	BatchSize int
}

func loadCommon() (Common, error) {
	c := Common{
		ElasticsearchAddr:    getEnv("ELASTICSEARCH_ADDR", "http://elasticsearch:9200"),
		ElasticsearchIndex:   getEnv("ELASTICSEARCH_INDEX", "unverified_posts"),
		ElasticsearchArchive: getEnv("ELASTICSEARCH_ARCHIVE_INDEX", "archived_posts"),
		DemoMode:             getBool("DEMO_MODE", false),
		StoreTimeout:         getDuration("STORE_TIMEOUT", "5s"),
	}
	if c.StoreTimeout <= 0 {
		return c, fmt.Errorf("STORE_TIMEOUT must be positive")
	}
	return c, nil
}

// LoadAPI builds an API config from environment variables.
func LoadAPI() (*API, error) {
	common, err := loadCommon()
	if err != nil {
		return nil, err
	}

	c := &API{
		Common:           common,
		BindAddr:         getEnv("API_BIND_ADDR", "0.0.0.0:8080"),
		SearchTimeout:    getDuration("SEARCH_TIMEOUT", "10s"),
		RateLimit:        getFloat("API_RATE_LIMIT", 20),
		RateBurst:        getInt("API_RATE_BURST", 40),
		AutocompleteSize: getInt("AUTOCOMPLETE_SIZE", 25),
	}

	if c.SearchTimeout <= 0 {
		return nil, fmt.Errorf("SEARCH_TIMEOUT must be positive")
	}
	if c.RateLimit <= 0 {
		return nil, fmt.Errorf("API_RATE_LIMIT must be positive")
	}
	if c.RateBurst <= 0 {
		return nil, fmt.Errorf("API_RATE_BURST must be positive")
	}
	if c.AutocompleteSize <= 0 {
		return nil, fmt.Errorf("AUTOCOMPLETE_SIZE must be positive")
	}

	return c, nil
}

// LoadWorker builds a Worker config from environment variables.
func LoadWorker() (*Worker, error) {
	common, err := loadCommon()
	if err != nil {
		return nil, err
	}

	c := &Worker{
		Common:         common,
		KafkaBrokers:   splitAndTrim(getEnv("KAFKA_BROKERS", "kafka:9092")),
		KafkaTopic:     getEnv("KAFKA_TOPIC", "posts_raw"),
		KafkaConsumer:  getEnv("KAFKA_CONSUMER_GROUP", "posts-worker"),
		ExcerptLength:  getInt("WORKER_EXCERPT_LENGTH", 280),
		DedupeCapacity: getInt("WORKER_DEDUPE_CAPACITY", 20000),
		DedupeTTL:      getDuration("WORKER_DEDUPE_TTL", "24h"),
		BatchSize:      getInt("WORKER_BATCH_SIZE", 10),
		CommitInterval: getDuration("WORKER_COMMIT_INTERVAL", "2s"),
		MetricsAddr:    getEnv("WORKER_METRICS_ADDR", ""),
	}

	if !c.StoreEnabled() {
		return nil, fmt.Errorf("worker requires ELASTICSEARCH_ADDR and DEMO_MODE=false")
	}
	if len(c.KafkaBrokers) == 0 {
		return nil, fmt.Errorf("KAFKA_BROKERS must contain at least one broker")
	}
	if c.BatchSize <= 0 {
		return nil, fmt.Errorf("WORKER_BATCH_SIZE must be positive")
	}
	if c.DedupeCapacity <= 0 {
		return nil, fmt.Errorf("WORKER_DEDUPE_CAPACITY must be positive")
	}
	if c.ExcerptLength <= 0 {
		return nil, fmt.Errorf("WORKER_EXCERPT_LENGTH must be positive")
	}

	return c, nil
}

// LoadRetention builds a Retention config from environment variables.
func LoadRetention() (*Retention, error) {
	common, err := loadCommon()
	if err != nil {
		return nil, err
	}

	c := &Retention{
		Common:    common,
		Interval:  getDuration("RETENTION_CRON", "24h"),
		MaxAge:    getDuration("RETENTION_MAX_AGE", "720h"),
		BatchSize: getInt("RETENTION_BATCH_SIZE", 500),
	}

	if !c.StoreEnabled() {
		return nil, fmt.Errorf("retention requires ELASTICSEARCH_ADDR and DEMO_MODE=false")
	}
	if c.MaxAge <= 0 {
		return nil, fmt.Errorf("RETENTION_MAX_AGE must be positive")
	}
	if c.Interval <= 0 {
		return nil, fmt.Errorf("RETENTION_CRON must be positive")
	}
	if c.BatchSize <= 0 {
		return nil, fmt.Errorf("RETENTION_BATCH_SIZE must be positive")
	}

	return c, nil
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

func getInt(key string, fallback int) int {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			return parsed
		}
	}
	return fallback
}

func getFloat(key string, fallback float64) float64 {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil {
			return parsed
		}
	}
	return fallback
}

func getBool(key string, fallback bool) bool {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		if parsed, err := strconv.ParseBool(strings.TrimSpace(v)); err == nil {
			return parsed
		}
	}
	return fallback
}

func getDuration(key, fallback string) time.Duration {
	if d, err := time.ParseDuration(getEnv(key, fallback)); err == nil {
		return d
	}
	d, err := time.ParseDuration(fallback)
	if err != nil {
		panic(fmt.Sprintf("invalid fallback duration %q: %v", fallback, err))
	}
	return d
}

func splitAndTrim(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
