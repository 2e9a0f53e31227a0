package elasticsearch

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"

	"github.com/DeafMist/disaster-radar/internal/models"
	"github.com/DeafMist/disaster-radar/internal/query"
)

// ErrNotFound is returned when a document id does not exist.
var ErrNotFound = errors.New("document not found")

// Client wraps go-elasticsearch with the posts operations this project needs.
type Client struct {
	es      *elasticsearch.Client
	index   string
	archive string
	log     *slog.Logger
}

// Suggestion is one autocomplete bucket.
type Suggestion struct {
	Text  string `json:"text"`
	Count int64  `json:"count"`
}

// New instantiates the Elasticsearch client. index holds the unverified posts
// that are searched; archive receives manually added posts.
func New(addr, index, archive string, logger *slog.Logger) (*Client, error) {
	cfg := elasticsearch.Config{
		Addresses: []string{addr},
	}

	es, err := elasticsearch.NewClient(cfg)
	if err != nil {
		return nil, fmt.Errorf("create elasticsearch client: %w", err)
	}

	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	return &Client{es: es, index: index, archive: archive, log: logger}, nil
}

// Ping checks if Elasticsearch is available.
func (c *Client) Ping(ctx context.Context) error {
	res, err := c.es.Ping(c.es.Ping.WithContext(ctx))
	if err != nil {
		return fmt.Errorf("ping elasticsearch: %w", err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return fmt.Errorf("elasticsearch ping failed: %s", res.Status())
	}

	return nil
}

// Health reports cluster health errors.
func (c *Client) Health(ctx context.Context) error {
	res, err := c.es.Cluster.Health(c.es.Cluster.Health.WithContext(ctx))
	if err != nil {
		return err
	}
	defer res.Body.Close()
	if res.StatusCode >= http.StatusBadRequest {
		return responseError("cluster health", res)
	}
	return nil
}

// Search runs a compiled query against the posts index and returns the hits
// in store order, each annotated with its document id.
func (c *Client) Search(ctx context.Context, q query.Compiled) ([]models.Hit, error) {
	payload, err := json.Marshal(q)
	if err != nil {
		return nil, fmt.Errorf("marshal search body: %w", err)
	}

	res, err := c.es.Search(
		c.es.Search.WithContext(ctx),
		c.es.Search.WithIndex(c.index),
		c.es.Search.WithBody(bytes.NewReader(payload)),
	)
	if err != nil {
		return nil, fmt.Errorf("search: %w", err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return nil, responseError("search", res)
	}

	var parsed struct {
		Hits struct {
			Hits []struct {
				ID     string         `json:"_id"`
				Source map[string]any `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("decode search response: %w", err)
	}

	hits := make([]models.Hit, 0, len(parsed.Hits.Hits))
	for _, h := range parsed.Hits.Hits {
		hits = append(hits, models.NewHit(h.ID, h.Source))
	}

	c.log.Debug("search completed", slog.Int("hits", len(hits)))
	return hits, nil
}

// IndexPost writes post into the posts index under its post id so replays
// overwrite instead of duplicating.
func (c *Client) IndexPost(ctx context.Context, post models.Post) error {
	return c.put(ctx, c.index, post.PostID, post)
}

// ArchivePost stores post in the archive index with a generated id.
func (c *Client) ArchivePost(ctx context.Context, post models.Post) error {
	return c.put(ctx, c.archive, "", post)
}

func (c *Client) put(ctx context.Context, index, id string, post models.Post) error {
	payload, err := json.Marshal(post)
	if err != nil {
		return fmt.Errorf("marshal post: %w", err)
	}

	req := esapi.IndexRequest{
		Index:      index,
		DocumentID: id,
		Body:       bytes.NewReader(payload),
		Refresh:    "false",
	}

	res, err := req.Do(ctx, c.es)
	if err != nil {
		return fmt.Errorf("index post: %w", err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return responseError("index post", res)
	}

	return nil
}

// DeletePost removes a document by its store id and returns the store's
// result ("deleted").
func (c *Client) DeletePost(ctx context.Context, id string) (string, error) {
	res, err := c.es.Delete(c.index, id, c.es.Delete.WithContext(ctx))
	if err != nil {
		return "", fmt.Errorf("delete post: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode == http.StatusNotFound {
		return "", fmt.Errorf("delete post %s: %w", id, ErrNotFound)
	}
	if res.IsError() {
		return "", responseError("delete post", res)
	}

	var parsed struct {
		Result string `json:"result"`
	}
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return "", fmt.Errorf("decode delete response: %w", err)
	}
	return parsed.Result, nil
}

// Count returns the number of documents in the posts index.
func (c *Client) Count(ctx context.Context) (int64, error) {
	return c.count(ctx, nil)
}

// CountByPostID counts posts whose post_id matches postID.
func (c *Client) CountByPostID(ctx context.Context, postID string) (int64, error) {
	return c.count(ctx, map[string]any{
		"query": map[string]any{
			"match": map[string]any{"post_id": postID},
		},
	})
}

func (c *Client) count(ctx context.Context, body map[string]any) (int64, error) {
	opts := []func(*esapi.CountRequest){
		c.es.Count.WithContext(ctx),
		c.es.Count.WithIndex(c.index),
	}
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return 0, fmt.Errorf("marshal count body: %w", err)
		}
		opts = append(opts, c.es.Count.WithBody(bytes.NewReader(payload)))
	}

	res, err := c.es.Count(opts...)
	if err != nil {
		return 0, fmt.Errorf("count: %w", err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return 0, responseError("count", res)
	}

	var parsed struct {
		Count int64 `json:"count"`
	}
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return 0, fmt.Errorf("decode count response: %w", err)
	}
	return parsed.Count, nil
}

// Autocomplete suggests full post bodies starting with prefix, most frequent first.
func (c *Client) Autocomplete(ctx context.Context, prefix string, size int) ([]Suggestion, error) {
	if size <= 0 {
		size = 25
	}

	body := map[string]any{
		"_source":   []string{},
		"size":      0,
		"min_score": 0.5,
		"query": map[string]any{
			"bool": map[string]any{
				"must": []map[string]any{
					{"match_phrase_prefix": map[string]any{
						"post_body": map[string]any{"query": prefix},
					}},
				},
			},
		},
		"aggs": map[string]any{
			"auto_complete": map[string]any{
				"terms": map[string]any{
					"field": "post_body.keyword",
					"order": map[string]any{"_count": "desc"},
					"size":  size,
				},
			},
		},
	}

	payload, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("marshal autocomplete body: %w", err)
	}

	res, err := c.es.Search(
		c.es.Search.WithContext(ctx),
		c.es.Search.WithIndex(c.index),
		c.es.Search.WithBody(bytes.NewReader(payload)),
	)
	if err != nil {
		return nil, fmt.Errorf("autocomplete: %w", err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return nil, responseError("autocomplete", res)
	}

	var parsed struct {
		Aggregations struct {
			AutoComplete struct {
				Buckets []struct {
					Key      string `json:"key"`
					DocCount int64  `json:"doc_count"`
				} `json:"buckets"`
			} `json:"auto_complete"`
		} `json:"aggregations"`
	}
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("decode autocomplete response: %w", err)
	}

	out := make([]Suggestion, 0, len(parsed.Aggregations.AutoComplete.Buckets))
	for _, b := range parsed.Aggregations.AutoComplete.Buckets {
		out = append(out, Suggestion{Text: b.Key, Count: b.DocCount})
	}
	return out, nil
}

// DeleteOlderThan removes posts dated strictly before cutoff using batched delete-by-query.
// Each call deletes at most batchSize documents; it loops until a batch comes back short.
func (c *Client) DeleteOlderThan(ctx context.Context, cutoff time.Time, batchSize int) (int64, error) {
	if batchSize <= 0 {
		batchSize = 1000
	}

	body := map[string]any{
		"query": map[string]any{
			"range": map[string]any{
				query.FieldDate: map[string]any{
					"lt":     cutoff.UTC().Format(time.RFC3339),
					"format": "strict_date_optional_time",
				},
			},
		},
	}
	payload, err := json.Marshal(body)
	if err != nil {
		return 0, fmt.Errorf("marshal delete body: %w", err)
	}

	totalDeleted := int64(0)
	for {
		deleted, err := c.deleteBatch(ctx, payload, batchSize)
		if err != nil {
			return totalDeleted, err
		}
		totalDeleted += deleted

		if deleted < int64(batchSize) {
			break
		}
	}

	return totalDeleted, nil
}

func (c *Client) deleteBatch(ctx context.Context, payload []byte, batchSize int) (int64, error) {
	res, err := c.es.DeleteByQuery(
		[]string{c.index},
		bytes.NewReader(payload),
		c.es.DeleteByQuery.WithContext(ctx),
		c.es.DeleteByQuery.WithWaitForCompletion(true),
		c.es.DeleteByQuery.WithConflicts("proceed"),
		c.es.DeleteByQuery.WithMaxDocs(batchSize),
	)
	if err != nil {
		return 0, fmt.Errorf("delete by query: %w", err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return 0, responseError("delete by query", res)
	}

	var parsed struct {
		Deleted int64 `json:"deleted"`
	}
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return 0, fmt.Errorf("decode delete response: %w", err)
	}
	return parsed.Deleted, nil
}

func responseError(op string, res *esapi.Response) error {
	data, _ := io.ReadAll(res.Body)
	return fmt.Errorf("%s failed: %s: %s", op, res.Status(), strings.TrimSpace(string(data)))
}
