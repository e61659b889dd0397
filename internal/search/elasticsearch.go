package search

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"time"

	"prism/internal/models"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"
)

type Config struct {
	Enabled    bool
	URL        string
	Username   string
	Password   string
	Index      string
	MaxRetries int
}

// catalogDoc is the indexed representation of an event or a venue. Only
// the fields the substring search touches are stored; SQL remains the
// source of truth and hits are re-resolved against it.
type catalogDoc struct {
	Kind      string `json:"kind"`
	ObjectID  string `json:"object_id"`
	Name      string `json:"name"`
	VenueName string `json:"venue_name,omitempty"`
	Location  string `json:"location,omitempty"`
	Date      string `json:"date,omitempty"`
}

// Result carries the object IDs matched by a query, partitioned by kind.
type Result struct {
	EventIDs []string
	VenueIDs []string
}

type ElasticsearchClient struct {
	client *elasticsearch.Client
	index  string
}

func NewElasticsearchClient(cfg Config) (*ElasticsearchClient, error) {
	es, err := elasticsearch.NewClient(elasticsearch.Config{
		Addresses:     []string{cfg.URL},
		Username:      cfg.Username,
		Password:      cfg.Password,
		RetryOnStatus: []int{502, 503, 504, 429},
		MaxRetries:    cfg.MaxRetries,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Elasticsearch client: %w", err)
	}

	client := &ElasticsearchClient{client: es, index: cfg.Index}

	if err := client.ensureIndex(context.Background()); err != nil {
		return nil, fmt.Errorf("failed to ensure index exists: %w", err)
	}

	return client, nil
}

func (c *ElasticsearchClient) ensureIndex(ctx context.Context) error {
	req := esapi.IndicesExistsRequest{Index: []string{c.index}}

	res, err := req.Do(ctx, c.client)
	if err != nil {
		return fmt.Errorf("failed to check index existence: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode == 200 {
		slog.Info("Elasticsearch index already exists", "index", c.index)
		return nil
	}

	mapping := map[string]interface{}{
		"settings": map[string]interface{}{
			"number_of_shards":   1,
			"number_of_replicas": 0,
		},
		"mappings": map[string]interface{}{
			"properties": map[string]interface{}{
				"kind":       map[string]interface{}{"type": "keyword"},
				"object_id":  map[string]interface{}{"type": "keyword"},
				"name":       map[string]interface{}{"type": "text"},
				"venue_name": map[string]interface{}{"type": "text"},
				"location":   map[string]interface{}{"type": "text"},
				"date":       map[string]interface{}{"type": "date"},
			},
		},
	}

	body, err := json.Marshal(mapping)
	if err != nil {
		return fmt.Errorf("failed to marshal index mapping: %w", err)
	}

	createReq := esapi.IndicesCreateRequest{
		Index: c.index,
		Body:  bytes.NewReader(body),
	}

	createRes, err := createReq.Do(ctx, c.client)
	if err != nil {
		return fmt.Errorf("failed to create index: %w", err)
	}
	defer createRes.Body.Close()

	if createRes.IsError() {
		return fmt.Errorf("index creation returned status %s", createRes.Status())
	}

	slog.Info("Created Elasticsearch index", "index", c.index)
	return nil
}

// IndexEvent writes or overwrites the event's catalog document.
func (c *ElasticsearchClient) IndexEvent(ctx context.Context, event *models.Event) error {
	doc := catalogDoc{
		Kind:     models.ContentTypeEvent,
		ObjectID: event.ID,
		Name:     event.Name,
		Date:     event.Date.Format("2006-01-02"),
	}
	if event.Venue != nil {
		doc.VenueName = event.Venue.Name
	}
	return c.indexDoc(ctx, models.ContentTypeEvent+":"+event.ID, doc)
}

// IndexVenue writes or overwrites the venue's catalog document.
func (c *ElasticsearchClient) IndexVenue(ctx context.Context, venue *models.Venue) error {
	doc := catalogDoc{
		Kind:     models.ContentTypeVenue,
		ObjectID: venue.ID,
		Name:     venue.Name,
		Location: venue.Location,
	}
	return c.indexDoc(ctx, models.ContentTypeVenue+":"+venue.ID, doc)
}

// Delete removes a catalog document. Missing documents are not an error.
func (c *ElasticsearchClient) Delete(ctx context.Context, kind, objectID string) error {
	req := esapi.DeleteRequest{
		Index:      c.index,
		DocumentID: kind + ":" + objectID,
		Refresh:    "true",
	}

	res, err := req.Do(ctx, c.client)
	if err != nil {
		return fmt.Errorf("failed to delete document: %w", err)
	}
	defer res.Body.Close()

	if res.IsError() && res.StatusCode != 404 {
		return fmt.Errorf("delete returned status %s", res.Status())
	}
	return nil
}

// Search runs a case-insensitive substring match over both kinds: event
// hits match the event name or its venue name, venue hits match the
// venue name or location.
func (c *ElasticsearchClient) Search(ctx context.Context, query string) (*Result, error) {
	esQuery := map[string]interface{}{
		"size": 100,
		"query": map[string]interface{}{
			"bool": map[string]interface{}{
				"should": []interface{}{
					map[string]interface{}{
						"wildcard": map[string]interface{}{
							"name": map[string]interface{}{
								"value":            "*" + query + "*",
								"case_insensitive": true,
							},
						},
					},
					map[string]interface{}{
						"wildcard": map[string]interface{}{
							"venue_name": map[string]interface{}{
								"value":            "*" + query + "*",
								"case_insensitive": true,
							},
						},
					},
					map[string]interface{}{
						"wildcard": map[string]interface{}{
							"location": map[string]interface{}{
								"value":            "*" + query + "*",
								"case_insensitive": true,
							},
						},
					},
				},
				"minimum_should_match": 1,
			},
		},
	}

	body, err := json.Marshal(esQuery)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal search query: %w", err)
	}

	start := time.Now()
	res, err := c.client.Search(
		c.client.Search.WithContext(ctx),
		c.client.Search.WithIndex(c.index),
		c.client.Search.WithBody(bytes.NewReader(body)),
	)
	if err != nil {
		return nil, fmt.Errorf("search request failed: %w", err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return nil, fmt.Errorf("search returned status %s", res.Status())
	}

	var parsed struct {
		Hits struct {
			Hits []struct {
				Source catalogDoc `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("failed to decode search response: %w", err)
	}

	result := &Result{}
	for _, hit := range parsed.Hits.Hits {
		switch hit.Source.Kind {
		case models.ContentTypeEvent:
			result.EventIDs = append(result.EventIDs, hit.Source.ObjectID)
		case models.ContentTypeVenue:
			result.VenueIDs = append(result.VenueIDs, hit.Source.ObjectID)
		}
	}

	slog.Debug("Catalog search completed",
		"query", query,
		"events", len(result.EventIDs),
		"venues", len(result.VenueIDs),
		"took_ms", time.Since(start).Milliseconds())

	return result, nil
}

func (c *ElasticsearchClient) indexDoc(ctx context.Context, docID string, doc catalogDoc) error {
	body, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("failed to marshal document: %w", err)
	}

	req := esapi.IndexRequest{
		Index:      c.index,
		DocumentID: docID,
		Body:       bytes.NewReader(body),
		Refresh:    "true",
	}

	res, err := req.Do(ctx, c.client)
	if err != nil {
		return fmt.Errorf("failed to index document: %w", err)
	}
	defer res.Body.Close()

	if res.IsError() {
		msg, _ := io.ReadAll(res.Body)
		return fmt.Errorf("indexing returned status %s: %s", res.Status(), msg)
	}
	return nil
}
