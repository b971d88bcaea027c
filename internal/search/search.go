package search

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	elasticsearch "github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"
	"go.uber.org/zap"

	"github.com/evimeria/catalog-service/config"
	"github.com/evimeria/catalog-service/internal/model"
)

const productIndex = "products"

// Doc is the shape indexed per product. Only the searchable and
// filterable fields travel to the index; the database stays authoritative.
type Doc struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Slug        string `json:"slug"`
	Description string `json:"description"`
	Category    string `json:"category"`
	Available   bool   `json:"available"`
	IsPublished bool   `json:"is_published"`
}

func DocFromProduct(p *model.Product) Doc {
	return Doc{
		ID:          p.ID,
		Name:        p.Name,
		Slug:        p.Slug,
		Description: p.Description,
		Category:    p.CategoryName,
		Available:   p.Available,
		IsPublished: p.IsPublished,
	}
}

// Client wraps the Elasticsearch product index and tolerates being
// disabled: a nil inner client makes indexing a no-op and Search report
// unavailability so callers can fall back to the database.
type Client struct {
	es     *elasticsearch.Client
	logger *zap.Logger
}

func New(cfg *config.Config, logger *zap.Logger) (*Client, error) {
	if !cfg.Elastic.Enabled {
		return &Client{logger: logger}, nil
	}
	es, err := elasticsearch.NewClient(elasticsearch.Config{
		Addresses: []string{cfg.Elastic.Address},
		Username:  cfg.Elastic.Username,
		Password:  cfg.Elastic.Password,
	})
	if err != nil {
		return nil, fmt.Errorf("elasticsearch client: %w", err)
	}
	return &Client{es: es, logger: logger}, nil
}

func (c *Client) Enabled() bool {
	return c != nil && c.es != nil
}

func (c *Client) IndexProduct(ctx context.Context, p *model.Product) {
	if !c.Enabled() {
		return
	}

	data, err := json.Marshal(DocFromProduct(p))
	if err != nil {
		c.logger.Warn("search: marshal product", zap.Error(err))
		return
	}

	req := esapi.IndexRequest{
		Index:      productIndex,
		DocumentID: p.ID,
		Body:       bytes.NewReader(data),
		Refresh:    "true",
	}
	res, err := req.Do(ctx, c.es)
	if err != nil {
		c.logger.Warn("search: index product", zap.String("id", p.ID), zap.Error(err))
		return
	}
	defer res.Body.Close()

	if res.IsError() {
		c.logger.Warn("search: index rejected",
			zap.String("id", p.ID), zap.String("status", res.Status()))
	}
}

func (c *Client) DeleteProduct(ctx context.Context, id string) {
	if !c.Enabled() {
		return
	}

	req := esapi.DeleteRequest{
		Index:      productIndex,
		DocumentID: id,
		Refresh:    "true",
	}
	res, err := req.Do(ctx, c.es)
	if err != nil {
		c.logger.Warn("search: delete product", zap.String("id", id), zap.Error(err))
		return
	}
	res.Body.Close()
}

// Search returns product IDs ranked by relevance. When visibleOnly is set
// the index-side availability and publication flags are enforced as well,
// so hidden products never leak through stale rankings.
func (c *Client) Search(ctx context.Context, query string, visibleOnly bool, size int) ([]string, error) {
	if !c.Enabled() {
		return nil, fmt.Errorf("search index not configured")
	}

	must := []map[string]interface{}{
		{
			"multi_match": map[string]interface{}{
				"query":  query,
				"fields": []string{"name^2", "description", "category"},
			},
		},
	}
	boolQuery := map[string]interface{}{"must": must}
	if visibleOnly {
		boolQuery["filter"] = []map[string]interface{}{
			{"term": map[string]interface{}{"available": true}},
			{"term": map[string]interface{}{"is_published": true}},
		}
	}

	var buf bytes.Buffer
	body := map[string]interface{}{
		"size":    size,
		"_source": []string{"id"},
		"query":   map[string]interface{}{"bool": boolQuery},
	}
	if err := json.NewEncoder(&buf).Encode(body); err != nil {
		return nil, fmt.Errorf("encode search query: %w", err)
	}

	req := esapi.SearchRequest{
		Index: []string{productIndex},
		Body:  &buf,
	}
	res, err := req.Do(ctx, c.es)
	if err != nil {
		return nil, fmt.Errorf("search request: %w", err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return nil, fmt.Errorf("search index error: %s", res.Status())
	}

	var parsed struct {
		Hits struct {
			Hits []struct {
				Source Doc `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("decode search response: %w", err)
	}

	ids := make([]string, 0, len(parsed.Hits.Hits))
	for _, hit := range parsed.Hits.Hits {
		ids = append(ids, hit.Source.ID)
	}
	return ids, nil
}
