package analytics

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"
	"github.com/google/uuid"

	pkglogger "github.com/nichewire/nichewire-backend/pkg/logger"
)

// ClickPoint is one click event for the analytics log. The index keys mirror
// the dashboard queries: blobs identify the link, doubles carry the value.
type ClickPoint struct {
	LinkID      string    `json:"link_id"`
	ProductName string    `json:"product_name"`
	Provider    string    `json:"provider"`
	Value       float64   `json:"value"`
	PostID      string    `json:"post_id"` // "" when the link has no owning post
	Timestamp   time.Time `json:"timestamp"`
}

// Sink is a write-only event log. Nothing in this service reads it back.
type Sink interface {
	WriteClick(ctx context.Context, point ClickPoint) error
}

// Client wraps the Elasticsearch client as an append-only analytics sink
type Client struct {
	es    *elasticsearch.Client
	index string
}

// NewClient creates the Elasticsearch-backed sink and verifies the connection
func NewClient(addresses []string, username, password, index string) (*Client, error) {
	cfg := elasticsearch.Config{
		Addresses: addresses,
	}
	if username != "" {
		cfg.Username = username
		cfg.Password = password
	}

	es, err := elasticsearch.NewClient(cfg)
	if err != nil {
		return nil, fmt.Errorf("elasticsearch client creation failed: %w", err)
	}

	res, err := es.Info()
	if err != nil {
		return nil, fmt.Errorf("elasticsearch connection failed: %w", err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return nil, fmt.Errorf("elasticsearch error: %s", res.String())
	}

	pkglogger.GetLogger().Info().Str("index", index).Msg("connected to Elasticsearch")
	return &Client{es: es, index: index}, nil
}

// WriteClick appends one click event to the analytics index
func (c *Client) WriteClick(ctx context.Context, point ClickPoint) error {
	data, err := json.Marshal(point)
	if err != nil {
		return err
	}

	req := esapi.IndexRequest{
		Index:      c.index,
		DocumentID: uuid.New().String(),
		Body:       bytes.NewReader(data),
		Refresh:    "false",
	}

	res, err := req.Do(ctx, c.es)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	if res.IsError() {
		body, err := io.ReadAll(res.Body)
		if err != nil {
			return fmt.Errorf("index error [%s]: failed to read response body: %w", res.Status(), err)
		}
		return fmt.Errorf("index error [%s]: %s", res.Status(), string(body))
	}
	return nil
}
