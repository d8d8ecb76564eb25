package search

import (
	"fmt"

	"github.com/elastic/go-elasticsearch/v8"

	"github.com/Harish222600/LMS-SELL-sub001/pkg/config"
)

// NewElastic returns a configured Elasticsearch client.
func NewElastic(cfg config.SearchConfig) (*elasticsearch.Client, error) {
	client, err := elasticsearch.NewClient(elasticsearch.Config{
		Addresses: cfg.Addresses,
		Username:  cfg.Username,
		Password:  cfg.Password,
	})
	if err != nil {
		return nil, fmt.Errorf("create elasticsearch client: %w", err)
	}
	return client, nil
}
