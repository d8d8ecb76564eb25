// Package search maintains the Elasticsearch course index used for
// fuzzy catalog search. Course IDs are string UUIDs; results come back
// as IDs that the catalog service resolves against Postgres.
package search

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"

	"github.com/Harish222600/LMS-SELL-sub001/internal/models"
)

// CourseIndex wraps the course search index.
type CourseIndex struct {
	client *elasticsearch.Client
	index  string
}

// NewCourseIndex creates a CourseIndex over the given index name.
func NewCourseIndex(client *elasticsearch.Client, index string) *CourseIndex {
	return &CourseIndex{client: client, index: index}
}

// EnsureIndex creates the index with an edge-ngram analyzer if it does not
// exist yet, so prefix typing matches course names and descriptions.
func (r *CourseIndex) EnsureIndex(ctx context.Context) error {
	existsReq := esapi.IndicesExistsRequest{Index: []string{r.index}}
	existsRes, err := existsReq.Do(ctx, r.client)
	if err != nil {
		return fmt.Errorf("error checking index existence: %w", err)
	}
	defer existsRes.Body.Close()

	if existsRes.StatusCode == 404 {
		mapping := map[string]interface{}{
			"settings": map[string]interface{}{
				"analysis": map[string]interface{}{
					"analyzer": map[string]interface{}{
						"edge_ngram_analyzer": map[string]interface{}{
							"tokenizer": "edge_ngram_tokenizer",
							"filter":    []string{"lowercase"},
						},
					},
					"tokenizer": map[string]interface{}{
						"edge_ngram_tokenizer": map[string]interface{}{
							"type":        "edge_ngram",
							"min_gram":    2,
							"max_gram":    20,
							"token_chars": []string{"letter", "digit"},
						},
					},
				},
			},
			"mappings": map[string]interface{}{
				"properties": map[string]interface{}{
					"name": map[string]interface{}{
						"type":            "text",
						"analyzer":        "edge_ngram_analyzer",
						"search_analyzer": "standard",
					},
					"description": map[string]interface{}{
						"type":            "text",
						"analyzer":        "edge_ngram_analyzer",
						"search_analyzer": "standard",
					},
					"tags": map[string]interface{}{
						"type": "keyword",
					},
					"category_id": map[string]interface{}{
						"type": "keyword",
					},
				},
			},
		}

		body, _ := json.Marshal(mapping)
		req := esapi.IndicesCreateRequest{Index: r.index, Body: bytes.NewReader(body)}
		res, err := req.Do(ctx, r.client)
		if err != nil {
			return fmt.Errorf("failed to create index: %w", err)
		}
		defer res.Body.Close()
		if res.IsError() {
			return fmt.Errorf("mapping creation failed: %s", res.String())
		}
		return nil
	}

	if existsRes.StatusCode >= 300 {
		return fmt.Errorf("index existence check failed with status code %d", existsRes.StatusCode)
	}
	return nil
}

func courseDoc(course models.Course) map[string]interface{} {
	return map[string]interface{}{
		"name":        course.Name,
		"description": course.Description,
		"tags":        []string(course.Tags),
		"category_id": course.CategoryID,
	}
}

// Index writes the course document, replacing any previous version.
func (r *CourseIndex) Index(ctx context.Context, course models.Course) error {
	data, err := json.Marshal(courseDoc(course))
	if err != nil {
		return fmt.Errorf("marshal doc: %w", err)
	}
	req := esapi.IndexRequest{
		Index:      r.index,
		DocumentID: course.ID,
		Refresh:    "true",
		Body:       bytes.NewReader(data),
	}
	res, err := req.Do(ctx, r.client)
	if err != nil {
		return fmt.Errorf("index request: %w", err)
	}
	defer res.Body.Close()
	if res.IsError() {
		return fmt.Errorf("index error: %s", res.String())
	}
	return nil
}

// Update applies a partial document update for the course.
func (r *CourseIndex) Update(ctx context.Context, course models.Course) error {
	body, err := json.Marshal(map[string]interface{}{"doc": courseDoc(course)})
	if err != nil {
		return fmt.Errorf("marshal update: %w", err)
	}
	req := esapi.UpdateRequest{
		Index:      r.index,
		DocumentID: course.ID,
		Body:       bytes.NewReader(body),
		Refresh:    "true",
	}
	res, err := req.Do(ctx, r.client)
	if err != nil {
		return fmt.Errorf("update request: %w", err)
	}
	defer res.Body.Close()
	if res.IsError() {
		return fmt.Errorf("update error: %s", res.String())
	}
	return nil
}

// Delete removes the course document. Missing documents are not an error.
func (r *CourseIndex) Delete(ctx context.Context, courseID string) error {
	req := esapi.DeleteRequest{
		Index:      r.index,
		DocumentID: courseID,
		Refresh:    "true",
	}
	res, err := req.Do(ctx, r.client)
	if err != nil {
		return fmt.Errorf("delete request: %w", err)
	}
	defer res.Body.Close()
	if res.IsError() && res.StatusCode != 404 {
		return fmt.Errorf("delete error: %s", res.String())
	}
	return nil
}

// Search runs a fuzzy multi-field query and returns matching course IDs in
// relevance order. An optional categoryID narrows the scope.
func (r *CourseIndex) Search(ctx context.Context, query, categoryID string, size int) ([]string, error) {
	if size <= 0 {
		size = 10
	}
	match := map[string]interface{}{
		"multi_match": map[string]interface{}{
			"query":                query,
			"fields":               []string{"name^3", "description", "tags^2"},
			"type":                 "best_fields",
			"fuzziness":            "AUTO",
			"operator":             "or",
			"minimum_should_match": "2<75%",
		},
	}
	var queryBody map[string]interface{}
	if categoryID != "" && !strings.EqualFold(categoryID, "all") {
		queryBody = map[string]interface{}{
			"bool": map[string]interface{}{
				"must":   match,
				"filter": map[string]interface{}{"term": map[string]interface{}{"category_id": categoryID}},
			},
		}
	} else {
		queryBody = match
	}

	buf := &bytes.Buffer{}
	if err := json.NewEncoder(buf).Encode(map[string]interface{}{
		"query": queryBody,
		"size":  size,
	}); err != nil {
		return nil, fmt.Errorf("encode search body: %w", err)
	}

	res, err := r.client.Search(
		r.client.Search.WithContext(ctx),
		r.client.Search.WithIndex(r.index),
		r.client.Search.WithBody(buf),
	)
	if err != nil {
		return nil, fmt.Errorf("search request failed: %w", err)
	}
	defer res.Body.Close()
	if res.IsError() {
		bodyBytes, _ := io.ReadAll(res.Body)
		return nil, fmt.Errorf("search error: %s", string(bodyBytes))
	}

	var esRes struct {
		Hits struct {
			Hits []struct {
				ID string `json:"_id"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&esRes); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	ids := make([]string, 0, len(esRes.Hits.Hits))
	for _, h := range esRes.Hits.Hits {
		ids = append(ids, h.ID)
	}
	return ids, nil
}
