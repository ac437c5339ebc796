package search

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/Skotchmaster/bookstore/internal/models"
	"github.com/elastic/go-elasticsearch/v9"
	"github.com/google/uuid"
)

// pageSize is the number of hits fetched per search_after round trip.
var pageSize = 500

// mapping indexes every searchable field as wildcard so substring queries
// behave like the SQL fallback.
var mapping = map[string]any{
	"mappings": map[string]any{
		"properties": map[string]any{
			"id":          map[string]any{"type": "keyword"},
			"title":       map[string]any{"type": "wildcard"},
			"author":      map[string]any{"type": "wildcard"},
			"description": map[string]any{"type": "wildcard"},
			"category":    map[string]any{"type": "keyword"},
		},
	},
}

type document struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Author      string `json:"author"`
	Description string `json:"description"`
	Category    string `json:"category"`
}

func toDocument(b models.Book) document {
	return document{ID: b.ID.String(), Title: b.Title, Author: b.Author, Description: b.Description, Category: b.Category}
}

func NewClient(url, user, password string) (*elasticsearch.Client, error) {
	client, err := elasticsearch.NewClient(elasticsearch.Config{
		Addresses: []string{url},
		Username:  user,
		Password:  password,
	})
	if err != nil {
		return nil, fmt.Errorf("create elasticsearch client: %w", err)
	}

	res, err := client.Info()
	if err != nil {
		return nil, fmt.Errorf("elasticsearch info: %w", err)
	}
	defer res.Body.Close()
	if res.IsError() {
		return nil, responseError("info", res.StatusCode, res.Body)
	}
	return client, nil
}

// ESIndex keeps a books index in Elasticsearch and answers substring queries
// with matching book ids.
type ESIndex struct {
	es    *elasticsearch.Client
	index string
}

func NewESIndex(es *elasticsearch.Client, index string) *ESIndex {
	return &ESIndex{es: es, index: index}
}

func (s *ESIndex) EnsureIndex(ctx context.Context) error {
	res, err := s.es.Indices.Exists([]string{s.index}, s.es.Indices.Exists.WithContext(ctx))
	if err != nil {
		return fmt.Errorf("index exists: %w", err)
	}
	res.Body.Close()
	if res.StatusCode == http.StatusOK {
		return s.ensureSortField(ctx)
	}

	body, err := encode(mapping)
	if err != nil {
		return err
	}
	res, err = s.es.Indices.Create(s.index,
		s.es.Indices.Create.WithContext(ctx),
		s.es.Indices.Create.WithBody(body),
	)
	if err != nil {
		return fmt.Errorf("create index: %w", err)
	}
	defer res.Body.Close()
	if res.IsError() {
		return responseError("create index", res.StatusCode, res.Body)
	}
	return nil
}

// ensureSortField adds the id keyword used for paging to an index created
// before it was part of the mapping.
func (s *ESIndex) ensureSortField(ctx context.Context) error {
	body, err := encode(map[string]any{
		"properties": map[string]any{"id": map[string]any{"type": "keyword"}},
	})
	if err != nil {
		return err
	}
	res, err := s.es.Indices.PutMapping([]string{s.index}, body, s.es.Indices.PutMapping.WithContext(ctx))
	if err != nil {
		return fmt.Errorf("put mapping: %w", err)
	}
	defer res.Body.Close()
	if res.IsError() {
		return responseError("put mapping", res.StatusCode, res.Body)
	}
	return nil
}

func (s *ESIndex) IndexBook(ctx context.Context, b models.Book) error {
	body, err := encode(toDocument(b))
	if err != nil {
		return err
	}

	res, err := s.es.Index(s.index, body,
		s.es.Index.WithContext(ctx),
		s.es.Index.WithDocumentID(b.ID.String()),
		s.es.Index.WithRefresh("true"),
	)
	if err != nil {
		return fmt.Errorf("index book %s: %w", b.ID, err)
	}
	defer res.Body.Close()
	if res.IsError() {
		return responseError("index book", res.StatusCode, res.Body)
	}
	return nil
}

// Reindex writes every given book in one bulk request.
func (s *ESIndex) Reindex(ctx context.Context, books []models.Book) error {
	if len(books) == 0 {
		return nil
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	for _, b := range books {
		meta := map[string]any{"index": map[string]any{"_index": s.index, "_id": b.ID.String()}}
		if err := enc.Encode(meta); err != nil {
			return err
		}
		if err := enc.Encode(toDocument(b)); err != nil {
			return err
		}
	}

	res, err := s.es.Bulk(&buf,
		s.es.Bulk.WithContext(ctx),
		s.es.Bulk.WithRefresh("true"),
	)
	if err != nil {
		return fmt.Errorf("bulk index: %w", err)
	}
	defer res.Body.Close()
	if res.IsError() {
		return responseError("bulk index", res.StatusCode, res.Body)
	}

	var out struct {
		Errors bool `json:"errors"`
	}
	if err := json.NewDecoder(res.Body).Decode(&out); err != nil {
		return fmt.Errorf("decode bulk response: %w", err)
	}
	if out.Errors {
		return fmt.Errorf("bulk index: some documents were rejected")
	}
	return nil
}

// SearchIDs returns the ids of every book whose title, author or description
// contains query, paging with search_after so no match is dropped.
func (s *ESIndex) SearchIDs(ctx context.Context, query string) ([]uuid.UUID, error) {
	pattern := "*" + escapeWildcard(strings.TrimSpace(query)) + "*"

	should := make([]any, 0, 3)
	for _, field := range []string{"title", "author", "description"} {
		should = append(should, map[string]any{
			"wildcard": map[string]any{
				field: map[string]any{"value": pattern, "case_insensitive": true},
			},
		})
	}

	var ids []uuid.UUID
	var after []any
	for {
		page, last, err := s.searchPage(ctx, should, after)
		if err != nil {
			return nil, err
		}
		ids = append(ids, page...)
		if last == nil {
			return ids, nil
		}
		after = last
	}
}

// searchPage runs one page of the query. last is nil once the final page was read.
func (s *ESIndex) searchPage(ctx context.Context, should []any, after []any) ([]uuid.UUID, []any, error) {
	req := map[string]any{
		"_source": false,
		"size":    pageSize,
		"sort":    []any{map[string]any{"id": "asc"}},
		"query": map[string]any{
			"bool": map[string]any{"should": should, "minimum_should_match": 1},
		},
	}
	if after != nil {
		req["search_after"] = after
	}
	body, err := encode(req)
	if err != nil {
		return nil, nil, err
	}

	res, err := s.es.Search(
		s.es.Search.WithContext(ctx),
		s.es.Search.WithIndex(s.index),
		s.es.Search.WithBody(body),
	)
	if err != nil {
		return nil, nil, fmt.Errorf("search: %w", err)
	}
	defer res.Body.Close()
	if res.IsError() {
		return nil, nil, responseError("search", res.StatusCode, res.Body)
	}

	var r struct {
		Hits struct {
			Hits []struct {
				ID   string `json:"_id"`
				Sort []any  `json:"sort"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&r); err != nil {
		return nil, nil, fmt.Errorf("decode search response: %w", err)
	}

	hits := r.Hits.Hits
	ids := make([]uuid.UUID, 0, len(hits))
	for _, hit := range hits {
		id, err := uuid.Parse(hit.ID)
		if err != nil {
			continue
		}
		ids = append(ids, id)
	}
	if len(hits) < pageSize || len(hits[len(hits)-1].Sort) == 0 {
		return ids, nil, nil
	}
	return ids, hits[len(hits)-1].Sort, nil
}

func encode(v any) (*bytes.Buffer, error) {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(v); err != nil {
		return nil, fmt.Errorf("encode request: %w", err)
	}
	return &buf, nil
}

func escapeWildcard(s string) string {
	return strings.NewReplacer(`\`, `\\`, `*`, `\*`, `?`, `\?`).Replace(s)
}

func responseError(op string, status int, body io.Reader) error {
	msg, _ := io.ReadAll(io.LimitReader(body, 1024))
	return fmt.Errorf("elasticsearch %s: status %d: %s", op, status, strings.TrimSpace(string(msg)))
}
