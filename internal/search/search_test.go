package search

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/Skotchmaster/bookstore/internal/models"
	"github.com/elastic/go-elasticsearch/v9"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeES struct {
	mu       sync.Mutex
	requests map[string]string
	searches []string
	hits     []string
	exists   bool
}

// page serves hits in slice order, honouring size and search_after like a
// sort on the id field would.
func (f *fakeES) page(body []byte) []map[string]any {
	var req struct {
		Size        int   `json:"size"`
		SearchAfter []any `json:"search_after"`
	}
	_ = json.Unmarshal(body, &req)

	start := 0
	if len(req.SearchAfter) == 1 {
		for i, id := range f.hits {
			if id == req.SearchAfter[0] {
				start = i + 1
			}
		}
	}
	end := min(start+req.Size, len(f.hits))

	hits := make([]map[string]any, 0, end-start)
	for _, id := range f.hits[start:end] {
		hits = append(hits, map[string]any{"_id": id, "sort": []any{id}})
	}
	return hits
}

func (f *fakeES) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	body, _ := io.ReadAll(r.Body)
	f.mu.Lock()
	f.requests[r.Method+" "+r.URL.Path] = string(body)
	if strings.HasSuffix(r.URL.Path, "/_search") {
		f.searches = append(f.searches, string(body))
	}
	f.mu.Unlock()

	w.Header().Set("X-Elastic-Product", "Elasticsearch")
	w.Header().Set("Content-Type", "application/json")

	switch {
	case r.Method == http.MethodHead:
		if f.exists {
			w.WriteHeader(http.StatusOK)
			return
		}
		w.WriteHeader(http.StatusNotFound)
	case strings.HasSuffix(r.URL.Path, "/_search"):
		_ = json.NewEncoder(w).Encode(map[string]any{"hits": map[string]any{"hits": f.page(body)}})
	case strings.HasSuffix(r.URL.Path, "/_bulk"):
		_, _ = w.Write([]byte(`{"errors":false,"items":[]}`))
	default:
		_, _ = w.Write([]byte(`{"acknowledged":true,"result":"created"}`))
	}
}

func newTestIndex(t *testing.T, hits ...string) (*ESIndex, *fakeES) {
	t.Helper()

	fake := &fakeES{requests: map[string]string{}, hits: hits}
	srv := httptest.NewServer(fake)
	t.Cleanup(srv.Close)

	client, err := elasticsearch.NewClient(elasticsearch.Config{Addresses: []string{srv.URL}})
	require.NoError(t, err)
	return NewESIndex(client, "books"), fake
}

func TestSearchIDs_BuildsWildcardQuery(t *testing.T) {
	id := uuid.New()
	idx, fake := newTestIndex(t, id.String(), "not-a-uuid")

	ids, err := idx.SearchIDs(t.Context(), "  Gats*by ")
	require.NoError(t, err)
	assert.Equal(t, []uuid.UUID{id}, ids)

	body := fake.requests["POST /books/_search"]
	require.NotEmpty(t, body)
	assert.Contains(t, body, `"case_insensitive":true`)
	assert.Contains(t, body, `"value":"*Gats\\*by*"`)
	assert.Contains(t, body, `"minimum_should_match":1`)
	assert.Contains(t, body, `"sort":[{"id":"asc"}]`)
}

func TestSearchIDs_PagesPastOnePage(t *testing.T) {
	old := pageSize
	pageSize = 2
	t.Cleanup(func() { pageSize = old })

	want := make([]uuid.UUID, 5)
	hits := make([]string, 5)
	for i := range want {
		want[i] = uuid.New()
		hits[i] = want[i].String()
	}
	idx, fake := newTestIndex(t, hits...)

	ids, err := idx.SearchIDs(t.Context(), "tolkien")
	require.NoError(t, err)
	assert.Equal(t, want, ids)

	require.Len(t, fake.searches, 3)
	assert.NotContains(t, fake.searches[0], "search_after")
	assert.Contains(t, fake.searches[1], `"search_after":["`+hits[1]+`"]`)
	assert.Contains(t, fake.searches[2], `"search_after":["`+hits[3]+`"]`)
}

func TestEnsureIndex_ExistingIndexGetsSortField(t *testing.T) {
	idx, fake := newTestIndex(t)
	fake.exists = true

	require.NoError(t, idx.EnsureIndex(t.Context()))
	assert.Contains(t, fake.requests["PUT /books/_mapping"], `"id":{"type":"keyword"}`)
	assert.Empty(t, fake.requests["PUT /books"])
}

func TestEnsureIndexAndWrites(t *testing.T) {
	idx, fake := newTestIndex(t)
	ctx := t.Context()

	require.NoError(t, idx.EnsureIndex(ctx))
	assert.Contains(t, fake.requests["PUT /books"], `"wildcard"`)

	book := models.Book{ID: uuid.New(), Title: "The Hobbit", Author: "J.R.R. Tolkien"}
	require.NoError(t, idx.IndexBook(ctx, book))
	assert.Contains(t, fake.requests["PUT /books/_doc/"+book.ID.String()], `"title":"The Hobbit"`)

	require.NoError(t, idx.Reindex(ctx, []models.Book{book}))
	assert.Contains(t, fake.requests["POST /_bulk"], book.ID.String())
}

func TestEscapeWildcard(t *testing.T) {
	assert.Equal(t, `a\*b\?c\\d`, escapeWildcard(`a*b?c\d`))
}
