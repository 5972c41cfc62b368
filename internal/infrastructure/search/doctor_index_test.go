package search

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/medico-api/internal/domain/entity"
)

type captured struct {
	method, path string
	body         map[string]any
}

func newTestIndex(t *testing.T, status int, reply string) (*DoctorIndex, *[]captured) {
	t.Helper()
	calls := &[]captured{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		c := captured{method: r.Method, path: r.URL.Path}
		if b, _ := io.ReadAll(r.Body); len(b) > 0 {
			_ = json.Unmarshal(b, &c.body)
		}
		*calls = append(*calls, c)

		w.Header().Set("X-Elastic-Product", "Elasticsearch")
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = io.WriteString(w, reply)
	}))
	t.Cleanup(srv.Close)

	es, err := elasticsearch.NewClient(elasticsearch.Config{Addresses: []string{srv.URL}})
	require.NoError(t, err)
	return NewDoctorIndex(es, "doctors"), calls
}

func TestIndexDoctor(t *testing.T) {
	idx, calls := newTestIndex(t, http.StatusCreated, `{"result":"created"}`)

	err := idx.Index(context.Background(), &entity.User{
		ID: "d1", Name: "dr. Kasyfil", Email: "kasyfil@medico.test", Role: entity.RoleDoctor, UpdatedAt: time.Now(),
	})
	require.NoError(t, err)

	require.Len(t, *calls, 1)
	c := (*calls)[0]
	assert.Equal(t, http.MethodPut, c.method)
	assert.Equal(t, "/doctors/_doc/d1", c.path)
	assert.Equal(t, "dr. Kasyfil", c.body["name"])
}

func TestSearchDoctors(t *testing.T) {
	reply := `{"hits":{"hits":[{"_source":{"id":"d1","name":"dr. Kasyfil","email":"kasyfil@medico.test","role":"DOCTOR","imageUrl":null}}]}}`
	idx, calls := newTestIndex(t, http.StatusOK, reply)

	got, err := idx.Search(context.Background(), "kasyfil", 0)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "d1", got[0].ID)
	assert.Equal(t, entity.RoleDoctor, got[0].Role)

	c := (*calls)[0]
	assert.True(t, strings.HasSuffix(c.path, "/_search"))
	assert.EqualValues(t, 10, c.body["size"])
}

func TestSearchError(t *testing.T) {
	idx, _ := newTestIndex(t, http.StatusInternalServerError, `{"error":"boom"}`)
	_, err := idx.Search(context.Background(), "x", 5)
	assert.Error(t, err)
}
