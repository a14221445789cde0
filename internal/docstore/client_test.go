package docstore_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"openway/internal/docstore"
	"openway/internal/docstore/docstoretest"
	"openway/internal/model"
)

const (
	testProject    = "proj-1"
	testDatabase   = "db-1"
	testCollection = "themes"
)

func newClient(t *testing.T, endpoint string) *docstore.Client {
	t.Helper()
	c, err := docstore.NewClient(docstore.Config{Endpoint: endpoint, ProjectID: testProject}, zap.NewNop())
	require.NoError(t, err)
	return c
}

func TestNewClient_RequiresEndpointAndProject(t *testing.T) {
	_, err := docstore.NewClient(docstore.Config{ProjectID: "p"}, nil)
	assert.Error(t, err)

	_, err = docstore.NewClient(docstore.Config{Endpoint: "http://localhost"}, nil)
	assert.Error(t, err)
}

func TestClient_GetDocument_NotFound(t *testing.T) {
	srv := docstoretest.NewServer(t, testProject)
	c := newClient(t, srv.URL)

	_, err := c.GetDocument(context.Background(), testDatabase, testCollection, "missing")
	require.Error(t, err)
	assert.ErrorIs(t, err, model.ErrNotFound)

	var apiErr *docstore.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusNotFound, apiErr.StatusCode)
	assert.Equal(t, "document_not_found", apiErr.Type)
}

func TestClient_CreateGetUpdate(t *testing.T) {
	srv := docstoretest.NewServer(t, testProject)
	c := newClient(t, srv.URL)
	ctx := context.Background()

	doc, err := c.CreateDocument(ctx, testDatabase, testCollection, "abc123", map[string]any{"isDarkMode": true})
	require.NoError(t, err)
	assert.Equal(t, "abc123", doc.ID)
	assert.Equal(t, testCollection, doc.CollectionID)

	got, err := c.GetDocument(ctx, testDatabase, testCollection, "abc123")
	require.NoError(t, err)
	var attrs struct {
		IsDarkMode bool `json:"isDarkMode"`
	}
	require.NoError(t, got.Decode(&attrs))
	assert.True(t, attrs.IsDarkMode)

	_, err = c.UpdateDocument(ctx, testDatabase, testCollection, "abc123", map[string]any{"isDarkMode": false})
	require.NoError(t, err)

	stored, ok := srv.Get(testDatabase, testCollection, "abc123")
	require.True(t, ok)
	assert.Equal(t, false, stored["isDarkMode"])
}

func TestClient_CreateDocument_Conflict(t *testing.T) {
	srv := docstoretest.NewServer(t, testProject)
	srv.Put(testDatabase, testCollection, "abc123", map[string]any{"isDarkMode": false})
	c := newClient(t, srv.URL)

	_, err := c.CreateDocument(context.Background(), testDatabase, testCollection, "abc123", map[string]any{"isDarkMode": true})
	assert.ErrorIs(t, err, model.ErrConflict)
	assert.NotErrorIs(t, err, model.ErrNotFound)
}

func TestClient_UpdateDocument_NotFound(t *testing.T) {
	srv := docstoretest.NewServer(t, testProject)
	c := newClient(t, srv.URL)

	_, err := c.UpdateDocument(context.Background(), testDatabase, testCollection, "nobody", map[string]any{"isDarkMode": true})
	assert.ErrorIs(t, err, model.ErrNotFound)
}

func TestClient_SendsHeadersAndPaths(t *testing.T) {
	var gotPath, gotProject, gotKey, gotMethod string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotMethod = r.Method
		gotProject = r.Header.Get("X-Appwrite-Project")
		gotKey = r.Header.Get("X-Appwrite-Key")
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"$id":"d1","isDarkMode":true}`))
	}))
	defer srv.Close()

	c, err := docstore.NewClient(docstore.Config{Endpoint: srv.URL + "/v1/", ProjectID: "p", APIKey: "secret"}, nil)
	require.NoError(t, err)

	_, err = c.GetDocument(context.Background(), "db", "col", "d1")
	require.NoError(t, err)

	assert.Equal(t, http.MethodGet, gotMethod)
	assert.Equal(t, "/v1/databases/db/collections/col/documents/d1", gotPath)
	assert.Equal(t, "p", gotProject)
	assert.Equal(t, "secret", gotKey)
}

func TestClient_ServerErrorIsNotSentinel(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte("not json"))
	}))
	defer srv.Close()

	c := newClient(t, srv.URL)
	_, err := c.CreateDocument(context.Background(), "db", "col", "x", map[string]any{})
	require.Error(t, err)
	assert.NotErrorIs(t, err, model.ErrConflict)
	assert.NotErrorIs(t, err, model.ErrNotFound)

	var apiErr *docstore.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "Internal Server Error", apiErr.Message)
}

func TestClient_CallerContextBoundsRequest(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer srv.Close()
	c := newClient(t, srv.URL)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := c.GetDocument(ctx, testDatabase, testCollection, "slow")
	require.Error(t, err)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}
