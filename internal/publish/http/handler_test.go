package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sitee-labs/sitee-backend/internal/publish"
	"github.com/sitee-labs/sitee-backend/internal/store"
	"github.com/sitee-labs/sitee-backend/internal/users/domain"
	"github.com/sitee-labs/sitee-backend/internal/users/repository"
)

func newFixture(t *testing.T, seed domain.User, client *publish.Client) (*gin.Engine, *repository.Repo) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	repo := repository.NewRepo(store.NewMemStore(seed))
	r := gin.New()
	New(repo, client).Register(r)
	return r, repo
}

func post(t *testing.T, r *gin.Engine, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	data, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(data))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestPublish_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"url": "sitee-u1-42.vercel.app"}`))
	}))
	defer server.Close()

	client := publish.NewClient("tok", "")
	client.SetEndpoint(server.URL)

	r, repo := newFixture(t, domain.User{
		ID: "u1", Credits: 10,
		Projects: []domain.Project{{Name: "landing", Timestamp: 42}},
	}, client)

	w := post(t, r, "/users/u1/projects/42/publish", gin.H{"html_content": "<html></html>"})
	require.Equal(t, http.StatusOK, w.Code)

	var out map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	assert.Equal(t, "https://sitee-u1-42.vercel.app", out["url"])

	u, err := repo.GetUser(context.Background(), "u1")
	require.NoError(t, err)
	p := u.FindProject(42)
	require.NotNil(t, p)
	require.NotNil(t, p.PublishedURL)
	assert.Equal(t, "https://sitee-u1-42.vercel.app", *p.PublishedURL)
}

func TestPublish_MissingToken(t *testing.T) {
	r, _ := newFixture(t, domain.User{
		ID: "u1", Credits: 10,
		Projects: []domain.Project{{Name: "landing", Timestamp: 42}},
	}, publish.NewClient("", ""))

	w := post(t, r, "/users/u1/projects/42/publish", gin.H{"html_content": "<html></html>"})
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestPublish_ProjectNotFound(t *testing.T) {
	r, _ := newFixture(t, domain.User{ID: "u1", Credits: 10}, publish.NewClient("tok", ""))

	w := post(t, r, "/users/u1/projects/999/publish", gin.H{"html_content": "<html></html>"})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestPublish_UpstreamErrorLeavesStateUntouched(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		w.Write([]byte(`{"error": {"message": "invalid token"}}`))
	}))
	defer server.Close()

	client := publish.NewClient("tok", "")
	client.SetEndpoint(server.URL)

	r, repo := newFixture(t, domain.User{
		ID: "u1", Credits: 10,
		Projects: []domain.Project{{Name: "landing", Timestamp: 42}},
	}, client)

	w := post(t, r, "/users/u1/projects/42/publish", gin.H{"html_content": "<html></html>"})
	require.Equal(t, http.StatusBadGateway, w.Code)

	u, err := repo.GetUser(context.Background(), "u1")
	require.NoError(t, err)
	assert.Nil(t, u.FindProject(42).PublishedURL)
}
