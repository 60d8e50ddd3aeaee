package http

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sitee-labs/sitee-backend/internal/store"
	"github.com/sitee-labs/sitee-backend/internal/users/domain"
	"github.com/sitee-labs/sitee-backend/internal/users/repository"
)

func newRouter(seed ...domain.User) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	New(repository.NewRepo(store.NewMemStore(seed...))).Register(r)
	return r
}

func do(t *testing.T, r *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestCreateUser(t *testing.T) {
	r := newRouter()

	w := do(t, r, http.MethodPost, "/create-user", gin.H{"id": "u1"})
	require.Equal(t, http.StatusCreated, w.Code)

	var user domain.User
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &user))
	assert.Equal(t, "u1", user.ID)
	assert.Equal(t, domain.DefaultCredits, user.Credits)
	assert.Empty(t, user.Projects)
}

func TestCreateUser_MissingID(t *testing.T) {
	r := newRouter()

	w := do(t, r, http.MethodPost, "/create-user", gin.H{})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreateUser_Duplicate(t *testing.T) {
	r := newRouter(domain.User{ID: "u1", Credits: 10})

	w := do(t, r, http.MethodPost, "/create-user", gin.H{"id": "u1"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreateUser_ExplicitCredits(t *testing.T) {
	r := newRouter()

	w := do(t, r, http.MethodPost, "/create-user", gin.H{"id": "u1", "credits": 3})
	require.Equal(t, http.StatusCreated, w.Code)

	var user domain.User
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &user))
	assert.Equal(t, 3, user.Credits)
}

func TestGetUser(t *testing.T) {
	r := newRouter(domain.User{ID: "u1", Credits: 7})

	w := do(t, r, http.MethodGet, "/users/u1", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var user domain.User
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &user))
	assert.Equal(t, 7, user.Credits)

	w = do(t, r, http.MethodGet, "/users/ghost", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestListUsers(t *testing.T) {
	r := newRouter(domain.User{ID: "u1"}, domain.User{ID: "u2"})

	w := do(t, r, http.MethodGet, "/all-users", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var users []domain.User
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &users))
	assert.Len(t, users, 2)
}

func TestSaveProject_ChatHistoryUpsert(t *testing.T) {
	r := newRouter(domain.User{ID: "u1", Credits: 10})

	w := do(t, r, http.MethodPost, "/users/u1/projects", gin.H{
		"name": domain.ChatHistoryProjectName, "html": "first", "timestamp": 1,
	})
	require.Equal(t, http.StatusOK, w.Code)

	w = do(t, r, http.MethodPost, "/users/u1/projects", gin.H{
		"name": domain.ChatHistoryProjectName, "html": "second", "timestamp": 2,
	})
	require.Equal(t, http.StatusOK, w.Code)

	w = do(t, r, http.MethodGet, "/users/u1", nil)
	var user domain.User
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &user))
	require.Len(t, user.Projects, 1)
	assert.Equal(t, "second", user.Projects[0].HTML)
}

func TestUpdateProject(t *testing.T) {
	r := newRouter(domain.User{
		ID: "u1", Credits: 10,
		Projects: []domain.Project{{Name: "old", HTML: "<p>old</p>", Timestamp: 5}},
	})

	w := do(t, r, http.MethodPut, "/users/u1/projects/5", gin.H{"name": "new", "html": "<p>new</p>"})
	require.Equal(t, http.StatusOK, w.Code)

	var p domain.Project
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &p))
	assert.Equal(t, "new", p.Name)

	w = do(t, r, http.MethodPut, "/users/u1/projects/999", gin.H{"name": "x"})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestDeleteProject(t *testing.T) {
	r := newRouter(domain.User{
		ID: "u1", Credits: 10,
		Projects: []domain.Project{{Name: "a", Timestamp: 1}},
	})

	w := do(t, r, http.MethodDelete, "/users/u1/projects/1", nil)
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = do(t, r, http.MethodDelete, "/users/u1/projects/1", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestDeleteAllProjects_KeepsChatHistory(t *testing.T) {
	r := newRouter(domain.User{
		ID: "u1", Credits: 10,
		Projects: []domain.Project{
			{Name: "a", Timestamp: 1},
			{Name: domain.ChatHistoryProjectName, Timestamp: 2},
		},
	})

	w := do(t, r, http.MethodDelete, "/users/u1/projects", nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = do(t, r, http.MethodGet, "/users/u1", nil)
	var user domain.User
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &user))
	require.Len(t, user.Projects, 1)
	assert.Equal(t, domain.ChatHistoryProjectName, user.Projects[0].Name)
}
