package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"taskboard-api/internal/models"
	"taskboard-api/internal/repository"
	"taskboard-api/internal/testutil"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

func newUserRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	db, err := testutil.NewInMemoryDB()
	require.NoError(t, err)

	for _, name := range []string{"alice", "bob"} {
		require.NoError(t, db.Create(&models.User{Username: name, Email: name + "@example.com", Password: "x"}).Error)
	}

	handler := NewUserHandler(repository.NewUserRepository(db))
	r := gin.New()
	r.GET("/api/users", handler.GetAllUsers)
	r.GET("/api/users/:username", handler.GetUserByUsername)
	return r
}

func TestGetAllUsers(t *testing.T) {
	r := newUserRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/users", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Users []UserResponse `json:"users"`
		Count int            `json:"count"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Equal(t, 2, resp.Count)

	// password hashes never leave the API
	require.NotContains(t, w.Body.String(), "password")
}

func TestGetUserByUsername(t *testing.T) {
	r := newUserRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/users/alice", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var resp UserResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Equal(t, "alice", resp.Username)
	require.Equal(t, "alice@example.com", resp.Email)
}

func TestGetUserByUsername_NotFound(t *testing.T) {
	r := newUserRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/users/nobody", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusNotFound, w.Code)
}
