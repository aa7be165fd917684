package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"taskboard-api/internal/repository"
	"taskboard-api/internal/services"
	"taskboard-api/internal/testutil"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

func newAuthRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	db, err := testutil.NewInMemoryDB()
	require.NoError(t, err)

	auth := NewAuthHandler(services.NewAuthService(repository.NewUserRepository(db)))
	r := gin.New()
	r.POST("/api/register", auth.Register)
	r.POST("/api/login", auth.Login)
	return r
}

func postJSON(r *gin.Engine, path string, payload any) *httptest.ResponseRecorder {
	body, _ := json.Marshal(payload)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRegisterThenLogin(t *testing.T) {
	r := newAuthRouter(t)

	w := postJSON(r, "/api/register", map[string]string{
		"username": "alice",
		"email":    "alice@example.com",
		"password": "s3cret",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	w = postJSON(r, "/api/login", map[string]string{
		"username": "alice",
		"password": "s3cret",
	})
	require.Equal(t, http.StatusOK, w.Code)

	var resp LoginResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Token)
	require.Equal(t, "alice", resp.Username)
	require.NotZero(t, resp.UserID)
}

func TestRegister_DuplicateUsername(t *testing.T) {
	r := newAuthRouter(t)

	w := postJSON(r, "/api/register", map[string]string{"username": "alice", "password": "s3cret"})
	require.Equal(t, http.StatusCreated, w.Code)

	w = postJSON(r, "/api/register", map[string]string{"username": "alice", "password": "other"})
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestLogin_WrongPassword(t *testing.T) {
	r := newAuthRouter(t)

	w := postJSON(r, "/api/register", map[string]string{"username": "alice", "password": "s3cret"})
	require.Equal(t, http.StatusCreated, w.Code)

	w = postJSON(r, "/api/login", map[string]string{"username": "alice", "password": "wrong"})
	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestLogin_MissingFields(t *testing.T) {
	r := newAuthRouter(t)
	w := postJSON(r, "/api/login", map[string]string{"username": "alice"})
	require.Equal(t, http.StatusBadRequest, w.Code)
}
