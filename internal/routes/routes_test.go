package routes

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"taskboard-api/internal/activity"
	"taskboard-api/internal/handlers"
	"taskboard-api/internal/realtime"
	"taskboard-api/internal/repository"
	"taskboard-api/internal/services"
	"taskboard-api/internal/testutil"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

func newRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	db, err := testutil.NewInMemoryDB()
	require.NoError(t, err)

	userRepo := repository.NewUserRepository(db)
	projectRepo := repository.NewProjectRepository(db)
	taskRepo := repository.NewTaskRepository(db)
	subtaskRepo := repository.NewSubTaskRepository(db)
	activityRepo := repository.NewActivityLogRepository(db)
	chatRepo := repository.NewChatMessageRepository(db)

	registry := realtime.NewRegistry()
	logger := activity.NewLogger(activityRepo)

	projectService := services.NewProjectService(projectRepo, userRepo)
	taskService := services.NewTaskService(taskRepo, userRepo, projectService, logger, registry)
	subtaskService := services.NewSubTaskService(subtaskRepo, taskRepo, userRepo, projectService, registry)
	chatService := services.NewChatService(chatRepo, projectRepo)

	return SetupRoutes(&Handlers{
		Auth:     handlers.NewAuthHandler(services.NewAuthService(userRepo)),
		Users:    handlers.NewUserHandler(userRepo),
		Projects: handlers.NewProjectHandler(projectService),
		Tasks:    handlers.NewTaskHandler(taskService),
		SubTasks: handlers.NewSubTaskHandler(subtaskService),
		Activity: handlers.NewActivityHandler(services.NewActivityService(activityRepo)),
		Chat:     handlers.NewChatHandler(chatService),
		WS:       handlers.NewWSHandler(registry, taskService, chatService, userRepo),
	})
}

func TestHealth(t *testing.T) {
	r := newRouter(t)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
}

func TestProtectedRoutesRejectAnonymous(t *testing.T) {
	r := newRouter(t)
	for _, path := range []string{
		"/api/users",
		"/api/projects",
		"/api/projects/1/tasks",
		"/api/projects/1/activity-logs",
		"/api/projects/1/chat-messages",
		"/ws/projects/1/tasks",
		"/ws/projects/1/chat",
	} {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, path, nil)
		r.ServeHTTP(w, req)
		require.Equal(t, http.StatusUnauthorized, w.Code, path)
	}
}

func TestPublicRegisterRoute(t *testing.T) {
	r := newRouter(t)
	body, _ := json.Marshal(map[string]string{"username": "alice", "password": "s3cret"})
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/register", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusCreated, w.Code)
}

func TestCORSPreflight(t *testing.T) {
	r := newRouter(t)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodOptions, "/api/login", nil)
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusNoContent, w.Code)
	require.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}
