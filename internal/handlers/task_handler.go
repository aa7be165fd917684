package handlers

import (
	"net/http"
	"time"

	"taskboard-api/internal/middleware"
	"taskboard-api/internal/models"
	"taskboard-api/internal/services"

	"github.com/gin-gonic/gin"
)

// TaskHandler exposes task endpoints within a project. Every mutation
// runs the activity-log + notify + broadcast path in the task service.
type TaskHandler struct {
	tasks *services.TaskService
}

// NewTaskHandler creates a new TaskHandler
func NewTaskHandler(tasks *services.TaskService) *TaskHandler {
	return &TaskHandler{tasks: tasks}
}

// CreateTaskRequest represents the request payload for creating a task
type CreateTaskRequest struct {
	Title       string            `json:"title" binding:"required"`
	Description string            `json:"description"`
	Status      models.TaskStatus `json:"status"`
	Owners      []uint            `json:"owners"`
	Order       int               `json:"order"`
	Percentage  int               `json:"percentage"`
	Deadline    *time.Time        `json:"deadline"`
}

// UpdateTaskRequest represents the request payload for updating a task
type UpdateTaskRequest struct {
	Title       *string            `json:"title"`
	Description *string            `json:"description"`
	Status      *models.TaskStatus `json:"status"`
	Owners      *[]uint            `json:"owners"`
	Order       *int               `json:"order"`
	Percentage  *int               `json:"percentage"`
	Deadline    *time.Time         `json:"deadline"`
}

// ListTasks handles GET /api/projects/:project_id/tasks
// Returns the project's tasks sorted by display order.
func (h *TaskHandler) ListTasks(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User ID not found in token"})
		return
	}
	projectID, ok := paramUint(c, "project_id")
	if !ok {
		return
	}

	tasks, err := h.tasks.List(projectID, userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"tasks": tasks,
		"count": len(tasks),
	})
}

// GetTask handles GET /api/projects/:project_id/tasks/:id
func (h *TaskHandler) GetTask(c *gin.Context) {
	taskID, ok := paramUint(c, "id")
	if !ok {
		return
	}

	task, err := h.tasks.Get(taskID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, task)
}

// CreateTask handles POST /api/projects/:project_id/tasks
func (h *TaskHandler) CreateTask(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User ID not found in token"})
		return
	}
	projectID, ok := paramUint(c, "project_id")
	if !ok {
		return
	}

	var req CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	task, err := h.tasks.Create(projectID, userID, services.CreateTaskInput{
		Title:       req.Title,
		Description: req.Description,
		Status:      req.Status,
		OwnerIDs:    req.Owners,
		Order:       req.Order,
		Percentage:  req.Percentage,
		Deadline:    req.Deadline,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, task)
}

// UpdateTask handles PUT /api/projects/:project_id/tasks/:id
func (h *TaskHandler) UpdateTask(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User ID not found in token"})
		return
	}
	taskID, ok := paramUint(c, "id")
	if !ok {
		return
	}

	var req UpdateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	task, err := h.tasks.Update(taskID, userID, services.UpdateTaskInput{
		Title:       req.Title,
		Description: req.Description,
		Status:      req.Status,
		OwnerIDs:    req.Owners,
		Order:       req.Order,
		Percentage:  req.Percentage,
		Deadline:    req.Deadline,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, task)
}

// DeleteTask handles DELETE /api/projects/:project_id/tasks/:id
func (h *TaskHandler) DeleteTask(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User ID not found in token"})
		return
	}
	taskID, ok := paramUint(c, "id")
	if !ok {
		return
	}

	if err := h.tasks.Delete(taskID, userID); err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Task deleted successfully",
		"id":      taskID,
	})
}
