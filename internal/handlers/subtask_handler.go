package handlers

import (
	"net/http"

	"taskboard-api/internal/middleware"
	"taskboard-api/internal/services"

	"github.com/gin-gonic/gin"
)

// SubTaskHandler exposes subtask endpoints within a task.
type SubTaskHandler struct {
	subtasks *services.SubTaskService
}

// NewSubTaskHandler creates a new SubTaskHandler
func NewSubTaskHandler(subtasks *services.SubTaskService) *SubTaskHandler {
	return &SubTaskHandler{subtasks: subtasks}
}

// CreateSubTaskRequest represents the request payload for creating a subtask
type CreateSubTaskRequest struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description"`
	Completed   bool   `json:"completed"`
}

// UpdateSubTaskRequest represents the request payload for updating a subtask
type UpdateSubTaskRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Completed   *bool   `json:"completed"`
}

// ListSubTasks handles GET /api/tasks/:task_id/subtasks
func (h *SubTaskHandler) ListSubTasks(c *gin.Context) {
	taskID, ok := paramUint(c, "task_id")
	if !ok {
		return
	}

	subtasks, err := h.subtasks.List(taskID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"subtasks": subtasks,
		"count":    len(subtasks),
	})
}

// CreateSubTask handles POST /api/tasks/:task_id/subtasks
func (h *SubTaskHandler) CreateSubTask(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User ID not found in token"})
		return
	}
	taskID, ok := paramUint(c, "task_id")
	if !ok {
		return
	}

	var req CreateSubTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	subtask, err := h.subtasks.Create(taskID, userID, services.CreateSubTaskInput{
		Title:       req.Title,
		Description: req.Description,
		Completed:   req.Completed,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, subtask)
}

// UpdateSubTask handles PUT /api/tasks/:task_id/subtasks/:id
func (h *SubTaskHandler) UpdateSubTask(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User ID not found in token"})
		return
	}
	subtaskID, ok := paramUint(c, "id")
	if !ok {
		return
	}

	var req UpdateSubTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	subtask, err := h.subtasks.Update(subtaskID, userID, services.UpdateSubTaskInput{
		Title:       req.Title,
		Description: req.Description,
		Completed:   req.Completed,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, subtask)
}

// DeleteSubTask handles DELETE /api/tasks/:task_id/subtasks/:id
func (h *SubTaskHandler) DeleteSubTask(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User ID not found in token"})
		return
	}
	subtaskID, ok := paramUint(c, "id")
	if !ok {
		return
	}

	if err := h.subtasks.Delete(subtaskID, userID); err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Subtask deleted successfully",
		"id":      subtaskID,
	})
}
