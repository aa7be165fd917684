package handlers

import (
	"net/http"
	"time"

	"taskboard-api/internal/notify"
	"taskboard-api/internal/services"

	"github.com/gin-gonic/gin"
)

// ActivityHandler exposes the read path of a project's audit trail.
type ActivityHandler struct {
	activity *services.ActivityService
}

// NewActivityHandler creates a new ActivityHandler
func NewActivityHandler(activity *services.ActivityService) *ActivityHandler {
	return &ActivityHandler{activity: activity}
}

// ActivityLogResponse renders one trail entry with the acting username.
type ActivityLogResponse struct {
	User         string    `json:"user"`
	Action       string    `json:"action"`
	TaskTitle    string    `json:"task_title"`
	FromStatus   string    `json:"from_status,omitempty"`
	ToStatus     string    `json:"to_status,omitempty"`
	EditedFields string    `json:"edited_fields,omitempty"`
	Timestamp    time.Time `json:"timestamp"`
}

// ListActivityLogs handles GET /api/projects/:project_id/activity-logs
// Entries come back newest-first.
func (h *ActivityHandler) ListActivityLogs(c *gin.Context) {
	projectID, ok := paramUint(c, "project_id")
	if !ok {
		return
	}

	entries, err := h.activity.Trail(projectID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch activity logs"})
		return
	}

	resp := make([]ActivityLogResponse, 0, len(entries))
	for _, e := range entries {
		user := e.User.Username
		if user == "" {
			user = notify.AnonymousUser
		}
		resp = append(resp, ActivityLogResponse{
			User:         user,
			Action:       string(e.Action),
			TaskTitle:    e.TaskTitle,
			FromStatus:   e.FromStatus,
			ToStatus:     e.ToStatus,
			EditedFields: e.EditedFields,
			Timestamp:    e.Timestamp,
		})
	}

	c.JSON(http.StatusOK, resp)
}
