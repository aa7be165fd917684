package handlers

import (
	"fmt"
	"net/http"
	"strconv"

	"taskboard-api/internal/middleware"
	"taskboard-api/internal/services"

	"github.com/gin-gonic/gin"
)

// ProjectHandler exposes project management endpoints.
type ProjectHandler struct {
	projects *services.ProjectService
}

// NewProjectHandler creates a new ProjectHandler
func NewProjectHandler(projects *services.ProjectService) *ProjectHandler {
	return &ProjectHandler{projects: projects}
}

// CreateProjectRequest represents the request payload for creating a project
type CreateProjectRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	ManagerID   *uint  `json:"manager_id"`
	Members     []uint `json:"members"`
}

// InviteMembersRequest carries the usernames to add to a project
type InviteMembersRequest struct {
	Usernames []string `json:"usernames" binding:"required"`
}

// SetManagerRequest carries the user to promote to manager
type SetManagerRequest struct {
	ManagerID uint `json:"manager_id" binding:"required"`
}

// CreateProject handles POST /api/projects
func (h *ProjectHandler) CreateProject(c *gin.Context) {
	var req CreateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	project, err := h.projects.Create(services.CreateProjectInput{
		Name:        req.Name,
		Description: req.Description,
		ManagerID:   req.ManagerID,
		MemberIDs:   req.Members,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"project": project,
		"success": "Project created successfully!",
	})
}

// ListProjects handles GET /api/projects
// Returns the projects the authenticated user is a member of.
func (h *ProjectHandler) ListProjects(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User ID not found in token"})
		return
	}

	projects, err := h.projects.ListForUser(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch projects"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"projects": projects,
		"count":    len(projects),
	})
}

// GetProject handles GET /api/projects/:project_id
func (h *ProjectHandler) GetProject(c *gin.Context) {
	projectID, ok := paramUint(c, "project_id")
	if !ok {
		return
	}

	project, err := h.projects.Get(projectID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, project)
}

// GetMembers handles GET /api/projects/:project_id/members
func (h *ProjectHandler) GetMembers(c *gin.Context) {
	projectID, ok := paramUint(c, "project_id")
	if !ok {
		return
	}

	members, err := h.projects.Members(projectID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	resp := make([]UserResponse, 0, len(members))
	for _, m := range members {
		resp = append(resp, UserResponse{ID: m.ID, Username: m.Username, Email: m.Email})
	}
	c.JSON(http.StatusOK, resp)
}

// InviteMembers handles POST /api/projects/:project_id/invite
func (h *ProjectHandler) InviteMembers(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User ID not found in token"})
		return
	}
	projectID, ok := paramUint(c, "project_id")
	if !ok {
		return
	}

	var req InviteMembersRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.projects.InviteMembers(projectID, userID, req.Usernames); err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": "Members added successfully!"})
}

// SetManager handles PATCH /api/projects/:project_id/manager
func (h *ProjectHandler) SetManager(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User ID not found in token"})
		return
	}
	projectID, ok := paramUint(c, "project_id")
	if !ok {
		return
	}

	var req SetManagerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Manager ID is required"})
		return
	}

	manager, err := h.projects.SetManager(projectID, userID, req.ManagerID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": fmt.Sprintf("%s has been set as the manager for this project.", manager.Username),
	})
}

// KickMember handles DELETE /api/projects/:project_id/members/:member_id
func (h *ProjectHandler) KickMember(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User ID not found in token"})
		return
	}
	projectID, ok := paramUint(c, "project_id")
	if !ok {
		return
	}
	memberID, ok := paramUint(c, "member_id")
	if !ok {
		return
	}

	member, err := h.projects.KickMember(projectID, userID, memberID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": fmt.Sprintf("%s has been removed from the project.", member.Username),
	})
}

// DeleteProject handles DELETE /api/projects/:project_id
func (h *ProjectHandler) DeleteProject(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User ID not found in token"})
		return
	}
	projectID, ok := paramUint(c, "project_id")
	if !ok {
		return
	}

	if err := h.projects.Delete(projectID, userID); err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Project deleted successfully",
		"id":      projectID,
	})
}

// paramUint parses a numeric path parameter, responding 400 on failure.
func paramUint(c *gin.Context, name string) (uint, bool) {
	raw := c.Param(name)
	v, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("Invalid %s", name)})
		return 0, false
	}
	return uint(v), true
}
