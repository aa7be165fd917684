package routes

import (
	"taskboard-api/internal/handlers"
	"taskboard-api/internal/middleware"

	"github.com/gin-gonic/gin"
)

// Handlers bundles the HTTP and WebSocket handlers the router mounts.
type Handlers struct {
	Auth     *handlers.AuthHandler
	Users    *handlers.UserHandler
	Projects *handlers.ProjectHandler
	Tasks    *handlers.TaskHandler
	SubTasks *handlers.SubTaskHandler
	Activity *handlers.ActivityHandler
	Chat     *handlers.ChatHandler
	WS       *handlers.WSHandler
}

func SetupRoutes(h *Handlers) *gin.Engine {
	// Create a new GIN Router
	ginRouter := gin.Default()

	// CORS middleware (for frontend integration)
	ginRouter.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE, PATCH")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204) // This depends on the implementation of the frontend
			return
		}

		c.Next()
	})

	// Health check endpoint
	ginRouter.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"message": "Server Taskboard API is running in Health Check Endpoint",
		})
	})

	// Public routes (no authentication required)
	api := ginRouter.Group("/api")
	{
		api.POST("/register", h.Auth.Register)
		api.POST("/login", h.Auth.Login)
	}

	// Protected routes (authentication required)
	protectedRoutes := api.Group("")
	protectedRoutes.Use(middleware.JWTAuthMiddleware())
	{
		// Users endpoints
		protectedRoutes.GET("/users", h.Users.GetAllUsers)
		protectedRoutes.GET("/users/:username", h.Users.GetUserByUsername)

		// Project endpoints
		protectedRoutes.GET("/projects", h.Projects.ListProjects)
		protectedRoutes.POST("/projects", h.Projects.CreateProject)
		protectedRoutes.GET("/projects/:project_id", h.Projects.GetProject)
		protectedRoutes.DELETE("/projects/:project_id", h.Projects.DeleteProject)
		protectedRoutes.GET("/projects/:project_id/members", h.Projects.GetMembers)
		protectedRoutes.POST("/projects/:project_id/invite", h.Projects.InviteMembers)
		protectedRoutes.PATCH("/projects/:project_id/manager", h.Projects.SetManager)
		protectedRoutes.DELETE("/projects/:project_id/members/:member_id", h.Projects.KickMember)

		// Task endpoints (project-scoped)
		protectedRoutes.GET("/projects/:project_id/tasks", h.Tasks.ListTasks)
		protectedRoutes.POST("/projects/:project_id/tasks", h.Tasks.CreateTask)
		protectedRoutes.GET("/projects/:project_id/tasks/:id", h.Tasks.GetTask)
		protectedRoutes.PUT("/projects/:project_id/tasks/:id", h.Tasks.UpdateTask)
		protectedRoutes.DELETE("/projects/:project_id/tasks/:id", h.Tasks.DeleteTask)

		// Subtask endpoints (task-scoped)
		protectedRoutes.GET("/tasks/:task_id/subtasks", h.SubTasks.ListSubTasks)
		protectedRoutes.POST("/tasks/:task_id/subtasks", h.SubTasks.CreateSubTask)
		protectedRoutes.PUT("/tasks/:task_id/subtasks/:id", h.SubTasks.UpdateSubTask)
		protectedRoutes.DELETE("/tasks/:task_id/subtasks/:id", h.SubTasks.DeleteSubTask)

		// Read-only history endpoints
		protectedRoutes.GET("/projects/:project_id/activity-logs", h.Activity.ListActivityLogs)
		protectedRoutes.GET("/projects/:project_id/chat-messages", h.Chat.ListChatMessages)
	}

	// Realtime rooms (token via query param, validated by the same middleware)
	ws := ginRouter.Group("/ws")
	ws.Use(middleware.JWTAuthMiddleware())
	{
		ws.GET("/projects/:project_id/tasks", h.WS.TaskRoom)
		ws.GET("/projects/:project_id/chat", h.WS.ChatRoom)
	}

	return ginRouter
}
