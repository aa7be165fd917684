package main

import (
	"log"

	"taskboard-api/internal/activity"
	"taskboard-api/internal/config"
	"taskboard-api/internal/database"
	"taskboard-api/internal/handlers"
	"taskboard-api/internal/realtime"
	"taskboard-api/internal/repository"
	"taskboard-api/internal/routes"
	"taskboard-api/internal/services"

	"github.com/gin-gonic/gin"
)

func main() {
	cfg := config.Load()
	gin.SetMode(cfg.GinMode)

	// Init database
	database.InitDB(cfg.DBPath)
	db := database.GetDB()

	// Repositories
	userRepo := repository.NewUserRepository(db)
	projectRepo := repository.NewProjectRepository(db)
	taskRepo := repository.NewTaskRepository(db)
	subtaskRepo := repository.NewSubTaskRepository(db)
	activityRepo := repository.NewActivityLogRepository(db)
	chatRepo := repository.NewChatMessageRepository(db)

	// Realtime core
	registry := realtime.NewRegistry()
	logger := activity.NewLogger(activityRepo)

	// Services
	projectService := services.NewProjectService(projectRepo, userRepo)
	taskService := services.NewTaskService(taskRepo, userRepo, projectService, logger, registry)
	subtaskService := services.NewSubTaskService(subtaskRepo, taskRepo, userRepo, projectService, registry)
	chatService := services.NewChatService(chatRepo, projectRepo)
	activityService := services.NewActivityService(activityRepo)
	authService := services.NewAuthService(userRepo)

	// Setup the routes (public, protected and websocket routes)
	ginRoutes := routes.SetupRoutes(&routes.Handlers{
		Auth:     handlers.NewAuthHandler(authService),
		Users:    handlers.NewUserHandler(userRepo),
		Projects: handlers.NewProjectHandler(projectService),
		Tasks:    handlers.NewTaskHandler(taskService),
		SubTasks: handlers.NewSubTaskHandler(subtaskService),
		Activity: handlers.NewActivityHandler(activityService),
		Chat:     handlers.NewChatHandler(chatService),
		WS:       handlers.NewWSHandler(registry, taskService, chatService, userRepo),
	})

	// Start server
	port := ":" + cfg.Port
	log.Printf("Server starting on port %s", port)
	log.Println("API endpoints:")
	log.Println("  POST   /api/register")
	log.Println("  POST   /api/login")
	log.Println("  GET    /api/projects")
	log.Println("  POST   /api/projects")
	log.Println("  GET    /api/projects/:project_id/tasks")
	log.Println("  POST   /api/projects/:project_id/tasks")
	log.Println("  PUT    /api/projects/:project_id/tasks/:id")
	log.Println("  DELETE /api/projects/:project_id/tasks/:id")
	log.Println("  GET    /api/tasks/:task_id/subtasks")
	log.Println("  GET    /api/projects/:project_id/activity-logs")
	log.Println("  GET    /api/projects/:project_id/chat-messages")
	log.Println("  WS     /ws/projects/:project_id/tasks")
	log.Println("  WS     /ws/projects/:project_id/chat")
	log.Println("  GET    /health")

	if err := ginRoutes.Run(port); err != nil {
		log.Fatal("Failed to start server: ", err)
	}
}
