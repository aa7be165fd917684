package repository

import (
	"taskboard-api/internal/models"
)

// UserRepository defines the interface for user data access
type UserRepository interface {
	// Create creates a new user
	Create(user *models.User) error

	// FindByID finds a user by ID
	FindByID(id uint) (*models.User, error)

	// FindByUsername finds a user by username
	FindByUsername(username string) (*models.User, error)

	// FindByIDs returns the users matching the given IDs
	FindByIDs(ids []uint) ([]models.User, error)

	// List returns all users
	List() ([]models.User, error)
}

// ProjectRepository defines the interface for project data access
type ProjectRepository interface {
	// Create creates a new project with its member links
	Create(project *models.Project) error

	// FindByID finds a project by ID with members preloaded
	FindByID(id uint) (*models.Project, error)

	// ListForUser lists projects the user is a member of
	ListForUser(userID uint) ([]models.Project, error)

	// Save persists changes to a project
	Save(project *models.Project) error

	// Delete removes a project and all its tasks, subtasks,
	// activity logs, chat messages and member links in one transaction
	Delete(id uint) error

	// AddMember links a user to a project; adding twice is a no-op
	AddMember(projectID, userID uint) error

	// RemoveMember unlinks a user from a project
	RemoveMember(projectID, userID uint) error

	// IsMember reports whether the user is a member of the project
	IsMember(projectID, userID uint) (bool, error)

	// Members returns the project's member users
	Members(projectID uint) ([]models.User, error)
}

// TaskRepository defines the interface for task data access.
// Mutations that carry a non-nil activity log entry commit the entity
// change and the log in a single transaction.
type TaskRepository interface {
	// Create creates a task (and its owner links) plus the log entry
	Create(task *models.Task, logEntry *models.ActivityLog) error

	// FindByID finds a task by ID with owners preloaded
	FindByID(id uint) (*models.Task, error)

	// ListByProject lists a project's tasks sorted by display order
	ListByProject(projectID uint) ([]models.Task, error)

	// Update saves the task; setOwners, when non-nil, replaces the
	// owner set (pass an empty slice to clear it)
	Update(task *models.Task, setOwners []models.User, logEntry *models.ActivityLog) error

	// Delete removes the task, its subtasks and owner links
	Delete(task *models.Task, logEntry *models.ActivityLog) error
}

// SubTaskRepository defines the interface for subtask data access
type SubTaskRepository interface {
	// Create creates a new subtask
	Create(subtask *models.SubTask) error

	// FindByID finds a subtask by ID
	FindByID(id uint) (*models.SubTask, error)

	// ListByTask lists a task's subtasks
	ListByTask(taskID uint) ([]models.SubTask, error)

	// Save persists changes to a subtask
	Save(subtask *models.SubTask) error

	// Delete removes a subtask
	Delete(id uint) error
}

// ActivityLogRepository defines the interface for the audit trail.
// Entries are append-only; there is no update or delete.
type ActivityLogRepository interface {
	// Create appends an entry to the trail
	Create(entry *models.ActivityLog) error

	// ListByProject returns a project's entries newest-first
	ListByProject(projectID uint) ([]models.ActivityLog, error)
}

// ChatMessageRepository defines the interface for chat history.
// Messages are append-only.
type ChatMessageRepository interface {
	// Create appends a chat message
	Create(message *models.ChatMessage) error

	// ListByProject returns a project's messages oldest-first
	ListByProject(projectID uint) ([]models.ChatMessage, error)
}
