// Package notify builds the payloads broadcast to realtime clients.
// Constructors are pure: delivery belongs to the subscription registry.
package notify

import (
	"taskboard-api/internal/activity"
	"taskboard-api/internal/models"
)

// AnonymousUser is the actor name used when no authenticated user is
// attached to a mutation.
const AnonymousUser = "Anonymous"

// Username resolves the display name for an acting user.
func Username(u *models.User) string {
	if u == nil || u.Username == "" {
		return AnonymousUser
	}
	return u.Username
}

// TaskEvent describes a task mutation to task-room subscribers.
// FromStatus/ToStatus are set only for "moved"; EditedFields only for
// "edited".
type TaskEvent struct {
	User         string                 `json:"user"`
	ID           uint                   `json:"id"`
	Title        string                 `json:"title"`
	Description  string                 `json:"description"`
	Owner        []string               `json:"owner"`
	Status       models.TaskStatus      `json:"status"`
	ProjectID    uint                   `json:"project_id"`
	Action       models.ActivityAction  `json:"action"`
	FromStatus   string                 `json:"from_status,omitempty"`
	ToStatus     string                 `json:"to_status,omitempty"`
	EditedFields []activity.FieldChange `json:"edited_fields,omitempty"`
}

// NewTaskEvent builds the base payload for a task mutation.
func NewTaskEvent(task *models.Task, user *models.User, action models.ActivityAction) TaskEvent {
	return TaskEvent{
		User:        Username(user),
		ID:          task.ID,
		Title:       task.Title,
		Description: task.Description,
		Owner:       task.OwnerNames(),
		Status:      task.Status,
		ProjectID:   task.ProjectID,
		Action:      action,
	}
}

// NewTaskMovedEvent builds a "moved" payload carrying the transition.
func NewTaskMovedEvent(task *models.Task, user *models.User, from, to models.TaskStatus) TaskEvent {
	e := NewTaskEvent(task, user, models.ActionMoved)
	e.FromStatus = string(from)
	e.ToStatus = string(to)
	return e
}

// NewTaskEditedEvent builds an "edited" payload listing field changes.
func NewTaskEditedEvent(task *models.Task, user *models.User, changes []activity.FieldChange) TaskEvent {
	e := NewTaskEvent(task, user, models.ActionEdited)
	e.EditedFields = changes
	return e
}

// SubTaskEvent describes a subtask mutation to task-room subscribers.
type SubTaskEvent struct {
	SubTask SubTaskBody `json:"subtask"`
}

// SubTaskBody carries the mutated subtask fields.
type SubTaskBody struct {
	ID        uint   `json:"id"`
	TaskID    uint   `json:"task_id"`
	Title     string `json:"title"`
	Completed bool   `json:"completed"`
	Action    string `json:"action"`
	User      string `json:"user"`
}

// NewSubTaskEvent builds the payload for a subtask mutation.
func NewSubTaskEvent(subtask *models.SubTask, user *models.User, action string) SubTaskEvent {
	return SubTaskEvent{SubTask: SubTaskBody{
		ID:        subtask.ID,
		TaskID:    subtask.TaskID,
		Title:     subtask.Title,
		Completed: subtask.Completed,
		Action:    action,
		User:      Username(user),
	}}
}

// ChatEvent describes a chat message to chat-room subscribers.
type ChatEvent struct {
	User    string `json:"user"`
	Message string `json:"message"`
}

// NewChatEvent builds the payload for a chat message.
func NewChatEvent(user *models.User, message string) ChatEvent {
	return ChatEvent{User: Username(user), Message: message}
}

// TaskUpdateEvent echoes an inbound realtime edit back to the room.
type TaskUpdateEvent struct {
	Type string       `json:"type"`
	Task *models.Task `json:"task"`
}

// NewTaskUpdateEvent builds the echo payload for a realtime edit.
func NewTaskUpdateEvent(task *models.Task) TaskUpdateEvent {
	return TaskUpdateEvent{Type: "update", Task: task}
}
