package models

import (
	"time"
)

// TaskStatus represents the board column a task sits in
type TaskStatus string

const (
	StatusTodo  TaskStatus = "To-Do"
	StatusDoing TaskStatus = "Doing"
	StatusDone  TaskStatus = "Done"
)

// ValidStatus reports whether s is one of the known board columns.
func ValidStatus(s TaskStatus) bool {
	switch s {
	case StatusTodo, StatusDoing, StatusDone:
		return true
	}
	return false
}

// Task represents a unit of work on a project board.
// Tasks within a project are listed sorted by Order ascending.
type Task struct {
	ID          uint       `json:"id" gorm:"primaryKey"`
	Title       string     `json:"title" gorm:"not null"`
	Description string     `json:"description"`
	Status      TaskStatus `json:"status" gorm:"not null;default:'To-Do'"`
	Owners      []User     `json:"owners,omitempty" gorm:"many2many:task_owners"`
	Order       int        `json:"order" gorm:"column:display_order;default:0"`
	Percentage  int        `json:"percentage" gorm:"default:0"`
	Deadline    *time.Time `json:"deadline"`
	ProjectID   uint       `json:"project_id" gorm:"index;not null"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// TableName specifies the table name for Task Model
func (Task) TableName() string {
	return "tasks"
}

// OwnerNames returns the usernames of the task's owners.
func (t *Task) OwnerNames() []string {
	names := make([]string, 0, len(t.Owners))
	for _, u := range t.Owners {
		names = append(names, u.Username)
	}
	return names
}
