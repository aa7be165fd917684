package models

import (
	"time"
)

// ActivityAction enumerates the kinds of recorded task mutations
type ActivityAction string

const (
	ActionCreated ActivityAction = "created"
	ActionUpdated ActivityAction = "updated"
	ActionMoved   ActivityAction = "moved"
	ActionEdited  ActivityAction = "edited"
	ActionDeleted ActivityAction = "deleted"
)

// ActivityLog is one append-only entry in a project's audit trail.
// Rows are never updated after creation.
type ActivityLog struct {
	ID           uint           `json:"id" gorm:"primaryKey"`
	UserID       uint           `json:"user_id" gorm:"index"`
	User         User           `json:"-" gorm:"foreignKey:UserID"`
	ProjectID    uint           `json:"project_id" gorm:"index;not null"`
	Action       ActivityAction `json:"action" gorm:"not null"`
	TaskTitle    string         `json:"task_title" gorm:"not null"`
	FromStatus   string         `json:"from_status,omitempty"`
	ToStatus     string         `json:"to_status,omitempty"`
	EditedFields string         `json:"edited_fields,omitempty"`
	Timestamp    time.Time      `json:"timestamp" gorm:"autoCreateTime"`
}

// TableName specifies the table name for ActivityLog Model
func (ActivityLog) TableName() string {
	return "activity_logs"
}
