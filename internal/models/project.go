package models

import (
	"time"
)

// Project groups tasks, chat messages and activity logs for a team.
// The manager, when set, is always one of the members.
type Project struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	Name        string    `json:"name" gorm:"not null"`
	Description string    `json:"description"`
	ManagerID   *uint     `json:"manager_id" gorm:"column:manager_id"`
	Members     []User    `json:"members,omitempty" gorm:"many2many:project_members"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// TableName specifies the table name for Project Model
func (Project) TableName() string {
	return "projects"
}
