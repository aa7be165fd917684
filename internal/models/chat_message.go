package models

import (
	"time"
)

// ChatMessage is one append-only message in a project's chat room,
// ordered by timestamp ascending.
type ChatMessage struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	ProjectID uint      `json:"project_id" gorm:"index;not null"`
	UserID    uint      `json:"user_id" gorm:"index"`
	User      User      `json:"-" gorm:"foreignKey:UserID"`
	Message   string    `json:"message" gorm:"not null"`
	Timestamp time.Time `json:"timestamp" gorm:"autoCreateTime"`
}

// TableName specifies the table name for ChatMessage Model
func (ChatMessage) TableName() string {
	return "chat_messages"
}
