package repository

import (
	"taskboard-api/internal/models"

	"gorm.io/gorm"
)

// GormChatMessageRepository is a GORM implementation of ChatMessageRepository
type GormChatMessageRepository struct {
	db *gorm.DB
}

// NewChatMessageRepository creates a new ChatMessageRepository
func NewChatMessageRepository(db *gorm.DB) ChatMessageRepository {
	return &GormChatMessageRepository{db: db}
}

func (r *GormChatMessageRepository) Create(message *models.ChatMessage) error {
	return r.db.Create(message).Error
}

func (r *GormChatMessageRepository) ListByProject(projectID uint) ([]models.ChatMessage, error) {
	var messages []models.ChatMessage
	err := r.db.
		Where("project_id = ?", projectID).
		Order("timestamp asc, id asc").
		Preload("User").
		Find(&messages).Error
	if err != nil {
		return nil, err
	}
	return messages, nil
}
