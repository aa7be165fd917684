package repository

import (
	"taskboard-api/internal/models"

	"gorm.io/gorm"
)

// GormActivityLogRepository is a GORM implementation of ActivityLogRepository
type GormActivityLogRepository struct {
	db *gorm.DB
}

// NewActivityLogRepository creates a new ActivityLogRepository
func NewActivityLogRepository(db *gorm.DB) ActivityLogRepository {
	return &GormActivityLogRepository{db: db}
}

func (r *GormActivityLogRepository) Create(entry *models.ActivityLog) error {
	return r.db.Create(entry).Error
}

func (r *GormActivityLogRepository) ListByProject(projectID uint) ([]models.ActivityLog, error) {
	var entries []models.ActivityLog
	err := r.db.
		Where("project_id = ?", projectID).
		Order("timestamp desc, id desc").
		Preload("User").
		Find(&entries).Error
	if err != nil {
		return nil, err
	}
	return entries, nil
}
