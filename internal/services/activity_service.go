package services

import (
	"taskboard-api/internal/models"
	"taskboard-api/internal/repository"
)

// ActivityService exposes the read path of a project's audit trail.
type ActivityService struct {
	logs repository.ActivityLogRepository
}

// NewActivityService creates a new ActivityService
func NewActivityService(logs repository.ActivityLogRepository) *ActivityService {
	return &ActivityService{logs: logs}
}

// Trail returns a project's activity entries newest-first.
func (s *ActivityService) Trail(projectID uint) ([]models.ActivityLog, error) {
	return s.logs.ListByProject(projectID)
}
