package repository

import (
	"taskboard-api/internal/models"

	"gorm.io/gorm"
)

// GormSubTaskRepository is a GORM implementation of SubTaskRepository
type GormSubTaskRepository struct {
	db *gorm.DB
}

// NewSubTaskRepository creates a new SubTaskRepository
func NewSubTaskRepository(db *gorm.DB) SubTaskRepository {
	return &GormSubTaskRepository{db: db}
}

func (r *GormSubTaskRepository) Create(subtask *models.SubTask) error {
	return r.db.Create(subtask).Error
}

func (r *GormSubTaskRepository) FindByID(id uint) (*models.SubTask, error) {
	var subtask models.SubTask
	if err := r.db.First(&subtask, id).Error; err != nil {
		return nil, err
	}
	return &subtask, nil
}

func (r *GormSubTaskRepository) ListByTask(taskID uint) ([]models.SubTask, error) {
	var subtasks []models.SubTask
	if err := r.db.Where("task_id = ?", taskID).Find(&subtasks).Error; err != nil {
		return nil, err
	}
	return subtasks, nil
}

func (r *GormSubTaskRepository) Save(subtask *models.SubTask) error {
	return r.db.Save(subtask).Error
}

func (r *GormSubTaskRepository) Delete(id uint) error {
	return r.db.Delete(&models.SubTask{}, id).Error
}
