package repository

import (
	"taskboard-api/internal/models"

	"gorm.io/gorm"
)

// GormTaskRepository is a GORM implementation of TaskRepository
type GormTaskRepository struct {
	db *gorm.DB
}

// NewTaskRepository creates a new TaskRepository
func NewTaskRepository(db *gorm.DB) TaskRepository {
	return &GormTaskRepository{db: db}
}

// Create writes the task and, when provided, its activity log entry in
// one transaction so neither is visible without the other.
func (r *GormTaskRepository) Create(task *models.Task, logEntry *models.ActivityLog) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(task).Error; err != nil {
			return err
		}
		if logEntry != nil {
			return tx.Create(logEntry).Error
		}
		return nil
	})
}

func (r *GormTaskRepository) FindByID(id uint) (*models.Task, error) {
	var task models.Task
	if err := r.db.Preload("Owners").First(&task, id).Error; err != nil {
		return nil, err
	}
	return &task, nil
}

func (r *GormTaskRepository) ListByProject(projectID uint) ([]models.Task, error) {
	var tasks []models.Task
	err := r.db.
		Where("project_id = ?", projectID).
		Order("display_order asc").
		Preload("Owners").
		Find(&tasks).Error
	if err != nil {
		return nil, err
	}
	return tasks, nil
}

func (r *GormTaskRepository) Update(task *models.Task, setOwners []models.User, logEntry *models.ActivityLog) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Owners").Save(task).Error; err != nil {
			return err
		}
		if setOwners != nil {
			owners := make([]*models.User, len(setOwners))
			for i := range setOwners {
				owners[i] = &setOwners[i]
			}
			if err := tx.Model(task).Association("Owners").Replace(owners); err != nil {
				return err
			}
			task.Owners = setOwners
		}
		if logEntry != nil {
			return tx.Create(logEntry).Error
		}
		return nil
	})
}

func (r *GormTaskRepository) Delete(task *models.Task, logEntry *models.ActivityLog) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("task_id = ?", task.ID).Delete(&models.SubTask{}).Error; err != nil {
			return err
		}
		if err := tx.Exec("DELETE FROM task_owners WHERE task_id = ?", task.ID).Error; err != nil {
			return err
		}
		if err := tx.Delete(&models.Task{}, task.ID).Error; err != nil {
			return err
		}
		if logEntry != nil {
			return tx.Create(logEntry).Error
		}
		return nil
	})
}
