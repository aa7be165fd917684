package repository

import (
	"taskboard-api/internal/models"

	"gorm.io/gorm"
)

// GormProjectRepository is a GORM implementation of ProjectRepository
type GormProjectRepository struct {
	db *gorm.DB
}

// NewProjectRepository creates a new ProjectRepository
func NewProjectRepository(db *gorm.DB) ProjectRepository {
	return &GormProjectRepository{db: db}
}

func (r *GormProjectRepository) Create(project *models.Project) error {
	return r.db.Create(project).Error
}

func (r *GormProjectRepository) FindByID(id uint) (*models.Project, error) {
	var project models.Project
	if err := r.db.Preload("Members").First(&project, id).Error; err != nil {
		return nil, err
	}
	return &project, nil
}

func (r *GormProjectRepository) ListForUser(userID uint) ([]models.Project, error) {
	var projects []models.Project
	err := r.db.
		Joins("JOIN project_members ON project_members.project_id = projects.id").
		Where("project_members.user_id = ?", userID).
		Preload("Members").
		Find(&projects).Error
	if err != nil {
		return nil, err
	}
	return projects, nil
}

func (r *GormProjectRepository) Save(project *models.Project) error {
	return r.db.Omit("Members").Save(project).Error
}

// Delete removes the project and everything it owns. SQLite here does
// not enforce foreign keys, so the cascade is explicit.
func (r *GormProjectRepository) Delete(id uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var taskIDs []uint
		if err := tx.Model(&models.Task{}).Where("project_id = ?", id).Pluck("id", &taskIDs).Error; err != nil {
			return err
		}
		if len(taskIDs) > 0 {
			if err := tx.Where("task_id IN ?", taskIDs).Delete(&models.SubTask{}).Error; err != nil {
				return err
			}
			if err := tx.Exec("DELETE FROM task_owners WHERE task_id IN ?", taskIDs).Error; err != nil {
				return err
			}
			if err := tx.Where("project_id = ?", id).Delete(&models.Task{}).Error; err != nil {
				return err
			}
		}
		if err := tx.Where("project_id = ?", id).Delete(&models.ActivityLog{}).Error; err != nil {
			return err
		}
		if err := tx.Where("project_id = ?", id).Delete(&models.ChatMessage{}).Error; err != nil {
			return err
		}
		if err := tx.Exec("DELETE FROM project_members WHERE project_id = ?", id).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Project{}, id).Error
	})
}

func (r *GormProjectRepository) AddMember(projectID, userID uint) error {
	project := models.Project{ID: projectID}
	return r.db.Model(&project).Association("Members").Append(&models.User{ID: userID})
}

func (r *GormProjectRepository) RemoveMember(projectID, userID uint) error {
	project := models.Project{ID: projectID}
	return r.db.Model(&project).Association("Members").Delete(&models.User{ID: userID})
}

func (r *GormProjectRepository) IsMember(projectID, userID uint) (bool, error) {
	var count int64
	err := r.db.Table("project_members").
		Where("project_id = ? AND user_id = ?", projectID, userID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *GormProjectRepository) Members(projectID uint) ([]models.User, error) {
	var users []models.User
	err := r.db.
		Joins("JOIN project_members ON project_members.user_id = users.id").
		Where("project_members.project_id = ?", projectID).
		Find(&users).Error
	if err != nil {
		return nil, err
	}
	return users, nil
}
