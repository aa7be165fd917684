package services

import (
	"errors"

	"taskboard-api/internal/models"
	"taskboard-api/internal/notify"
	"taskboard-api/internal/realtime"
	"taskboard-api/internal/repository"

	"gorm.io/gorm"
)

// SubTaskService orchestrates subtask mutations and their broadcasts
// to the parent project's task room. Subtask changes carry no activity
// trail entries.
type SubTaskService struct {
	subtasks    repository.SubTaskRepository
	tasks       repository.TaskRepository
	users       repository.UserRepository
	members     MembershipChecker
	broadcaster Broadcaster
}

// NewSubTaskService creates a new SubTaskService
func NewSubTaskService(subtasks repository.SubTaskRepository, tasks repository.TaskRepository, users repository.UserRepository, members MembershipChecker, broadcaster Broadcaster) *SubTaskService {
	return &SubTaskService{
		subtasks:    subtasks,
		tasks:       tasks,
		users:       users,
		members:     members,
		broadcaster: broadcaster,
	}
}

// CreateSubTaskInput represents input for creating a subtask
type CreateSubTaskInput struct {
	Title       string
	Description string
	Completed   bool
}

// UpdateSubTaskInput represents a partial subtask update
type UpdateSubTaskInput struct {
	Title       *string
	Description *string
	Completed   *bool
}

// List returns a task's subtasks.
func (s *SubTaskService) List(taskID uint) ([]models.SubTask, error) {
	if _, err := s.parentTask(taskID); err != nil {
		return nil, err
	}
	return s.subtasks.ListByTask(taskID)
}

// Create persists a subtask under a task and broadcasts it.
func (s *SubTaskService) Create(taskID, actorID uint, input CreateSubTaskInput) (*models.SubTask, error) {
	if input.Title == "" {
		return nil, ErrTitleRequired
	}
	task, err := s.parentTask(taskID)
	if err != nil {
		return nil, err
	}
	if err := s.requireMember(task.ProjectID, actorID); err != nil {
		return nil, err
	}

	subtask := &models.SubTask{
		TaskID:      taskID,
		Title:       input.Title,
		Description: input.Description,
		Completed:   input.Completed,
	}
	if err := s.subtasks.Create(subtask); err != nil {
		return nil, err
	}

	s.notify(task.ProjectID, subtask, actorID, "created")
	return subtask, nil
}

// Update applies a partial update to a subtask and broadcasts it.
func (s *SubTaskService) Update(subtaskID, actorID uint, input UpdateSubTaskInput) (*models.SubTask, error) {
	subtask, err := s.get(subtaskID)
	if err != nil {
		return nil, err
	}
	task, err := s.parentTask(subtask.TaskID)
	if err != nil {
		return nil, err
	}
	if err := s.requireMember(task.ProjectID, actorID); err != nil {
		return nil, err
	}

	if input.Title != nil {
		if *input.Title == "" {
			return nil, ErrTitleRequired
		}
		subtask.Title = *input.Title
	}
	if input.Description != nil {
		subtask.Description = *input.Description
	}
	if input.Completed != nil {
		subtask.Completed = *input.Completed
	}

	if err := s.subtasks.Save(subtask); err != nil {
		return nil, err
	}

	s.notify(task.ProjectID, subtask, actorID, "updated")
	return subtask, nil
}

// Delete removes a subtask and broadcasts the deletion.
func (s *SubTaskService) Delete(subtaskID, actorID uint) error {
	subtask, err := s.get(subtaskID)
	if err != nil {
		return err
	}
	task, err := s.parentTask(subtask.TaskID)
	if err != nil {
		return err
	}
	if err := s.requireMember(task.ProjectID, actorID); err != nil {
		return err
	}

	if err := s.subtasks.Delete(subtaskID); err != nil {
		return err
	}

	s.notify(task.ProjectID, subtask, actorID, "deleted")
	return nil
}

func (s *SubTaskService) get(subtaskID uint) (*models.SubTask, error) {
	subtask, err := s.subtasks.FindByID(subtaskID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSubTaskNotFound
		}
		return nil, err
	}
	return subtask, nil
}

func (s *SubTaskService) parentTask(taskID uint) (*models.Task, error) {
	task, err := s.tasks.FindByID(taskID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, err
	}
	return task, nil
}

func (s *SubTaskService) requireMember(projectID, actorID uint) error {
	ok, err := s.members.IsMember(projectID, actorID)
	if err != nil {
		return err
	}
	if !ok {
		return ErrNotProjectMember
	}
	return nil
}

func (s *SubTaskService) notify(projectID uint, subtask *models.SubTask, actorID uint, action string) {
	var actor *models.User
	if user, err := s.users.FindByID(actorID); err == nil {
		actor = user
	}
	s.broadcaster.Broadcast(realtime.TaskTopic(projectID), notify.NewSubTaskEvent(subtask, actor, action))
}
