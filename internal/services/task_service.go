package services

import (
	"encoding/json"
	"errors"
	"time"

	"taskboard-api/internal/activity"
	"taskboard-api/internal/models"
	"taskboard-api/internal/notify"
	"taskboard-api/internal/realtime"
	"taskboard-api/internal/repository"

	"gorm.io/gorm"
)

// Broadcaster delivers a payload to every session joined to a topic.
// Implemented by realtime.Registry; faked in tests.
type Broadcaster interface {
	Broadcast(topic string, payload any)
}

// MembershipChecker answers project membership questions.
// Implemented by ProjectService.
type MembershipChecker interface {
	IsMember(projectID, userID uint) (bool, error)
}

// TaskService orchestrates task mutations: persist, diff, record the
// activity trail and broadcast the change to the project's task room.
type TaskService struct {
	tasks       repository.TaskRepository
	users       repository.UserRepository
	members     MembershipChecker
	logger      *activity.Logger
	broadcaster Broadcaster
}

// NewTaskService creates a new TaskService
func NewTaskService(tasks repository.TaskRepository, users repository.UserRepository, members MembershipChecker, logger *activity.Logger, broadcaster Broadcaster) *TaskService {
	return &TaskService{
		tasks:       tasks,
		users:       users,
		members:     members,
		logger:      logger,
		broadcaster: broadcaster,
	}
}

// CreateTaskInput represents input for creating a task
type CreateTaskInput struct {
	Title       string
	Description string
	Status      models.TaskStatus
	OwnerIDs    []uint
	Order       int
	Percentage  int
	Deadline    *time.Time
}

// UpdateTaskInput represents a partial task update; nil fields are
// left untouched
type UpdateTaskInput struct {
	Title       *string
	Description *string
	Status      *models.TaskStatus
	OwnerIDs    *[]uint
	Order       *int
	Percentage  *int
	Deadline    *time.Time
}

// List returns a project's tasks sorted by display order, provided the
// actor is a member of the project.
func (s *TaskService) List(projectID, actorID uint) ([]models.Task, error) {
	if err := s.requireMember(projectID, actorID); err != nil {
		return nil, err
	}
	return s.tasks.ListByProject(projectID)
}

// Get returns one task by ID.
func (s *TaskService) Get(taskID uint) (*models.Task, error) {
	task, err := s.tasks.FindByID(taskID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, err
	}
	return task, nil
}

// Create persists a new task together with its "created" audit entry,
// then broadcasts the creation to the project's task room.
func (s *TaskService) Create(projectID, actorID uint, input CreateTaskInput) (*models.Task, error) {
	if input.Title == "" {
		return nil, ErrTitleRequired
	}
	if err := s.requireMember(projectID, actorID); err != nil {
		return nil, err
	}

	status := input.Status
	if status == "" {
		status = models.StatusTodo
	}
	if !models.ValidStatus(status) {
		return nil, ErrInvalidStatus
	}
	if input.Percentage < 0 || input.Percentage > 100 {
		return nil, ErrInvalidPercentage
	}

	owners, err := s.users.FindByIDs(input.OwnerIDs)
	if err != nil {
		return nil, err
	}

	task := &models.Task{
		Title:       input.Title,
		Description: input.Description,
		Status:      status,
		Owners:      owners,
		Order:       input.Order,
		Percentage:  input.Percentage,
		Deadline:    input.Deadline,
		ProjectID:   projectID,
	}

	actor := s.actor(actorID)
	logEntry := s.logger.TaskCreated(actorID, projectID, task.Title)
	if err := s.tasks.Create(task, logEntry); err != nil {
		return nil, err
	}

	s.broadcaster.Broadcast(realtime.TaskTopic(projectID), notify.NewTaskEvent(task, actor, models.ActionCreated))
	return task, nil
}

// Update applies a partial update. A status change records one "moved"
// entry and broadcast; otherwise changed title/description/owner fields
// record one "edited" entry and broadcast. The entity write and the
// audit entry commit in the same transaction.
func (s *TaskService) Update(taskID, actorID uint, input UpdateTaskInput) (*models.Task, error) {
	task, err := s.Get(taskID)
	if err != nil {
		return nil, err
	}
	if err := s.requireMember(task.ProjectID, actorID); err != nil {
		return nil, err
	}

	original := struct {
		Title       string
		Description string
		Status      models.TaskStatus
		Owners      []string
	}{task.Title, task.Description, task.Status, task.OwnerNames()}

	if input.Title != nil {
		if *input.Title == "" {
			return nil, ErrTitleRequired
		}
		task.Title = *input.Title
	}
	if input.Description != nil {
		task.Description = *input.Description
	}
	if input.Status != nil {
		if !models.ValidStatus(*input.Status) {
			return nil, ErrInvalidStatus
		}
		task.Status = *input.Status
	}
	if input.Order != nil {
		task.Order = *input.Order
	}
	if input.Percentage != nil {
		if *input.Percentage < 0 || *input.Percentage > 100 {
			return nil, ErrInvalidPercentage
		}
		task.Percentage = *input.Percentage
	}
	if input.Deadline != nil {
		task.Deadline = input.Deadline
	}

	var setOwners []models.User
	if input.OwnerIDs != nil {
		owners, err := s.users.FindByIDs(*input.OwnerIDs)
		if err != nil {
			return nil, err
		}
		setOwners = owners
		task.Owners = owners
	}

	var changes []activity.FieldChange
	if original.Title != task.Title {
		changes = append(changes, activity.FieldChange{Field: "title", From: original.Title, To: task.Title})
	}
	if original.Description != task.Description {
		changes = append(changes, activity.FieldChange{Field: "description", From: original.Description, To: task.Description})
	}
	if ownerChange, changed := activity.DiffOwners(original.Owners, task.OwnerNames()); changed {
		changes = append(changes, ownerChange)
	}

	actor := s.actor(actorID)
	moved := original.Status != task.Status

	var logEntry *models.ActivityLog
	switch {
	case moved:
		logEntry = s.logger.TaskMoved(actorID, task.ProjectID, task.Title, original.Status, task.Status)
	case len(changes) > 0:
		logEntry = s.logger.TaskEdited(actorID, task.ProjectID, task.Title, changes)
	}

	if err := s.tasks.Update(task, setOwners, logEntry); err != nil {
		return nil, err
	}

	topic := realtime.TaskTopic(task.ProjectID)
	switch {
	case moved:
		s.broadcaster.Broadcast(topic, notify.NewTaskMovedEvent(task, actor, original.Status, task.Status))
	case len(changes) > 0:
		s.broadcaster.Broadcast(topic, notify.NewTaskEditedEvent(task, actor, changes))
	}

	return task, nil
}

// Delete removes a task and its subtasks, records a "deleted" entry
// and broadcasts the deletion.
func (s *TaskService) Delete(taskID, actorID uint) error {
	task, err := s.Get(taskID)
	if err != nil {
		return err
	}
	if err := s.requireMember(task.ProjectID, actorID); err != nil {
		return err
	}

	actor := s.actor(actorID)
	logEntry := s.logger.TaskDeleted(actorID, task.ProjectID, task.Title)
	if err := s.tasks.Delete(task, logEntry); err != nil {
		return err
	}

	s.broadcaster.Broadcast(realtime.TaskTopic(task.ProjectID), notify.NewTaskEvent(task, actor, models.ActionDeleted))
	return nil
}

// realtimeEdit is the partial update shape accepted over a task-room
// session: {"id": N, ...changed fields...}.
type realtimeEdit struct {
	ID          uint               `json:"id"`
	Title       *string            `json:"title"`
	Description *string            `json:"description"`
	Status      *models.TaskStatus `json:"status"`
	Order       *int               `json:"order"`
	Percentage  *int               `json:"percentage"`
	Deadline    *time.Time         `json:"deadline"`
}

// ApplyRealtimeEdit validates and persists a partial update arriving
// over a session joined to the project's task room. No activity entry
// is recorded; the caller echoes the updated task to the room.
func (s *TaskService) ApplyRealtimeEdit(projectID uint, raw json.RawMessage) (*models.Task, error) {
	var edit realtimeEdit
	if err := json.Unmarshal(raw, &edit); err != nil {
		return nil, err
	}
	if edit.ID == 0 {
		return nil, ErrTaskNotFound
	}

	task, err := s.Get(edit.ID)
	if err != nil {
		return nil, err
	}
	if task.ProjectID != projectID {
		return nil, ErrTaskNotInProject
	}

	if edit.Title != nil {
		if *edit.Title == "" {
			return nil, ErrTitleRequired
		}
		task.Title = *edit.Title
	}
	if edit.Description != nil {
		task.Description = *edit.Description
	}
	if edit.Status != nil {
		if !models.ValidStatus(*edit.Status) {
			return nil, ErrInvalidStatus
		}
		task.Status = *edit.Status
	}
	if edit.Order != nil {
		task.Order = *edit.Order
	}
	if edit.Percentage != nil {
		if *edit.Percentage < 0 || *edit.Percentage > 100 {
			return nil, ErrInvalidPercentage
		}
		task.Percentage = *edit.Percentage
	}
	if edit.Deadline != nil {
		task.Deadline = edit.Deadline
	}

	if err := s.tasks.Update(task, nil, nil); err != nil {
		return nil, err
	}
	return task, nil
}

func (s *TaskService) requireMember(projectID, actorID uint) error {
	ok, err := s.members.IsMember(projectID, actorID)
	if err != nil {
		return err
	}
	if !ok {
		return ErrNotProjectMember
	}
	return nil
}

// actor resolves the acting user; an unknown ID yields nil, rendered
// as "Anonymous" in payloads.
func (s *TaskService) actor(userID uint) *models.User {
	user, err := s.users.FindByID(userID)
	if err != nil {
		return nil
	}
	return user
}
