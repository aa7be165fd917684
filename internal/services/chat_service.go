package services

import (
	"errors"
	"strings"

	"taskboard-api/internal/models"
	"taskboard-api/internal/notify"
	"taskboard-api/internal/repository"

	"gorm.io/gorm"
)

// ChatService appends messages to a project's chat history and builds
// the payload relayed to the chat room.
type ChatService struct {
	messages repository.ChatMessageRepository
	projects repository.ProjectRepository
}

// NewChatService creates a new ChatService
func NewChatService(messages repository.ChatMessageRepository, projects repository.ProjectRepository) *ChatService {
	return &ChatService{messages: messages, projects: projects}
}

// Append persists a chat message attributed to the given user and
// returns the payload to broadcast. Implements realtime.ChatSender.
func (s *ChatService) Append(projectID uint, user *models.User, message string) (notify.ChatEvent, error) {
	message = strings.TrimSpace(message)
	if message == "" {
		return notify.ChatEvent{}, ErrMessageRequired
	}
	if _, err := s.projects.FindByID(projectID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return notify.ChatEvent{}, ErrProjectNotFound
		}
		return notify.ChatEvent{}, err
	}

	record := &models.ChatMessage{
		ProjectID: projectID,
		Message:   message,
	}
	if user != nil {
		record.UserID = user.ID
	}
	if err := s.messages.Create(record); err != nil {
		return notify.ChatEvent{}, err
	}

	return notify.NewChatEvent(user, message), nil
}

// History returns a project's messages oldest-first.
func (s *ChatService) History(projectID uint) ([]models.ChatMessage, error) {
	if _, err := s.projects.FindByID(projectID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, err
	}
	return s.messages.ListByProject(projectID)
}
