package handlers

import (
	"net/http"
	"time"

	"taskboard-api/internal/notify"
	"taskboard-api/internal/services"

	"github.com/gin-gonic/gin"
)

// ChatHandler exposes the read path of a project's chat history.
type ChatHandler struct {
	chat *services.ChatService
}

// NewChatHandler creates a new ChatHandler
func NewChatHandler(chat *services.ChatService) *ChatHandler {
	return &ChatHandler{chat: chat}
}

// ChatMessageResponse renders one chat message with the sender's name.
type ChatMessageResponse struct {
	User      string    `json:"user"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
}

// ListChatMessages handles GET /api/projects/:project_id/chat-messages
// Messages come back oldest-first.
func (h *ChatHandler) ListChatMessages(c *gin.Context) {
	projectID, ok := paramUint(c, "project_id")
	if !ok {
		return
	}

	messages, err := h.chat.History(projectID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	resp := make([]ChatMessageResponse, 0, len(messages))
	for _, m := range messages {
		user := m.User.Username
		if user == "" {
			user = notify.AnonymousUser
		}
		resp = append(resp, ChatMessageResponse{
			User:      user,
			Message:   m.Message,
			Timestamp: m.Timestamp,
		})
	}

	c.JSON(http.StatusOK, resp)
}
