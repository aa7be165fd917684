package handlers

import (
	"errors"
	"log"
	"net/http"
	"sync"
	"time"

	"taskboard-api/internal/middleware"
	"taskboard-api/internal/models"
	"taskboard-api/internal/realtime"
	"taskboard-api/internal/repository"
	"taskboard-api/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"gorm.io/gorm"
)

// wsConn implements realtime.Conn by wrapping a websocket connection.
// Writes are serialized: broadcasts arrive from other goroutines.
type wsConn struct {
	conn *websocket.Conn
	mu   sync.Mutex
}

func (c *wsConn) ReadMessage() ([]byte, error) {
	_, data, err := c.conn.ReadMessage()
	return data, err
}

func (c *wsConn) WriteMessage(data []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.conn.SetWriteDeadline(time.Now().Add(5 * time.Second))
	return c.conn.WriteMessage(websocket.TextMessage, data)
}

func (c *wsConn) Close() error {
	return c.conn.Close()
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// CORS is already handled at Gin level; allow upgrade from any origin here
		return true
	},
}

// WSHandler upgrades connections and hands them to realtime sessions.
// It requires JWT middleware to have set "user_id" in context.
type WSHandler struct {
	registry *realtime.Registry
	tasks    *services.TaskService
	chat     *services.ChatService
	users    repository.UserRepository
}

// NewWSHandler creates a new WSHandler
func NewWSHandler(registry *realtime.Registry, tasks *services.TaskService, chat *services.ChatService, users repository.UserRepository) *WSHandler {
	return &WSHandler{
		registry: registry,
		tasks:    tasks,
		chat:     chat,
		users:    users,
	}
}

// TaskRoom handles GET /ws/projects/:project_id/tasks
func (h *WSHandler) TaskRoom(c *gin.Context) {
	h.serve(c, realtime.RoomTask)
}

// ChatRoom handles GET /ws/projects/:project_id/chat
func (h *WSHandler) ChatRoom(c *gin.Context) {
	h.serve(c, realtime.RoomChat)
}

func (h *WSHandler) serve(c *gin.Context, kind realtime.RoomKind) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authorized"})
		return
	}
	projectID, ok := paramUint(c, "project_id")
	if !ok {
		return
	}

	// The actor may have been deleted since the token was issued; the
	// session then attributes messages to "Anonymous".
	var user *models.User
	if u, err := h.users.FindByID(userID); err == nil {
		user = u
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to resolve user"})
		return
	}

	// Upgrade HTTP connection to WebSocket
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Println("websocket upgrade error:", err)
		return
	}

	transport := &wsConn{conn: conn}
	session := realtime.NewSession(h.registry, kind, projectID, user, transport, h.tasks, h.chat)

	// Heartbeat: send periodic pings; close on error
	pingTicker := time.NewTicker(30 * time.Second)
	done := make(chan struct{})
	go func() {
		for {
			select {
			case <-done:
				return
			case <-pingTicker.C:
				if err := conn.WriteControl(websocket.PingMessage, []byte("ping"), time.Now().Add(5*time.Second)); err != nil {
					// ping failed; reader loop will exit on next error
					return
				}
			}
		}
	}()
	defer func() {
		close(done)
		pingTicker.Stop()
	}()

	// Keep the connection alive via pong handler
	conn.SetReadLimit(4096)
	conn.SetReadDeadline(time.Now().Add(60 * time.Second))
	conn.SetPongHandler(func(string) error {
		conn.SetReadDeadline(time.Now().Add(60 * time.Second))
		return nil
	})

	// Run the session lifecycle: join, message loop, leave on close
	session.Run()
}
