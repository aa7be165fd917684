package realtime

import (
	"encoding/json"
	"log"
	"strings"
	"sync"
	"sync/atomic"

	"taskboard-api/internal/models"
	"taskboard-api/internal/notify"
)

// RoomKind selects which project room a session is addressed to.
type RoomKind string

const (
	RoomTask RoomKind = "task"
	RoomChat RoomKind = "chat"
)

// Session states. Connecting → Joined → Closed; Closed is terminal.
const (
	StateConnecting int32 = iota
	StateJoined
	StateClosed
)

// Conn abstracts the client transport so sessions can be tested
// without a network connection.
type Conn interface {
	ReadMessage() ([]byte, error)
	WriteMessage(data []byte) error
	Close() error
}

// TaskEditor applies a partial task update arriving over a session.
type TaskEditor interface {
	ApplyRealtimeEdit(projectID uint, raw json.RawMessage) (*models.Task, error)
}

// ChatSender persists a chat message and returns the payload to relay.
type ChatSender interface {
	Append(projectID uint, user *models.User, message string) (notify.ChatEvent, error)
}

// Session governs one client connection's lifecycle: join the topic,
// run the message loop, leave on close. It implements Client so the
// registry can deliver broadcasts to it.
type Session struct {
	registry  *Registry
	topic     string
	kind      RoomKind
	projectID uint
	user      *models.User
	conn      Conn
	tasks     TaskEditor
	chat      ChatSender

	state     atomic.Int32
	closeOnce sync.Once
}

// NewSession creates a session in the Connecting state for the given
// project room. The topic key is resolved from the addressing
// parameters here; registration happens in Join.
func NewSession(registry *Registry, kind RoomKind, projectID uint, user *models.User, conn Conn, tasks TaskEditor, chat ChatSender) *Session {
	topic := TaskTopic(projectID)
	if kind == RoomChat {
		topic = ChatTopic(projectID)
	}
	s := &Session{
		registry:  registry,
		topic:     topic,
		kind:      kind,
		projectID: projectID,
		user:      user,
		conn:      conn,
		tasks:     tasks,
		chat:      chat,
	}
	s.state.Store(StateConnecting)
	return s
}

// Topic returns the session's resolved topic key.
func (s *Session) Topic() string {
	return s.topic
}

// State returns the session's current lifecycle state.
func (s *Session) State() int32 {
	return s.state.Load()
}

// Join registers the session with the registry. The transition is
// unconditional once the transport has accepted the connection.
func (s *Session) Join() {
	if !s.state.CompareAndSwap(StateConnecting, StateJoined) {
		return
	}
	s.registry.Join(s.topic, s)
}

// Send implements Client by writing one broadcast frame to the
// transport, in delivery order, without buffering.
func (s *Session) Send(message []byte) bool {
	if s.state.Load() != StateJoined {
		return false
	}
	return s.conn.WriteMessage(message) == nil
}

// Close leaves the registry and releases the transport. Closing twice
// is safe; after Close no broadcast reaches this session.
func (s *Session) Close() {
	s.closeOnce.Do(func() {
		s.state.Store(StateClosed)
		s.registry.Leave(s.topic, s)
		_ = s.conn.Close()
	})
}

// Run joins the topic and consumes inbound frames until the transport
// closes, then cleans up. Invalid inbound payloads are dropped with a
// diagnostic; they never end the session.
func (s *Session) Run() {
	defer s.Close()
	s.Join()
	for {
		data, err := s.conn.ReadMessage()
		if err != nil {
			// Normal close or transport failure; exit loop
			return
		}
		s.handleInbound(data)
	}
}

func (s *Session) handleInbound(data []byte) {
	switch s.kind {
	case RoomTask:
		s.handleTaskEdit(data)
	case RoomChat:
		s.handleChatMessage(data)
	}
}

// handleTaskEdit applies {"task": {"id": N, ...partial}} and echoes the
// updated task to every room member, the sender included.
func (s *Session) handleTaskEdit(data []byte) {
	var msg struct {
		Task json.RawMessage `json:"task"`
	}
	if err := json.Unmarshal(data, &msg); err != nil || len(msg.Task) == 0 {
		log.Printf("session %s: dropping malformed task frame", s.topic)
		return
	}

	task, err := s.tasks.ApplyRealtimeEdit(s.projectID, msg.Task)
	if err != nil {
		log.Printf("session %s: dropping invalid task edit: %v", s.topic, err)
		return
	}

	s.registry.Broadcast(s.topic, notify.NewTaskUpdateEvent(task))
}

// handleChatMessage persists {"message": "..."} attributed to the
// session's actor and relays it to the room.
func (s *Session) handleChatMessage(data []byte) {
	var msg struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(data, &msg); err != nil || strings.TrimSpace(msg.Message) == "" {
		log.Printf("session %s: dropping malformed chat frame", s.topic)
		return
	}

	evt, err := s.chat.Append(s.projectID, s.user, msg.Message)
	if err != nil {
		log.Printf("session %s: dropping chat message: %v", s.topic, err)
		return
	}

	s.registry.Broadcast(s.topic, evt)
}
