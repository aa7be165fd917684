package realtime

import (
	"encoding/json"
	"fmt"
	"log"
	"sync"
)

// Client represents a single connected realtime client.
// We keep it minimal here; the actual network conn is managed by the
// session and the ws handler.
type Client interface {
	Send(message []byte) bool
	Close()
}

// TaskTopic returns the topic key for a project's task room.
func TaskTopic(projectID uint) string {
	return fmt.Sprintf("task-room:%d", projectID)
}

// ChatTopic returns the topic key for a project's chat room.
func ChatTopic(projectID uint) string {
	return fmt.Sprintf("chat-room:%d", projectID)
}

// Registry tracks which clients are joined to which project-scoped
// topic and broadcasts payloads to them. State lives only in memory;
// after a restart clients must re-join.
type Registry struct {
	mu     sync.RWMutex
	topics map[string]map[Client]struct{}
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{
		topics: make(map[string]map[Client]struct{}),
	}
}

// Join adds a client to a topic. Joining twice is equivalent to once.
func (r *Registry) Join(topic string, client Client) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.topics[topic]; !ok {
		r.topics[topic] = make(map[Client]struct{})
	}
	r.topics[topic][client] = struct{}{}
}

// Leave removes a client from a topic; leaving a topic the client is
// not joined to is a no-op. Empty topics are cleaned up.
func (r *Registry) Leave(topic string, client Client) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if clients, ok := r.topics[topic]; ok {
		delete(clients, client)
		if len(clients) == 0 {
			delete(r.topics, topic)
		}
	}
}

// Broadcast marshals the payload once and delivers it to every client
// currently joined to the topic. Delivery is best-effort: a failed send
// to one client is logged and never blocks the others or the caller.
func (r *Registry) Broadcast(topic string, payload any) {
	data, err := json.Marshal(payload)
	if err != nil {
		log.Printf("broadcast to %s: marshal failed: %v", topic, err)
		return
	}

	r.mu.RLock()
	defer r.mu.RUnlock()
	for c := range r.topics[topic] {
		if ok := c.Send(data); !ok {
			// client write failed; its session cleans up on close
			log.Printf("broadcast to %s: delivery to one client failed", topic)
		}
	}
}
