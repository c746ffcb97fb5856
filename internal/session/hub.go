// Package session tracks the games hosted by one server so they can be
// capped and told about shutdown.
package session

import (
	"errors"
	"sync"
	"time"
)

// ErrFull is returned by Register when the hub is at capacity.
var ErrFull = errors.New("server full")

// EventType identifies an event sent from the hub to a session.
type EventType int

const (
	EventServerShutdown EventType = iota
)

// Event is delivered on a session's Events channel.
type Event struct {
	Type EventType
}

// Handle is one registered session.
type Handle struct {
	ID       int
	Username string
	Events   chan Event // Closed on Unregister
	Joined   time.Time
}

// Hub is the set of live sessions. Safe for concurrent use.
type Hub struct {
	mu          sync.RWMutex
	sessions    map[int]*Handle
	nextID      int
	maxSessions int
}

// NewHub creates a hub allowing up to maxSessions concurrent sessions.
// maxSessions <= 0 means unlimited.
func NewHub(maxSessions int) *Hub {
	return &Hub{
		sessions:    make(map[int]*Handle),
		nextID:      1,
		maxSessions: maxSessions,
	}
}

// Register adds a session for username.
func (h *Hub) Register(username string) (*Handle, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.maxSessions > 0 && len(h.sessions) >= h.maxSessions {
		return nil, ErrFull
	}

	handle := &Handle{
		ID:       h.nextID,
		Username: username,
		Events:   make(chan Event, 4),
		Joined:   time.Now(),
	}
	h.nextID++
	h.sessions[handle.ID] = handle
	return handle, nil
}

// Unregister removes a session and closes its event channel.
func (h *Hub) Unregister(id int) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if handle, ok := h.sessions[id]; ok {
		close(handle.Events)
		delete(h.sessions, id)
	}
}

// Count returns the number of live sessions.
func (h *Hub) Count() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.sessions)
}

// Usernames returns the names of live sessions, unordered.
func (h *Hub) Usernames() []string {
	h.mu.RLock()
	defer h.mu.RUnlock()
	names := make([]string, 0, len(h.sessions))
	for _, handle := range h.sessions {
		names = append(names, handle.Username)
	}
	return names
}

// Shutdown notifies every session about the shutdown and waits for them to
// unregister, up to timeout.
func (h *Hub) Shutdown(timeout time.Duration) {
	h.mu.RLock()
	for _, handle := range h.sessions {
		select {
		case handle.Events <- Event{Type: EventServerShutdown}:
		default:
		}
	}
	h.mu.RUnlock()

	deadline := time.After(timeout)
	ticker := time.NewTicker(50 * time.Millisecond)
	defer ticker.Stop()

	for {
		if h.Count() == 0 {
			return
		}
		select {
		case <-deadline:
			return
		case <-ticker.C:
		}
	}
}
