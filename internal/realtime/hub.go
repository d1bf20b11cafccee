package realtime

import (
	"sync"
)

// Hub coordinates websocket sessions and topic subscriptions. It keeps one
// active Connection per user while allowing fan-out to every session
// subscribed to a pair or typing topic.
type Hub struct {
	mu            sync.RWMutex
	sessions      map[string]*Connection            // sessionID -> connection
	userSessions  map[uint]string                   // userID -> sessionID
	topics        map[string]map[string]*Connection // topic -> sessionID -> connection
	sessionTopics map[string]map[string]struct{}    // sessionID -> set of topics
}

// NewHub constructs an initialized Hub.
func NewHub() *Hub {
	return &Hub{
		sessions:      make(map[string]*Connection),
		userSessions:  make(map[uint]string),
		topics:        make(map[string]map[string]*Connection),
		sessionTopics: make(map[string]map[string]struct{}),
	}
}

// Attach registers a connection for the given user. If a previous session
// exists, it is removed and closed after the swap to enforce one active
// socket per user.
func (h *Hub) Attach(conn *Connection) {
	var previous *Connection

	h.mu.Lock()
	if existingID, ok := h.userSessions[conn.UserID]; ok {
		if existing := h.sessions[existingID]; existing != nil {
			previous = existing
			h.detachLocked(existingID)
		}
	}

	h.sessions[conn.ID] = conn
	h.userSessions[conn.UserID] = conn.ID
	h.sessionTopics[conn.ID] = make(map[string]struct{})
	h.mu.Unlock()

	conn.Start()

	if previous != nil {
		previous.Close(4001, "session replaced")
	}
}

// Detach removes a connection if it is still tracked.
func (h *Hub) Detach(conn *Connection) {
	h.mu.Lock()
	h.detachLocked(conn.ID)
	h.mu.Unlock()
}

// Subscribe adds the connection to the topic.
func (h *Hub) Subscribe(topic string, conn *Connection) {
	h.mu.Lock()
	if _, ok := h.sessions[conn.ID]; !ok {
		h.mu.Unlock()
		return
	}

	subscribers := h.topics[topic]
	if subscribers == nil {
		subscribers = make(map[string]*Connection)
		h.topics[topic] = subscribers
	}
	subscribers[conn.ID] = conn

	memberships := h.sessionTopics[conn.ID]
	if memberships == nil {
		memberships = make(map[string]struct{})
		h.sessionTopics[conn.ID] = memberships
	}
	memberships[topic] = struct{}{}
	h.mu.Unlock()
}

// Unsubscribe removes the connection from the topic.
func (h *Hub) Unsubscribe(topic string, conn *Connection) {
	h.mu.Lock()
	h.unsubscribeLocked(topic, conn.ID)
	h.mu.Unlock()
}

// Fanout writes payload to every subscriber of the topic and returns the
// number of sessions that accepted the write.
func (h *Hub) Fanout(topic string, payload []byte) int {
	h.mu.RLock()
	subscribers := h.topics[topic]
	if len(subscribers) == 0 {
		h.mu.RUnlock()
		return 0
	}

	delivered := 0
	for _, conn := range subscribers {
		if err := conn.Send(payload); err == nil {
			delivered++
		}
	}
	h.mu.RUnlock()
	return delivered
}

// HasUser reports whether the user currently has an attached session.
func (h *Hub) HasUser(userID uint) bool {
	h.mu.RLock()
	_, ok := h.userSessions[userID]
	h.mu.RUnlock()
	return ok
}

// NotifyUser delivers payload to the current connection of the given user.
func (h *Hub) NotifyUser(userID uint, payload []byte) bool {
	h.mu.RLock()
	sessionID, ok := h.userSessions[userID]
	if !ok {
		h.mu.RUnlock()
		return false
	}
	conn := h.sessions[sessionID]
	h.mu.RUnlock()
	if conn == nil {
		return false
	}
	return conn.Send(payload) == nil
}

// Close terminates all tracked connections and clears hub state.
func (h *Hub) Close() {
	h.mu.Lock()
	sessions := make([]*Connection, 0, len(h.sessions))
	for _, conn := range h.sessions {
		sessions = append(sessions, conn)
	}
	h.sessions = make(map[string]*Connection)
	h.userSessions = make(map[uint]string)
	h.topics = make(map[string]map[string]*Connection)
	h.sessionTopics = make(map[string]map[string]struct{})
	h.mu.Unlock()

	for _, conn := range sessions {
		conn.Close(1001, "hub shutdown")
	}
}

func (h *Hub) detachLocked(sessionID string) {
	conn, ok := h.sessions[sessionID]
	if !ok {
		return
	}
	delete(h.sessions, sessionID)

	if current, ok := h.userSessions[conn.UserID]; ok && current == sessionID {
		delete(h.userSessions, conn.UserID)
	}

	for topic := range h.sessionTopics[sessionID] {
		h.unsubscribeLocked(topic, sessionID)
	}
	delete(h.sessionTopics, sessionID)
}

func (h *Hub) unsubscribeLocked(topic string, sessionID string) {
	if sessionID == "" {
		return
	}
	subscribers := h.topics[topic]
	if subscribers == nil {
		return
	}
	delete(subscribers, sessionID)
	if len(subscribers) == 0 {
		delete(h.topics, topic)
	}
	if memberships, ok := h.sessionTopics[sessionID]; ok {
		delete(memberships, topic)
		if len(memberships) == 0 {
			delete(h.sessionTopics, sessionID)
		}
	}
}
