package handlers

import "sync"

// ClientManager tracks the live client sessions.
type ClientManager struct {
	sessions map[string]*ClientHandler
	mutex    sync.RWMutex
}

// NewClientManager creates an empty session registry.
func NewClientManager() *ClientManager {
	return &ClientManager{
		sessions: make(map[string]*ClientHandler),
	}
}

// Add registers a session.
func (cm *ClientManager) Add(sessionID string, handler *ClientHandler) {
	cm.mutex.Lock()
	defer cm.mutex.Unlock()
	cm.sessions[sessionID] = handler
}

// Remove unregisters a session.
func (cm *ClientManager) Remove(sessionID string) {
	cm.mutex.Lock()
	defer cm.mutex.Unlock()
	delete(cm.sessions, sessionID)
}

// Count returns the number of connected sessions.
func (cm *ClientManager) Count() int {
	cm.mutex.RLock()
	defer cm.mutex.RUnlock()
	return len(cm.sessions)
}
