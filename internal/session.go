package internal

import "sync"

// Session is the locally held proof of authentication. Token is opaque;
// ContextID stays empty until a context has been selected for the token.
type Session struct {
	Token     string `json:"token" yaml:"token"`
	ContextID string `json:"context_id,omitempty" yaml:"context_id,omitempty"`
}

// HasContext reports whether a context was selected for this session
func (s Session) HasContext() bool {
	return s.ContextID != ""
}

// SessionStore is the single source of truth for "is the user authenticated".
// Absence is a normal state, not a failure.
type SessionStore interface {
	Get() (Session, bool)
	Set(Session)
	Clear()
}

// MemoryStore keeps the session in process memory
type MemoryStore struct {
	mu      sync.Mutex
	session Session
	present bool
}

// NewMemoryStore creates an empty in-memory store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// Get returns the stored session, if any
func (m *MemoryStore) Get() (Session, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.session, m.present
}

// Set stores the session. An empty token is treated as Clear.
func (m *MemoryStore) Set(s Session) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if s.Token == "" {
		m.session, m.present = Session{}, false
		return
	}
	m.session, m.present = s, true
}

// Clear removes the stored session
func (m *MemoryStore) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.session, m.present = Session{}, false
}
