package session

import (
	"context"
	"sync"
	"time"
)

// MemoryStore keeps sessions in a process-local map. Sessions are lost on
// restart; that is acceptable for the single-process deployment this
// backing targets.
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]*Session
	maxAge   time.Duration
}

// NewMemoryStore creates an in-memory store issuing sessions that live for
// maxAge.
func NewMemoryStore(maxAge time.Duration) *MemoryStore {
	return &MemoryStore{
		sessions: make(map[string]*Session),
		maxAge:   maxAge,
	}
}

var _ Store = (*MemoryStore)(nil)

// Create generates a token and records the session.
func (m *MemoryStore) Create(ctx context.Context, username string) (string, error) {
	s, err := newSession(username, m.maxAge)
	if err != nil {
		return "", err
	}
	m.mu.Lock()
	m.sessions[s.ID] = s
	m.mu.Unlock()
	return s.ID, nil
}

// Get returns the session or (nil, nil) when absent or expired. Expired
// records are purged on read so a stale token never authenticates between
// sweeps.
func (m *MemoryStore) Get(ctx context.Context, sid string) (*Session, error) {
	m.mu.RLock()
	s, ok := m.sessions[sid]
	m.mu.RUnlock()
	if !ok {
		return nil, nil
	}
	if s.Expired(time.Now().UTC()) {
		m.mu.Lock()
		delete(m.sessions, sid)
		m.mu.Unlock()
		return nil, nil
	}
	cp := *s
	return &cp, nil
}

// Destroy removes the session; removing an absent one is a no-op.
func (m *MemoryStore) Destroy(ctx context.Context, sid string) error {
	m.mu.Lock()
	delete(m.sessions, sid)
	m.mu.Unlock()
	return nil
}

// DeleteExpired drops every expired record.
func (m *MemoryStore) DeleteExpired(ctx context.Context) error {
	now := time.Now().UTC()
	m.mu.Lock()
	for sid, s := range m.sessions {
		if s.Expired(now) {
			delete(m.sessions, sid)
		}
	}
	m.mu.Unlock()
	return nil
}

// Len reports the number of live records, expired or not. Used by tests.
func (m *MemoryStore) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}
