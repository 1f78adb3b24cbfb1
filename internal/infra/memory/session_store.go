package memory

import (
	"sync"

	"buddy-hunt/internal/app"
)

// SessionStore is an in-memory implementation of app.SessionRepository.
type SessionStore struct {
	mu       sync.Mutex
	sessions map[app.SessionKey]*app.Session
}

func NewSessionStore() *SessionStore {
	return &SessionStore{
		sessions: make(map[app.SessionKey]*app.Session),
	}
}

func (s *SessionStore) GetOrCreate(key app.SessionKey, create func() (*app.Session, error)) (*app.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if session, ok := s.sessions[key]; ok {
		return session, nil
	}
	session, err := create()
	if err != nil {
		return nil, err
	}
	s.sessions[key] = session
	return session, nil
}

func (s *SessionStore) Get(key app.SessionKey) (*app.Session, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	session, ok := s.sessions[key]
	return session, ok
}

func (s *SessionStore) DeleteIfIdle(key app.SessionKey) {
	s.mu.Lock()
	defer s.mu.Unlock()
	session, ok := s.sessions[key]
	if !ok {
		return
	}
	if session.IsIdle() {
		delete(s.sessions, key)
	}
}
