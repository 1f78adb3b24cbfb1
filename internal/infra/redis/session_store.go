package redis

import (
	"context"
	"sync"
	"time"

	"buddy-hunt/internal/app"
	"github.com/redis/go-redis/v9"
)

// SessionStore is a Redis-aware implementation of app.SessionRepository.
// Sessions stay in process; Redis only carries a liveness marker per
// participant so other instances and operators can see who is playing.
// Progress itself is never written.
type SessionStore struct {
	client   *redis.Client
	ttl      time.Duration
	mu       sync.Mutex
	sessions map[app.SessionKey]*app.Session
}

func NewSessionStore(client *redis.Client, ttl time.Duration) *SessionStore {
	return &SessionStore{
		client:   client,
		ttl:      ttl,
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
	// best-effort liveness marker
	_ = s.client.Set(context.Background(), s.key(key), "1", s.ttl).Err()
	return session, nil
}

func (s *SessionStore) Get(key app.SessionKey) (*app.Session, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	session, ok := s.sessions[key]
	if ok {
		_ = s.client.Expire(context.Background(), s.key(key), s.ttl).Err()
	}
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
		_ = s.client.Del(context.Background(), s.key(key)).Err()
	}
}

func (s *SessionStore) key(key app.SessionKey) string {
	return "quiz:session:" + key.QuizID + ":" + key.UserID
}
