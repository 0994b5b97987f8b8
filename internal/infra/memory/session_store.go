package memory

import (
	"context"
	"sync"

	"bigbang-quiz-service/internal/app"
	"bigbang-quiz-service/internal/domain"
)

// SessionStore is an in-memory implementation of app.SessionStore. Sessions
// are stored and returned as copies so callers mutate only their snapshot,
// matching the Redis store's serialization semantics.
type SessionStore struct {
	mu       sync.RWMutex
	sessions map[string]*app.GameSession
}

func NewSessionStore() *SessionStore {
	return &SessionStore{sessions: make(map[string]*app.GameSession)}
}

func (s *SessionStore) Save(_ context.Context, session *app.GameSession) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[session.ID] = session.Clone()
	return nil
}

func (s *SessionStore) Get(_ context.Context, id string) (*app.GameSession, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	session, ok := s.sessions[id]
	if !ok {
		return nil, domain.ErrSessionNotFound
	}
	return session.Clone(), nil
}

func (s *SessionStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, id)
	return nil
}
