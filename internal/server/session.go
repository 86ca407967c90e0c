package server

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/job-matcher/internal/extract"
	"github.com/job-matcher/internal/match"
	"github.com/job-matcher/internal/theirstack"
)

// Session holds everything a single matching run accumulates: the
// extracted profile and the fetched listings. State is session-scoped by
// construction; nothing lives in package globals.
type Session struct {
	ID         string
	CreatedAt  time.Time
	Extraction *extract.Extraction
	Profile    *match.CandidateProfile
	Jobs       *theirstack.Jobs
}

// SessionStore is an in-memory session registry safe for concurrent use.
type SessionStore struct {
	mu       sync.RWMutex
	sessions map[string]*Session
}

func NewSessionStore() *SessionStore {
	return &SessionStore{sessions: make(map[string]*Session)}
}

func (s *SessionStore) Create() *Session {
	session := &Session{
		ID:        uuid.NewString(),
		CreatedAt: time.Now().UTC(),
	}

	s.mu.Lock()
	s.sessions[session.ID] = session
	s.mu.Unlock()

	snapshot := *session
	return &snapshot
}

// Get returns a snapshot of the session. Callers read the snapshot
// without holding any lock; every mutation goes through Update, so the
// stored session is never shared outside the lock.
func (s *SessionStore) Get(id string) (*Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	session, ok := s.sessions[id]
	if !ok {
		return nil, fmt.Errorf("session %s not found", id)
	}

	snapshot := *session
	return &snapshot, nil
}

func (s *SessionStore) Delete(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, id)
}

// Update applies fn to the session under the write lock.
func (s *SessionStore) Update(id string, fn func(*Session)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, ok := s.sessions[id]
	if !ok {
		return fmt.Errorf("session %s not found", id)
	}

	fn(session)
	return nil
}
