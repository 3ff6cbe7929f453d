package memory

import (
	"errors"
	"strings"
	"sync"

	"epaw/internal/ports/session"
)

var ErrEmptyToken = errors.New("token is empty")

// Store mantiene la sesión solo mientras vive el proceso.
type Store struct {
	mu       sync.RWMutex
	token    string
	identity *session.Identity
}

var _ session.Store = (*Store)(nil)

func NewStore() *Store {
	return &Store{}
}

func (s *Store) Save(token string) error {
	token = strings.TrimSpace(token)
	if token == "" {
		return ErrEmptyToken
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = token
	return nil
}

func (s *Store) Read() (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token, s.token != ""
}

func (s *Store) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = ""
	s.identity = nil
	return nil
}

func (s *Store) IsActive() bool {
	_, ok := s.Read()
	return ok
}

func (s *Store) SaveIdentity(id session.Identity) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.identity = &id
	return nil
}

func (s *Store) ReadIdentity() (session.Identity, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.identity == nil {
		return session.Identity{}, false
	}
	return *s.identity, true
}
