package memory

import (
	"context"
	"encoding/json"
	"errors"
	"sort"
	"strings"
	"sync"

	"epaw/internal/ports/storage"
)

type entry struct {
	seq  int
	body json.RawMessage
}

// DocumentStore es el store en memoria del sandbox.
type DocumentStore struct {
	mu   sync.RWMutex
	seq  int
	byID map[string]map[string]entry
}

var _ storage.DocumentStore = (*DocumentStore)(nil)

func NewDocumentStore() *DocumentStore {
	return &DocumentStore{
		byID: make(map[string]map[string]entry),
	}
}

func (s *DocumentStore) Put(_ context.Context, collection, id string, body json.RawMessage) error {
	if strings.TrimSpace(id) == "" {
		return errors.New("document id required")
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	docs, ok := s.byID[collection]
	if !ok {
		docs = make(map[string]entry)
		s.byID[collection] = docs
	}

	// Un update conserva la posición original.
	e, exists := docs[id]
	if !exists {
		s.seq++
		e.seq = s.seq
	}
	e.body = append(json.RawMessage(nil), body...)
	docs[id] = e
	return nil
}

func (s *DocumentStore) Get(_ context.Context, collection, id string) (json.RawMessage, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	e, ok := s.byID[collection][id]
	if !ok {
		return nil, storage.ErrNotFound
	}
	return append(json.RawMessage(nil), e.body...), nil
}

func (s *DocumentStore) List(_ context.Context, collection string) ([]json.RawMessage, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entries := make([]entry, 0, len(s.byID[collection]))
	for _, e := range s.byID[collection] {
		entries = append(entries, e)
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].seq < entries[j].seq
	})

	out := make([]json.RawMessage, 0, len(entries))
	for _, e := range entries {
		out = append(out, append(json.RawMessage(nil), e.body...))
	}
	return out, nil
}
