package memory

import (
	"context"
	"sync"

	"github.com/iamasit07/vier-gewinnt/internal/domain"
)

// StateStore keeps encoded state in process memory. It is the fallback when
// Redis is not configured and the store used by tests.
type StateStore struct {
	mu   sync.RWMutex
	data map[string][]byte
}

func NewStateStore() *StateStore {
	return &StateStore{data: make(map[string][]byte)}
}

func (s *StateStore) Load(_ context.Context, sessionID string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	data, ok := s.data[sessionID]
	if !ok {
		return nil, domain.ErrStateNotFound
	}
	return append([]byte(nil), data...), nil
}

func (s *StateStore) Save(_ context.Context, sessionID string, data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.data[sessionID] = append([]byte(nil), data...)
	return nil
}

func (s *StateStore) Delete(_ context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.data, sessionID)
	return nil
}

func (s *StateStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.data)
}
