package memory

import (
	"context"
	"sync"
)

// SlotStore keeps slots in process memory. Values are copied on the way in
// and out so callers cannot alias stored bytes.
type SlotStore struct {
	mu    sync.RWMutex
	slots map[string][]byte
}

func NewSlotStore() *SlotStore {
	return &SlotStore{slots: make(map[string][]byte)}
}

func (s *SlotStore) Get(_ context.Context, key string) ([]byte, bool, error) {
	s.mu.RLock()
	v, ok := s.slots[key]
	s.mu.RUnlock()
	if !ok {
		return nil, false, nil
	}
	return append([]byte(nil), v...), true, nil
}

func (s *SlotStore) Set(_ context.Context, key string, value []byte) error {
	s.mu.Lock()
	s.slots[key] = append([]byte(nil), value...)
	s.mu.Unlock()
	return nil
}
