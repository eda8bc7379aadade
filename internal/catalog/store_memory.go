package catalog

import (
	"context"
	"sync"
)

// MemSlot keeps the slot value in process memory.
type MemSlot struct {
	mu   sync.RWMutex
	data []byte
	set  bool
}

func NewMemSlot() *MemSlot {
	return &MemSlot{}
}

func (s *MemSlot) Ping(ctx context.Context) error { return nil }

func (s *MemSlot) Load(ctx context.Context) ([]byte, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.set {
		return nil, false, nil
	}
	return append([]byte(nil), s.data...), true, nil
}

func (s *MemSlot) Save(ctx context.Context, data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.data = append([]byte(nil), data...)
	s.set = true
	return nil
}
