package storage

import (
	"context"
	"sync"

	"github.com/trailheadsupply/storefront/pkg/types"
)

// MemoryStore keeps entries in process. Used by tests and the memory backend.
type MemoryStore struct {
	mu   sync.Mutex
	data map[string][]byte
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{data: make(map[string][]byte)}
}

func (s *MemoryStore) GetCart(ctx context.Context, key string) ([]types.CartItem, error) {
	s.mu.Lock()
	raw := s.data[key]
	s.mu.Unlock()
	return decodeCart(raw)
}

func (s *MemoryStore) SetCart(ctx context.Context, key string, items []types.CartItem) error {
	raw, err := encodeCart(items)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.data[key] = raw
	s.mu.Unlock()
	return nil
}

func (s *MemoryStore) Ping(ctx context.Context) error { return nil }

func (s *MemoryStore) Close() error { return nil }
