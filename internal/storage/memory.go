package storage

import (
	"context"
	"sync"
)

// InMemoryStore is a test and development backend; nothing survives a restart.
type InMemoryStore struct {
	mu       sync.RWMutex
	seeds    map[string][]byte
	sigCount int64
}

// NewInMemoryStore creates an empty in-memory store.
func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{
		seeds: make(map[string][]byte),
	}
}

// PutSeedIfAbsent stores the seed unless the key already has one.
func (s *InMemoryStore) PutSeedIfAbsent(ctx context.Context, keyID string, seed []byte) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.seeds[keyID]; ok {
		return false, nil
	}

	cp := make([]byte, len(seed))
	copy(cp, seed)
	s.seeds[keyID] = cp
	return true, nil
}

// GetSeed returns the seed for keyID or ErrSeedNotFound.
func (s *InMemoryStore) GetSeed(ctx context.Context, keyID string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	seed, ok := s.seeds[keyID]
	if !ok {
		return nil, ErrSeedNotFound
	}

	cp := make([]byte, len(seed))
	copy(cp, seed)
	return cp, nil
}

// ListKeyIDs returns the IDs of all stored seeds.
func (s *InMemoryStore) ListKeyIDs(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	keyIDs := make([]string, 0, len(s.seeds))
	for keyID := range s.seeds {
		keyIDs = append(keyIDs, keyID)
	}
	return keyIDs, nil
}

// Ping always succeeds.
func (s *InMemoryStore) Ping(ctx context.Context) error {
	return nil
}

// IncrementSigCount adds one and returns the new value.
func (s *InMemoryStore) IncrementSigCount(ctx context.Context) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sigCount++
	return s.sigCount, nil
}

// GetSigCount returns the current value.
func (s *InMemoryStore) GetSigCount(ctx context.Context) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.sigCount, nil
}
