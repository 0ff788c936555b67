package storage

import (
	"context"

	"github.com/pkg/errors"
)

// ErrSeedNotFound signals that no seed is stored for the requested key.
var ErrSeedNotFound = errors.New("seed not found")

// SeedStore persists root seeds. Seeds are provision-once: a stored seed is
// never overwritten through this interface.
type SeedStore interface {
	// PutSeedIfAbsent stores the seed unless the key already has one.
	// It reports whether the seed was stored.
	PutSeedIfAbsent(ctx context.Context, keyID string, seed []byte) (bool, error)

	// GetSeed returns the seed for keyID or ErrSeedNotFound.
	GetSeed(ctx context.Context, keyID string) ([]byte, error)

	// ListKeyIDs returns the IDs of all stored seeds.
	ListKeyIDs(ctx context.Context) ([]string, error)

	// Ping reports whether the backend is reachable.
	Ping(ctx context.Context) error
}

// CounterStore persists the monotonically increasing signature counter.
type CounterStore interface {
	// IncrementSigCount adds one and returns the new value.
	IncrementSigCount(ctx context.Context) (int64, error)

	// GetSigCount returns the current value.
	GetSigCount(ctx context.Context) (int64, error)
}

// Store combines seed and counter persistence over one backend.
type Store interface {
	SeedStore
	CounterStore
}
