// Package metrics aggregates the counters exposed on the HTTP query surface.
package metrics

import (
	"context"
	"time"

	"github.com/pkg/errors"

	"github.com/altkdf/schnorr-canister/internal/keyring"
	"github.com/altkdf/schnorr-canister/internal/storage"
)

// Snapshot is a point-in-time view of the service counters.
type Snapshot struct {
	SigCount      int64
	KeyCount      int64
	UptimeSeconds int64
}

// Service collects metrics from the counter store and the keyring.
type Service struct {
	counter   storage.CounterStore
	keyring   *keyring.Service
	startedAt time.Time
}

// New creates the metrics service. Uptime counts from this call.
func New(counter storage.CounterStore, keyringService *keyring.Service) *Service {
	return &Service{
		counter:   counter,
		keyring:   keyringService,
		startedAt: time.Now(),
	}
}

// Snapshot gathers the current counter values.
func (s *Service) Snapshot(ctx context.Context) (*Snapshot, error) {
	sigCount, err := s.counter.GetSigCount(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read signature counter")
	}

	keyCount, err := s.keyring.KeyCount(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to count keys")
	}

	return &Snapshot{
		SigCount:      sigCount,
		KeyCount:      int64(keyCount),
		UptimeSeconds: int64(time.Since(s.startedAt).Seconds()),
	}, nil
}
