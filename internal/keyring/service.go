// Package keyring provisions and serves the root seeds the derivation and
// signing operations work from.
package keyring

import (
	"context"
	"crypto/rand"
	"io"
	"strings"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"github.com/altkdf/schnorr-canister/internal/schnorr"
	"github.com/altkdf/schnorr-canister/internal/storage"
)

// Service owns root seed provisioning and lookup.
type Service struct {
	seeds    storage.SeedStore
	keyNames []string
}

// NewService creates the keyring service over the given seed store.
func NewService(seeds storage.SeedStore, keyNames []string) *Service {
	return &Service{
		seeds:    seeds,
		keyNames: keyNames,
	}
}

// EnsureProvisioned generates and stores a random 64-byte seed for every
// configured key name and supported algorithm. Existing seeds are kept; the
// operation is safe to repeat across restarts and concurrent instances.
func (s *Service) EnsureProvisioned(ctx context.Context) error {
	for _, alg := range schnorr.Algorithms() {
		for _, name := range s.keyNames {
			keyID := schnorr.KeyID{Algorithm: alg, Name: name}

			seed := make([]byte, schnorr.SeedSize)
			if _, err := io.ReadFull(rand.Reader, seed); err != nil {
				return errors.Wrap(err, "failed to generate random seed")
			}

			stored, err := s.seeds.PutSeedIfAbsent(ctx, keyID.String(), seed)
			if err != nil {
				return errors.Wrapf(err, "failed to provision root key %s", keyID)
			}

			if stored {
				log.Info().Str("key_id", keyID.String()).Msg("Provisioned new root key seed")
			} else {
				log.Debug().Str("key_id", keyID.String()).Msg("Root key seed already provisioned")
			}
		}
	}

	return nil
}

// Seed returns the root seed for keyID or schnorr.ErrUnknownKey.
func (s *Service) Seed(ctx context.Context, keyID schnorr.KeyID) ([]byte, error) {
	seed, err := s.seeds.GetSeed(ctx, keyID.String())
	if err != nil {
		if errors.Is(err, storage.ErrSeedNotFound) {
			return nil, errors.Wrapf(schnorr.ErrUnknownKey, "no key with name %q for algorithm %s", keyID.Name, keyID.Algorithm)
		}
		return nil, errors.Wrap(err, "failed to load seed")
	}

	if len(seed) != schnorr.SeedSize {
		return nil, errors.Wrapf(schnorr.ErrComputationFailure, "stored seed for %s has unexpected size %d", keyID, len(seed))
	}

	return seed, nil
}

// ListKeys returns the identifiers of all provisioned root keys.
func (s *Service) ListKeys(ctx context.Context) ([]schnorr.KeyID, error) {
	ids, err := s.seeds.ListKeyIDs(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list seeds")
	}

	keys := make([]schnorr.KeyID, 0, len(ids))
	for _, id := range ids {
		parts := strings.SplitN(id, ":", 2)
		if len(parts) != 2 {
			log.Warn().Str("key_id", id).Msg("Skipping malformed key ID in seed store")
			continue
		}

		alg, err := schnorr.ParseAlgorithm(parts[0])
		if err != nil {
			log.Warn().Str("key_id", id).Msg("Skipping seed with unknown algorithm")
			continue
		}

		keys = append(keys, schnorr.KeyID{Algorithm: alg, Name: parts[1]})
	}

	return keys, nil
}

// KeyCount returns the number of provisioned root keys.
func (s *Service) KeyCount(ctx context.Context) (int, error) {
	keys, err := s.ListKeys(ctx)
	if err != nil {
		return 0, err
	}
	return len(keys), nil
}
