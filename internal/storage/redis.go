package storage

import (
	"context"
	"strings"

	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"

	"github.com/altkdf/schnorr-canister/pkg/sealing"
)

const (
	redisSeedPrefix      = "schnorr:seed:"
	redisSigCountKey     = "schnorr:sig_count"
)

// RedisStore keeps sealed seeds and the signature counter in redis.
type RedisStore struct {
	client *redis.Client
	sealer *sealing.Sealer
}

// NewRedisStore creates a redis-backed store sealing seeds with the passphrase.
func NewRedisStore(client *redis.Client, passphrase string) (*RedisStore, error) {
	sealer, err := sealing.New(passphrase, sealingSalt)
	if err != nil {
		return nil, errors.Wrap(err, "failed to init sealer")
	}

	return &RedisStore{
		client: client,
		sealer: sealer,
	}, nil
}

// PutSeedIfAbsent seals and stores the seed with SETNX semantics.
func (s *RedisStore) PutSeedIfAbsent(ctx context.Context, keyID string, seed []byte) (bool, error) {
	sealed, err := s.sealer.Seal(seed)
	if err != nil {
		return false, errors.Wrap(err, "failed to seal seed")
	}

	stored, err := s.client.SetNX(ctx, redisSeedPrefix+keyID, sealed, 0).Result()
	if err != nil {
		return false, errors.Wrap(err, "failed to store seed")
	}

	return stored, nil
}

// GetSeed loads and unseals the seed for keyID.
func (s *RedisStore) GetSeed(ctx context.Context, keyID string) ([]byte, error) {
	sealed, err := s.client.Get(ctx, redisSeedPrefix+keyID).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, ErrSeedNotFound
		}
		return nil, errors.Wrap(err, "failed to get seed")
	}

	seed, err := s.sealer.Open(sealed)
	if err != nil {
		return nil, errors.Wrap(err, "failed to unseal seed")
	}

	return seed, nil
}

// ListKeyIDs returns the IDs of all stored seeds.
func (s *RedisStore) ListKeyIDs(ctx context.Context) ([]string, error) {
	var keyIDs []string

	iter := s.client.Scan(ctx, 0, redisSeedPrefix+"*", 0).Iterator()
	for iter.Next(ctx) {
		keyIDs = append(keyIDs, strings.TrimPrefix(iter.Val(), redisSeedPrefix))
	}
	if err := iter.Err(); err != nil {
		return nil, errors.Wrap(err, "failed to scan seeds")
	}

	return keyIDs, nil
}

// Ping reports whether redis is reachable.
func (s *RedisStore) Ping(ctx context.Context) error {
	return errors.Wrap(s.client.Ping(ctx).Err(), "redis not reachable")
}

// IncrementSigCount atomically increments the counter and returns it.
func (s *RedisStore) IncrementSigCount(ctx context.Context) (int64, error) {
	count, err := s.client.Incr(ctx, redisSigCountKey).Result()
	if err != nil {
		return 0, errors.Wrap(err, "failed to increment signature counter")
	}
	return count, nil
}

// GetSigCount returns the counter value, zero when unset.
func (s *RedisStore) GetSigCount(ctx context.Context) (int64, error) {
	count, err := s.client.Get(ctx, redisSigCountKey).Int64()
	if err != nil {
		if err == redis.Nil {
			return 0, nil
		}
		return 0, errors.Wrap(err, "failed to get signature counter")
	}
	return count, nil
}
