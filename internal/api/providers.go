package api

import (
	"strings"

	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"

	"github.com/altkdf/schnorr-canister/internal/auth"
	"github.com/altkdf/schnorr-canister/internal/config"
	"github.com/altkdf/schnorr-canister/internal/keyring"
	"github.com/altkdf/schnorr-canister/internal/metrics"
	"github.com/altkdf/schnorr-canister/internal/signing"
	"github.com/altkdf/schnorr-canister/internal/storage"
)

// PROVIDERS - define here only providers that for various reasons (e.g. cyclic
// dependency) can't live in their corresponding packages, or wrapping
// providers that only accept sub-configs.
// https://github.com/google/wire/blob/main/docs/guide.md#defining-providers

// NewStore selects and creates the seed/counter store backend.
func NewStore(cfg config.Server) (storage.Store, error) {
	switch strings.ToLower(cfg.Storage.Backend) {
	case "file":
		store, err := storage.NewFileStore(cfg.Storage.FileDir, cfg.Storage.EncryptionPassphrase)
		if err != nil {
			return nil, errors.Wrap(err, "failed to create file store")
		}
		log.Info().Str("dir", cfg.Storage.FileDir).Msg("Using file seed store")
		return store, nil

	case "redis":
		opts, err := redis.ParseURL(cfg.Storage.RedisURL)
		if err != nil {
			return nil, errors.Wrap(err, "failed to parse redis URL")
		}
		store, err := storage.NewRedisStore(redis.NewClient(opts), cfg.Storage.EncryptionPassphrase)
		if err != nil {
			return nil, errors.Wrap(err, "failed to create redis store")
		}
		log.Info().Str("addr", opts.Addr).Msg("Using redis seed store")
		return store, nil

	case "memory":
		log.Warn().Msg("Using in-memory seed store, keys will not survive a restart")
		return storage.NewInMemoryStore(), nil

	default:
		return nil, errors.Errorf("unknown storage backend %q", cfg.Storage.Backend)
	}
}

// NewKeyring creates the keyring service over the seed store.
func NewKeyring(cfg config.Server, store storage.Store) *keyring.Service {
	return keyring.NewService(store, cfg.Schnorr.KeyNames)
}

// NewSigningService creates the signing service.
func NewSigningService(cfg config.Server, keyringService *keyring.Service, store storage.Store) *signing.Service {
	return signing.NewService(keyringService, store, cfg.Schnorr.MaxDerivationPathLength)
}

// NewMetrics creates the metrics service.
func NewMetrics(store storage.Store, keyringService *keyring.Service) *metrics.Service {
	return metrics.New(store, keyringService)
}

// NewJWTManager creates the caller token validator.
func NewJWTManager(cfg config.Server) *auth.JWTManager {
	if cfg.Auth.JWTSecret == "" {
		log.Warn().Msg("No JWT secret configured, all callers resolve to the anonymous principal")
	}
	return auth.NewJWTManager(cfg.Auth.JWTSecret, cfg.Auth.JWTIssuer, cfg.Auth.TokenDuration)
}

func newServerWithComponents(
	cfg config.Server,
	store storage.Store,
	jwtManager *auth.JWTManager,
	keyringService *keyring.Service,
	signingService *signing.Service,
	metricsService *metrics.Service,
) *Server {
	return &Server{
		Config:         cfg,
		Store:          store,
		Auth:           jwtManager,
		Keyring:        keyringService,
		SigningService: signingService,
		Metrics:        metricsService,
	}
}
