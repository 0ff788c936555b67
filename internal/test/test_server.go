package test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/altkdf/schnorr-canister/internal/api"
	"github.com/altkdf/schnorr-canister/internal/api/router"
	"github.com/altkdf/schnorr-canister/internal/config"
)

// DefaultTestConfig returns a server configuration suitable for handler
// tests: in-memory storage and no request logging noise.
func DefaultTestConfig() config.Server {
	cfg := config.DefaultServiceConfigFromEnv()
	cfg.Storage.Backend = "memory"
	cfg.Echo.EnableLoggerMiddleware = false
	cfg.Echo.HideInternalServerErrorDetails = false
	cfg.Auth.JWTSecret = "test-secret"
	return cfg
}

// WithTestServer creates a fully wired server with provisioned root keys
// and calls closure with it.
func WithTestServer(t *testing.T, closure func(s *api.Server)) {
	t.Helper()
	WithTestServerConfigurable(t, DefaultTestConfig(), closure)
}

// WithTestServerConfigurable is WithTestServer with a custom configuration.
func WithTestServerConfigurable(t *testing.T, cfg config.Server, closure func(s *api.Server)) {
	t.Helper()

	s, err := api.InitNewServer(cfg)
	require.NoError(t, err)

	require.NoError(t, s.Keyring.EnsureProvisioned(context.Background()))

	router.Init(s)

	closure(s)
}
