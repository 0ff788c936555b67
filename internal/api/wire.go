//go:build wireinject
// +build wireinject

package api

import (
	"github.com/google/wire"

	"github.com/altkdf/schnorr-canister/internal/config"
)

// InitNewServer builds a fully wired server from the given configuration.
// Run `make go-generate` (wire) after changing any provider signatures.
func InitNewServer(cfg config.Server) (*Server, error) {
	wire.Build(
		NewStore,
		NewJWTManager,
		NewKeyring,
		NewSigningService,
		NewMetrics,
		newServerWithComponents,
	)
	return nil, nil
}
