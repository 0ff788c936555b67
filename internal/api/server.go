package api

import (
	"context"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"

	"github.com/altkdf/schnorr-canister/internal/api/httperrors"
	"github.com/altkdf/schnorr-canister/internal/auth"
	"github.com/altkdf/schnorr-canister/internal/config"
	"github.com/altkdf/schnorr-canister/internal/keyring"
	"github.com/altkdf/schnorr-canister/internal/metrics"
	"github.com/altkdf/schnorr-canister/internal/schnorr"
	"github.com/altkdf/schnorr-canister/internal/signing"
	"github.com/altkdf/schnorr-canister/internal/storage"
	"github.com/altkdf/schnorr-canister/internal/types"
)

// Router keeps the route groups the handlers attach to.
type Router struct {
	Routes       []*echo.Route
	Root         *echo.Group
	Management   *echo.Group
	APIV1Schnorr *echo.Group
}

// Server is a central struct keeping all the dependencies.
// It is initialized with wire, which handles making the new instances of the
// components in the right order. To add a new component, 3 steps are required:
// - declaring it in this struct
// - adding a provider function in providers.go
// - adding the provider's function name to the arguments of wire.Build() in wire.go
//
// Components labeled as `wire:"-"` will be skipped and have to be initialized
// after the InitNewServer call (router.Init does this for Echo and Router).
type Server struct {
	// skip wire:
	// -> initialized with router.Init(s) function
	Echo   *echo.Echo `wire:"-"`
	Router *Router    `wire:"-"`

	Config config.Server
	Store  storage.Store
	Auth   *auth.JWTManager

	Keyring        *keyring.Service
	SigningService *signing.Service
	Metrics        *metrics.Service
}

// Ready reports whether the server has been fully initialized.
func (s *Server) Ready() bool {
	return s.Echo != nil && s.Router != nil
}

// Start runs the HTTP server on the configured listen address.
func (s *Server) Start() error {
	if !s.Ready() {
		return echo.NewHTTPError(http.StatusInternalServerError, "server is not ready")
	}
	return s.Echo.Start(s.Config.Echo.ListenAddress)
}

// Shutdown gracefully stops the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	log.Warn().Msg("Shutting down server")
	return s.Echo.Shutdown(ctx)
}

// CallerPrincipal resolves the caller's principal: the subject of a valid
// bearer token, or the configured anonymous principal when no token is sent.
func (s *Server) CallerPrincipal(c echo.Context) (schnorr.Principal, error) {
	header := c.Request().Header.Get(echo.HeaderAuthorization)
	if header == "" {
		principal, err := schnorr.PrincipalFromText(s.Config.Auth.AnonymousPrincipal)
		if err != nil {
			return nil, httperrors.NewHTTPError(http.StatusInternalServerError, types.PublicHTTPErrorTypeGeneric, "Misconfigured anonymous principal").SetInternal(err)
		}
		return principal, nil
	}

	const bearerPrefix = "Bearer "
	if !strings.HasPrefix(header, bearerPrefix) {
		return nil, httperrors.NewHTTPError(http.StatusUnauthorized, types.PublicHTTPErrorTypeGeneric, "Invalid authorization header")
	}

	claims, err := s.Auth.Validate(strings.TrimPrefix(header, bearerPrefix))
	if err != nil {
		return nil, httperrors.NewHTTPError(http.StatusUnauthorized, types.PublicHTTPErrorTypeGeneric, "Invalid bearer token").SetInternal(err)
	}

	principal, err := schnorr.PrincipalFromText(claims.Principal())
	if err != nil {
		return nil, httperrors.NewHTTPError(http.StatusUnauthorized, types.PublicHTTPErrorTypeGeneric, "Invalid principal in bearer token").SetInternal(err)
	}

	return principal, nil
}
