package handlers

import (
	"github.com/labstack/echo/v4"

	"github.com/altkdf/schnorr-canister/internal/api"
	"github.com/altkdf/schnorr-canister/internal/api/handlers/common"
	"github.com/altkdf/schnorr-canister/internal/api/handlers/schnorr"
)

// AttachAllRoutes attaches all registered routes to the server's router.
func AttachAllRoutes(s *api.Server) {
	s.Router.Routes = []*echo.Route{
		common.GetHealthyRoute(s),
		common.GetMetricsRoute(s),
		common.GetRootRoute(s),
		schnorr.GetListKeysRoute(s),
		schnorr.PostPublicKeyRoute(s),
		schnorr.PostSignRoute(s),
	}
}
