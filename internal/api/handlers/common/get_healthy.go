package common

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/altkdf/schnorr-canister/internal/api"
	"github.com/altkdf/schnorr-canister/internal/util"
)

func GetHealthyRoute(s *api.Server) *echo.Route {
	return s.Router.Management.GET("/healthy", getHealthyHandler(s))
}

// getHealthyHandler probes the seed store backend. It returns 521 when the
// store is unreachable so orchestrators stop routing traffic to us.
func getHealthyHandler(s *api.Server) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()
		log := util.LogFromContext(ctx)

		if !s.Ready() {
			return c.String(521, "Not ready.")
		}

		if err := s.Store.Ping(ctx); err != nil {
			log.Error().Err(err).Msg("Seed store ping failed")
			return c.String(521, "Storage unavailable.")
		}

		return c.String(http.StatusOK, "Ready.")
	}
}
