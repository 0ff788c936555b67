package common

import (
	"net/http"

	"github.com/go-openapi/swag"
	"github.com/labstack/echo/v4"

	"github.com/altkdf/schnorr-canister/internal/api"
	"github.com/altkdf/schnorr-canister/internal/types"
	"github.com/altkdf/schnorr-canister/internal/util"
)

func GetMetricsRoute(s *api.Server) *echo.Route {
	return s.Router.Root.GET("/metrics", getMetricsHandler(s))
}

// GetRootRoute serves the same metrics document on the service root.
func GetRootRoute(s *api.Server) *echo.Route {
	return s.Router.Root.GET("/", getMetricsHandler(s))
}

func getMetricsHandler(s *api.Server) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()
		log := util.LogFromContext(ctx)

		snapshot, err := s.Metrics.Snapshot(ctx)
		if err != nil {
			log.Error().Err(err).Msg("Failed to collect metrics")
			return echo.NewHTTPError(http.StatusInternalServerError)
		}

		response := &types.MetricsResponse{
			SigCount:      swag.Int64(snapshot.SigCount),
			KeyCount:      swag.Int64(snapshot.KeyCount),
			UptimeSeconds: swag.Int64(snapshot.UptimeSeconds),
		}

		return util.ValidateAndReturn(c, http.StatusOK, response)
	}
}
