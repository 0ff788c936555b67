package router

import (
	"net/http"

	"github.com/go-openapi/swag"
	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog/log"

	"github.com/altkdf/schnorr-canister/internal/api"
	"github.com/altkdf/schnorr-canister/internal/api/handlers"
	"github.com/altkdf/schnorr-canister/internal/api/httperrors"
	"github.com/altkdf/schnorr-canister/internal/api/middleware"
	"github.com/altkdf/schnorr-canister/internal/types"
)

// Init sets up the echo instance, middlewares, route groups and attaches
// all handlers to the server. Must be called after InitNewServer.
func Init(s *api.Server) {
	s.Echo = echo.New()

	s.Echo.Debug = false
	s.Echo.HideBanner = true
	s.Echo.HTTPErrorHandler = errorHandler(s)

	if s.Config.Echo.EnableRecoverMiddleware {
		s.Echo.Use(echoMiddleware.Recover())
	}
	if s.Config.Echo.EnableRequestIDMiddleware {
		s.Echo.Use(echoMiddleware.RequestID())
	}
	if s.Config.Echo.EnableLoggerMiddleware {
		s.Echo.Use(middleware.LoggerWithConfig(middleware.LoggerConfig{
			Level: s.Config.Logger.RequestLevel,
		}))
	}
	if s.Config.Echo.EnableCORSMiddleware {
		s.Echo.Use(echoMiddleware.CORS())
	}

	s.Router = &api.Router{
		Routes: nil, // filled by handlers.AttachAllRoutes below

		Root: s.Echo.Group(""),

		Management: s.Echo.Group("/-", echoMiddleware.KeyAuthWithConfig(echoMiddleware.KeyAuthConfig{
			KeyLookup: "query:mgmt-secret",
			Validator: func(key string, c echo.Context) (bool, error) {
				return key == s.Config.Management.Secret, nil
			},
		})),

		APIV1Schnorr: s.Echo.Group("/api/v1/schnorr"),
	}

	handlers.AttachAllRoutes(s)
}

// errorHandler translates errors bubbling out of handlers into the public
// JSON error envelope. Internal details are stripped when configured.
func errorHandler(s *api.Server) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		var code int
		var payload *types.PublicHTTPError

		switch e := err.(type) {
		case *httperrors.HTTPValidationError:
			code = int(*e.Code)
			if e.Internal != nil && s.Config.Echo.HideInternalServerErrorDetails {
				log.Warn().Err(e.Internal).Msg("Hiding internal error detail in response")
			}
			if c.Request().Method == http.MethodHead {
				if err := c.NoContent(code); err != nil {
					log.Warn().Err(err).Msg("Failed to write head error response")
				}
				return
			}
			if err := c.JSON(code, e.PublicHTTPValidationError); err != nil {
				log.Warn().Err(err).Msg("Failed to write validation error response")
			}
			return

		case *httperrors.HTTPError:
			code = int(*e.Code)
			payload = &e.PublicHTTPError
			if e.Internal != nil {
				if s.Config.Echo.HideInternalServerErrorDetails {
					log.Warn().Err(e.Internal).Msg("Hiding internal error detail in response")
				} else {
					payload.AdditionalData = map[string]interface{}{"internal": e.Internal.Error()}
				}
			}

		case *echo.HTTPError:
			code = e.Code
			msg, ok := e.Message.(string)
			if !ok {
				msg = http.StatusText(e.Code)
			}
			payload = &types.PublicHTTPError{
				Code:  swag.Int64(int64(e.Code)),
				Type:  swag.String(types.PublicHTTPErrorTypeGeneric),
				Title: swag.String(msg),
			}

		default:
			code = http.StatusInternalServerError
			title := http.StatusText(http.StatusInternalServerError)
			if !s.Config.Echo.HideInternalServerErrorDetails {
				title = err.Error()
			}
			payload = &types.PublicHTTPError{
				Code:  swag.Int64(int64(code)),
				Type:  swag.String(types.PublicHTTPErrorTypeGeneric),
				Title: swag.String(title),
			}
		}

		if c.Request().Method == http.MethodHead {
			if err := c.NoContent(code); err != nil {
				log.Warn().Err(err).Msg("Failed to write head error response")
			}
			return
		}

		if err := c.JSON(code, payload); err != nil {
			log.Warn().Err(err).Msg("Failed to write error response")
		}
	}
}
