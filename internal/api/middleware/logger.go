package middleware

import (
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// LoggerConfig defines the config for the Logger middleware.
type LoggerConfig struct {
	Level zerolog.Level
}

// DefaultLoggerConfig is the default Logger middleware config.
var DefaultLoggerConfig = LoggerConfig{
	Level: zerolog.DebugLevel,
}

// Logger returns a middleware which attaches a request-scoped zerolog
// logger to the request context and emits a log line per request.
func Logger() echo.MiddlewareFunc {
	return LoggerWithConfig(DefaultLoggerConfig)
}

// LoggerWithConfig returns a Logger middleware with custom config.
func LoggerWithConfig(config LoggerConfig) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()

			id := req.Header.Get(echo.HeaderXRequestID)
			if id == "" {
				id = c.Response().Header().Get(echo.HeaderXRequestID)
			}

			l := log.With().
				Str("id", id).
				Str("method", req.Method).
				Str("uri", req.RequestURI).
				Logger()

			// Propagate the request-scoped logger so handlers can
			// retrieve it via util.LogFromContext.
			c.SetRequest(req.WithContext(l.WithContext(req.Context())))

			start := time.Now()
			err := next(c)
			if err != nil {
				c.Error(err)
			}

			res := c.Response()
			l.WithLevel(config.Level).
				Int("status", res.Status).
				Int64("bytes_out", res.Size).
				Dur("duration", time.Since(start)).
				Err(err).
				Msg("Request")

			return nil
		}
	}
}
