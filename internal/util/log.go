package util

import (
	"context"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// CTXKeyLogger is the context key holding the request-scoped logger.
type contextKey string

const CTXKeyLogger contextKey = "logger"

// LogFromContext returns the request-scoped logger stored in ctx or the
// global logger if none was attached.
func LogFromContext(ctx context.Context) *zerolog.Logger {
	l := zerolog.Ctx(ctx)
	if l.GetLevel() == zerolog.Disabled {
		return &log.Logger
	}
	return l
}

// LogFromEchoContext returns the request-scoped logger for an echo request.
func LogFromEchoContext(c echo.Context) *zerolog.Logger {
	return LogFromContext(c.Request().Context())
}
