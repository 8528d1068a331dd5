package middleware

import (
	"log/slog"
	"net/http"

	"github.com/mcoot/raidroster/internal/api/apierr"
	"github.com/mcoot/raidroster/internal/middleware"
)

// Logging tags request logs with surface=api
func Logging(logger *slog.Logger) func(http.Handler) http.Handler {
	return middleware.Logging(logger.With(slog.String("surface", "api")))
}

// Recovery answers a panicking handler with the INTERNAL_ERROR envelope
func Recovery(logger *slog.Logger) func(http.Handler) http.Handler {
	return middleware.Recovery(logger, func(w http.ResponseWriter, _ *http.Request, _ any) {
		apierr.WriteError(w, apierr.NewInternalError())
	})
}
