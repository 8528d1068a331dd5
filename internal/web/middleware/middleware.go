package middleware

import (
	"log/slog"
	"net/http"

	"github.com/mcoot/raidroster/internal/middleware"
	"github.com/mcoot/raidroster/internal/web/templates/pages"
)

// Logging tags request logs with surface=web
func Logging(logger *slog.Logger) func(http.Handler) http.Handler {
	return middleware.Logging(logger.With(slog.String("surface", "web")))
}

// Recovery renders the error page when a handler panics
func Recovery(logger *slog.Logger) func(http.Handler) http.Handler {
	return middleware.Recovery(logger, func(w http.ResponseWriter, r *http.Request, _ any) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(http.StatusInternalServerError)
		_ = pages.Error("Internal Server Error", "The roster could not be shown. Try again shortly.").Render(r.Context(), w)
	})
}
