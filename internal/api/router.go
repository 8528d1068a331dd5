package api

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/mcoot/raidroster/internal/api/handler"
	"github.com/mcoot/raidroster/internal/api/middleware"
	"github.com/mcoot/raidroster/internal/catalogue"
	"github.com/mcoot/raidroster/internal/services/event"
	"github.com/mcoot/raidroster/internal/services/roster"
	"github.com/mcoot/raidroster/internal/web/sse"
)

// RouterConfig holds configuration for the API router
type RouterConfig struct {
	Logger           *slog.Logger
	Auth             middleware.TokenVerifier
	Catalogue        catalogue.CatalogueInterface
	EventController  event.ControllerInterface
	RosterController roster.ControllerInterface
	HubManager       *sse.HubManager
}

// NewRouter creates a new API router with all routes configured
func NewRouter(cfg RouterConfig) http.Handler {
	r := mux.NewRouter()
	MountRoutes(r, cfg)
	return r
}

// MountRoutes registers the /api/v1 routes on an existing router
func MountRoutes(r *mux.Router, cfg RouterConfig) {
	templateHandler := handler.NewTemplateHandler(cfg.Catalogue)
	eventHandler := handler.NewEventHandler(cfg.EventController, cfg.RosterController, cfg.HubManager, cfg.Logger)

	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(middleware.Logging(cfg.Logger))
	api.Use(middleware.Recovery(cfg.Logger))

	// Read-only routes (no auth)
	api.HandleFunc("/health", healthHandler).Methods(http.MethodGet)
	api.HandleFunc("/templates", templateHandler.Types).Methods(http.MethodGet)
	api.HandleFunc("/templates/{type}", templateHandler.List).Methods(http.MethodGet)
	api.HandleFunc("/events/{id}", eventHandler.Get).Methods(http.MethodGet)
	api.HandleFunc("/events/{id}/roster", eventHandler.Roster).Methods(http.MethodGet)
	api.HandleFunc("/events/{id}/document", eventHandler.Document).Methods(http.MethodGet)
	api.HandleFunc("/events/{id}/actions", eventHandler.Actions).Methods(http.MethodGet)
	api.HandleFunc("/events/{id}/stream", eventHandler.Stream).Methods(http.MethodGet)

	// Mutating routes require the transport token
	protected := api.NewRoute().Subrouter()
	protected.Use(middleware.Auth(cfg.Auth))
	protected.HandleFunc("/events", eventHandler.Create).Methods(http.MethodPost)
	protected.HandleFunc("/events/{id}/message", eventHandler.AttachMessage).Methods(http.MethodPost)
	protected.HandleFunc("/events/{id}/close", eventHandler.Close).Methods(http.MethodPost)
	protected.HandleFunc("/events/{id}/signals", eventHandler.Signal).Methods(http.MethodPost)
}

func healthHandler(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}
