package web

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/mcoot/raidroster/internal/catalogue"
	"github.com/mcoot/raidroster/internal/services/event"
	"github.com/mcoot/raidroster/internal/services/roster"
	"github.com/mcoot/raidroster/internal/web/handler"
	"github.com/mcoot/raidroster/internal/web/middleware"
	"github.com/mcoot/raidroster/internal/web/sse"
)

// RouterConfig holds configuration for the web router
type RouterConfig struct {
	Logger           *slog.Logger
	Catalogue        catalogue.CatalogueInterface
	EventController  event.ControllerInterface
	RosterController roster.ControllerInterface
	HubManager       *sse.HubManager
	StaticDir        string // Path to static files directory
}

// NewRouter creates a new web router with all routes configured
func NewRouter(cfg RouterConfig) http.Handler {
	r := mux.NewRouter()

	r.Use(middleware.Logging(cfg.Logger))
	r.Use(middleware.Recovery(cfg.Logger))

	// Create SSE hub manager if not provided
	hubManager := cfg.HubManager
	if hubManager == nil {
		hubManager = sse.NewHubManager(cfg.Logger)
	}

	homeHandler := handler.NewHomeHandler(cfg.Catalogue)
	eventHandler := handler.NewEventHandler(cfg.EventController, cfg.RosterController, hubManager, cfg.Logger)

	// Static files
	if cfg.StaticDir != "" {
		staticHandler := http.StripPrefix("/static/", http.FileServer(http.Dir(cfg.StaticDir)))
		r.PathPrefix("/static/").Handler(staticHandler)
	}

	r.HandleFunc("/", homeHandler.Home).Methods(http.MethodGet)
	r.HandleFunc("/events/{id}", eventHandler.View).Methods(http.MethodGet)
	r.HandleFunc("/events/{id}/stream", eventHandler.Stream).Methods(http.MethodGet)

	return r
}
