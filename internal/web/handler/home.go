package handler

import (
	"net/http"

	"github.com/mcoot/raidroster/internal/catalogue"
	"github.com/mcoot/raidroster/internal/model"
	"github.com/mcoot/raidroster/internal/web/templates/layout"
	"github.com/mcoot/raidroster/internal/web/templates/pages"
)

// HomeHandler handles the home page
type HomeHandler struct {
	catalogue catalogue.CatalogueInterface
}

// NewHomeHandler creates a new HomeHandler
func NewHomeHandler(catalogue catalogue.CatalogueInterface) *HomeHandler {
	return &HomeHandler{catalogue: catalogue}
}

// Home lists the templates events can be created from
func (h *HomeHandler) Home(w http.ResponseWriter, r *http.Request) {
	data := pages.HomeData{
		PageData:  layout.PageData{Title: "Home"},
		Types:     h.catalogue.Types(),
		Templates: make(map[model.EventType][]string),
	}
	for _, t := range data.Types {
		names, err := h.catalogue.Names(t)
		if err != nil {
			continue
		}
		data.Templates[t] = names
	}

	render(w, r, http.StatusOK, pages.Home(data))
}
