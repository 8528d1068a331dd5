package handler

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/mcoot/raidroster/internal/api/response"
	"github.com/mcoot/raidroster/internal/catalogue"
	"github.com/mcoot/raidroster/internal/model"
)

// TemplateHandler lists the template catalogue
type TemplateHandler struct {
	catalogue catalogue.CatalogueInterface
}

// NewTemplateHandler creates a new template handler
func NewTemplateHandler(catalogue catalogue.CatalogueInterface) *TemplateHandler {
	return &TemplateHandler{catalogue: catalogue}
}

// List handles GET /api/v1/templates/{type}
func (h *TemplateHandler) List(w http.ResponseWriter, r *http.Request) {
	eventType := model.EventType(mux.Vars(r)["type"])

	names, err := h.catalogue.Names(eventType)
	if err != nil {
		WriteError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, response.Templates{Type: string(eventType), Names: names})
}

// Types handles GET /api/v1/templates
func (h *TemplateHandler) Types(w http.ResponseWriter, _ *http.Request) {
	types := h.catalogue.Types()
	out := make([]string, len(types))
	for i, t := range types {
		out[i] = string(t)
	}
	response.JSON(w, http.StatusOK, out)
}
