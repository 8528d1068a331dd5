package sse

import (
	"bytes"
	"context"
	"encoding/json"

	"github.com/mcoot/raidroster/internal/model"
	"github.com/mcoot/raidroster/internal/web/templates/components"
)

// SSE event names
const (
	EventRosterUpdate = "roster-update" // JSON document, for programmatic viewers
	EventRosterHTML   = "roster-html"   // Rendered fragment, for the web page
)

// RenderRosterHTML renders the roster fragment for a document
func RenderRosterHTML(ctx context.Context, doc model.DisplayDocument) (string, error) {
	var buf bytes.Buffer
	if err := components.Roster(doc).Render(ctx, &buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// WrapForOOBSwap wraps HTML in a div with hx-swap-oob for out-of-band swaps
func WrapForOOBSwap(id, html string) string {
	return `<div id="` + id + `" hx-swap-oob="true">` + html + `</div>`
}

// rosterMessage formats a document as a roster-update SSE message
func rosterMessage(doc model.DisplayDocument) ([]byte, error) {
	data, err := json.Marshal(doc)
	if err != nil {
		return nil, err
	}
	return formatSSEMessage(EventRosterUpdate, string(data)), nil
}
