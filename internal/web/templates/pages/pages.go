// Package pages holds the full HTML pages served by the web router.
package pages

import (
	"context"
	"io"

	"github.com/a-h/templ"

	"github.com/mcoot/raidroster/internal/model"
	"github.com/mcoot/raidroster/internal/web/templates/components"
	"github.com/mcoot/raidroster/internal/web/templates/layout"
)

// EventData is the data for the event roster page
type EventData struct {
	layout.PageData
	EventID  model.EventID
	Closed   bool
	Document model.DisplayDocument
	Actions  []model.Action
}

// Event renders the live roster page. Open events subscribe to the SSE stream.
func Event(data EventData) templ.Component {
	body := templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		open := `<div id="event" data-event-id="` + templ.EscapeString(string(data.EventID)) + `"`
		if !data.Closed {
			open += ` hx-ext="sse" sse-connect="/events/` + templ.EscapeString(string(data.EventID)) + `/stream"`
		}
		open += `>`
		if !data.Closed {
			open += `<div sse-swap="roster-html" hx-swap="none"></div>`
		}
		if _, err := io.WriteString(w, open); err != nil {
			return err
		}
		if data.Closed {
			if _, err := io.WriteString(w, `<p class="closed">Registration closed</p>`); err != nil {
				return err
			}
		}
		if _, err := io.WriteString(w, `<div id="`+components.RosterFrameID+`">`); err != nil {
			return err
		}
		if err := components.Roster(data.Document).Render(ctx, w); err != nil {
			return err
		}
		if _, err := io.WriteString(w, `</div>`); err != nil {
			return err
		}
		if err := components.Actions(data.Actions).Render(ctx, w); err != nil {
			return err
		}
		_, err := io.WriteString(w, `</div>`)
		return err
	})
	return layout.Base(data.PageData, body)
}

// HomeData is the data for the home page
type HomeData struct {
	layout.PageData
	Templates map[model.EventType][]string
	Types     []model.EventType
}

// Home lists the event templates that can be scheduled
func Home(data HomeData) templ.Component {
	body := templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		out := `<h1>Raid Roster</h1>`
		for _, t := range data.Types {
			out += `<section class="templates" data-type="` + templ.EscapeString(string(t)) + `"><h2>` +
				templ.EscapeString(string(t)) + `</h2><ul>`
			for _, name := range data.Templates[t] {
				out += `<li>` + templ.EscapeString(name) + `</li>`
			}
			out += `</ul></section>`
		}
		_, err := io.WriteString(w, out)
		return err
	})
	return layout.Base(data.PageData, body)
}

// Error renders an error page
func Error(title, message string) templ.Component {
	body := templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := io.WriteString(w, `<h1>`+templ.EscapeString(title)+`</h1><p class="error">`+
			templ.EscapeString(message)+`</p><p><a href="/">Return to home</a></p>`)
		return err
	})
	return layout.Base(layout.PageData{Title: title}, body)
}
