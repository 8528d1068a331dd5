// Package layout provides the page shell.
package layout

import (
	"context"
	"io"

	"github.com/a-h/templ"
)

// PageData holds common data for all pages
type PageData struct {
	Title string
}

// Base wraps body in the HTML document shell
func Base(data PageData, body templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		head := `<!DOCTYPE html><html lang="en"><head><meta charset="utf-8">` +
			`<meta name="viewport" content="width=device-width, initial-scale=1">` +
			`<title>` + templ.EscapeString(data.Title) + ` | Raid Roster</title>` +
			`<script src="https://unpkg.com/htmx.org@1.9.12"></script>` +
			`<script src="https://unpkg.com/htmx.org@1.9.12/dist/ext/sse.js"></script>` +
			`</head><body><main>`
		if _, err := io.WriteString(w, head); err != nil {
			return err
		}
		if err := body.Render(ctx, w); err != nil {
			return err
		}
		_, err := io.WriteString(w, `</main></body></html>`)
		return err
	})
}
