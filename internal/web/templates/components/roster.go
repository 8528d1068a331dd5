// Package components holds the HTML fragments shared by pages and SSE updates.
package components

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/a-h/templ"

	"github.com/mcoot/raidroster/internal/model"
)

// DOM ids of the roster card and of the frame replaced by out-of-band swaps
const (
	RosterID      = "roster"
	RosterFrameID = "roster-frame"
)

// Roster renders a display document as the roster card
func Roster(doc model.DisplayDocument) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		style := fmt.Sprintf("border-left-color:#%06x", doc.Color)
		if err := write(w, `<article id="`, RosterID, `" class="roster" style="`, templ.EscapeString(style), `">`); err != nil {
			return err
		}
		parts := []templ.Component{
			rosterAuthor(doc.Author),
			rosterTitle(doc.Title, doc.URL),
			element("p", "roster-description", doc.Description),
			rosterFields(doc.Fields),
			image("roster-image", doc.Image),
			element("footer", "", doc.Footer),
		}
		for _, part := range parts {
			if err := part.Render(ctx, w); err != nil {
				return err
			}
		}
		return write(w, `</article>`)
	})
}

func rosterAuthor(author *model.DocumentAuthor) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if author == nil {
			return nil
		}
		if err := write(w, `<div class="roster-author">`); err != nil {
			return err
		}
		if err := image("avatar", author.IconURL).Render(ctx, w); err != nil {
			return err
		}
		return write(w, `<span>`, templ.EscapeString(author.Name), `</span></div>`)
	})
}

func rosterTitle(title, url string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if url == "" {
			return write(w, `<h1 class="roster-title">`, templ.EscapeString(title), `</h1>`)
		}
		return write(w, `<h1 class="roster-title"><a href="`, safeURL(url), `">`, templ.EscapeString(title), `</a></h1>`)
	})
}

func rosterFields(fields []model.DocumentField) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if err := write(w, `<div class="roster-fields">`); err != nil {
			return err
		}
		for _, f := range fields {
			class := templ.Classes("field", templ.KV("inline", f.Inline)).String()
			if err := write(w, `<section class="`, templ.EscapeString(class), `"><h2>`, templ.EscapeString(f.Name), `</h2><ul>`); err != nil {
				return err
			}
			for _, line := range strings.Split(f.Value, "\n") {
				if err := write(w, `<li>`, templ.EscapeString(line), `</li>`); err != nil {
					return err
				}
			}
			if err := write(w, `</ul></section>`); err != nil {
				return err
			}
		}
		return write(w, `</div>`)
	})
}

// Actions renders the legend of actions a viewer can signal
func Actions(actions []model.Action) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if err := write(w, `<ul class="actions">`); err != nil {
			return err
		}
		for _, a := range actions {
			if err := write(w, `<li data-action="`, templ.EscapeString(string(a)), `">`,
				templ.EscapeString(a.Icon()), ` `, templ.EscapeString(string(a)), `</li>`); err != nil {
				return err
			}
		}
		return write(w, `</ul>`)
	})
}

// element renders <tag class="...">text</tag>, omitting an empty class
func element(tag, class, text string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		open := `<` + tag + `>`
		if class != "" {
			open = `<` + tag + ` class="` + templ.EscapeString(class) + `">`
		}
		return write(w, open, templ.EscapeString(text), `</`, tag, `>`)
	})
}

// image renders nothing when src is empty
func image(class, src string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if src == "" {
			return nil
		}
		return write(w, `<img class="`, templ.EscapeString(class), `" src="`, safeURL(src), `" alt="">`)
	})
}

// safeURL applies templ's URL sanitiser, so only http(s), mailto, tel and
// relative URLs reach an attribute
func safeURL(raw string) string {
	return templ.EscapeString(string(templ.URL(raw)))
}

func write(w io.Writer, parts ...string) error {
	for _, p := range parts {
		if _, err := io.WriteString(w, p); err != nil {
			return err
		}
	}
	return nil
}
