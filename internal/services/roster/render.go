package roster

import (
	"fmt"
	"strings"

	"github.com/mcoot/raidroster/internal/model"
)

const (
	documentColor = 0x200972
	emptyValue    = "None"
	footerTime    = "2006-01-02 15:04"
)

// Renderer turns a classified roster into a display document.
// Output depends only on its inputs.
type Renderer struct {
	author *model.DocumentAuthor
}

// NewRenderer creates a Renderer. A nil author leaves the author line out.
func NewRenderer(author *model.DocumentAuthor) *Renderer {
	return &Renderer{author: author}
}

// Render builds the document for an event
func (r *Renderer) Render(tmpl *model.EventTemplate, event *model.Event, roster Classified) model.DisplayDocument {
	doc := model.DisplayDocument{
		Title:       tmpl.Title,
		Description: tmpl.Description,
		URL:         tmpl.URL,
		Color:       documentColor,
		Image:       tmpl.Image,
		Footer: fmt.Sprintf("Event ID %s | Happening on %s UTC",
			event.ID, event.TriggerAt.UTC().Format(footerTime)),
	}
	if r.author != nil {
		author := *r.author
		doc.Author = &author
	}

	leader := ""
	if id, ok := roster.Leader(); ok {
		leader = id.Mention()
	}

	doc.Fields = append(doc.Fields,
		field("Guides", tmpl.Guides, true),
		field("Requirements", tmpl.Requirements, true),
		field(model.ActionLeader.Icon()+" Leader", leader, false),
	)

	for _, slot := range tmpl.EnabledSlots() {
		occupants := roster.Occupants(slot.ID)
		name := fmt.Sprintf("%s %s (%d/%d)",
			model.RoleAction(slot.ID).Icon(), slot.Name, len(occupants), slot.Capacity)
		doc.Fields = append(doc.Fields, field(name, mentions(occupants), true))
	}

	doc.Fields = append(doc.Fields,
		field(model.ActionFill.Icon()+" Fill", mentions(roster.Occupants(model.RoleFill)), false))

	return doc
}

func field(name, value string, inline bool) model.DocumentField {
	if value == "" {
		value = emptyValue
	}
	return model.DocumentField{Name: name, Value: value, Inline: inline}
}

func mentions(users []model.UserID) string {
	lines := make([]string, len(users))
	for i, u := range users {
		lines[i] = u.Mention()
	}
	return strings.Join(lines, "\n")
}
