package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"
)

// Output handles formatting output based on the configured format
type Output struct {
	format string
	w      io.Writer
}

// NewOutput creates a new Output formatter writing to w
func NewOutput(format string, w io.Writer) *Output {
	return &Output{format: format, w: w}
}

// Print outputs data in the configured format
func (o *Output) Print(data any) {
	if o.format == "json" {
		o.printJSON(data)
	} else {
		o.printText(data)
	}
}

// PrintMessage outputs a simple message
func (o *Output) PrintMessage(msg string) {
	if o.format == "json" {
		data, _ := json.Marshal(map[string]string{"message": msg})
		_, _ = fmt.Fprintln(o.w, string(data))
	} else {
		_, _ = fmt.Fprintln(o.w, msg)
	}
}

func (o *Output) printJSON(data any) {
	enc := json.NewEncoder(o.w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	_ = enc.Encode(data)
}

func (o *Output) printf(format string, args ...any) {
	_, _ = fmt.Fprintf(o.w, format, args...)
}

func (o *Output) printText(data any) {
	switch v := data.(type) {
	case Event:
		o.printEvent(v)
	case CreateEventResult:
		o.printEvent(v.Event)
		o.printf("\n")
		o.printDocument(v.Document)
		o.printActions(v.Actions)
	case CloseResult:
		o.printEvent(v.Event)
		o.printf("Participants (%d): %s\n", len(v.Participants), strings.Join(v.Participants, ", "))
	case Roster:
		o.printRoster(v)
	case Document:
		o.printDocument(v)
	case []Action:
		o.printActions(v)
	case SignalResult:
		o.printSignalResult(v)
	case Templates:
		o.printf("%s templates:\n", v.Type)
		for _, name := range v.Names {
			o.printf("  - %s\n", name)
		}
	case HealthResult:
		o.printf("Status: %s\n", v.Status)
	default:
		// Fallback to JSON for unknown types
		o.printJSON(data)
	}
}

// Event response type (matches API)
type Event struct {
	ID        string    `json:"id"`
	Type      string    `json:"type"`
	Name      string    `json:"name"`
	TriggerAt time.Time `json:"trigger_at"`
	ChannelID string    `json:"channel_id,omitempty"`
	MessageID string    `json:"message_id,omitempty"`
	State     string    `json:"state"`
}

// CreateEventResult is the response to event create
type CreateEventResult struct {
	Event    Event    `json:"event"`
	Document Document `json:"document"`
	Actions  []Action `json:"actions"`
}

// CloseResult is the response to event close
type CloseResult struct {
	Event        Event    `json:"event"`
	Participants []string `json:"participants"`
}

// Action response type
type Action struct {
	Action string `json:"action"`
	Icon   string `json:"icon"`
}

// Roster response type
type Roster struct {
	EventID string              `json:"event_id"`
	Leader  string              `json:"leader,omitempty"`
	Roles   map[string][]string `json:"roles"`
}

// Document is the rendered roster
type Document struct {
	Title       string          `json:"title"`
	Description string          `json:"description"`
	URL         string          `json:"url,omitempty"`
	Footer      string          `json:"footer"`
	Fields      []DocumentField `json:"fields"`
}

// DocumentField is one section of a Document
type DocumentField struct {
	Name   string `json:"name"`
	Value  string `json:"value"`
	Inline bool   `json:"inline"`
}

// SignalResult response type
type SignalResult struct {
	Changed  bool      `json:"changed"`
	Document *Document `json:"document"`
}

// Templates response type
type Templates struct {
	Type  string   `json:"type"`
	Names []string `json:"names"`
}

// HealthResult response type
type HealthResult struct {
	Status string `json:"status"`
}

// rosterRoleOrder matches the server's display order
var rosterRoleOrder = []string{"dps0", "dps1", "healer0", "healer1", "tank0", "tank1", "fill"}

func (o *Output) printEvent(e Event) {
	o.printf("Event: %s\n", e.ID)
	o.printf("Template: %s / %s\n", e.Type, e.Name)
	o.printf("Happening: %s\n", e.TriggerAt.UTC().Format("2006-01-02 15:04 UTC"))
	o.printf("State: %s\n", e.State)
	if e.MessageID != "" {
		o.printf("Message: %s in %s\n", e.MessageID, e.ChannelID)
	}
}

func (o *Output) printRoster(r Roster) {
	o.printf("Roster for %s\n", r.EventID)
	if r.Leader != "" {
		o.printf("  leader: %s\n", r.Leader)
	}
	for _, role := range rosterRoleOrder {
		users, ok := r.Roles[role]
		if !ok {
			continue
		}
		o.printf("  %s: %s\n", role, strings.Join(users, ", "))
	}
}

func (o *Output) printDocument(d Document) {
	o.printf("%s\n", d.Title)
	if d.Description != "" {
		o.printf("%s\n", d.Description)
	}
	for _, f := range d.Fields {
		o.printf("\n%s\n", f.Name)
		for _, line := range strings.Split(f.Value, "\n") {
			o.printf("  %s\n", line)
		}
	}
	o.printf("\n%s\n", d.Footer)
}

func (o *Output) printActions(actions []Action) {
	parts := make([]string, len(actions))
	for i, a := range actions {
		parts[i] = a.Icon + " " + a.Action
	}
	o.printf("Actions: %s\n", strings.Join(parts, "  "))
}

func (o *Output) printSignalResult(r SignalResult) {
	if !r.Changed || r.Document == nil {
		o.printf("No change\n")
		return
	}
	o.printDocument(*r.Document)
}
