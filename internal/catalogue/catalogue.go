package catalogue

import (
	"embed"
	"fmt"
	"os"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/mcoot/raidroster/internal/model"
)

//go:embed templates/trials.yaml
var builtin embed.FS

const builtinPath = "templates/trials.yaml"

// roleEntry is the on-disk shape of one role slot
type roleEntry struct {
	Name   string `yaml:"name"`
	Amount int    `yaml:"amount"`
}

// templateEntry is the on-disk shape of one event template
type templateEntry struct {
	Title        string               `yaml:"title"`
	Description  string               `yaml:"description"`
	URL          string               `yaml:"url"`
	Image        string               `yaml:"image"`
	Guides       string               `yaml:"guides"`
	Requirements string               `yaml:"requirements"`
	Roles        map[string]roleEntry `yaml:"roles"`
}

// document is the full catalogue file: event type -> event name -> template
type document map[string]map[string]templateEntry

// supportedTypes lists the event categories the registration menu understands
var supportedTypes = map[model.EventType]bool{
	model.EventTypeTrial: true,
}

// Catalogue is a read-only set of event templates
type Catalogue struct {
	templates map[model.EventType]map[string]model.EventTemplate
}

// Default returns the catalogue built into the binary
func Default() (*Catalogue, error) {
	data, err := builtin.ReadFile(builtinPath)
	if err != nil {
		return nil, fmt.Errorf("catalogue: read builtin templates: %w", err)
	}
	return Parse(data)
}

// Load reads a catalogue from a YAML file on disk
func Load(path string) (*Catalogue, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("catalogue: read %s: %w", path, err)
	}
	c, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("catalogue: %s: %w", path, err)
	}
	return c, nil
}

// Parse builds a catalogue from YAML, merging each entry over the base role table
func Parse(data []byte) (*Catalogue, error) {
	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("catalogue: parse: %w", err)
	}

	c := &Catalogue{templates: make(map[model.EventType]map[string]model.EventTemplate)}
	for typeName, entries := range doc {
		eventType := model.EventType(typeName)
		if !supportedTypes[eventType] {
			return nil, fmt.Errorf("catalogue: %w: %q", model.ErrUnknownEventType, typeName)
		}
		byName := make(map[string]model.EventTemplate, len(entries))
		for name, entry := range entries {
			tmpl, err := entry.build(eventType, name)
			if err != nil {
				return nil, fmt.Errorf("catalogue: %s/%s: %w", typeName, name, err)
			}
			byName[name] = tmpl
		}
		c.templates[eventType] = byName
	}
	return c, nil
}

func (e templateEntry) build(eventType model.EventType, name string) (model.EventTemplate, error) {
	if strings.TrimSpace(e.Title) == "" {
		return model.EventTemplate{}, fmt.Errorf("title is required")
	}
	for role, r := range e.Roles {
		if !model.RoleID(role).IsSlot() {
			return model.EventTemplate{}, fmt.Errorf("unknown role %q", role)
		}
		if r.Amount < 0 {
			return model.EventTemplate{}, fmt.Errorf("role %q: amount must not be negative", role)
		}
	}

	// Every role starts disabled; the entry only lists the ones it uses
	slots := make([]model.RoleSlot, 0, len(model.AllRoles))
	for _, role := range model.AllRoles {
		slot := model.RoleSlot{ID: role}
		if r, ok := e.Roles[string(role)]; ok {
			slot.Name = strings.TrimSpace(r.Name)
			slot.Capacity = r.Amount
		}
		slots = append(slots, slot)
	}

	return model.EventTemplate{
		Type:         eventType,
		Name:         name,
		Title:        strings.TrimSpace(e.Title),
		Description:  strings.TrimSpace(e.Description),
		URL:          strings.TrimSpace(e.URL),
		Image:        strings.TrimSpace(e.Image),
		Guides:       strings.TrimSpace(e.Guides),
		Requirements: strings.TrimSpace(e.Requirements),
		Slots:        slots,
	}, nil
}

// Get returns the template for an event type and name
func (c *Catalogue) Get(eventType model.EventType, name string) (model.EventTemplate, error) {
	if !supportedTypes[eventType] {
		return model.EventTemplate{}, fmt.Errorf("%w: %q", model.ErrUnknownEventType, eventType)
	}
	tmpl, ok := c.templates[eventType][name]
	if !ok {
		return model.EventTemplate{}, fmt.Errorf("%w: %s/%s", model.ErrTemplateNotFound, eventType, name)
	}
	// Slots is shared; hand out a copy so callers cannot mutate the catalogue
	tmpl.Slots = append([]model.RoleSlot(nil), tmpl.Slots...)
	return tmpl, nil
}

// Names returns the sorted template names for an event type
func (c *Catalogue) Names(eventType model.EventType) ([]string, error) {
	if !supportedTypes[eventType] {
		return nil, fmt.Errorf("%w: %q", model.ErrUnknownEventType, eventType)
	}
	names := make([]string, 0, len(c.templates[eventType]))
	for name := range c.templates[eventType] {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

// Types returns the supported event types, sorted
func (c *Catalogue) Types() []model.EventType {
	types := make([]model.EventType, 0, len(supportedTypes))
	for t := range supportedTypes {
		types = append(types, t)
	}
	sort.Slice(types, func(i, j int) bool { return types[i] < types[j] })
	return types
}

// Interface for dependency injection
type CatalogueInterface interface {
	Get(eventType model.EventType, name string) (model.EventTemplate, error)
	Names(eventType model.EventType) ([]string, error)
	Types() []model.EventType
}

var _ CatalogueInterface = (*Catalogue)(nil)
