package roster

import (
	"context"
	"fmt"
	"log/slog"
	"slices"

	"golang.org/x/sync/singleflight"

	"github.com/mcoot/raidroster/internal/catalogue"
	"github.com/mcoot/raidroster/internal/lock"
	"github.com/mcoot/raidroster/internal/model"
	"github.com/mcoot/raidroster/internal/storage"
)

// Publisher receives every document produced by a roster change
type Publisher interface {
	Publish(eventID model.EventID, doc model.DisplayDocument)
}

type nopPublisher struct{}

func (nopPublisher) Publish(model.EventID, model.DisplayDocument) {}

// Signal is one user action on an event, as delivered by a transport
type Signal struct {
	EventID model.EventID
	UserID  model.UserID
	Action  model.Action
}

// Result is the outcome of a signal. Document is nil when nothing changed.
type Result struct {
	Changed  bool
	Document *model.DisplayDocument
}

// Controller runs the assignment state machine for event rosters
type Controller struct {
	storage   storage.Storage
	catalogue catalogue.CatalogueInterface
	locker    lock.Locker
	renderer  *Renderer
	publisher Publisher
	logger    *slog.Logger

	// Viewers opening the same event at once share one read
	renders singleflight.Group
}

// NewController creates a new roster Controller. A nil publisher discards updates.
func NewController(
	storage storage.Storage,
	catalogue catalogue.CatalogueInterface,
	locker lock.Locker,
	renderer *Renderer,
	publisher Publisher,
	logger *slog.Logger,
) *Controller {
	if publisher == nil {
		publisher = nopPublisher{}
	}
	return &Controller{
		storage:   storage,
		catalogue: catalogue,
		locker:    locker,
		renderer:  renderer,
		publisher: publisher,
		logger:    logger.With("component", "roster"),
	}
}

// state is one consistent read of an event and its roster
type state struct {
	event  *model.Event
	tmpl   model.EventTemplate
	rows   []model.Participant
	roster Classified
}

// saved mirrors SaveParticipant: the row replaces the user's old one at the end
func (st *state) saved(row model.Participant) {
	st.rows = append(withoutUser(st.rows, row.UserID), row)
}

// leaderSet mirrors SetLeader: the flag changes, arrival order does not
func (st *state) leaderSet(user model.UserID) {
	for i := range st.rows {
		if st.rows[i].UserID == user {
			st.rows[i].Leader = true
		}
	}
}

// deleted mirrors DeleteParticipant
func (st *state) deleted(user model.UserID) {
	st.rows = withoutUser(st.rows, user)
}

func withoutUser(rows []model.Participant, user model.UserID) []model.Participant {
	out := make([]model.Participant, 0, len(rows)+1)
	for _, row := range rows {
		if row.UserID != user {
			out = append(out, row)
		}
	}
	return out
}

func (c *Controller) load(ctx context.Context, eventID model.EventID) (*state, error) {
	event, err := c.storage.GetEvent(ctx, eventID)
	if err != nil {
		return nil, err
	}
	tmpl, err := c.catalogue.Get(event.Type, event.Name)
	if err != nil {
		return nil, err
	}
	rows, err := c.storage.ListParticipants(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("list participants: %w", err)
	}
	return &state{event: event, tmpl: tmpl, rows: rows, roster: Classify(rows)}, nil
}

// mutate holds the event lock across read, decide and write, then renders and
// publishes the new state. apply returns false for a no-op; on success it has
// recorded its write on st, so the roster is rendered without a second read.
func (c *Controller) mutate(ctx context.Context, eventID model.EventID, op string, user model.UserID, apply func(st *state) (bool, error)) (*Result, error) {
	unlock, err := c.locker.Lock(ctx, string(eventID))
	if err != nil {
		return nil, fmt.Errorf("lock event %s: %w", eventID, err)
	}
	defer unlock()

	st, err := c.load(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if !st.event.IsOpen() {
		return nil, model.ErrEventClosed
	}

	changed, err := apply(st)
	if err != nil {
		c.logger.Error("roster write failed", "op", op, "event_id", eventID, "user_id", user, "error", err)
		return nil, err
	}
	if !changed {
		c.logger.Debug("signal ignored", "op", op, "event_id", eventID, "user_id", user)
		return &Result{}, nil
	}

	doc := c.renderer.Render(&st.tmpl, st.event, Classify(st.rows))
	c.publisher.Publish(eventID, doc)

	c.logger.Info("roster updated", "op", op, "event_id", eventID, "user_id", user)
	return &Result{Changed: true, Document: &doc}, nil
}

// JoinRole assigns the user to a role slot, overflowing new users to fill
// when the slot is full. Existing users asking for a full slot are ignored.
func (c *Controller) JoinRole(ctx context.Context, eventID model.EventID, user model.UserID, role model.RoleID) (*Result, error) {
	if !role.IsSlot() {
		return nil, fmt.Errorf("%w: %s", model.ErrUnknownAction, role)
	}
	return c.mutate(ctx, eventID, "join-role", user, func(st *state) (bool, error) {
		if st.tmpl.Capacity(role) == 0 {
			// Hidden slot
			return false, nil
		}
		effective, ok := Resolve(&st.tmpl, role, st.roster, st.roster.Has(user))
		if !ok {
			return false, nil
		}
		row := clearFunctionalRole(st, user)
		row.Role = effective
		if err := c.storage.SaveParticipant(ctx, row); err != nil {
			return false, fmt.Errorf("save participant: %w", err)
		}
		st.saved(row)
		return true, nil
	})
}

// ClaimLeader marks an already registered user as the event's single leader
func (c *Controller) ClaimLeader(ctx context.Context, eventID model.EventID, user model.UserID) (*Result, error) {
	return c.mutate(ctx, eventID, "claim-leader", user, func(st *state) (bool, error) {
		if !st.roster.Has(user) {
			return false, nil
		}
		if _, taken := st.roster.Leader(); taken {
			return false, nil
		}
		if err := c.storage.SetLeader(ctx, eventID, user); err != nil {
			return false, fmt.Errorf("set leader: %w", err)
		}
		st.leaderSet(user)
		return true, nil
	})
}

// JoinFill replaces whatever the user held, leader marker included, with a fill row
func (c *Controller) JoinFill(ctx context.Context, eventID model.EventID, user model.UserID) (*Result, error) {
	return c.mutate(ctx, eventID, "join-fill", user, func(st *state) (bool, error) {
		row := model.Participant{EventID: eventID, UserID: user, Role: model.RoleFill}
		if err := c.storage.SaveParticipant(ctx, row); err != nil {
			return false, fmt.Errorf("save participant: %w", err)
		}
		st.saved(row)
		return true, nil
	})
}

// Leave removes every trace of the user from the roster, leader marker included
func (c *Controller) Leave(ctx context.Context, eventID model.EventID, user model.UserID) (*Result, error) {
	return c.mutate(ctx, eventID, "leave", user, func(st *state) (bool, error) {
		if !st.roster.Has(user) {
			return false, nil
		}
		if err := c.storage.DeleteParticipant(ctx, eventID, user); err != nil {
			return false, fmt.Errorf("delete participant: %w", err)
		}
		st.deleted(user)
		return true, nil
	})
}

// Dispatch routes a signal to its operation
func (c *Controller) Dispatch(ctx context.Context, sig Signal) (*Result, error) {
	switch sig.Action {
	case model.ActionLeader:
		return c.ClaimLeader(ctx, sig.EventID, sig.UserID)
	case model.ActionFill:
		return c.JoinFill(ctx, sig.EventID, sig.UserID)
	case model.ActionClear:
		return c.Leave(ctx, sig.EventID, sig.UserID)
	}
	if role, ok := sig.Action.Role(); ok {
		return c.JoinRole(ctx, sig.EventID, sig.UserID, role)
	}
	return nil, fmt.Errorf("%w: %q", model.ErrUnknownAction, sig.Action)
}

// RenderCurrentState renders the roster as it is now. It never mutates.
func (c *Controller) RenderCurrentState(ctx context.Context, eventID model.EventID) (*model.DisplayDocument, error) {
	// The shared read must outlive any one viewer disconnecting
	shared := context.WithoutCancel(ctx)
	v, err, _ := c.renders.Do(string(eventID), func() (any, error) {
		st, err := c.load(shared, eventID)
		if err != nil {
			return nil, err
		}
		return c.renderer.Render(&st.tmpl, st.event, st.roster), nil
	})
	if err != nil {
		return nil, err
	}
	doc := v.(model.DisplayDocument)
	doc.Fields = slices.Clone(doc.Fields)
	return &doc, nil
}

// Roster returns the classified roster of an event
func (c *Controller) Roster(ctx context.Context, eventID model.EventID) (Classified, error) {
	st, err := c.load(ctx, eventID)
	if err != nil {
		return Classified{}, err
	}
	return st.roster, nil
}

// VisibleActions lists the actions the transport should offer for an event
func (c *Controller) VisibleActions(ctx context.Context, eventID model.EventID) ([]model.Action, error) {
	event, err := c.storage.GetEvent(ctx, eventID)
	if err != nil {
		return nil, err
	}
	tmpl, err := c.catalogue.Get(event.Type, event.Name)
	if err != nil {
		return nil, err
	}
	return VisibleActions(&tmpl), nil
}

// clearFunctionalRole returns the user's row stripped of its functional role.
// Only the leader marker survives.
func clearFunctionalRole(st *state, user model.UserID) model.Participant {
	row := model.Participant{EventID: st.event.ID, UserID: user}
	if existing, ok := st.roster.Row(user); ok {
		row.Leader = existing.Leader
	}
	return row
}

// ControllerInterface defines the interface for roster operations
type ControllerInterface interface {
	JoinRole(ctx context.Context, eventID model.EventID, user model.UserID, role model.RoleID) (*Result, error)
	ClaimLeader(ctx context.Context, eventID model.EventID, user model.UserID) (*Result, error)
	JoinFill(ctx context.Context, eventID model.EventID, user model.UserID) (*Result, error)
	Leave(ctx context.Context, eventID model.EventID, user model.UserID) (*Result, error)
	Dispatch(ctx context.Context, sig Signal) (*Result, error)
	RenderCurrentState(ctx context.Context, eventID model.EventID) (*model.DisplayDocument, error)
	Roster(ctx context.Context, eventID model.EventID) (Classified, error)
	VisibleActions(ctx context.Context, eventID model.EventID) ([]model.Action, error)
}

// Ensure Controller implements ControllerInterface
var _ ControllerInterface = (*Controller)(nil)
