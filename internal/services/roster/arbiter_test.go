package roster

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mcoot/raidroster/internal/model"
)

func TestResolve(t *testing.T) {
	tmpl := &model.EventTemplate{Slots: []model.RoleSlot{
		{ID: model.RoleTank0, Name: "Tank", Capacity: 1},
		{ID: model.RoleDPS0, Name: "DD", Capacity: 2},
	}}
	full := Classify([]model.Participant{row("alice", model.RoleTank0, false)})

	tests := []struct {
		name      string
		requested model.RoleID
		roster    Classified
		existing  bool
		want      model.RoleID
		wantOK    bool
	}{
		{"room for newcomer", model.RoleDPS0, full, false, model.RoleDPS0, true},
		{"room for existing", model.RoleDPS0, full, true, model.RoleDPS0, true},
		{"full overflows newcomer", model.RoleTank0, full, false, model.RoleFill, true},
		{"full rejects existing", model.RoleTank0, full, true, "", false},
		{"empty roster", model.RoleTank0, Classify(nil), false, model.RoleTank0, true},
		{"disabled slot overflows newcomer", model.RoleHealer0, full, false, model.RoleFill, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Resolve(tmpl, tt.requested, tt.roster, tt.existing)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestVisibleActions(t *testing.T) {
	tmpl := &model.EventTemplate{Slots: []model.RoleSlot{
		{ID: model.RoleDPS0, Capacity: 4},
		{ID: model.RoleDPS1, Capacity: 0},
		{ID: model.RoleHealer0, Capacity: 2},
		{ID: model.RoleTank0, Capacity: 1},
	}}

	assert.Equal(t, []model.Action{
		model.ActionLeader,
		model.RoleAction(model.RoleDPS0),
		model.RoleAction(model.RoleHealer0),
		model.RoleAction(model.RoleTank0),
		model.ActionFill,
		model.ActionClear,
	}, VisibleActions(tmpl))

	assert.True(t, Offered(tmpl, model.ActionClear))
	assert.True(t, Offered(tmpl, model.RoleAction(model.RoleTank0)))
	assert.False(t, Offered(tmpl, model.RoleAction(model.RoleDPS1)))
	assert.False(t, Offered(tmpl, "dance"))
}
