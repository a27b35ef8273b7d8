package access

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCapabilitySet(t *testing.T) {
	var s CapabilitySet

	assert.False(t, s.Has(CapCreate))
	assert.Equal(t, "none", s.String())

	s = s.With(CapCreate).With(CapAddCost)

	assert.True(t, s.Has(CapCreate))
	assert.True(t, s.Has(CapAddCost))
	assert.False(t, s.Has(CapClose))
	assert.Equal(t, "create|add_cost", s.String())
}

func TestRoleTaskScopedTo(t *testing.T) {
	role := &RoleTask{
		ID:        1,
		Name:      "Tecnico",
		ProcessID: 2,
		TaskIDs:   []uint{10, 11},
	}

	assert.True(t, role.ScopedTo(10))
	assert.True(t, role.ScopedTo(11))
	assert.False(t, role.ScopedTo(12))
	assert.False(t, (&RoleTask{}).ScopedTo(10))
}
