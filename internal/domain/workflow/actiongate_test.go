package workflow

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDisabledActions(t *testing.T) {
	t.Run("resolution disables until a diagnosis re-enables", func(t *testing.T) {
		rows := []ActionRow{
			{ResultID: 1, HasRole: true, TaskKind: TaskKindResolution},
			{ResultID: 2, HasRole: true, TaskKind: TaskKindDiagnosis},
			{ResultID: 3, HasRole: true, TaskKind: TaskKindResolution},
		}

		disabled := DisabledActions(rows)

		assert.Equal(t, map[uint]bool{1: true, 2: false, 3: true}, disabled)
	})

	t.Run("disable state carries across normal rows", func(t *testing.T) {
		rows := []ActionRow{
			{ResultID: 1, HasRole: true, TaskKind: TaskKindResolution},
			{ResultID: 2, HasRole: true, TaskKind: TaskKindNormal},
			{ResultID: 3, HasRole: true, TaskKind: TaskKindNormal},
		}

		disabled := DisabledActions(rows)

		assert.True(t, disabled[1])
		assert.True(t, disabled[2])
		assert.True(t, disabled[3])
	})

	t.Run("rows without a role are skipped entirely", func(t *testing.T) {
		rows := []ActionRow{
			{ResultID: 1, HasRole: false, TaskKind: TaskKindResolution},
			{ResultID: 2, HasRole: true, TaskKind: TaskKindNormal},
		}

		disabled := DisabledActions(rows)

		_, present := disabled[1]
		assert.False(t, present)
		assert.False(t, disabled[2])
	})

	t.Run("skipped resolution rows do not flip the state", func(t *testing.T) {
		rows := []ActionRow{
			{ResultID: 1, HasRole: false, TaskKind: TaskKindResolution},
			{ResultID: 2, HasRole: true, TaskKind: TaskKindNormal},
			{ResultID: 3, HasRole: true, TaskKind: TaskKindResolution},
			{ResultID: 4, HasRole: true, TaskKind: TaskKindNormal},
		}

		disabled := DisabledActions(rows)

		assert.False(t, disabled[2])
		assert.True(t, disabled[3])
		assert.True(t, disabled[4])
	})

	t.Run("exempt rows never flip the state", func(t *testing.T) {
		rows := []ActionRow{
			{ResultID: 1, HasRole: true, TaskKind: TaskKindResolution, CostExempt: true},
			{ResultID: 2, HasRole: true, TaskKind: TaskKindNormal, CostExempt: true},
		}

		disabled := DisabledActions(rows)

		assert.False(t, disabled[1])
		assert.False(t, disabled[2])
	})

	t.Run("empty input yields an empty map", func(t *testing.T) {
		assert.Empty(t, DisabledActions(nil))
	})
}

func TestDeriveTaskKind(t *testing.T) {
	assert.Equal(t, TaskKindDiagnosis, DeriveTaskKind("Diagnostico inicial"))
	assert.Equal(t, TaskKindResolution, DeriveTaskKind("Resolucion del caso"))
	assert.Equal(t, TaskKindNormal, DeriveTaskKind("Registro"))
	assert.Equal(t, TaskKindNormal, DeriveTaskKind(""))
}

func TestDeriveCostExempt(t *testing.T) {
	assert.True(t, DeriveCostExempt("Mantenimiento Interno"))
	assert.True(t, DeriveCostExempt("Customer Experience"))
	assert.False(t, DeriveCostExempt("Mantenimiento"))
}

func TestSubtypeDefaults(t *testing.T) {
	hours := 48
	priority := 2
	zero := 0

	full := &Subtype{SLAHours: &hours, Priority: &priority}
	assert.Equal(t, 48, full.EffectiveSLAHours())
	assert.Equal(t, 2, full.EffectivePriority())

	empty := &Subtype{}
	assert.Equal(t, DefaultSLAHours, empty.EffectiveSLAHours())
	assert.Equal(t, DefaultPriority, empty.EffectivePriority())

	zeroSLA := &Subtype{SLAHours: &zero, Priority: &zero}
	assert.Equal(t, DefaultSLAHours, zeroSLA.EffectiveSLAHours())
	assert.Equal(t, 0, zeroSLA.EffectivePriority())
}
