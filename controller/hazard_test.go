package controller

import (
	"testing"

	"github.com/milk9111/herbicide/ecs"
	"github.com/milk9111/herbicide/ecs/component"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// speed returns e's effective speed; dummies move at 1.
func speed(t *testing.T, w *ecs.World, e ecs.Entity) float64 {
	t.Helper()
	m, ok := ecs.Get(w, e, component.MovementComponent)
	require.True(t, ok)
	return m.Effective()
}

func TestSlowZoneSlowsAndRestores(t *testing.T) {
	h := newHarness(t)
	zone := h.spawn(t, component.KindSlowZone, 0, 0).(*SlowZone)
	inside := h.dummy(t, component.FactionHostile, 1, 0, 10)
	leaving := h.dummy(t, component.FactionHostile, 0, 1, 10)
	outside := h.dummy(t, component.FactionHostile, 5, 0, 10)
	friend := h.dummy(t, component.FactionFriendly, 0.5, 0, 10)

	h.tick(0.1)
	assert.Equal(t, 0.5, speed(t, h.w, inside))
	assert.Equal(t, 0.5, speed(t, h.w, leaving))
	assert.Equal(t, 1.0, speed(t, h.w, outside))
	assert.Equal(t, 1.0, speed(t, h.w, friend))

	h.tick(0.1)
	assert.Equal(t, 0.5, speed(t, h.w, inside), "slowed once, not every tick")

	moveTo(h.w, leaving, 0, 4)
	h.tick(0.1)
	assert.Equal(t, 1.0, speed(t, h.w, leaving), "restored on exit")
	assert.False(t, zone.Slowed(leaving))

	life, _ := ecs.Get(h.w, zone.Entity(), component.LifetimeComponent)
	life.Age = life.Span
	h.tick(0.1)
	assert.True(t, zone.Removed())
	assert.Equal(t, 1.0, speed(t, h.w, inside), "restored when the zone ends")
}

func TestOverlappingSlowZones(t *testing.T) {
	h := newHarness(t)
	a := h.spawn(t, component.KindSlowZone, 0, 0).(*SlowZone)
	b := h.spawn(t, component.KindSlowZone, 2.5, 0).(*SlowZone)
	enemy := h.dummy(t, component.FactionHostile, -1, 0, 10)

	h.tick(0.1)
	assert.Equal(t, 0.5, speed(t, h.w, enemy), "in A only")

	moveTo(h.w, enemy, 1.25, 0)
	h.tick(0.1)
	assert.True(t, a.Slowed(enemy))
	assert.True(t, b.Slowed(enemy))
	assert.Equal(t, 0.25, speed(t, h.w, enemy), "slows stack while both hold it")

	moveTo(h.w, enemy, 3.5, 0)
	h.tick(0.1)
	assert.False(t, a.Slowed(enemy))
	assert.True(t, b.Slowed(enemy))
	assert.Equal(t, 0.5, speed(t, h.w, enemy), "in B only")

	moveTo(h.w, enemy, 8, 0)
	h.tick(0.1)
	assert.False(t, b.Slowed(enemy))
	assert.Equal(t, 1.0, speed(t, h.w, enemy), "outside every zone")
	m, _ := ecs.Get(h.w, enemy, component.MovementComponent)
	assert.Empty(t, m.Slows)
}

func TestSlowZonesLiftOnlyTheirOwnSlow(t *testing.T) {
	h := newHarness(t)
	a := h.spawn(t, component.KindSlowZone, 0, 0).(*SlowZone)
	h.spawn(t, component.KindSlowZone, 0.5, 0)
	enemy := h.dummy(t, component.FactionHostile, 0.25, 0, 10)

	h.tick(0.1)
	require.Equal(t, 0.25, speed(t, h.w, enemy))

	life, _ := ecs.Get(h.w, a.Entity(), component.LifetimeComponent)
	life.Age = life.Span
	h.tick(0.1)
	assert.True(t, a.Removed())
	assert.Equal(t, 0.5, speed(t, h.w, enemy), "the other zone still holds it")
}

func TestBombSplatBurns(t *testing.T) {
	h := newHarness(t)
	splat := h.spawn(t, component.KindBombSplat, 0, 0).(*Hazard)
	victim := h.dummy(t, component.FactionHostile, 0.5, 0, 100)

	h.tick(0.5)
	assert.Equal(t, HazardActive, splat.GetState())
	assert.InDelta(t, 96, health(t, h.w, victim), 1e-9)

	h.ticks(6, 0.5)
	assert.True(t, splat.Removed(), "three second lifespan")
	before := health(t, h.w, victim)
	h.tick(0.5)
	assert.Equal(t, before, health(t, h.w, victim))
}

func TestHazardNeverElects(t *testing.T) {
	h := newHarness(t)
	splat := h.spawn(t, component.KindBombSplat, 0, 0).(*Hazard)
	h.dummy(t, component.FactionHostile, 0.5, 0, 100)

	h.tick(0.1)
	assert.Zero(t, splat.MaxTargets())
	assert.Len(t, splat.Candidates(), 1)
	assert.Empty(t, splat.Targets())
}
