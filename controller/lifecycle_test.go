package controller

import (
	"testing"

	"github.com/milk9111/herbicide/ecs"
	"github.com/milk9111/herbicide/ecs/component"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTryRemoveModelIsIdempotent(t *testing.T) {
	h := newHarness(t)
	en := h.spawn(t, component.KindKudzu, 4, 4).(*Enemy)
	e := en.Entity()

	assert.False(t, en.TryRemoveModel(), "a healthy enemy stays")

	hp, _ := ecs.Get(h.w, e, component.HealthComponent)
	hp.Current = 0

	assert.True(t, en.TryRemoveModel())
	for i := 0; i < 3; i++ {
		assert.False(t, en.TryRemoveModel())
	}

	assert.Equal(t, 1, h.pool.returns[e], "exactly one pool return")
	assert.Equal(t, 1, h.scene.detached[e], "exactly one detach")
	assert.Len(t, h.ofKind(component.KindDew), 1, "exactly one loot drop")
	assert.True(t, en.Removed())
	assert.False(t, en.ValidModel())
	assert.False(t, h.w.IsAlive(e))
}

func TestRemovedControllerUpdateIsNoop(t *testing.T) {
	h := newHarness(t)
	en := h.spawn(t, component.KindKudzu, 0, 0).(*Enemy)
	hp, _ := ecs.Get(h.w, en.Entity(), component.HealthComponent)
	hp.Current = 0

	h.tick(0.1)
	require.True(t, en.Removed())
	state := en.GetState()

	en.Update(&Tick{Phase: PhaseOngoing, Delta: 1})
	assert.Equal(t, state, en.GetState())
	assert.Equal(t, 1, h.pool.returns[en.Entity()])
}

func TestHazardLifetimeScenario(t *testing.T) {
	h := newHarness(t)
	hz := h.spawn(t, component.KindSlowZone, 0, 0).(*SlowZone)
	life, ok := ecs.Get(h.w, hz.Entity(), component.LifetimeComponent)
	require.True(t, ok)
	life.Span = 10

	for tick := 0; tick < 10; tick++ {
		require.False(t, hz.TryRemoveModel(), "tick %d", tick)
		hz.Update(&Tick{Phase: PhaseOngoing, Delta: 1, Targets: h.mgr.Snapshot()})
	}
	assert.True(t, hz.TryRemoveModel(), "tick 10")
	assert.Equal(t, 1, h.pool.returns[hz.Entity()])
}

func TestHazardIgnoresHealth(t *testing.T) {
	h := newHarness(t)
	hz := h.spawn(t, component.KindBombSplat, 0, 0).(*Hazard)
	require.NoError(t, ecs.Add(h.w, hz.Entity(), component.HealthComponent, component.Health{}))
	assert.True(t, hz.ValidModel(), "zero health does not end a hazard")
}

func TestValidityDefaults(t *testing.T) {
	cases := []struct {
		name  string
		kind  component.Kind
		kill  func(w *ecs.World, e ecs.Entity)
		valid bool
	}{
		{
			name:  "structure_always_valid",
			kind:  component.KindStoneWall,
			kill:  func(w *ecs.World, e ecs.Entity) {},
			valid: true,
		},
		{
			name: "tree_dead_flag",
			kind: component.KindBasicTree,
			kill: func(w *ecs.World, e ecs.Entity) {
				l, _ := ecs.Get(w, e, component.LifeComponent)
				l.Dead = true
			},
		},
		{
			name: "tree_ignores_health",
			kind: component.KindBasicTree,
			kill: func(w *ecs.World, e ecs.Entity) {
				hp, _ := ecs.Get(w, e, component.HealthComponent)
				hp.Current = 0
			},
			valid: true,
		},
		{
			name: "defender_health",
			kind: component.KindBear,
			kill: func(w *ecs.World, e ecs.Entity) {
				hp, _ := ecs.Get(w, e, component.HealthComponent)
				hp.Current = 0
			},
		},
		{
			name: "enemy_escaped",
			kind: component.KindKudzu,
			kill: func(w *ecs.World, e ecs.Entity) {
				l, _ := ecs.Get(w, e, component.LifeComponent)
				l.Escaped = true
			},
		},
		{
			name: "collectable_collected",
			kind: component.KindDew,
			kill: func(w *ecs.World, e ecs.Entity) {
				c, _ := ecs.Get(w, e, component.CollectableComponent)
				c.Collected = true
			},
		},
		{
			name: "projectile_inactive",
			kind: component.KindAcorn,
			kill: func(w *ecs.World, e ecs.Entity) {
				p, _ := ecs.Get(w, e, component.ProjectileComponent)
				p.Active = false
			},
		},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			h := newHarness(t)
			ctrl := h.spawn(t, c.kind, 1, 1)
			require.True(t, ctrl.ValidModel())
			c.kill(h.w, ctrl.Entity())
			assert.Equal(t, c.valid, ctrl.ValidModel())
			assert.Equal(t, !c.valid, ctrl.TryRemoveModel())
		})
	}
}

func TestPhaseGate(t *testing.T) {
	h := newHarness(t)
	d := h.spawn(t, component.KindSquirrel, 0, 0).(*Defender)

	for _, phase := range []Phase{PhaseMenu, PhasePaused, PhaseWon, PhaseLost} {
		h.mgr.Tick(phase, 0.1)
		assert.Equal(t, DefenderSpawn, d.GetState(), "no step during %s", phase)
	}
	h.mgr.Tick(PhaseOngoing, 0.1)
	assert.Equal(t, DefenderIdle, d.GetState())
}

func TestRemovalRunsOutsideOngoing(t *testing.T) {
	h := newHarness(t)
	d := h.spawn(t, component.KindSquirrel, 0, 0).(*Defender)
	hp, _ := ecs.Get(h.w, d.Entity(), component.HealthComponent)
	hp.Current = 0

	h.mgr.Tick(PhasePaused, 0.1)
	assert.True(t, d.Removed())
	assert.Zero(t, h.mgr.Len())
}
