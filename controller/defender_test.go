package controller

import (
	"testing"

	"github.com/milk9111/herbicide/ecs"
	"github.com/milk9111/herbicide/ecs/component"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSquirrelAttackLaunchesAcorn(t *testing.T) {
	h := newHarness(t)
	d := h.spawn(t, component.KindSquirrel, 0, 0).(*Defender)
	target := h.dummy(t, component.FactionHostile, 2, 0, 100)

	h.tick(0.1)
	assert.Empty(t, h.ofKind(component.KindAcorn), "no attack while IDLE")

	h.tick(0.1)
	require.Equal(t, DefenderAttack, d.GetState())
	acorns := h.ofKind(component.KindAcorn)
	require.Len(t, acorns, 1)

	p, ok := ecs.Get(h.w, acorns[0].Entity(), component.ProjectileComponent)
	require.True(t, ok)
	assert.Equal(t, uint64(d.Entity()), p.Source)
	assert.Equal(t, uint64(target), p.Target)
	assert.Equal(t, 2.0, p.DestX)
	assert.Equal(t, 1.2, combatOf(t, h.w, d.Entity()).Remaining)

	h.tick(0.1)
	assert.Len(t, h.ofKind(component.KindAcorn), 1, "cooldown holds the next shot")
}

func TestDefenderKindsAttack(t *testing.T) {
	cases := []struct {
		kind       component.Kind
		projectile component.Kind
	}{
		{component.KindSquirrel, component.KindAcorn},
		{component.KindPorcupine, component.KindQuill},
		{component.KindOwl, component.KindIceChunk},
	}
	for _, c := range cases {
		t.Run(string(c.kind), func(t *testing.T) {
			h := newHarness(t)
			h.spawn(t, c.kind, 0, 0)
			h.dummy(t, component.FactionHostile, 1, 0, 100)
			h.ticks(2, 0.1)
			assert.Len(t, h.ofKind(c.projectile), 1)
		})
	}
}

func TestBearChomps(t *testing.T) {
	h := newHarness(t)
	h.spawn(t, component.KindBear, 0, 0)
	target := h.dummy(t, component.FactionHostile, 1, 0, 100)

	h.ticks(2, 0.1)
	assert.Equal(t, 70.0, health(t, h.w, target))
	h.ticks(5, 0.1)
	assert.Equal(t, 70.0, health(t, h.w, target), "cooldown of two seconds")
}

func TestDefenderIgnoresFriendsAndDistantHostiles(t *testing.T) {
	h := newHarness(t)
	d := h.spawn(t, component.KindSquirrel, 0, 0).(*Defender)
	h.dummy(t, component.FactionFriendly, 1, 0, 100)
	h.dummy(t, component.FactionHostile, 20, 0, 100)

	h.ticks(3, 0.1)
	assert.Equal(t, DefenderIdle, d.GetState())
	assert.Empty(t, d.Targets())
}

func TestSpeedTreeBoostsOccupant(t *testing.T) {
	h := newHarness(t)
	tree := h.spawn(t, component.KindSpeedTree, 0, 0).(*SpeedTree)
	owl, err := h.factory.Place(component.KindOwl, tree.Tree)
	require.NoError(t, err)

	h.tick(0.1)
	assert.Equal(t, 1.5, combatOf(t, h.w, owl.Entity()).SpeedScale)
	boosted, ok := tree.Boosted()
	require.True(t, ok)
	assert.Equal(t, owl.Entity(), boosted)

	ecsLife(t, h.w, tree.Entity()).Dead = true
	h.tick(0.1)
	assert.True(t, tree.Removed())
	assert.Equal(t, 1.0, combatOf(t, h.w, owl.Entity()).SpeedScale)
}

func TestBoostedCooldownDrainsFaster(t *testing.T) {
	h := newHarness(t)
	d := h.spawn(t, component.KindSquirrel, 0, 0).(*Defender)
	c := combatOf(t, h.w, d.Entity())
	c.Remaining = 1
	c.SpeedScale = 2

	h.tick(0.25)
	assert.InDelta(t, 0.5, c.Remaining, 1e-9)
}

func TestPlaceRejectsUnusableTrees(t *testing.T) {
	t.Run("dead tree", func(t *testing.T) {
		h := newHarness(t)
		tree := h.spawn(t, component.KindBasicTree, 0, 0).(*Tree)
		life, _ := ecs.Get(h.w, tree.Entity(), component.LifeComponent)
		life.Dead = true

		_, err := h.factory.Place(component.KindSquirrel, tree)
		assert.Error(t, err)
		assert.Empty(t, h.ofKind(component.KindSquirrel))
		assert.Zero(t, h.pool.Stats(component.KindSquirrel).Acquired)
	})

	t.Run("occupy refused", func(t *testing.T) {
		h := newHarness(t)
		tree := h.spawn(t, component.KindBasicTree, 0, 0).(*Tree)
		ecs.Remove(h.w, tree.Entity(), component.OccupancyComponent)

		_, err := h.factory.Place(component.KindSquirrel, tree)
		require.Error(t, err)

		stats := h.pool.Stats(component.KindSquirrel)
		assert.Equal(t, 1, stats.Acquired)
		assert.Equal(t, 1, stats.Returned, "the unplaced defender is handed back")
		h.tick(0.1)
		assert.Empty(t, h.ofKind(component.KindSquirrel))
	})
}
