package controller

import (
	"testing"

	"github.com/milk9111/herbicide/ecs"
	"github.com/milk9111/herbicide/ecs/component"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSortKey(t *testing.T) {
	cases := []struct {
		name     string
		y        float64
		occupied bool
		want     int
	}{
		{"origin", 0, false, 0},
		{"rounds", 2.346, false, 235},
		{"occupied_offset", 3, true, 299},
		{"negative", -1.5, false, -150},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			assert.Equal(t, c.want, SortKey(c.y, c.occupied))
		})
	}
	assert.Less(t, SortKey(5, true), SortKey(5, false))
}

func layer(t *testing.T, w *ecs.World, e ecs.Entity) int {
	t.Helper()
	l, ok := ecs.Get(w, e, component.RenderLayerComponent)
	require.True(t, ok)
	return l.Index
}

func TestOccupiedTreeSortsBehind(t *testing.T) {
	h := newHarness(t)
	tree := h.spawn(t, component.KindBasicTree, 2, 3).(*Tree)

	h.tick(0.1)
	unoccupied := layer(t, h.w, tree.Entity())

	squirrel, err := h.factory.Place(component.KindSquirrel, tree)
	require.NoError(t, err)
	occupant, ok := tree.Occupant()
	require.True(t, ok)
	assert.Equal(t, squirrel.Entity(), occupant)

	h.tick(0.1)
	occupied := layer(t, h.w, tree.Entity())
	assert.Less(t, occupied, unoccupied)
	assert.Less(t, occupied, layer(t, h.w, squirrel.Entity()), "the occupant draws above its tree")

	_, err = h.factory.Place(component.KindBear, tree)
	assert.Error(t, err, "one occupant per tree")

	hp, _ := ecs.Get(h.w, squirrel.Entity(), component.HealthComponent)
	hp.Current = 0
	h.ticks(2, 0.1)
	assert.True(t, squirrel.Removed())
	_, ok = tree.Occupant()
	assert.False(t, ok)
	assert.Equal(t, unoccupied, layer(t, h.w, tree.Entity()))
}

func TestTreePassesDamageToOccupant(t *testing.T) {
	h := newHarness(t)
	tree := h.spawn(t, component.KindBasicTree, 0, 0).(*Tree)
	bear, err := h.factory.Place(component.KindBear, tree)
	require.NoError(t, err)

	before := health(t, h.w, tree.Entity())
	require.True(t, Damage(h.w, tree.Entity(), 10))
	assert.Equal(t, before, health(t, h.w, tree.Entity()))
	assert.Equal(t, 140.0, health(t, h.w, bear.Entity()))
}
