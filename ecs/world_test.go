package ecs

import (
	"testing"

	"github.com/milk9111/herbicide/ecs/component"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSparseWorldEntityLifecycle(t *testing.T) {
	cases := []struct {
		name         string
		create       int
		destroyIndex int // -1 = none
	}{
		{"single", 1, 0},
		{"three_create_destroy_middle", 3, 1},
		{"none_destroy", 2, -1},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			w := NewWorld()
			ents := make([]Entity, 0, c.create)
			for i := 0; i < c.create; i++ {
				ents = append(ents, w.CreateEntity())
			}
			require.Equal(t, c.create, w.Count())
			if c.destroyIndex >= 0 {
				require.True(t, w.DestroyEntity(ents[c.destroyIndex]), "DestroyEntity should return true for alive entity")
				assert.False(t, w.IsAlive(ents[c.destroyIndex]), "entity should not be alive after destruction")
				assert.False(t, w.DestroyEntity(ents[c.destroyIndex]), "second destroy should report false")
				assert.Equal(t, c.create-1, w.Count())
			}
		})
	}
}

func TestSlotReuseBumpsGeneration(t *testing.T) {
	w := NewWorld()
	h := component.NewComponent[int]()

	old := w.CreateEntity()
	require.NoError(t, Add(w, old, h, 7))
	require.True(t, w.DestroyEntity(old))

	reused := w.CreateEntity()
	assert.Equal(t, old.Index(), reused.Index(), "slot should be reused")
	assert.NotEqual(t, old, reused, "reused slot must get a new handle")
	assert.False(t, w.IsAlive(old))
	assert.False(t, Has(w, reused, h), "components must not survive a destroy")

	_, ok := Get(w, old, h)
	assert.False(t, ok, "stale handle must not read the new occupant")
	assert.ErrorIs(t, Add(w, old, h, 1), component.ErrEntityNotAlive)
}

func TestSparseWorldComponentsAndQueries(t *testing.T) {
	t.Run("component_table", func(t *testing.T) {
		w := NewWorld()

		h1 := component.NewComponent[int]()
		h2 := component.NewComponent[string]()
		h3 := component.NewComponent[float64]()

		e1 := w.CreateEntity()
		e2 := w.CreateEntity()

		tests := []struct {
			name     string
			setup    func() error
			check    func(t *testing.T)
			teardown func() bool
		}{
			{
				name:  "add_int_to_e1",
				setup: func() error { return Add(w, e1, h1, 10) },
				check: func(t *testing.T) {
					v, ok := Get(w, e1, h1)
					require.True(t, ok)
					assert.Equal(t, 10, *v)
				},
				teardown: func() bool { return Remove(w, e1, h1) },
			},
			{
				name: "add_str_to_e1_and_e2",
				setup: func() error {
					if err := Add(w, e1, h2, "a"); err != nil {
						return err
					}
					return Add(w, e2, h2, "b")
				},
				check: func(t *testing.T) {
					assert.True(t, Has(w, e1, h2))
					assert.True(t, Has(w, e2, h2))
					assert.ElementsMatch(t, []Entity{e1, e2}, Query(w, h2))
				},
				teardown: func() bool { return Remove(w, e1, h2) },
			},
			{
				name:  "mutate_through_pointer",
				setup: func() error { return Add(w, e1, h3, 1.23) },
				check: func(t *testing.T) {
					v, ok := Get(w, e1, h3)
					require.True(t, ok)
					*v = 4.56
					again, _ := Get(w, e1, h3)
					assert.InDelta(t, 4.56, *again, 1e-9)
				},
				teardown: func() bool { return Remove(w, e1, h3) },
			},
		}

		for _, tc := range tests {
			t.Run(tc.name, func(t *testing.T) {
				require.NoError(t, tc.setup())
				tc.check(t)
				require.True(t, tc.teardown(), "teardown failed for %s", tc.name)
			})
		}
	})

	t.Run("query_skips_destroyed", func(t *testing.T) {
		w := NewWorld()
		h := component.NewComponent[int]()
		e1 := w.CreateEntity()
		e2 := w.CreateEntity()
		require.NoError(t, Add(w, e1, h, 1))
		require.NoError(t, Add(w, e2, h, 2))
		require.True(t, w.DestroyEntity(e1))

		assert.Equal(t, []Entity{e2}, Query(w, h))
	})

	t.Run("invalid_handle", func(t *testing.T) {
		w := NewWorld()
		e := w.CreateEntity()
		var zero component.ComponentHandle[int]
		assert.ErrorIs(t, Add(w, e, zero, 1), component.ErrInvalidComponentKind)
	})
}

func TestForEach(t *testing.T) {
	w := NewWorld()
	h := component.NewComponent[int]()

	e1 := w.CreateEntity()
	e2 := w.CreateEntity()
	e3 := w.CreateEntity()
	require.NoError(t, Add(w, e1, h, 1))
	require.NoError(t, Add(w, e3, h, 3))

	seen := map[Entity]int{}
	ForEach(w, h, func(e Entity, v *int) { seen[e] = *v })

	assert.Equal(t, map[Entity]int{e1: 1, e3: 3}, seen)
	assert.NotContains(t, seen, e2)
}

func TestEventQueueDrain(t *testing.T) {
	w := NewWorld()
	q := w.Events()
	q.Push(CollisionEvent{A: 1, B: 2})
	q.Push(CollisionEvent{A: 3, B: 4})
	require.Equal(t, 2, q.Len())

	got := q.Drain()
	assert.Equal(t, []CollisionEvent{{A: 1, B: 2}, {A: 3, B: 4}}, got)
	assert.Zero(t, q.Len())
	assert.Nil(t, q.Drain())
}

type recordSystem struct {
	name string
	log  *[]string
}

func (s recordSystem) Update(*World) {
	*s.log = append(*s.log, s.name)
}

func TestSchedulerRunsInOrder(t *testing.T) {
	var log []string
	s := NewScheduler(recordSystem{"sync", &log}, recordSystem{"step", &log})
	s.Add(recordSystem{"tick", &log})
	s.Add(nil)

	s.Update(NewWorld())
	assert.Equal(t, []string{"sync", "step", "tick"}, log)
	assert.Len(t, s.Systems(), 3)
}
