package controller

import (
	"math/rand"

	"github.com/milk9111/herbicide/ecs"
)

// Targeting filters the live set each tick and holds at most capacity
// targets. A held target stays held until it is destroyed; range is only
// consulted when choosing a new one.
type Targeting struct {
	world      *ecs.World
	rng        *rand.Rand
	capacity   int
	allow      func(candidate ecs.Entity) bool
	candidates []ecs.Entity
	held       []ecs.Entity
}

// NewTargeting builds a targeting protocol. allow applies the holder's
// category and reach rules; a nil allow admits nothing.
func NewTargeting(w *ecs.World, rng *rand.Rand, capacity int, allow func(ecs.Entity) bool) *Targeting {
	if capacity < 0 {
		capacity = 0
	}
	return &Targeting{world: w, rng: rng, capacity: capacity, allow: allow}
}

func (t *Targeting) MaxTargets() int {
	return t.capacity
}

// FilterTargets rebuilds this tick's candidate list from snapshot.
func (t *Targeting) FilterTargets(snapshot []ecs.Entity) []ecs.Entity {
	t.candidates = t.candidates[:0]
	if t.allow == nil {
		return nil
	}
	for _, e := range snapshot {
		if !Targetable(t.world, e) || !t.allow(e) {
			continue
		}
		t.candidates = append(t.candidates, e)
	}
	return t.Candidates()
}

// Candidates returns a copy of the last filtered list.
func (t *Targeting) Candidates() []ecs.Entity {
	if len(t.candidates) == 0 {
		return nil
	}
	return append([]ecs.Entity(nil), t.candidates...)
}

// Elect drops destroyed targets and, when nothing is held, picks up to
// capacity candidates uniformly at random. With no candidates the target
// list ends up empty.
func (t *Targeting) Elect() {
	kept := t.held[:0]
	for _, e := range t.held {
		if Targetable(t.world, e) {
			kept = append(kept, e)
		}
	}
	t.held = kept

	if t.capacity == 0 || len(t.held) > 0 {
		return
	}
	if len(t.candidates) == 0 {
		t.held = t.held[:0]
		return
	}

	n := min(t.capacity, len(t.candidates))
	for _, i := range t.rng.Perm(len(t.candidates))[:n] {
		t.held = append(t.held, t.candidates[i])
	}
}

// Update runs both targeting phases.
func (t *Targeting) Update(snapshot []ecs.Entity) {
	t.FilterTargets(snapshot)
	t.Elect()
}

func (t *Targeting) Targets() []ecs.Entity {
	if len(t.held) == 0 {
		return nil
	}
	return append([]ecs.Entity(nil), t.held...)
}

// Target returns the first held target, if it is still targetable.
func (t *Targeting) Target() (ecs.Entity, bool) {
	for _, e := range t.held {
		if Targetable(t.world, e) {
			return e, true
		}
	}
	return 0, false
}

// Clear drops every held target.
func (t *Targeting) Clear() {
	t.held = t.held[:0]
}
