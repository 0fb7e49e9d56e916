package controller

import (
	"github.com/milk9111/herbicide/common"
	"github.com/milk9111/herbicide/ecs"
	"github.com/milk9111/herbicide/ecs/component"
)

// Targetable reports whether e is a live, undestroyed member of the scene.
// A stale handle to a reused slot is never targetable.
func Targetable(w *ecs.World, e ecs.Entity) bool {
	if !e.Valid() || !w.IsAlive(e) {
		return false
	}
	if !ecs.Has(w, e, component.LiveComponent) {
		return false
	}
	if life, ok := ecs.Get(w, e, component.LifeComponent); ok && (life.Dead || life.Escaped) {
		return false
	}
	if h, ok := ecs.Get(w, e, component.HealthComponent); ok && h.Current <= 0 {
		return false
	}
	return true
}

func Position(w *ecs.World, e ecs.Entity) (float64, float64, bool) {
	t, ok := ecs.Get(w, e, component.TransformComponent)
	if !ok {
		return 0, 0, false
	}
	return t.X, t.Y, true
}

// DistanceBetween returns the distance between two entities, or ok=false
// when either has no position.
func DistanceBetween(w *ecs.World, a, b ecs.Entity) (float64, bool) {
	ax, ay, okA := Position(w, a)
	bx, by, okB := Position(w, b)
	if !okA || !okB {
		return 0, false
	}
	return common.Distance(ax, ay, bx, by), true
}

func FactionOf(w *ecs.World, e ecs.Entity) component.Faction {
	if id, ok := ecs.Get(w, e, component.IdentityComponent); ok {
		return id.Faction
	}
	return component.FactionNeutral
}

func KindOf(w *ecs.World, e ecs.Entity) component.Kind {
	if id, ok := ecs.Get(w, e, component.IdentityComponent); ok {
		return id.Kind
	}
	return ""
}

// Within builds an allow predicate that admits faction members no further
// than reach() from holder. reach is read every call so stat changes apply
// immediately.
func Within(w *ecs.World, holder ecs.Entity, faction component.Faction, reach func() float64) func(ecs.Entity) bool {
	return func(candidate ecs.Entity) bool {
		if candidate == holder || FactionOf(w, candidate) != faction {
			return false
		}
		d, ok := DistanceBetween(w, holder, candidate)
		return ok && d <= reach()
	}
}

// Damage lowers e's health by amount. An occupied surface passes the hit to
// its occupant. Reaching zero health sets the dead flag where there is one.
// It reports whether the hit landed.
func Damage(w *ecs.World, e ecs.Entity, amount float64) bool {
	if amount <= 0 || !Targetable(w, e) {
		return false
	}
	if occ, ok := ecs.Get(w, e, component.OccupancyComponent); ok && occ.Occupied() {
		occupant := ecs.Entity(occ.Occupant)
		if Targetable(w, occupant) {
			return Damage(w, occupant, amount)
		}
	}
	h, ok := ecs.Get(w, e, component.HealthComponent)
	if !ok {
		return false
	}
	h.Current -= amount
	if h.Current <= 0 {
		h.Current = 0
		if life, ok := ecs.Get(w, e, component.LifeComponent); ok {
			life.Dead = true
		}
	}
	return true
}

// Healthy reports whether e still has health left.
func Healthy(w *ecs.World, e ecs.Entity) bool {
	h, ok := ecs.Get(w, e, component.HealthComponent)
	return ok && h.Current > 0
}
