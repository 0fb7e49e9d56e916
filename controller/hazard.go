package controller

import (
	"github.com/milk9111/herbicide/ecs"
	"github.com/milk9111/herbicide/ecs/component"
	"github.com/milk9111/herbicide/fsm"
)

// HazardEffect applies a hazard to this tick's candidates.
type HazardEffect func(h *Hazard, candidates []ecs.Entity, dt float64)

// Hazard is the adapter for area effects that live for a fixed time. It
// does not elect targets; every hostile inside its radius is a candidate.
type Hazard struct {
	*Mob[HazardState]
	effect  HazardEffect
	release func(h *Hazard)
}

func NewHazard(svc *Services, e ecs.Entity, kind component.Kind, effect HazardEffect, release func(h *Hazard)) *Hazard {
	h := &Hazard{effect: effect, release: release}
	h.Mob = NewMob(svc, e, MobSpec[HazardState]{
		Kind:    kind,
		Initial: HazardSpawn,
		States:  hazardStates,
		Table: fsm.Table[HazardState]{
			HazardSpawn:  {fsm.Always(HazardActive)},
			HazardActive: fsm.Stay[HazardState](),
		},
		Timed:   []HazardState{HazardActive},
		Allow:   Within(svc.World, e, component.FactionHostile, h.radius),
		Valid:   h.unexpired,
		Execute: h.execute,
		OnDie:   h.onDie,
	})
	return h
}

// Expired reports whether the hazard's lifetime has run out.
func (h *Hazard) Expired() bool {
	l, ok := ecs.Get(h.World(), h.Entity(), component.LifetimeComponent)
	return ok && l.Expired()
}

func (h *Hazard) unexpired() bool {
	return !h.Expired()
}

func (h *Hazard) radius() float64 {
	if c, ok := ecs.Get(h.World(), h.Entity(), component.ColliderComponent); ok {
		return c.Radius
	}
	return 0
}

func (h *Hazard) execute(t *Tick) {
	if l, ok := ecs.Get(h.World(), h.Entity(), component.LifetimeComponent); ok {
		l.Age += t.Delta
	}
	if h.GetState() == HazardActive && h.effect != nil {
		h.effect(h, h.Candidates(), t.Delta)
	}
}

func (h *Hazard) onDie() {
	if h.release != nil {
		h.release(h)
	}
}
