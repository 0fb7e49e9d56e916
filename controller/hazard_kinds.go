package controller

import (
	"github.com/milk9111/herbicide/ecs"
	"github.com/milk9111/herbicide/ecs/component"
	"github.com/milk9111/herbicide/prefabs"
)

func init() {
	RegisterKind(component.KindSlowZone, CategoryHazard, buildSlowZone)
	RegisterKind(component.KindBombSplat, CategoryHazard, buildBombSplat)
}

// SlowZone slows every hostile inside it. Each victim carries the zone's
// rate as its own entry, so leaving the zone or the zone expiring lifts
// exactly this zone's slow.
type SlowZone struct {
	*Hazard
	rate    float64
	slowed  map[ecs.Entity]struct{}
	present map[ecs.Entity]bool
}

func buildSlowZone(svc *Services, e ecs.Entity, spec prefabs.KindSpec) (Controller, error) {
	z := &SlowZone{
		rate:    spec.SlowRate,
		slowed:  make(map[ecs.Entity]struct{}),
		present: make(map[ecs.Entity]bool),
	}
	z.Hazard = NewHazard(svc, e, component.KindSlowZone, z.apply, z.release)
	return z, nil
}

// Slowed reports whether e is currently slowed by this zone.
func (z *SlowZone) Slowed(e ecs.Entity) bool {
	_, ok := z.slowed[e]
	return ok
}

func (z *SlowZone) source() uint64 {
	return uint64(z.Entity())
}

func (z *SlowZone) apply(h *Hazard, candidates []ecs.Entity, _ float64) {
	w := h.World()
	clear(z.present)
	for _, e := range candidates {
		z.present[e] = true
		if _, ok := z.slowed[e]; ok {
			continue
		}
		m, ok := ecs.Get(w, e, component.MovementComponent)
		if !ok {
			continue
		}
		m.Slow(z.source(), z.rate)
		z.slowed[e] = struct{}{}
	}
	for e := range z.slowed {
		if !z.present[e] {
			z.restore(w, e)
		}
	}
}

func (z *SlowZone) release(h *Hazard) {
	w := h.World()
	for e := range z.slowed {
		z.restore(w, e)
	}
}

func (z *SlowZone) restore(w *ecs.World, e ecs.Entity) {
	if m, ok := ecs.Get(w, e, component.MovementComponent); ok {
		m.Unslow(z.source())
	}
	delete(z.slowed, e)
}

// buildBombSplat: the splat burns every hostile inside it for its damage
// per second.
func buildBombSplat(svc *Services, e ecs.Entity, _ prefabs.KindSpec) (Controller, error) {
	return NewHazard(svc, e, component.KindBombSplat, burn, nil), nil
}

func burn(h *Hazard, candidates []ecs.Entity, dt float64) {
	w := h.World()
	c, ok := ecs.Get(w, h.Entity(), component.CombatComponent)
	if !ok {
		return
	}
	for _, e := range candidates {
		Damage(w, e, c.Damage*dt)
	}
}
