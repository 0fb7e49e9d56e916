package controller

import (
	"log"

	"github.com/milk9111/herbicide/ecs"
	"github.com/milk9111/herbicide/ecs/component"
	"github.com/milk9111/herbicide/prefabs"
)

func init() {
	RegisterKind(component.KindAcorn, CategoryProjectile, buildAcorn)
	RegisterKind(component.KindQuill, CategoryProjectile, buildQuill)
	RegisterKind(component.KindIceChunk, CategoryProjectile, buildIceChunk)
	RegisterKind(component.KindBomb, CategoryProjectile, buildBomb)
	RegisterKind(component.KindBasicTreeSeed, CategoryProjectile, buildBasicTreeSeed)
}

var movingOnly = []ProjectileState{ProjectileMoving}

func buildAcorn(svc *Services, e ecs.Entity, _ prefabs.KindSpec) (Controller, error) {
	return NewProjectile(svc, e, component.KindAcorn, ProjectileOptions{
		Timed: movingOnly,
		Detonate: func(p *Projectile, other ecs.Entity) {
			Damage(p.World(), other, p.Payload())
		},
	}), nil
}

// buildQuill: a quill hits its victim, then splashes every other hostile in
// a square around the impact. The victim is immune to the splash.
func buildQuill(svc *Services, e ecs.Entity, spec prefabs.KindSpec) (Controller, error) {
	size := spec.SplashSize
	return NewProjectile(svc, e, component.KindQuill, ProjectileOptions{
		Timed: movingOnly,
		Detonate: func(p *Projectile, other ecs.Entity) {
			w := p.World()
			Damage(w, other, p.Payload())
			scene := p.Services().Scene
			x, y, ok := p.Position()
			if scene == nil || !ok {
				return
			}
			Explode(w, scene.OverlapBox(x, y, size, size), p.Payload(), other)
		},
	}), nil
}

func buildIceChunk(svc *Services, e ecs.Entity, spec prefabs.KindSpec) (Controller, error) {
	rate, duration := spec.SlowRate, spec.SlowDuration
	return NewProjectile(svc, e, component.KindIceChunk, ProjectileOptions{
		Timed: movingOnly,
		Detonate: func(p *Projectile, other ecs.Entity) {
			w := p.World()
			Damage(w, other, p.Payload())
			if m, ok := ecs.Get(w, other, component.MovementComponent); ok {
				m.Chill = duration
				m.ChillRate = rate
			}
		},
	}), nil
}

// buildBomb: the bomb arcs to where it was thrown, blasts every hostile in
// its splash radius and leaves a burning splat behind.
func buildBomb(svc *Services, e ecs.Entity, spec prefabs.KindSpec) (Controller, error) {
	radius := spec.SplashSize
	return NewProjectile(svc, e, component.KindBomb, ProjectileOptions{
		Timed:  []ProjectileState{ProjectileMoving, ProjectileColliding},
		Lobbed: true,
		Land: func(p *Projectile) {
			x, y := p.Landing()
			if scene := p.Services().Scene; scene != nil {
				Explode(p.World(), scene.OverlapCircle(x, y, radius), p.Payload())
			}
			spawnAt(p, component.KindBombSplat, x, y)
		},
	}), nil
}

func buildBasicTreeSeed(svc *Services, e ecs.Entity, _ prefabs.KindSpec) (Controller, error) {
	return NewProjectile(svc, e, component.KindBasicTreeSeed, ProjectileOptions{
		Lobbed: true,
		Land: func(p *Projectile) {
			x, y := p.Landing()
			spawnAt(p, component.KindBasicTree, x, y)
		},
	}), nil
}

// Explode damages every hostile in hits except the immune ones. It returns
// how many were hit.
func Explode(w *ecs.World, hits []ecs.Entity, amount float64, immune ...ecs.Entity) int {
	n := 0
	for _, e := range hits {
		if isImmune(e, immune) || FactionOf(w, e) != component.FactionHostile {
			continue
		}
		if Damage(w, e, amount) {
			n++
		}
	}
	return n
}

func isImmune(e ecs.Entity, immune []ecs.Entity) bool {
	for _, i := range immune {
		if i == e {
			return true
		}
	}
	return false
}

func spawnAt(p *Projectile, kind component.Kind, x, y float64) {
	f := p.Services().Factory
	if f == nil {
		return
	}
	if _, err := f.Spawn(kind, x, y); err != nil {
		log.Printf("controller: %s %s spawn %s: %v", p.Kind(), p.Entity(), kind, err)
	}
}
