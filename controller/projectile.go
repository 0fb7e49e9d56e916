package controller

import (
	"math"

	"github.com/milk9111/herbicide/common"
	"github.com/milk9111/herbicide/ecs"
	"github.com/milk9111/herbicide/ecs/component"
	"github.com/milk9111/herbicide/fsm"
)

type ProjectileOptions struct {
	Timed []ProjectileState
	// Lobbed shots arc to their destination and land there. Straight shots
	// fly past it until they hit something or their lifetime runs out.
	Lobbed bool
	// Detonate runs once when a straight shot touches a hostile.
	Detonate func(p *Projectile, other ecs.Entity)
	// Land runs once when a lobbed shot reaches its destination.
	Land func(p *Projectile)
}

// Projectile is the adapter for shots: SPAWN -> MOVING on the first tick,
// then either a collision or an arrival ends the flight.
type Projectile struct {
	*Mob[ProjectileState]
	opts ProjectileOptions
}

func NewProjectile(svc *Services, e ecs.Entity, kind component.Kind, opts ProjectileOptions) *Projectile {
	p := &Projectile{opts: opts}
	p.Mob = NewMob(svc, e, MobSpec[ProjectileState]{
		Kind:    kind,
		Initial: ProjectileSpawn,
		States:  projectileStates,
		Table: fsm.Table[ProjectileState]{
			ProjectileSpawn:     {fsm.When(ProjectileDead, p.detonated), fsm.Always(ProjectileMoving)},
			ProjectileMoving:    {fsm.When(ProjectileDead, p.detonated), fsm.When(ProjectileColliding, p.arrived)},
			ProjectileColliding: {fsm.When(ProjectileDead, p.detonated)},
			ProjectileDead:      fsm.Stay[ProjectileState](),
		},
		Timed:   opts.Timed,
		Valid:   p.active,
		Execute: p.execute,
		Collide: p.collide,
		Sorted:  true,
	})
	return p
}

func (p *Projectile) data() *component.Projectile {
	d, _ := ecs.Get(p.World(), p.Entity(), component.ProjectileComponent)
	return d
}

func (p *Projectile) active() bool {
	d := p.data()
	if d == nil || !d.Active {
		return false
	}
	l, ok := ecs.Get(p.World(), p.Entity(), component.LifetimeComponent)
	return !ok || !l.Expired()
}

func (p *Projectile) detonated() bool {
	d := p.data()
	return d != nil && d.Detonated
}

func (p *Projectile) arrived() bool {
	d := p.data()
	return d != nil && p.opts.Lobbed && d.Traveled >= p.length(d)
}

func (p *Projectile) length(d *component.Projectile) float64 {
	return common.Distance(d.StartX, d.StartY, d.DestX, d.DestY)
}

func (p *Projectile) execute(t *Tick) {
	d := p.data()
	if d == nil {
		return
	}
	if l, ok := ecs.Get(p.World(), p.Entity(), component.LifetimeComponent); ok {
		l.Age += t.Delta
	}

	switch p.GetState() {
	case ProjectileMoving:
		p.move(d, t.Delta)
	case ProjectileColliding:
		if !d.Detonated {
			d.Detonated = true
			if p.opts.Land != nil {
				p.opts.Land(p)
			}
		}
	case ProjectileDead:
		d.Active = false
	}
}

func (p *Projectile) move(d *component.Projectile, dt float64) {
	tr, ok := ecs.Get(p.World(), p.Entity(), component.TransformComponent)
	if !ok {
		return
	}
	total := p.length(d)
	d.Traveled += d.Speed * dt
	if total == 0 {
		tr.X, tr.Y = d.DestX, d.DestY
		return
	}

	if !p.opts.Lobbed {
		dirX := (d.DestX - d.StartX) / total
		dirY := (d.DestY - d.StartY) / total
		tr.X = d.StartX + dirX*d.Traveled
		tr.Y = d.StartY + dirY*d.Traveled
		return
	}

	progress := math.Min(d.Traveled/total, 1)
	tr.X = common.Lerp(d.StartX, d.DestX, progress)
	tr.Y = common.Lerp(d.StartY, d.DestY, progress) - d.ArcHeight*4*progress*(1-progress)
}

func (p *Projectile) collide(other ecs.Entity) {
	d := p.data()
	if d == nil || d.Detonated || p.opts.Lobbed || !p.inFlight() {
		return
	}
	w := p.World()
	if FactionOf(w, other) != component.FactionHostile || !Targetable(w, other) {
		return
	}
	d.Detonated = true
	if p.opts.Detonate != nil {
		p.opts.Detonate(p, other)
	}
}

// inFlight is true from spawn until the shot detonates or lands. A shot
// fired point blank sees its only begin contact before its first update.
func (p *Projectile) inFlight() bool {
	switch p.GetState() {
	case ProjectileSpawn, ProjectileMoving:
		return true
	}
	return false
}

// Landing returns the projectile's destination.
func (p *Projectile) Landing() (float64, float64) {
	d := p.data()
	if d == nil {
		return 0, 0
	}
	return d.DestX, d.DestY
}

// Payload returns the projectile's damage.
func (p *Projectile) Payload() float64 {
	if d := p.data(); d != nil {
		return d.Damage
	}
	return 0
}
