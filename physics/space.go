// Package physics wraps a Chipmunk space that only detects overlaps.
// Entities own sensor circles on zero-gravity bodies whose positions are
// copied from their Transform every tick; the space never moves anything.
package physics

import (
	"log"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/herbicide/ecs"
	"github.com/milk9111/herbicide/ecs/component"
)

const (
	collisionTypeNeutral cp.CollisionType = iota + 1
	collisionTypeFriendly
	collisionTypeHostile
)

type body struct {
	body  *cp.Body
	shape *cp.Shape
}

// Space owns the Chipmunk space and the entity <-> shape mapping.
type Space struct {
	space         *cp.Space
	events        *ecs.EventQueue
	bodies        map[ecs.Entity]*body
	shapeToEntity map[*cp.Shape]ecs.Entity
}

// NewSpace creates a space that pushes begin-contact events into events.
func NewSpace(events *ecs.EventQueue) *Space {
	space := cp.NewSpace()
	space.SetGravity(cp.Vector{})

	s := &Space{
		space:         space,
		events:        events,
		bodies:        make(map[ecs.Entity]*body),
		shapeToEntity: make(map[*cp.Shape]ecs.Entity),
	}
	s.setupHandlers()
	return s
}

// Attach gives e a sensor circle at (x, y). Attaching twice moves the
// existing body.
func (s *Space) Attach(e ecs.Entity, faction component.Faction, x, y, radius float64) {
	if s == nil || !e.Valid() {
		return
	}
	if b, ok := s.bodies[e]; ok {
		s.move(b, x, y)
		return
	}
	if radius <= 0 {
		radius = 0.1
	}

	cpBody := cp.NewBody(1, cp.MomentForCircle(1, 0, radius, cp.Vector{}))
	cpBody.SetPosition(cp.Vector{X: x, Y: y})
	shape := cp.NewCircle(cpBody, radius, cp.Vector{})
	shape.SetSensor(true)
	shape.SetCollisionType(collisionTypeFor(faction))

	s.space.AddBody(cpBody)
	s.space.AddShape(shape)
	s.bodies[e] = &body{body: cpBody, shape: shape}
	s.shapeToEntity[shape] = e
}

// Detach removes e's body. Unknown entities are ignored.
func (s *Space) Detach(e ecs.Entity) {
	if s == nil {
		return
	}
	b, ok := s.bodies[e]
	if !ok {
		return
	}
	delete(s.shapeToEntity, b.shape)
	delete(s.bodies, e)
	s.space.RemoveShape(b.shape)
	s.space.RemoveBody(b.body)
}

func (s *Space) Attached(e ecs.Entity) bool {
	if s == nil {
		return false
	}
	_, ok := s.bodies[e]
	return ok
}

// Sync copies Transform positions onto bodies and detaches bodies whose
// entity died without being detached.
func (s *Space) Sync(w *ecs.World) {
	if s == nil || w == nil {
		return
	}
	for e, b := range s.bodies {
		if !w.IsAlive(e) {
			log.Printf("physics: entity %s died while attached", e)
			s.Detach(e)
			continue
		}
		if t, ok := ecs.Get(w, e, component.TransformComponent); ok {
			s.move(b, t.X, t.Y)
		}
	}
}

// Step runs collision detection for dt seconds.
func (s *Space) Step(dt float64) {
	if s == nil || dt <= 0 {
		return
	}
	s.space.Step(dt)
}

func (s *Space) move(b *body, x, y float64) {
	b.body.SetPosition(cp.Vector{X: x, Y: y})
	b.body.SetVelocity(0, 0)
	b.shape.CacheBB()
}

func (s *Space) setupHandlers() {
	pairs := [][2]cp.CollisionType{
		{collisionTypeFriendly, collisionTypeHostile},
		{collisionTypeNeutral, collisionTypeHostile},
		{collisionTypeNeutral, collisionTypeFriendly},
		{collisionTypeHostile, collisionTypeHostile},
	}
	for _, pair := range pairs {
		handler := s.space.NewCollisionHandler(pair[0], pair[1])
		handler.UserData = s
		handler.BeginFunc = func(arb *cp.Arbiter, space *cp.Space, userData interface{}) bool {
			world, ok := userData.(*Space)
			if !ok || world == nil {
				return true
			}
			shapeA, shapeB := arb.Shapes()
			a, okA := world.shapeToEntity[shapeA]
			b, okB := world.shapeToEntity[shapeB]
			if !okA || !okB || world.events == nil {
				return true
			}
			world.events.Push(ecs.CollisionEvent{A: a, B: b})
			return true
		}
	}
}

func collisionTypeFor(f component.Faction) cp.CollisionType {
	switch f {
	case component.FactionFriendly:
		return collisionTypeFriendly
	case component.FactionHostile:
		return collisionTypeHostile
	default:
		return collisionTypeNeutral
	}
}
