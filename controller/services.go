package controller

import (
	"math/rand"

	"github.com/milk9111/herbicide/ecs"
)

// Scene answers spatial questions about the live set and removes entities
// from it.
type Scene interface {
	OverlapBox(cx, cy, w, h float64) []ecs.Entity
	OverlapCircle(cx, cy, radius float64) []ecs.Entity
	Detach(e ecs.Entity)
}

type Pool interface {
	ReturnToPool(e ecs.Entity)
}

type Economy interface {
	CashIn(e ecs.Entity)
}

// Cursor reports the pointer position in world units. ok is false while
// the pointer is outside the play field.
type Cursor interface {
	Position() (x, y float64, ok bool)
}

// Services are the collaborators a controller may call. They are passed in
// at construction; controllers never reach for globals.
type Services struct {
	World   *ecs.World
	Scene   Scene
	Pool    Pool
	Economy Economy
	Cursor  Cursor
	Rand    *rand.Rand
	Factory *Factory
}
