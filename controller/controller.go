// Package controller drives every gameplay entity: one controller per
// entity, each owning a state machine, a target list, a removal sequence
// and per-state animation timing.
//
// Concrete kinds are built from a handful of category adapters (defender,
// enemy, hazard, tree, structure, projectile, collectable) that all share
// the Mob skeleton. A kind registers a builder with RegisterKind and is
// then created through the Factory.
package controller

import (
	"github.com/google/uuid"
	"github.com/milk9111/herbicide/ecs"
	"github.com/milk9111/herbicide/ecs/component"
	"github.com/milk9111/herbicide/fsm"
)

// Phase is the global game phase.
type Phase uint8

const (
	PhaseMenu Phase = iota
	PhaseOngoing
	PhasePaused
	PhaseWon
	PhaseLost
)

func (p Phase) String() string {
	switch p {
	case PhaseMenu:
		return "MENU"
	case PhaseOngoing:
		return "ONGOING"
	case PhasePaused:
		return "PAUSED"
	case PhaseWon:
		return "WON"
	case PhaseLost:
		return "LOST"
	default:
		return "UNKNOWN"
	}
}

// Tick is handed to every controller once per tick. Targets is the scene's
// live set for this tick only.
type Tick struct {
	Phase   Phase
	Delta   float64
	Frame   uint64
	Targets []ecs.Entity
}

// Lifecycle is the validity and removal protocol shared by all controllers.
type Lifecycle interface {
	// ValidModel reports whether the controller should keep running. It has
	// no side effects.
	ValidModel() bool
	// TryRemoveModel runs the terminal sequence the first time it observes
	// an invalid model and reports whether it did so.
	TryRemoveModel() bool
	Removed() bool
}

type Stateful[S fsm.Tag] interface {
	GetState() S
	StateEquals(a, b S) bool
	UpdateFSM()
}

type Targeter interface {
	MaxTargets() int
	FilterTargets(snapshot []ecs.Entity) []ecs.Entity
	Targets() []ecs.Entity
}

type Animatable interface {
	AgeAnimationCounter(dt float64)
	GetAnimationCounter() float64
	ResetAnimationCounter()
}

// Controller is what the Manager schedules.
type Controller interface {
	Lifecycle
	ID() uuid.UUID
	Kind() component.Kind
	Entity() ecs.Entity
	Update(t *Tick)
	HandleCollision(other ecs.Entity)
}
