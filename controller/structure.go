package controller

import (
	"github.com/milk9111/herbicide/ecs"
	"github.com/milk9111/herbicide/ecs/component"
	"github.com/milk9111/herbicide/fsm"
)

// Structure is the adapter for static scenery: holes and walls. Structures
// are always valid and ignore collisions unless the kind says otherwise.
type Structure struct {
	*Mob[StructureState]
	idle    func(s *Structure, t *Tick)
	collide func(s *Structure, other ecs.Entity)
}

func NewStructure(svc *Services, e ecs.Entity, kind component.Kind, idle func(*Structure, *Tick), collide func(*Structure, ecs.Entity)) *Structure {
	s := &Structure{idle: idle, collide: collide}
	s.Mob = NewMob(svc, e, MobSpec[StructureState]{
		Kind:    kind,
		Initial: StructureSpawn,
		States:  structureStates,
		Table: fsm.Table[StructureState]{
			StructureSpawn: {fsm.Always(StructureIdle)},
			StructureIdle:  fsm.Stay[StructureState](),
		},
		Execute: s.execute,
		Collide: s.handleCollision,
	})
	return s
}

func (s *Structure) execute(t *Tick) {
	if s.GetState() == StructureIdle && s.idle != nil {
		s.idle(s, t)
	}
}

func (s *Structure) handleCollision(other ecs.Entity) {
	if s.collide != nil {
		s.collide(s, other)
	}
}
