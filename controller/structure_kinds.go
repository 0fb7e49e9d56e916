package controller

import (
	"log"

	"github.com/milk9111/herbicide/ecs"
	"github.com/milk9111/herbicide/ecs/component"
	"github.com/milk9111/herbicide/prefabs"
)

func init() {
	RegisterKind(component.KindSpawnHole, CategoryStructure, buildSpawnHole)
	RegisterKind(component.KindGoalHole, CategoryStructure, buildGoalHole)
	RegisterKind(component.KindStoneWall, CategoryStructure, buildStoneWall)
}

// SpawnHole releases queued enemies one per interval. An enemy leaves the
// queue only once it has spawned; a failed spawn is retried next interval.
type SpawnHole struct {
	*Structure
	interval float64
	clock    float64
	queue    []component.Kind
}

func buildSpawnHole(svc *Services, e ecs.Entity, spec prefabs.KindSpec) (Controller, error) {
	h := &SpawnHole{interval: spec.SpawnInterval}
	h.Structure = NewStructure(svc, e, component.KindSpawnHole, h.idle, nil)
	return h, nil
}

// Enqueue adds enemies to the back of the queue.
func (h *SpawnHole) Enqueue(kinds ...component.Kind) {
	h.queue = append(h.queue, kinds...)
}

// Queued returns how many enemies are still waiting.
func (h *SpawnHole) Queued() int {
	return len(h.queue)
}

func (h *SpawnHole) idle(s *Structure, t *Tick) {
	if len(h.queue) == 0 {
		h.clock = 0
		return
	}
	h.clock += t.Delta
	if h.clock < h.interval {
		return
	}
	h.clock -= h.interval

	f := s.Services().Factory
	x, y, ok := s.Position()
	if f == nil || !ok {
		return
	}
	kind := h.queue[0]
	if _, err := f.Spawn(kind, x, y); err != nil {
		log.Printf("controller: %s %s spawn %s: %v", s.Kind(), s.Entity(), kind, err)
		return
	}
	h.queue = h.queue[1:]
}

// buildGoalHole: any hostile touching the hole escapes.
func buildGoalHole(svc *Services, e ecs.Entity, _ prefabs.KindSpec) (Controller, error) {
	return NewStructure(svc, e, component.KindGoalHole, nil, escape), nil
}

func escape(s *Structure, other ecs.Entity) {
	w := s.World()
	if FactionOf(w, other) != component.FactionHostile || !Targetable(w, other) {
		return
	}
	if life, ok := ecs.Get(w, other, component.LifeComponent); ok {
		life.Escaped = true
	}
}

func buildStoneWall(svc *Services, e ecs.Entity, _ prefabs.KindSpec) (Controller, error) {
	return NewStructure(svc, e, component.KindStoneWall, nil, nil), nil
}
