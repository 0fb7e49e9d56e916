package controller

import (
	"log"

	"github.com/milk9111/herbicide/ecs"
	"github.com/milk9111/herbicide/ecs/component"
)

// Manager owns every controller and ticks them in registration order.
// Controllers registered while a tick is running join after it finishes,
// so a child spawned mid-tick first updates on the next tick.
type Manager struct {
	world    *ecs.World
	active   []Controller
	pending  []Controller
	byEntity map[ecs.Entity]Controller
	ticking  bool
	frame    uint64
}

func NewManager(w *ecs.World) *Manager {
	return &Manager{world: w, byEntity: make(map[ecs.Entity]Controller)}
}

func (m *Manager) Register(c Controller) {
	if c == nil {
		return
	}
	m.byEntity[c.Entity()] = c
	if m.ticking {
		m.pending = append(m.pending, c)
		return
	}
	m.active = append(m.active, c)
}

// Snapshot returns this tick's live set.
func (m *Manager) Snapshot() []ecs.Entity {
	return ecs.Query(m.world, component.LiveComponent)
}

// Tick updates every controller once, then drops the removed ones and
// admits the pending ones.
func (m *Manager) Tick(phase Phase, dt float64) {
	m.frame++
	t := &Tick{
		Phase:   phase,
		Delta:   dt,
		Frame:   m.frame,
		Targets: m.Snapshot(),
	}

	m.ticking = true
	for _, c := range m.active {
		c.Update(t)
	}
	m.ticking = false

	m.sweep()
	if len(m.pending) > 0 {
		m.active = append(m.active, m.pending...)
		m.pending = m.pending[:0]
	}
}

// Dispatch hands each collision to both sides.
func (m *Manager) Dispatch(events []ecs.CollisionEvent) {
	for _, evt := range events {
		if a, ok := m.Lookup(evt.A); ok {
			a.HandleCollision(evt.B)
		}
		if b, ok := m.Lookup(evt.B); ok {
			b.HandleCollision(evt.A)
		}
	}
}

// Lookup finds the controller driving e. Stale handles miss.
func (m *Manager) Lookup(e ecs.Entity) (Controller, bool) {
	c, ok := m.byEntity[e]
	if !ok || c.Removed() {
		return nil, false
	}
	return c, true
}

// Controllers returns the active controllers in update order.
func (m *Manager) Controllers() []Controller {
	return append([]Controller(nil), m.active...)
}

func (m *Manager) Len() int {
	return len(m.active) + len(m.pending)
}

func (m *Manager) Frame() uint64 {
	return m.frame
}

func (m *Manager) sweep() {
	kept := m.active[:0]
	dropped := 0
	for _, c := range m.active {
		if c.Removed() {
			if m.byEntity[c.Entity()] == c {
				delete(m.byEntity, c.Entity())
			}
			dropped++
			continue
		}
		kept = append(kept, c)
	}
	for i := len(kept); i < len(m.active); i++ {
		m.active[i] = nil
	}
	m.active = kept
	if dropped > 0 {
		log.Printf("controller: swept %d removed controllers, %d active", dropped, len(m.active))
	}
}
