package controller

import (
	"fmt"
	"log"
	"strings"

	"github.com/google/uuid"
	"github.com/milk9111/herbicide/ecs"
	"github.com/milk9111/herbicide/ecs/component"
	"github.com/milk9111/herbicide/fsm"
)

// MobSpec is what a category adapter hands to NewMob. Every hook is
// optional except Table.
type MobSpec[S fsm.Tag] struct {
	Kind    component.Kind
	Initial S
	States  []S
	Table   fsm.Table[S]
	// Timed lists the states with animation counters. A kind with none
	// panics on any animation hook.
	Timed []S
	// Capacity is the most targets held at once. Zero disables election.
	Capacity int
	Allow    func(candidate ecs.Entity) bool
	Valid    func() bool
	Execute  func(t *Tick)
	OnDie    func()
	Collide  func(other ecs.Entity)
	// Sorted entities derive their RenderLayer from their Y every tick.
	Sorted bool
}

// Mob is the per-tick skeleton every controller is built on. Update runs,
// in order: removal check, phase gate, FSM step, targeting, execute hook,
// animation aging and depth sort. Any failed validity check ends the tick.
type Mob[S fsm.Tag] struct {
	svc       *Services
	id        uuid.UUID
	entity    ecs.Entity
	spec      MobSpec[S]
	machine   *fsm.Machine[S]
	targeting *Targeting
	timers    *AnimationTimers[S]
	removed   bool
}

// NewMob builds the skeleton. It panics if spec.Table is not total over
// spec.States.
func NewMob[S fsm.Tag](svc *Services, e ecs.Entity, spec MobSpec[S]) *Mob[S] {
	m := &Mob[S]{
		svc:    svc,
		id:     uuid.New(),
		entity: e,
		spec:   spec,
	}
	m.machine = fsm.New(spec.Initial, spec.States, spec.Table)
	m.targeting = NewTargeting(svc.World, svc.Rand, spec.Capacity, spec.Allow)
	if len(spec.Timed) > 0 {
		m.timers = NewAnimationTimers(m.machine.State, spec.Timed...)
		m.machine.OnEnter(m.timers.Enter)
	}
	return m
}

func (m *Mob[S]) ID() uuid.UUID {
	return m.id
}

func (m *Mob[S]) Kind() component.Kind {
	return m.spec.Kind
}

func (m *Mob[S]) Entity() ecs.Entity {
	return m.entity
}

func (m *Mob[S]) Services() *Services {
	return m.svc
}

func (m *Mob[S]) World() *ecs.World {
	return m.svc.World
}

func (m *Mob[S]) Machine() *fsm.Machine[S] {
	return m.machine
}

func (m *Mob[S]) GetState() S {
	return m.machine.State()
}

func (m *Mob[S]) StateEquals(a, b S) bool {
	return m.machine.Equals(a, b)
}

func (m *Mob[S]) UpdateFSM() {
	m.machine.Step()
}

func (m *Mob[S]) MaxTargets() int {
	return m.targeting.MaxTargets()
}

func (m *Mob[S]) FilterTargets(snapshot []ecs.Entity) []ecs.Entity {
	return m.targeting.FilterTargets(snapshot)
}

func (m *Mob[S]) Targets() []ecs.Entity {
	return m.targeting.Targets()
}

func (m *Mob[S]) Target() (ecs.Entity, bool) {
	return m.targeting.Target()
}

func (m *Mob[S]) HasTarget() bool {
	_, ok := m.targeting.Target()
	return ok
}

func (m *Mob[S]) Candidates() []ecs.Entity {
	return m.targeting.Candidates()
}

func (m *Mob[S]) Position() (float64, float64, bool) {
	return Position(m.svc.World, m.entity)
}

func (m *Mob[S]) AgeAnimationCounter(dt float64) {
	m.mustTimers().Age(dt)
}

func (m *Mob[S]) GetAnimationCounter() float64 {
	return m.mustTimers().Get()
}

func (m *Mob[S]) ResetAnimationCounter() {
	m.mustTimers().Reset()
}

func (m *Mob[S]) mustTimers() *AnimationTimers[S] {
	if m.timers == nil {
		panic(fmt.Errorf("%w: %s", ErrNoAnimationTiming, m.spec.Kind))
	}
	return m.timers
}

func (m *Mob[S]) ValidModel() bool {
	if m.removed || !m.svc.World.IsAlive(m.entity) {
		return false
	}
	return m.spec.Valid == nil || m.spec.Valid()
}

func (m *Mob[S]) Removed() bool {
	return m.removed
}

func (m *Mob[S]) TryRemoveModel() bool {
	if m.removed || m.ValidModel() {
		return false
	}
	m.removed = true

	if m.spec.OnDie != nil && m.svc.World.IsAlive(m.entity) {
		m.spec.OnDie()
	}
	ecs.Remove(m.svc.World, m.entity, component.LiveComponent)
	if m.svc.Scene != nil {
		m.svc.Scene.Detach(m.entity)
	}
	if m.svc.Pool != nil {
		m.svc.Pool.ReturnToPool(m.entity)
	}
	m.targeting.Clear()
	log.Printf("controller: %s %s removed in %s", m.spec.Kind, m.entity, m.GetState())
	return true
}

func (m *Mob[S]) Update(t *Tick) {
	if t == nil || m.TryRemoveModel() || !m.ValidModel() {
		return
	}
	if t.Phase != PhaseOngoing {
		return
	}

	m.UpdateFSM()
	m.targeting.Update(t.Targets)

	if m.spec.Execute != nil {
		m.spec.Execute(t)
	}
	if !m.ValidModel() {
		return
	}
	if m.timers != nil {
		m.timers.Age(t.Delta)
		m.stepAnimation()
	}
	if m.spec.Sorted {
		m.updateSortKey()
	}
}

func (m *Mob[S]) HandleCollision(other ecs.Entity) {
	if m.spec.Collide == nil || !m.ValidModel() {
		return
	}
	m.spec.Collide(other)
}

func (m *Mob[S]) stepAnimation() {
	anim, ok := ecs.Get(m.svc.World, m.entity, component.AnimationComponent)
	if !ok {
		return
	}
	name := strings.ToLower(m.GetState().String())
	if anim.Current != name {
		anim.Current = name
		anim.Frame = 0
	}
	track, ok := anim.Tracks[name]
	if !ok || track.Frames <= 0 || track.Duration <= 0 {
		return
	}
	step := track.Duration / float64(track.Frames)
	anim.Frame = int(m.timers.Get()/step) % track.Frames
}

func (m *Mob[S]) updateSortKey() {
	w := m.svc.World
	t, ok := ecs.Get(w, m.entity, component.TransformComponent)
	if !ok {
		return
	}
	layer, ok := ecs.Get(w, m.entity, component.RenderLayerComponent)
	if !ok {
		return
	}
	occupied := false
	if occ, ok := ecs.Get(w, m.entity, component.OccupancyComponent); ok {
		occupied = occ.Occupied() && Targetable(w, ecs.Entity(occ.Occupant))
	}
	layer.Index = SortKey(t.Y, occupied)
}
