// Package pool hands out entity slots per kind and takes them back. A
// returned entity is destroyed in the world, which bumps its slot
// generation; the next Acquire reuses the slot under a new handle.
package pool

import (
	"errors"
	"fmt"
	"log"
	"sync"

	"github.com/milk9111/herbicide/ecs"
	"github.com/milk9111/herbicide/ecs/component"
)

var ErrUnknownEntity = errors.New("pool: entity not acquired from this pool")

// Stats counts one kind's traffic through the pool.
type Stats struct {
	Acquired int
	Returned int
	Active   int
}

type Pool struct {
	mu    sync.Mutex
	world *ecs.World
	owned map[ecs.Entity]component.Kind
	stats map[component.Kind]*Stats
}

func New(w *ecs.World) *Pool {
	return &Pool{
		world: w,
		owned: make(map[ecs.Entity]component.Kind),
		stats: make(map[component.Kind]*Stats),
	}
}

// Acquire creates an entity tagged with kind. Components other than
// Identity are the caller's job.
func (p *Pool) Acquire(kind component.Kind, faction component.Faction) (ecs.Entity, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	e := p.world.CreateEntity()
	if err := ecs.Add(p.world, e, component.IdentityComponent, component.Identity{Kind: kind, Faction: faction}); err != nil {
		return 0, fmt.Errorf("pool: acquire %s: %w", kind, err)
	}
	p.owned[e] = kind
	st := p.statsFor(kind)
	st.Acquired++
	st.Active++
	return e, nil
}

// ReturnToPool releases e. Returning an entity twice, or one the pool never
// handed out, is logged and otherwise ignored.
func (p *Pool) ReturnToPool(e ecs.Entity) {
	if err := p.Release(e); err != nil {
		log.Printf("pool: return %s: %v", e, err)
	}
}

// Release is ReturnToPool with the error surfaced.
func (p *Pool) Release(e ecs.Entity) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	kind, ok := p.owned[e]
	if !ok {
		return ErrUnknownEntity
	}
	delete(p.owned, e)
	p.world.DestroyEntity(e)
	st := p.statsFor(kind)
	st.Returned++
	st.Active--
	return nil
}

func (p *Pool) Stats(kind component.Kind) Stats {
	p.mu.Lock()
	defer p.mu.Unlock()
	if st, ok := p.stats[kind]; ok {
		return *st
	}
	return Stats{}
}

func (p *Pool) statsFor(kind component.Kind) *Stats {
	st, ok := p.stats[kind]
	if !ok {
		st = &Stats{}
		p.stats[kind] = st
	}
	return st
}
