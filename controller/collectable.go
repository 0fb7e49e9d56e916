package controller

import (
	"log"
	"math"

	"github.com/milk9111/herbicide/common"
	"github.com/milk9111/herbicide/ecs"
	"github.com/milk9111/herbicide/ecs/component"
	"github.com/milk9111/herbicide/fsm"
)

// Collectable is the adapter for pickups. It bobs in place until the cursor
// comes within homing range, then flies to the cursor and cashes in once
// it is within collection range.
type Collectable struct {
	*Mob[CollectableState]
	cashed    bool
	onCollect func(c *Collectable)
}

func NewCollectable(svc *Services, e ecs.Entity, kind component.Kind, onCollect func(*Collectable)) *Collectable {
	c := &Collectable{onCollect: onCollect}
	c.Mob = NewMob(svc, e, MobSpec[CollectableState]{
		Kind:    kind,
		Initial: CollectableSpawn,
		States:  collectableStates,
		Table: fsm.Table[CollectableState]{
			CollectableSpawn:      {fsm.Always(CollectableBobbing)},
			CollectableBobbing:    {fsm.When(CollectableCollecting, c.InHomingRange)},
			CollectableCollecting: fsm.Stay[CollectableState](),
		},
		Timed:   []CollectableState{CollectableBobbing},
		Valid:   c.uncollected,
		Execute: c.execute,
		Sorted:  true,
	})
	return c
}

func (c *Collectable) data() *component.Collectable {
	d, _ := ecs.Get(c.World(), c.Entity(), component.CollectableComponent)
	return d
}

func (c *Collectable) uncollected() bool {
	d := c.data()
	return d != nil && !d.Collected
}

// CashedIn reports whether the economy has been credited for this pickup.
func (c *Collectable) CashedIn() bool {
	return c.cashed
}

func (c *Collectable) cursorDistance() (float64, bool) {
	cursor := c.Services().Cursor
	if cursor == nil {
		return 0, false
	}
	cx, cy, ok := cursor.Position()
	if !ok {
		return 0, false
	}
	x, y, ok := c.Position()
	if !ok {
		return 0, false
	}
	return common.Distance(x, y, cx, cy), true
}

func (c *Collectable) InHomingRange() bool {
	d := c.data()
	dist, ok := c.cursorDistance()
	return ok && d != nil && dist <= d.HomingRange
}

func (c *Collectable) InCollectionRange() bool {
	d := c.data()
	dist, ok := c.cursorDistance()
	return ok && d != nil && dist <= d.CollectionRange
}

func (c *Collectable) execute(t *Tick) {
	d := c.data()
	if d == nil {
		return
	}
	switch c.GetState() {
	case CollectableBobbing:
		c.bob(d, t.Delta)
	case CollectableCollecting:
		if c.InCollectionRange() {
			c.collect(d)
			return
		}
		c.home(d, t.Delta)
	}
}

// bob moves the pickup between BaseY-BobHeight and BaseY+BobHeight.
func (c *Collectable) bob(d *component.Collectable, dt float64) {
	tr, ok := ecs.Get(c.World(), c.Entity(), component.TransformComponent)
	if !ok {
		return
	}
	d.Clock += dt
	phase := (math.Cos((d.Clock+d.TimeOffset)*d.BobSpeed) + 1) * 0.5
	tr.Y = d.BaseY + common.Lerp(-d.BobHeight, d.BobHeight, phase)
}

// home flies toward the cursor, faster the closer it gets.
func (c *Collectable) home(d *component.Collectable, dt float64) {
	cx, cy, ok := c.Services().Cursor.Position()
	if !ok {
		return
	}
	tr, ok := ecs.Get(c.World(), c.Entity(), component.TransformComponent)
	if !ok {
		return
	}
	dist := common.Distance(tr.X, tr.Y, cx, cy)
	closeness := 1.0
	if d.HomingRange > 0 {
		closeness = 1 - common.Clamp(dist/d.HomingRange, 0, 1)
	}
	speed := d.HomeSpeed * (1 + closeness)
	tr.X, tr.Y = common.MoveTowards(tr.X, tr.Y, cx, cy, speed*dt)
}

func (c *Collectable) collect(d *component.Collectable) {
	if c.cashed {
		return
	}
	c.cashed = true
	if econ := c.Services().Economy; econ != nil {
		econ.CashIn(c.Entity())
	}
	d.Collected = true
	log.Printf("controller: %s %s collected", c.Kind(), c.Entity())
	if c.onCollect != nil {
		c.onCollect(c)
	}
}
