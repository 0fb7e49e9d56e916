package controller

import (
	"github.com/milk9111/herbicide/ecs"
	"github.com/milk9111/herbicide/ecs/component"
	"github.com/milk9111/herbicide/fsm"
)

// AttackFunc is a defender kind's attack. It runs in ATTACK whenever the
// cooldown has drained and a target is held.
type AttackFunc func(d *Defender, target ecs.Entity)

// Defender is the adapter for stationary attackers. It picks one hostile in
// attack range at random and keeps attacking it until it dies.
type Defender struct {
	*Mob[DefenderState]
	attack AttackFunc
}

func NewDefender(svc *Services, e ecs.Entity, kind component.Kind, attack AttackFunc) *Defender {
	d := &Defender{attack: attack}
	d.Mob = NewMob(svc, e, MobSpec[DefenderState]{
		Kind:    kind,
		Initial: DefenderSpawn,
		States:  defenderStates,
		Table: fsm.Table[DefenderState]{
			DefenderSpawn:  {fsm.Always(DefenderIdle)},
			DefenderIdle:   {fsm.When(DefenderAttack, d.holdsTarget)},
			DefenderAttack: {fsm.When(DefenderIdle, d.lostTarget)},
		},
		Timed:    []DefenderState{DefenderIdle, DefenderAttack},
		Capacity: 1,
		Allow:    Within(svc.World, e, component.FactionHostile, d.attackRange),
		Valid:    d.healthy,
		Execute:  d.execute,
		OnDie:    d.onDie,
		Sorted:   true,
	})
	return d
}

func (d *Defender) holdsTarget() bool {
	return d.HasTarget()
}

func (d *Defender) lostTarget() bool {
	return !d.HasTarget()
}

func (d *Defender) healthy() bool {
	return Healthy(d.World(), d.Entity())
}

func (d *Defender) attackRange() float64 {
	if c, ok := ecs.Get(d.World(), d.Entity(), component.CombatComponent); ok {
		return c.AttackRange
	}
	return 0
}

func (d *Defender) execute(t *Tick) {
	c, ok := ecs.Get(d.World(), d.Entity(), component.CombatComponent)
	if !ok {
		return
	}
	if c.Remaining > 0 {
		scale := c.SpeedScale
		if scale <= 0 {
			scale = 1
		}
		c.Remaining -= t.Delta * scale
	}
	if d.GetState() != DefenderAttack || c.Remaining > 0 {
		return
	}
	target, ok := d.Target()
	if !ok || d.attack == nil {
		return
	}
	d.attack(d, target)
	c.Remaining = c.Cooldown
}

func (d *Defender) onDie() {
	w := d.World()
	perch, ok := ecs.Get(w, d.Entity(), component.PerchComponent)
	if !ok {
		return
	}
	surface := ecs.Entity(perch.Surface)
	if occ, ok := ecs.Get(w, surface, component.OccupancyComponent); ok && occ.Occupant == uint64(d.Entity()) {
		occ.Occupant = 0
	}
}
