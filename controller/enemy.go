package controller

import (
	"log"

	"github.com/d5/tengo/v2"
	"github.com/milk9111/herbicide/common"
	"github.com/milk9111/herbicide/ecs"
	"github.com/milk9111/herbicide/ecs/component"
	"github.com/milk9111/herbicide/fsm"
	"github.com/milk9111/herbicide/script"
)

type EnemyOptions struct {
	Timed []EnemyState
	// Script, when set, replaces the CHASE and ATTACK execute hooks.
	Script *script.Runtime
	// Loot is dropped where the enemy dies, unless it escaped.
	Loot    component.Kind
	OnDeath func(en *Enemy)
}

// Enemy is the adapter for hostile walkers. Without a target it walks
// toward the nearest goal hole; with one it chases and attacks.
type Enemy struct {
	*Mob[EnemyState]
	opts EnemyOptions
	dt   float64
}

func NewEnemy(svc *Services, e ecs.Entity, kind component.Kind, opts EnemyOptions) *Enemy {
	en := &Enemy{opts: opts}
	en.Mob = NewMob(svc, e, MobSpec[EnemyState]{
		Kind:    kind,
		Initial: EnemySpawn,
		States:  enemyStates,
		Table: fsm.Table[EnemyState]{
			EnemySpawn:  {fsm.Always(EnemyIdle)},
			EnemyIdle:   {fsm.When(EnemyChase, en.holdsTarget)},
			EnemyChase:  {fsm.When(EnemyIdle, en.lostTarget), fsm.When(EnemyAttack, en.targetInReach)},
			EnemyAttack: {fsm.When(EnemyIdle, en.lostTarget), fsm.When(EnemyChase, en.targetOutOfReach)},
		},
		Timed:    opts.Timed,
		Capacity: 1,
		Allow:    Within(svc.World, e, component.FactionFriendly, en.chaseRange),
		Valid:    en.valid,
		Execute:  en.execute,
		OnDie:    en.onDie,
		Sorted:   true,
	})
	return en
}

func (en *Enemy) holdsTarget() bool {
	return en.HasTarget()
}

func (en *Enemy) lostTarget() bool {
	return !en.HasTarget()
}

func (en *Enemy) targetInReach() bool {
	d, ok := en.targetDistance()
	return ok && d <= en.combat().AttackRange
}

func (en *Enemy) targetOutOfReach() bool {
	d, ok := en.targetDistance()
	return ok && d > en.combat().AttackRange
}

func (en *Enemy) targetDistance() (float64, bool) {
	target, ok := en.Target()
	if !ok {
		return 0, false
	}
	return DistanceBetween(en.World(), en.Entity(), target)
}

func (en *Enemy) combat() component.Combat {
	if c, ok := ecs.Get(en.World(), en.Entity(), component.CombatComponent); ok {
		return *c
	}
	return component.Combat{}
}

func (en *Enemy) chaseRange() float64 {
	return en.combat().ChaseRange
}

func (en *Enemy) valid() bool {
	w := en.World()
	if life, ok := ecs.Get(w, en.Entity(), component.LifeComponent); ok && life.Escaped {
		return false
	}
	return Healthy(w, en.Entity())
}

func (en *Enemy) escaped() bool {
	life, ok := ecs.Get(en.World(), en.Entity(), component.LifeComponent)
	return ok && life.Escaped
}

func (en *Enemy) execute(t *Tick) {
	w := en.World()
	en.dt = t.Delta
	if c, ok := ecs.Get(w, en.Entity(), component.CombatComponent); ok && c.Remaining > 0 {
		c.Remaining -= t.Delta
	}
	if m, ok := ecs.Get(w, en.Entity(), component.MovementComponent); ok && m.Chill > 0 {
		m.Chill -= t.Delta
	}

	switch en.GetState() {
	case EnemyIdle:
		en.walkToGoal(t.Targets)
	case EnemyChase, EnemyAttack:
		if en.opts.Script != nil {
			en.runScript()
			return
		}
		if en.GetState() == EnemyChase {
			en.MoveTowardsTarget(1)
		} else if en.AttackReady() {
			en.Strike()
		}
	}
}

// MoveTowardsTarget steps toward the held target at scale times the
// current movement speed.
func (en *Enemy) MoveTowardsTarget(scale float64) bool {
	target, ok := en.Target()
	if !ok {
		return false
	}
	tx, ty, ok := Position(en.World(), target)
	if !ok {
		return false
	}
	return en.moveTowards(tx, ty, scale)
}

func (en *Enemy) moveTowards(tx, ty, scale float64) bool {
	w := en.World()
	t, ok := ecs.Get(w, en.Entity(), component.TransformComponent)
	if !ok {
		return false
	}
	m, ok := ecs.Get(w, en.Entity(), component.MovementComponent)
	if !ok {
		return false
	}
	t.X, t.Y = common.MoveTowards(t.X, t.Y, tx, ty, m.Effective()*scale*en.dt)
	return true
}

func (en *Enemy) walkToGoal(snapshot []ecs.Entity) {
	w := en.World()
	best, bestDist := ecs.Entity(0), 0.0
	for _, e := range snapshot {
		if KindOf(w, e) != component.KindGoalHole {
			continue
		}
		d, ok := DistanceBetween(w, en.Entity(), e)
		if !ok {
			continue
		}
		if best == 0 || d < bestDist {
			best, bestDist = e, d
		}
	}
	if best == 0 {
		return
	}
	gx, gy, _ := Position(w, best)
	en.moveTowards(gx, gy, 1)
}

func (en *Enemy) AttackReady() bool {
	c, ok := ecs.Get(en.World(), en.Entity(), component.CombatComponent)
	return ok && c.Remaining <= 0 && en.HasTarget()
}

// Strike hits the held target and restarts the cooldown.
func (en *Enemy) Strike() bool {
	target, ok := en.Target()
	if !ok {
		return false
	}
	c, ok := ecs.Get(en.World(), en.Entity(), component.CombatComponent)
	if !ok {
		return false
	}
	c.Remaining = c.Cooldown
	return Damage(en.World(), target, c.Damage)
}

func (en *Enemy) runScript() {
	if err := en.opts.Script.Update(en.GetState().String(), en.scriptEngine()); err != nil {
		log.Printf("controller: %s %s script error: %v", en.Kind(), en.Entity(), err)
	}
}

func (en *Enemy) scriptEngine() script.Engine {
	return script.Engine{
		"has_target": func(args ...tengo.Object) (tengo.Object, error) {
			return script.Bool(en.HasTarget()), nil
		},
		"move_towards_target": func(args ...tengo.Object) (tengo.Object, error) {
			return script.Bool(en.MoveTowardsTarget(script.ArgFloat(args, 0, 1))), nil
		},
		"attack_ready": func(args ...tengo.Object) (tengo.Object, error) {
			return script.Bool(en.AttackReady()), nil
		},
		"attack": func(args ...tengo.Object) (tengo.Object, error) {
			return script.Bool(en.Strike()), nil
		},
		"health_ratio": func(args ...tengo.Object) (tengo.Object, error) {
			h, ok := ecs.Get(en.World(), en.Entity(), component.HealthComponent)
			if !ok || h.Max <= 0 {
				return script.Float(0), nil
			}
			return script.Float(h.Current / h.Max), nil
		},
		"log": func(args ...tengo.Object) (tengo.Object, error) {
			log.Printf("script: %s %s: %s", en.Kind(), en.Entity(), script.ArgString(args, 0))
			return tengo.UndefinedValue, nil
		},
	}
}

func (en *Enemy) onDie() {
	if en.escaped() {
		log.Printf("controller: %s %s escaped", en.Kind(), en.Entity())
		return
	}
	x, y, ok := en.Position()
	if !ok {
		return
	}
	if en.opts.Loot != "" && en.Services().Factory != nil {
		if _, err := en.Services().Factory.Spawn(en.opts.Loot, x, y); err != nil {
			log.Printf("controller: %s %s drop %s: %v", en.Kind(), en.Entity(), en.opts.Loot, err)
		}
	}
	if en.opts.OnDeath != nil {
		en.opts.OnDeath(en)
	}
}
