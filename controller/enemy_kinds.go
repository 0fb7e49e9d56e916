package controller

import (
	"fmt"
	"log"
	"math"

	"github.com/milk9111/herbicide/ecs"
	"github.com/milk9111/herbicide/ecs/component"
	"github.com/milk9111/herbicide/prefabs"
)

// splitRadius is how far from the parent split children land.
const splitRadius = 0.3

func init() {
	RegisterKind(component.KindKudzu, CategoryEnemy, buildKudzu)
	RegisterKind(component.KindKnotwood, CategoryEnemy, buildKnotwood)
	RegisterKind(component.KindSpurge, CategoryEnemy, buildSpurge)
	RegisterKind(component.KindSpurgeMinion, CategoryEnemy, buildSpurgeMinion)
}

func buildKudzu(svc *Services, e ecs.Entity, spec prefabs.KindSpec) (Controller, error) {
	return NewEnemy(svc, e, component.KindKudzu, EnemyOptions{
		Timed: []EnemyState{EnemyIdle, EnemyChase, EnemyAttack},
		Loot:  component.Kind(spec.Loot),
	}), nil
}

func buildKnotwood(svc *Services, e ecs.Entity, spec prefabs.KindSpec) (Controller, error) {
	if spec.Script == "" {
		return nil, fmt.Errorf("knotwood needs a script")
	}
	if svc.Factory == nil {
		return nil, fmt.Errorf("knotwood needs a factory to load %s", spec.Script)
	}
	rt, err := svc.Factory.Script(spec.Script)
	if err != nil {
		return nil, err
	}
	return NewEnemy(svc, e, component.KindKnotwood, EnemyOptions{
		Timed:  []EnemyState{EnemyChase, EnemyAttack},
		Script: rt,
		Loot:   component.Kind(spec.Loot),
	}), nil
}

func buildSpurge(svc *Services, e ecs.Entity, spec prefabs.KindSpec) (Controller, error) {
	split := spec.Split
	return NewEnemy(svc, e, component.KindSpurge, EnemyOptions{
		Timed: []EnemyState{EnemyChase, EnemyAttack},
		Loot:  component.Kind(spec.Loot),
		OnDeath: func(en *Enemy) {
			Split(en, component.KindSpurgeMinion, split)
		},
	}), nil
}

func buildSpurgeMinion(svc *Services, e ecs.Entity, spec prefabs.KindSpec) (Controller, error) {
	return NewEnemy(svc, e, component.KindSpurgeMinion, EnemyOptions{
		Timed: []EnemyState{EnemyChase},
		Loot:  component.Kind(spec.Loot),
	}), nil
}

// Split spawns n children of kind spaced evenly around the parent.
func Split(en *Enemy, kind component.Kind, n int) {
	f := en.Services().Factory
	x, y, ok := en.Position()
	if f == nil || !ok || n <= 0 {
		return
	}
	for i := 0; i < n; i++ {
		angle := 2 * math.Pi * float64(i) / float64(n)
		cx := x + splitRadius*math.Cos(angle)
		cy := y + splitRadius*math.Sin(angle)
		if _, err := f.Spawn(kind, cx, cy); err != nil {
			log.Printf("controller: %s %s split into %s: %v", en.Kind(), en.Entity(), kind, err)
		}
	}
}
