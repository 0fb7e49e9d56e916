package controller

import (
	"log"

	"github.com/milk9111/herbicide/ecs"
	"github.com/milk9111/herbicide/ecs/component"
	"github.com/milk9111/herbicide/prefabs"
)

func init() {
	RegisterKind(component.KindSquirrel, CategoryDefender, buildShooter(component.KindSquirrel))
	RegisterKind(component.KindPorcupine, CategoryDefender, buildShooter(component.KindPorcupine))
	RegisterKind(component.KindOwl, CategoryDefender, buildShooter(component.KindOwl))
	RegisterKind(component.KindBear, CategoryDefender, buildBear)
}

// buildShooter covers the defenders whose attack is a projectile named by
// the kind's stats.
func buildShooter(kind component.Kind) Builder {
	return func(svc *Services, e ecs.Entity, spec prefabs.KindSpec) (Controller, error) {
		return NewDefender(svc, e, kind, Shoot(component.Kind(spec.Projectile))), nil
	}
}

// Shoot launches projectile from the defender toward the target's current
// position.
func Shoot(projectile component.Kind) AttackFunc {
	return func(d *Defender, target ecs.Entity) {
		f := d.Services().Factory
		if f == nil || projectile == "" {
			return
		}
		x, y, ok := d.Position()
		if !ok {
			return
		}
		tx, ty, ok := Position(d.World(), target)
		if !ok {
			return
		}
		if _, err := f.Launch(projectile, d.Entity(), x, y, tx, ty, target); err != nil {
			log.Printf("controller: %s %s launch %s: %v", d.Kind(), d.Entity(), projectile, err)
		}
	}
}

// buildBear: the bear chomps whatever it holds.
func buildBear(svc *Services, e ecs.Entity, _ prefabs.KindSpec) (Controller, error) {
	return NewDefender(svc, e, component.KindBear, chomp), nil
}

func chomp(d *Defender, target ecs.Entity) {
	c, ok := ecs.Get(d.World(), d.Entity(), component.CombatComponent)
	if !ok {
		return
	}
	Damage(d.World(), target, c.Damage)
}
