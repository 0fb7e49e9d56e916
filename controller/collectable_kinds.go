package controller

import (
	"github.com/milk9111/herbicide/ecs"
	"github.com/milk9111/herbicide/ecs/component"
	"github.com/milk9111/herbicide/prefabs"
)

func init() {
	RegisterKind(component.KindDew, CategoryCollectable, buildPickup(component.KindDew))
	RegisterKind(component.KindSpeedTreeSeed, CategoryCollectable, buildPickup(component.KindSpeedTreeSeed))
}

// buildPickup covers the collectables that differ only in stats. What a
// pickup is worth is the economy's business.
func buildPickup(kind component.Kind) Builder {
	return func(svc *Services, e ecs.Entity, _ prefabs.KindSpec) (Controller, error) {
		return NewCollectable(svc, e, kind, nil), nil
	}
}
