package controller

import (
	"github.com/milk9111/herbicide/ecs"
	"github.com/milk9111/herbicide/ecs/component"
	"github.com/milk9111/herbicide/prefabs"
)

func init() {
	RegisterKind(component.KindBasicTree, CategoryTree, buildBasicTree)
	RegisterKind(component.KindSpeedTree, CategoryTree, buildSpeedTree)
}

func buildBasicTree(svc *Services, e ecs.Entity, _ prefabs.KindSpec) (Controller, error) {
	return NewTree(svc, e, component.KindBasicTree, nil, nil), nil
}

// SpeedTree raises its occupant's attack speed while the occupant stands
// on it.
type SpeedTree struct {
	*Tree
	boost   float64
	boosted ecs.Entity
}

func buildSpeedTree(svc *Services, e ecs.Entity, spec prefabs.KindSpec) (Controller, error) {
	st := &SpeedTree{boost: spec.Boost}
	st.Tree = NewTree(svc, e, component.KindSpeedTree, st.idle, st.die)
	return st, nil
}

// Boosted returns the entity currently receiving the boost.
func (st *SpeedTree) Boosted() (ecs.Entity, bool) {
	return st.boosted, st.boosted != 0
}

func (st *SpeedTree) idle(tr *Tree, _ *Tick) {
	occupant, ok := tr.Occupant()
	if !ok {
		st.unboost(tr.World())
		return
	}
	if occupant == st.boosted {
		return
	}
	st.unboost(tr.World())
	if c, ok := ecs.Get(tr.World(), occupant, component.CombatComponent); ok {
		c.SpeedScale = st.boost
		st.boosted = occupant
	}
}

func (st *SpeedTree) die(tr *Tree) {
	st.unboost(tr.World())
}

func (st *SpeedTree) unboost(w *ecs.World) {
	if st.boosted == 0 {
		return
	}
	if c, ok := ecs.Get(w, st.boosted, component.CombatComponent); ok {
		c.SpeedScale = 1
	}
	st.boosted = 0
}
