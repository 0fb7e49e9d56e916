package controller

import (
	"github.com/milk9111/herbicide/ecs"
	"github.com/milk9111/herbicide/ecs/component"
	"github.com/milk9111/herbicide/fsm"
)

// Tree is the adapter for surfaces defenders stand on. Trees never target
// and live until their dead flag is set.
type Tree struct {
	*Mob[TreeState]
	idle func(tr *Tree, t *Tick)
	die  func(tr *Tree)
}

func NewTree(svc *Services, e ecs.Entity, kind component.Kind, idle func(*Tree, *Tick), die func(*Tree)) *Tree {
	tr := &Tree{idle: idle, die: die}
	tr.Mob = NewMob(svc, e, MobSpec[TreeState]{
		Kind:    kind,
		Initial: TreeSpawn,
		States:  treeStates,
		Table: fsm.Table[TreeState]{
			TreeSpawn: {fsm.Always(TreeIdle)},
			TreeIdle:  fsm.Stay[TreeState](),
		},
		Valid:   tr.alive,
		Execute: tr.execute,
		OnDie:   tr.onDie,
		Sorted:  true,
	})
	return tr
}

func (tr *Tree) alive() bool {
	life, ok := ecs.Get(tr.World(), tr.Entity(), component.LifeComponent)
	return ok && !life.Dead
}

// Occupant returns whoever stands on the tree, if they are still alive.
func (tr *Tree) Occupant() (ecs.Entity, bool) {
	occ, ok := ecs.Get(tr.World(), tr.Entity(), component.OccupancyComponent)
	if !ok || !occ.Occupied() {
		return 0, false
	}
	e := ecs.Entity(occ.Occupant)
	if !Targetable(tr.World(), e) {
		return 0, false
	}
	return e, true
}

// Occupy places e on the tree. It fails when the tree is taken.
func (tr *Tree) Occupy(e ecs.Entity) bool {
	w := tr.World()
	occ, ok := ecs.Get(w, tr.Entity(), component.OccupancyComponent)
	if !ok {
		return false
	}
	if _, taken := tr.Occupant(); taken {
		return false
	}
	occ.Occupant = uint64(e)
	if err := ecs.Add(w, e, component.PerchComponent, component.Perch{Surface: uint64(tr.Entity())}); err != nil {
		occ.Occupant = 0
		return false
	}
	return true
}

func (tr *Tree) execute(t *Tick) {
	if tr.GetState() == TreeIdle && tr.idle != nil {
		tr.idle(tr, t)
	}
}

func (tr *Tree) onDie() {
	if tr.die != nil {
		tr.die(tr)
	}
	if occupant, ok := tr.Occupant(); ok {
		ecs.Remove(tr.World(), occupant, component.PerchComponent)
	}
}
