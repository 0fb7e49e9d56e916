package component

// Kind names a concrete entity kind. It doubles as the prefab key in
// stats.yaml and as the pool bucket.
type Kind string

const (
	KindSquirrel      Kind = "squirrel"
	KindBear          Kind = "bear"
	KindPorcupine     Kind = "porcupine"
	KindOwl           Kind = "owl"
	KindKudzu         Kind = "kudzu"
	KindKnotwood      Kind = "knotwood"
	KindSpurge        Kind = "spurge"
	KindSpurgeMinion  Kind = "spurge_minion"
	KindSlowZone      Kind = "slow_zone"
	KindBombSplat     Kind = "bomb_splat"
	KindBasicTree     Kind = "basic_tree"
	KindSpeedTree     Kind = "speed_tree"
	KindSpawnHole     Kind = "spawn_hole"
	KindGoalHole      Kind = "goal_hole"
	KindStoneWall     Kind = "stone_wall"
	KindAcorn         Kind = "acorn"
	KindQuill         Kind = "quill"
	KindIceChunk      Kind = "ice_chunk"
	KindBomb          Kind = "bomb"
	KindBasicTreeSeed Kind = "basic_tree_seed"
	KindDew           Kind = "dew"
	KindSpeedTreeSeed Kind = "speed_tree_seed"
)

// Faction decides who may target whom.
type Faction uint8

const (
	FactionNeutral Faction = iota
	FactionFriendly
	FactionHostile
)

func (f Faction) String() string {
	switch f {
	case FactionFriendly:
		return "friendly"
	case FactionHostile:
		return "hostile"
	default:
		return "neutral"
	}
}

type Identity struct {
	Kind    Kind
	Faction Faction
}

var IdentityComponent = NewComponent[Identity]()

// Live marks an entity as part of the scene's live set. Detaching an
// entity removes this tag before the entity returns to its pool.
type Live struct{}

var LiveComponent = NewComponent[Live]()
