package controller

type DefenderState uint8

const (
	DefenderSpawn DefenderState = iota
	DefenderIdle
	DefenderAttack
)

var defenderStates = []DefenderState{DefenderSpawn, DefenderIdle, DefenderAttack}

func (s DefenderState) String() string {
	switch s {
	case DefenderSpawn:
		return "SPAWN"
	case DefenderIdle:
		return "IDLE"
	case DefenderAttack:
		return "ATTACK"
	}
	return "INVALID"
}

type EnemyState uint8

const (
	EnemySpawn EnemyState = iota
	EnemyIdle
	EnemyChase
	EnemyAttack
)

var enemyStates = []EnemyState{EnemySpawn, EnemyIdle, EnemyChase, EnemyAttack}

func (s EnemyState) String() string {
	switch s {
	case EnemySpawn:
		return "SPAWN"
	case EnemyIdle:
		return "IDLE"
	case EnemyChase:
		return "CHASE"
	case EnemyAttack:
		return "ATTACK"
	}
	return "INVALID"
}

type HazardState uint8

const (
	HazardSpawn HazardState = iota
	HazardActive
)

var hazardStates = []HazardState{HazardSpawn, HazardActive}

func (s HazardState) String() string {
	switch s {
	case HazardSpawn:
		return "SPAWN"
	case HazardActive:
		return "ACTIVE"
	}
	return "INVALID"
}

type TreeState uint8

const (
	TreeSpawn TreeState = iota
	TreeIdle
)

var treeStates = []TreeState{TreeSpawn, TreeIdle}

func (s TreeState) String() string {
	switch s {
	case TreeSpawn:
		return "SPAWN"
	case TreeIdle:
		return "IDLE"
	}
	return "INVALID"
}

type StructureState uint8

const (
	StructureSpawn StructureState = iota
	StructureIdle
)

var structureStates = []StructureState{StructureSpawn, StructureIdle}

func (s StructureState) String() string {
	switch s {
	case StructureSpawn:
		return "SPAWN"
	case StructureIdle:
		return "IDLE"
	}
	return "INVALID"
}

type ProjectileState uint8

const (
	ProjectileSpawn ProjectileState = iota
	ProjectileMoving
	ProjectileColliding
	ProjectileDead
)

var projectileStates = []ProjectileState{ProjectileSpawn, ProjectileMoving, ProjectileColliding, ProjectileDead}

func (s ProjectileState) String() string {
	switch s {
	case ProjectileSpawn:
		return "SPAWN"
	case ProjectileMoving:
		return "MOVING"
	case ProjectileColliding:
		return "COLLIDING"
	case ProjectileDead:
		return "DEAD"
	}
	return "INVALID"
}

type CollectableState uint8

const (
	CollectableSpawn CollectableState = iota
	CollectableBobbing
	CollectableCollecting
)

var collectableStates = []CollectableState{CollectableSpawn, CollectableBobbing, CollectableCollecting}

func (s CollectableState) String() string {
	switch s {
	case CollectableSpawn:
		return "SPAWN"
	case CollectableBobbing:
		return "BOBBING"
	case CollectableCollecting:
		return "COLLECTING"
	}
	return "INVALID"
}
