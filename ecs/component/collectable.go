package component

// Collectable is a cursor-collected pickup. BaseY is the resting height the
// bob oscillates around.
type Collectable struct {
	Value           int
	BaseY           float64
	BobSpeed        float64
	BobHeight       float64
	TimeOffset      float64
	Clock           float64
	HomingRange     float64
	CollectionRange float64
	HomeSpeed       float64
	Collected       bool
}

var CollectableComponent = NewComponent[Collectable]()
