package component

// Transform is a world-space position in tile units. Y grows downward.
type Transform struct {
	X float64
	Y float64
}

var TransformComponent = NewComponent[Transform]()
