package component

type Collider struct {
	Radius float64
}

var ColliderComponent = NewComponent[Collider]()
