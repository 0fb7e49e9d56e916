package component

type Health struct {
	Current float64
	Max     float64
}

var HealthComponent = NewComponent[Health]()

// Life carries the externally visible death flags. Trees are only valid
// while Dead is unset; enemies that reach a goal hole set Escaped.
type Life struct {
	Dead    bool
	Escaped bool
}

var LifeComponent = NewComponent[Life]()
