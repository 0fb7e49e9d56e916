package component

// Lifetime expires once Age reaches Span. A zero Span never expires.
type Lifetime struct {
	Age  float64
	Span float64
}

func (l Lifetime) Expired() bool {
	return l.Span > 0 && l.Age >= l.Span
}

var LifetimeComponent = NewComponent[Lifetime]()
