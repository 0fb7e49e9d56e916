package component

// Occupancy is carried by surfaces such as trees. Occupant is an
// ecs.Entity handle (0 when empty).
type Occupancy struct {
	Occupant uint64
}

func (o Occupancy) Occupied() bool {
	return o.Occupant != 0
}

var OccupancyComponent = NewComponent[Occupancy]()

// Perch points a defender at the surface it stands on.
type Perch struct {
	Surface uint64
}

var PerchComponent = NewComponent[Perch]()
