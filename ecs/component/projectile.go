package component

// Projectile describes a shot from launch point to a fixed destination.
// Lobbed shots follow an arc of ArcHeight above the straight line.
type Projectile struct {
	StartX    float64
	StartY    float64
	DestX     float64
	DestY     float64
	Speed     float64
	Damage    float64
	ArcHeight float64
	Traveled  float64
	Source    uint64
	Target    uint64
	Active    bool
	Detonated bool
}

var ProjectileComponent = NewComponent[Projectile]()
