package component

type Combat struct {
	Damage      float64
	AttackRange float64
	ChaseRange  float64
	// Cooldown is the time between attacks in seconds and Remaining counts
	// down toward the next one.
	Cooldown  float64
	Remaining float64
	// SpeedScale multiplies how fast Remaining drains. Speed trees raise it.
	SpeedScale float64
}

var CombatComponent = NewComponent[Combat]()

type Movement struct {
	Speed      float64
	SpeedScale float64
	// Chill is a timed slow applied by ice. ChillRate multiplies speed while
	// Chill is above zero.
	Chill     float64
	ChillRate float64
	// Slows holds one rate per slowing source, keyed by the source entity.
	// Sources add and remove only their own entry.
	Slows map[uint64]float64
}

// Slow records source's rate, replacing any earlier rate from source.
func (m *Movement) Slow(source uint64, rate float64) {
	if m.Slows == nil {
		m.Slows = make(map[uint64]float64)
	}
	m.Slows[source] = rate
}

// Unslow drops source's rate and reports whether it was present.
func (m *Movement) Unslow(source uint64) bool {
	if _, ok := m.Slows[source]; !ok {
		return false
	}
	delete(m.Slows, source)
	return true
}

func (m Movement) SlowedBy(source uint64) bool {
	_, ok := m.Slows[source]
	return ok
}

// Effective returns the speed after slows and boosts. Every active slow
// multiplies in, so overlapping sources stack and each one lifts cleanly.
func (m Movement) Effective() float64 {
	speed := m.Speed * m.SpeedScale
	for _, rate := range m.Slows {
		speed *= rate
	}
	if m.Chill > 0 {
		speed *= m.ChillRate
	}
	return speed
}

var MovementComponent = NewComponent[Movement]()
