package prefabs

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

func LoadSpec[T any](filename string) (T, error) {
	var zero T
	data, err := Load(filename)
	if err != nil {
		return zero, fmt.Errorf("prefabs: load %s: %w", filename, err)
	}

	var spec T
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return zero, fmt.Errorf("prefabs: unmarshal %s: %w", filename, err)
	}

	return spec, nil
}

// DecodeComponentSpec re-decodes a loosely typed YAML value into T.
func DecodeComponentSpec[T any](raw any) (T, error) {
	var zero T
	if raw == nil {
		return zero, nil
	}
	b, err := yaml.Marshal(raw)
	if err != nil {
		return zero, err
	}
	var out T
	if err := yaml.Unmarshal(b, &out); err != nil {
		return zero, err
	}
	return out, nil
}

// KindSpec holds the tunable stats of one entity kind. Distances are in
// tiles and times in seconds.
type KindSpec struct {
	Faction        string  `yaml:"faction"`
	Health         float64 `yaml:"health"`
	Radius         float64 `yaml:"radius"`
	Speed          float64 `yaml:"speed"`
	Damage         float64 `yaml:"damage"`
	AttackRange    float64 `yaml:"attack_range"`
	ChaseRange     float64 `yaml:"chase_range"`
	AttackCooldown float64 `yaml:"attack_cooldown"`
	Lifespan       float64 `yaml:"lifespan"`
	ArcHeight      float64 `yaml:"arc_height"`
	SplashSize     float64 `yaml:"splash_size"`
	SlowRate       float64 `yaml:"slow_rate"`
	SlowDuration   float64 `yaml:"slow_duration"`
	Boost          float64 `yaml:"boost"`
	Split          int     `yaml:"split"`
	SpawnInterval  float64 `yaml:"spawn_interval"`
	Loot           string  `yaml:"loot"`
	Projectile     string  `yaml:"projectile"`
	Script         string  `yaml:"script"`

	Value           int     `yaml:"value"`
	BobSpeed        float64 `yaml:"bob_speed"`
	BobHeight       float64 `yaml:"bob_height"`
	HomingRange     float64 `yaml:"homing_range"`
	CollectionRange float64 `yaml:"collection_range"`
	HomeSpeed       float64 `yaml:"home_speed"`

	Animations map[string]AnimationSpec `yaml:"animations"`
}

type AnimationSpec struct {
	Frames   int     `yaml:"frames"`
	Duration float64 `yaml:"duration"`
}
