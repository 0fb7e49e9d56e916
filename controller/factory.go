package controller

import (
	"errors"
	"fmt"
	"log"
	"math"
	"sort"
	"strings"

	"github.com/milk9111/herbicide/ecs"
	"github.com/milk9111/herbicide/ecs/component"
	"github.com/milk9111/herbicide/prefabs"
	"github.com/milk9111/herbicide/script"
)

var ErrUnregisteredKind = errors.New("controller: kind has no registered builder")

// Category picks which adapter a kind is built on and which components the
// factory attaches before the builder runs.
type Category uint8

const (
	CategoryDefender Category = iota + 1
	CategoryEnemy
	CategoryHazard
	CategoryTree
	CategoryStructure
	CategoryProjectile
	CategoryCollectable
)

func (c Category) String() string {
	switch c {
	case CategoryDefender:
		return "defender"
	case CategoryEnemy:
		return "enemy"
	case CategoryHazard:
		return "hazard"
	case CategoryTree:
		return "tree"
	case CategoryStructure:
		return "structure"
	case CategoryProjectile:
		return "projectile"
	case CategoryCollectable:
		return "collectable"
	default:
		return "unknown"
	}
}

// Builder creates the controller for an entity whose components the
// factory has already attached.
type Builder func(svc *Services, e ecs.Entity, spec prefabs.KindSpec) (Controller, error)

type registration struct {
	category Category
	build    Builder
}

var registry = map[component.Kind]registration{}

// RegisterKind adds a builder. It is meant to be called from init and
// panics on a duplicate kind.
func RegisterKind(kind component.Kind, category Category, build Builder) {
	if _, ok := registry[kind]; ok {
		panic(fmt.Sprintf("controller: kind %s registered twice", kind))
	}
	registry[kind] = registration{category: category, build: build}
}

// RegisteredKinds lists every kind with a builder, sorted by name.
func RegisteredKinds() []component.Kind {
	out := make([]component.Kind, 0, len(registry))
	for k := range registry {
		out = append(out, k)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

func CategoryOf(kind component.Kind) (Category, bool) {
	reg, ok := registry[kind]
	return reg.category, ok
}

type Allocator interface {
	Acquire(kind component.Kind, faction component.Faction) (ecs.Entity, error)
}

type Bodies interface {
	Attach(e ecs.Entity, faction component.Faction, x, y, radius float64)
}

type Catalog interface {
	Kind(kind string) (prefabs.KindSpec, bool)
}

// Registrar receives every controller the factory builds.
type Registrar interface {
	Register(c Controller)
}

// Factory turns a kind name and a position into a live entity with its
// controller.
type Factory struct {
	svc       *Services
	alloc     Allocator
	bodies    Bodies
	catalog   Catalog
	registrar Registrar
	scripts   *script.Cache
}

// NewFactory builds a factory and installs it as svc.Factory so
// controllers can spawn children.
func NewFactory(svc *Services, alloc Allocator, bodies Bodies, catalog Catalog, registrar Registrar, scripts *script.Cache) *Factory {
	f := &Factory{
		svc:       svc,
		alloc:     alloc,
		bodies:    bodies,
		catalog:   catalog,
		registrar: registrar,
		scripts:   scripts,
	}
	svc.Factory = f
	return f
}

// Script returns a fresh clone of the named script.
func (f *Factory) Script(name string) (*script.Runtime, error) {
	if f.scripts == nil {
		return nil, fmt.Errorf("controller: no script cache for %s", name)
	}
	return f.scripts.Get(name)
}

func (f *Factory) Spec(kind component.Kind) (prefabs.KindSpec, error) {
	if f.catalog == nil {
		return prefabs.KindSpec{}, fmt.Errorf("%w: %s", prefabs.ErrUnknownKind, kind)
	}
	spec, ok := f.catalog.Kind(string(kind))
	if !ok {
		return prefabs.KindSpec{}, fmt.Errorf("%w: %s", prefabs.ErrUnknownKind, kind)
	}
	return spec, nil
}

// Spawn creates kind at x, y.
func (f *Factory) Spawn(kind component.Kind, x, y float64) (Controller, error) {
	reg, ok := registry[kind]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnregisteredKind, kind)
	}
	spec, err := f.Spec(kind)
	if err != nil {
		return nil, err
	}
	faction := ParseFaction(spec.Faction)

	e, err := f.alloc.Acquire(kind, faction)
	if err != nil {
		return nil, fmt.Errorf("controller: spawn %s: %w", kind, err)
	}
	if err := f.attach(e, reg.category, spec, x, y); err != nil {
		f.giveBack(e)
		return nil, fmt.Errorf("controller: spawn %s: %w", kind, err)
	}
	ctrl, err := reg.build(f.svc, e, spec)
	if err != nil {
		f.giveBack(e)
		return nil, fmt.Errorf("controller: build %s: %w", kind, err)
	}

	if f.bodies != nil {
		f.bodies.Attach(e, faction, x, y, spec.Radius)
	}
	if f.registrar != nil {
		f.registrar.Register(ctrl)
	}
	log.Printf("controller: spawned %s %s at (%.2f, %.2f)", kind, e, x, y)
	return ctrl, nil
}

// Launch spawns a projectile at from and aims it at to. target is recorded
// for bookkeeping only; straight shots hit whatever hostile they touch.
func (f *Factory) Launch(kind component.Kind, source ecs.Entity, fromX, fromY, toX, toY float64, target ecs.Entity) (Controller, error) {
	if cat, ok := CategoryOf(kind); ok && cat != CategoryProjectile {
		return nil, fmt.Errorf("controller: launch %s: not a projectile", kind)
	}
	ctrl, err := f.Spawn(kind, fromX, fromY)
	if err != nil {
		return nil, err
	}
	if p, ok := ecs.Get(f.svc.World, ctrl.Entity(), component.ProjectileComponent); ok {
		p.DestX, p.DestY = toX, toY
		p.Source = uint64(source)
		p.Target = uint64(target)
	}
	return ctrl, nil
}

// Place spawns a defender on tree. It fails when the tree is taken.
func (f *Factory) Place(kind component.Kind, tree *Tree) (Controller, error) {
	if cat, ok := CategoryOf(kind); !ok || cat != CategoryDefender {
		return nil, fmt.Errorf("controller: place %s: not a defender", kind)
	}
	if tree == nil || !tree.ValidModel() {
		return nil, fmt.Errorf("controller: place %s: tree is gone", kind)
	}
	if _, taken := tree.Occupant(); taken {
		return nil, fmt.Errorf("controller: place %s: %s %s is occupied", kind, tree.Kind(), tree.Entity())
	}
	x, y, ok := tree.Position()
	if !ok {
		return nil, fmt.Errorf("controller: place %s: tree has no position", kind)
	}
	ctrl, err := f.Spawn(kind, x, y)
	if err != nil {
		return nil, err
	}
	if !tree.Occupy(ctrl.Entity()) {
		f.discard(ctrl)
		return nil, fmt.Errorf("controller: place %s: %s %s refused the occupant", kind, tree.Kind(), tree.Entity())
	}
	return ctrl, nil
}

// discard removes a controller that was built but could not be used. Its
// health is zeroed so the usual removal sequence hands the entity back.
func (f *Factory) discard(ctrl Controller) {
	if hp, ok := ecs.Get(f.svc.World, ctrl.Entity(), component.HealthComponent); ok {
		hp.Current = 0
	}
	if !ctrl.TryRemoveModel() && !ctrl.Removed() {
		log.Printf("controller: discard %s %s: still valid", ctrl.Kind(), ctrl.Entity())
	}
}

func (f *Factory) giveBack(e ecs.Entity) {
	if f.svc.Pool != nil {
		f.svc.Pool.ReturnToPool(e)
		return
	}
	f.svc.World.DestroyEntity(e)
}

func (f *Factory) attach(e ecs.Entity, cat Category, spec prefabs.KindSpec, x, y float64) error {
	w := f.svc.World
	errs := []error{
		ecs.Add(w, e, component.TransformComponent, component.Transform{X: x, Y: y}),
		ecs.Add(w, e, component.LiveComponent, component.Live{}),
		ecs.Add(w, e, component.ColliderComponent, component.Collider{Radius: spec.Radius}),
		ecs.Add(w, e, component.RenderLayerComponent, component.RenderLayer{Index: SortKey(y, false)}),
	}
	if len(spec.Animations) > 0 {
		tracks := make(map[string]component.AnimationTrack, len(spec.Animations))
		for name, a := range spec.Animations {
			tracks[strings.ToLower(name)] = component.AnimationTrack{Frames: a.Frames, Duration: a.Duration}
		}
		errs = append(errs, ecs.Add(w, e, component.AnimationComponent, component.Animation{Tracks: tracks}))
	}

	combat := component.Combat{
		Damage:      spec.Damage,
		AttackRange: spec.AttackRange,
		ChaseRange:  spec.ChaseRange,
		Cooldown:    spec.AttackCooldown,
		SpeedScale:  1,
	}
	health := component.Health{Current: spec.Health, Max: spec.Health}

	switch cat {
	case CategoryDefender:
		errs = append(errs,
			ecs.Add(w, e, component.HealthComponent, health),
			ecs.Add(w, e, component.LifeComponent, component.Life{}),
			ecs.Add(w, e, component.CombatComponent, combat),
		)
	case CategoryEnemy:
		errs = append(errs,
			ecs.Add(w, e, component.HealthComponent, health),
			ecs.Add(w, e, component.LifeComponent, component.Life{}),
			ecs.Add(w, e, component.CombatComponent, combat),
			ecs.Add(w, e, component.MovementComponent, component.Movement{Speed: spec.Speed, SpeedScale: 1, ChillRate: 1}),
		)
	case CategoryHazard:
		errs = append(errs,
			ecs.Add(w, e, component.LifetimeComponent, component.Lifetime{Span: spec.Lifespan}),
			ecs.Add(w, e, component.CombatComponent, combat),
		)
	case CategoryTree:
		errs = append(errs,
			ecs.Add(w, e, component.HealthComponent, health),
			ecs.Add(w, e, component.LifeComponent, component.Life{}),
			ecs.Add(w, e, component.OccupancyComponent, component.Occupancy{}),
		)
	case CategoryProjectile:
		errs = append(errs,
			ecs.Add(w, e, component.ProjectileComponent, component.Projectile{
				StartX:    x,
				StartY:    y,
				DestX:     x,
				DestY:     y,
				Speed:     spec.Speed,
				Damage:    spec.Damage,
				ArcHeight: spec.ArcHeight,
				Active:    true,
			}),
			ecs.Add(w, e, component.LifetimeComponent, component.Lifetime{Span: spec.Lifespan}),
		)
	case CategoryCollectable:
		offset := 0.0
		if f.svc.Rand != nil {
			offset = f.svc.Rand.Float64() * 2 * math.Pi
		}
		errs = append(errs, ecs.Add(w, e, component.CollectableComponent, component.Collectable{
			Value:           spec.Value,
			BaseY:           y,
			BobSpeed:        spec.BobSpeed,
			BobHeight:       spec.BobHeight,
			TimeOffset:      offset,
			HomingRange:     spec.HomingRange,
			CollectionRange: spec.CollectionRange,
			HomeSpeed:       spec.HomeSpeed,
		}))
	}
	return errors.Join(errs...)
}

// ParseFaction maps a stats file faction name. Anything unknown is neutral.
func ParseFaction(name string) component.Faction {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "friendly":
		return component.FactionFriendly
	case "hostile":
		return component.FactionHostile
	default:
		return component.FactionNeutral
	}
}
