// Package sim wires the controller core to a world, a physics space, a
// pool, an economy and the prefab catalog. It has no window; the root
// package drives it from ebiten, and tests drive it directly.
package sim

import (
	"fmt"
	"log"
	"math/rand"
	"path/filepath"

	"github.com/milk9111/herbicide/controller"
	"github.com/milk9111/herbicide/ecs"
	"github.com/milk9111/herbicide/economy"
	"github.com/milk9111/herbicide/physics"
	"github.com/milk9111/herbicide/pool"
	"github.com/milk9111/herbicide/prefabs"
	"github.com/milk9111/herbicide/script"
)

const (
	DefaultStats         = prefabs.DefaultCatalog
	DefaultStartingMoney = 20
)

type Config struct {
	Stats         string
	Seed          int64
	StartingMoney int
	// ThrowX, ThrowY is where the player's thrown items start their arc.
	ThrowX, ThrowY float64
}

// Pointer is the cursor state for one tick, in world units.
type Pointer struct {
	X, Y float64
	In   bool
}

type cursor struct {
	p Pointer
}

func (c *cursor) Position() (float64, float64, bool) {
	return c.p.X, c.p.Y, c.p.In
}

type systemFunc func(w *ecs.World)

func (f systemFunc) Update(w *ecs.World) {
	f(w)
}

// Level is one running game.
type Level struct {
	cfg       Config
	world     *ecs.World
	space     *physics.Space
	pool      *pool.Pool
	ledger    *economy.Ledger
	catalog   *prefabs.Catalog
	scripts   *script.Cache
	manager   *controller.Manager
	factory   *controller.Factory
	cursor    *cursor
	scheduler *ecs.Scheduler
	watcher   *prefabs.Watcher

	phase controller.Phase
	dt    float64
}

func NewLevel(cfg Config) (*Level, error) {
	if cfg.Stats == "" {
		cfg.Stats = DefaultStats
	}
	catalog, err := prefabs.LoadCatalog(cfg.Stats)
	if err != nil {
		return nil, fmt.Errorf("sim: %w", err)
	}

	w := ecs.NewWorld()
	l := &Level{
		cfg:     cfg,
		world:   w,
		space:   physics.NewSpace(w.Events()),
		pool:    pool.New(w),
		ledger:  economy.NewLedger(w, cfg.StartingMoney),
		catalog: catalog,
		scripts: script.NewCache(),
		manager: controller.NewManager(w),
		cursor:  &cursor{},
		phase:   controller.PhaseOngoing,
	}

	svc := &controller.Services{
		World:   w,
		Scene:   l.space,
		Pool:    l.pool,
		Economy: l.ledger,
		Cursor:  l.cursor,
		Rand:    rand.New(rand.NewSource(cfg.Seed)),
	}
	l.factory = controller.NewFactory(svc, l.pool, l.space, catalog, l.manager, l.scripts)

	l.scheduler = ecs.NewScheduler(
		systemFunc(l.syncBodies),
		systemFunc(l.stepPhysics),
		systemFunc(l.dispatchCollisions),
		systemFunc(l.tickControllers),
	)
	return l, nil
}

func (l *Level) World() *ecs.World               { return l.world }
func (l *Level) Space() *physics.Space           { return l.space }
func (l *Level) Pool() *pool.Pool                { return l.pool }
func (l *Level) Ledger() *economy.Ledger         { return l.ledger }
func (l *Level) Catalog() *prefabs.Catalog       { return l.catalog }
func (l *Level) Manager() *controller.Manager    { return l.manager }
func (l *Level) Factory() *controller.Factory    { return l.factory }
func (l *Level) Phase() controller.Phase         { return l.phase }
func (l *Level) SetPhase(phase controller.Phase) { l.phase = phase }

// Update advances the level by dt seconds.
func (l *Level) Update(phase controller.Phase, dt float64, p Pointer) {
	l.phase = phase
	l.dt = dt
	l.cursor.p = p
	l.pollWatcher()
	l.scheduler.Update(l.world)
}

func (l *Level) syncBodies(w *ecs.World) {
	if l.phase == controller.PhaseOngoing {
		l.space.Sync(w)
	}
}

func (l *Level) stepPhysics(*ecs.World) {
	if l.phase == controller.PhaseOngoing {
		l.space.Step(l.dt)
	}
}

func (l *Level) dispatchCollisions(w *ecs.World) {
	l.manager.Dispatch(w.Events().Drain())
}

func (l *Level) tickControllers(*ecs.World) {
	l.manager.Tick(l.phase, l.dt)
}

// Spawn creates kind at x, y.
func (l *Level) Spawn(kind string, x, y float64) (controller.Controller, error) {
	return l.factory.Spawn(componentKind(kind), x, y)
}

// Use applies a player action at x, y. Projectiles such as bombs and seeds
// are thrown from the throw point; defenders are placed on the tree under
// x, y.
func (l *Level) Use(kind string, x, y float64) (controller.Controller, error) {
	k := componentKind(kind)
	cat, ok := controller.CategoryOf(k)
	if !ok {
		return nil, fmt.Errorf("sim: use %s: %w", kind, controller.ErrUnregisteredKind)
	}
	switch cat {
	case controller.CategoryProjectile:
		return l.factory.Launch(k, 0, l.cfg.ThrowX, l.cfg.ThrowY, x, y, 0)
	case controller.CategoryDefender:
		tree, ok := l.TreeAt(x, y)
		if !ok {
			return nil, fmt.Errorf("sim: use %s: no tree at (%.2f, %.2f)", kind, x, y)
		}
		return l.factory.Place(k, tree)
	default:
		return nil, fmt.Errorf("sim: use %s: %s kinds cannot be used", kind, cat)
	}
}

// TreeAt finds the tree whose collider covers x, y.
func (l *Level) TreeAt(x, y float64) (*controller.Tree, bool) {
	for _, e := range l.space.OverlapCircle(x, y, 0.01) {
		c, ok := l.manager.Lookup(e)
		if !ok {
			continue
		}
		if tree, ok := asTree(c); ok {
			return tree, true
		}
	}
	return nil, false
}

func asTree(c controller.Controller) (*controller.Tree, bool) {
	switch t := c.(type) {
	case *controller.Tree:
		return t, true
	case *controller.SpeedTree:
		return t.Tree, true
	}
	return nil, false
}

// WatchPrefabs reloads stats and scripts when their files change under
// dirs. Reloads are applied at the start of the next Update.
func (l *Level) WatchPrefabs(dirs ...string) error {
	if l.watcher != nil {
		return nil
	}
	w, err := prefabs.NewWatcher(dirs...)
	if err != nil {
		return fmt.Errorf("sim: watch prefabs: %w", err)
	}
	l.watcher = w
	return nil
}

func (l *Level) pollWatcher() {
	if l.watcher == nil {
		return
	}
	for {
		select {
		case c, ok := <-l.watcher.Changes:
			if !ok {
				return
			}
			l.reload(c)
		case err, ok := <-l.watcher.Errors:
			if !ok {
				return
			}
			log.Printf("sim: watcher: %v", err)
		default:
			return
		}
	}
}

func (l *Level) reload(c prefabs.Change) {
	switch c.Kind {
	case prefabs.CatalogChanged:
		if c.Name != filepath.Base(l.catalog.Name()) {
			return
		}
		if err := l.catalog.Reload(); err != nil {
			log.Printf("sim: reload %s: %v", c.Path, err)
		}
	case prefabs.ScriptChanged:
		l.scripts.Invalidate(c.Name)
		log.Printf("sim: script %s changed; new spawns pick it up", c.Name)
	}
}

func (l *Level) Close() error {
	if l.watcher == nil {
		return nil
	}
	err := l.watcher.Close()
	l.watcher = nil
	return err
}
