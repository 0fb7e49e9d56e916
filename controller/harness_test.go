package controller

import (
	"math"
	"math/rand"
	"testing"

	"github.com/milk9111/herbicide/common"
	"github.com/milk9111/herbicide/economy"
	"github.com/milk9111/herbicide/ecs"
	"github.com/milk9111/herbicide/ecs/component"
	"github.com/milk9111/herbicide/pool"
	"github.com/milk9111/herbicide/prefabs"
	"github.com/milk9111/herbicide/script"
	"github.com/stretchr/testify/require"
)

// fakeScene answers overlap queries from Transform and Collider directly,
// so tests run without a physics space.
type fakeScene struct {
	w        *ecs.World
	attached map[ecs.Entity]bool
	detached map[ecs.Entity]int
}

func newFakeScene(w *ecs.World) *fakeScene {
	return &fakeScene{w: w, attached: map[ecs.Entity]bool{}, detached: map[ecs.Entity]int{}}
}

func (s *fakeScene) Attach(e ecs.Entity, _ component.Faction, _, _, _ float64) {
	s.attached[e] = true
}

func (s *fakeScene) Detach(e ecs.Entity) {
	s.detached[e]++
	delete(s.attached, e)
}

func (s *fakeScene) radius(e ecs.Entity) float64 {
	if c, ok := ecs.Get(s.w, e, component.ColliderComponent); ok {
		return c.Radius
	}
	return 0
}

func (s *fakeScene) OverlapBox(cx, cy, w, h float64) []ecs.Entity {
	var out []ecs.Entity
	for _, e := range ecs.Query(s.w, component.LiveComponent) {
		x, y, ok := Position(s.w, e)
		r := s.radius(e)
		if ok && math.Abs(x-cx) <= w/2+r && math.Abs(y-cy) <= h/2+r {
			out = append(out, e)
		}
	}
	return out
}

func (s *fakeScene) OverlapCircle(cx, cy, radius float64) []ecs.Entity {
	var out []ecs.Entity
	for _, e := range ecs.Query(s.w, component.LiveComponent) {
		x, y, ok := Position(s.w, e)
		if ok && common.Distance(x, y, cx, cy) <= radius+s.radius(e) {
			out = append(out, e)
		}
	}
	return out
}

type countingPool struct {
	*pool.Pool
	returns map[ecs.Entity]int
}

func (p *countingPool) ReturnToPool(e ecs.Entity) {
	p.returns[e]++
	p.Pool.ReturnToPool(e)
}

type countingLedger struct {
	*economy.Ledger
	cashIns map[ecs.Entity]int
}

func (l *countingLedger) CashIn(e ecs.Entity) {
	l.cashIns[e]++
	l.Ledger.CashIn(e)
}

type fakeCursor struct {
	x, y float64
	in   bool
}

func (c *fakeCursor) Position() (float64, float64, bool) {
	return c.x, c.y, c.in
}

func (c *fakeCursor) moveTo(x, y float64) {
	c.x, c.y, c.in = x, y, true
}

type harness struct {
	w       *ecs.World
	scene   *fakeScene
	pool    *countingPool
	ledger  *countingLedger
	cursor  *fakeCursor
	mgr     *Manager
	svc     *Services
	factory *Factory
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	catalog, err := prefabs.LoadCatalog(prefabs.DefaultCatalog)
	require.NoError(t, err)

	w := ecs.NewWorld()
	h := &harness{
		w:      w,
		scene:  newFakeScene(w),
		pool:   &countingPool{Pool: pool.New(w), returns: map[ecs.Entity]int{}},
		ledger: &countingLedger{Ledger: economy.NewLedger(w, 0), cashIns: map[ecs.Entity]int{}},
		cursor: &fakeCursor{},
		mgr:    NewManager(w),
	}
	h.svc = &Services{
		World:   w,
		Scene:   h.scene,
		Pool:    h.pool,
		Economy: h.ledger,
		Cursor:  h.cursor,
		Rand:    rand.New(rand.NewSource(1)),
	}
	h.factory = NewFactory(h.svc, h.pool, h.scene, catalog, h.mgr, script.NewCache())
	return h
}

func (h *harness) spawn(t *testing.T, kind component.Kind, x, y float64) Controller {
	t.Helper()
	c, err := h.factory.Spawn(kind, x, y)
	require.NoError(t, err)
	return c
}

// dummy makes a bare targetable entity with no controller.
func (h *harness) dummy(t *testing.T, faction component.Faction, x, y, hp float64) ecs.Entity {
	t.Helper()
	e := h.w.CreateEntity()
	require.NoError(t, ecs.Add(h.w, e, component.IdentityComponent, component.Identity{Kind: "dummy", Faction: faction}))
	require.NoError(t, ecs.Add(h.w, e, component.TransformComponent, component.Transform{X: x, Y: y}))
	require.NoError(t, ecs.Add(h.w, e, component.LiveComponent, component.Live{}))
	require.NoError(t, ecs.Add(h.w, e, component.HealthComponent, component.Health{Current: hp, Max: hp}))
	require.NoError(t, ecs.Add(h.w, e, component.LifeComponent, component.Life{}))
	require.NoError(t, ecs.Add(h.w, e, component.MovementComponent, component.Movement{Speed: 1, SpeedScale: 1, ChillRate: 1}))
	require.NoError(t, ecs.Add(h.w, e, component.CombatComponent, component.Combat{SpeedScale: 1}))
	return e
}

func (h *harness) tick(dt float64) {
	h.mgr.Tick(PhaseOngoing, dt)
}

func (h *harness) ticks(n int, dt float64) {
	for i := 0; i < n; i++ {
		h.tick(dt)
	}
}

func (h *harness) ofKind(kind component.Kind) []Controller {
	var out []Controller
	for _, c := range h.mgr.Controllers() {
		if c.Kind() == kind {
			out = append(out, c)
		}
	}
	return out
}

func health(t *testing.T, w *ecs.World, e ecs.Entity) float64 {
	t.Helper()
	hp, ok := ecs.Get(w, e, component.HealthComponent)
	require.True(t, ok, "no health on %s", e)
	return hp.Current
}

func combatOf(t *testing.T, w *ecs.World, e ecs.Entity) *component.Combat {
	t.Helper()
	c, ok := ecs.Get(w, e, component.CombatComponent)
	require.True(t, ok, "no combat on %s", e)
	return c
}

func moveTo(w *ecs.World, e ecs.Entity, x, y float64) {
	if tr, ok := ecs.Get(w, e, component.TransformComponent); ok {
		tr.X, tr.Y = x, y
	}
}
