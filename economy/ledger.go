// Package economy keeps the player's money and seed counts.
package economy

import (
	"errors"
	"fmt"
	"log"
	"sync"

	"github.com/milk9111/herbicide/common"
	"github.com/milk9111/herbicide/ecs"
	"github.com/milk9111/herbicide/ecs/component"
)

const (
	MinMoney = 0
	MaxMoney = 100
)

var (
	ErrAlreadyCashedIn = errors.New("economy: collectable already cashed in")
	ErrNotCollectable  = errors.New("economy: entity is not a collectable")
)

// Ledger credits collectables. Dew becomes money, clamped to
// [MinMoney, MaxMoney]; every other collectable kind adds to an item count.
type Ledger struct {
	mu     sync.Mutex
	world  *ecs.World
	money  int
	items  map[component.Kind]int
	cashed map[ecs.Entity]struct{}
}

func NewLedger(w *ecs.World, startingMoney int) *Ledger {
	return &Ledger{
		world:  w,
		money:  clampMoney(startingMoney),
		items:  make(map[component.Kind]int),
		cashed: make(map[ecs.Entity]struct{}),
	}
}

// CashIn credits the collectable e. Errors are logged; a second call for
// the same handle changes nothing.
func (l *Ledger) CashIn(e ecs.Entity) {
	if err := l.Deposit(e); err != nil {
		log.Printf("economy: cash in %s: %v", e, err)
	}
}

func (l *Ledger) Deposit(e ecs.Entity) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if _, ok := l.cashed[e]; ok {
		return ErrAlreadyCashedIn
	}
	c, ok := ecs.Get(l.world, e, component.CollectableComponent)
	if !ok {
		return ErrNotCollectable
	}
	id, ok := ecs.Get(l.world, e, component.IdentityComponent)
	if !ok {
		return fmt.Errorf("%w: missing identity", ErrNotCollectable)
	}

	l.cashed[e] = struct{}{}
	if id.Kind == component.KindDew {
		l.money = clampMoney(l.money + c.Value)
		return nil
	}
	l.items[id.Kind] += c.Value
	return nil
}

func (l *Ledger) Money() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.money
}

func (l *Ledger) Items(kind component.Kind) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.items[kind]
}

// CashIns reports how many distinct collectables were credited.
func (l *Ledger) CashIns() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.cashed)
}

func clampMoney(v int) int {
	return int(common.Clamp(float64(v), MinMoney, MaxMoney))
}
