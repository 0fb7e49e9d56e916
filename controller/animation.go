package controller

import (
	"errors"

	"github.com/milk9111/herbicide/fsm"
)

// ErrNoAnimationTiming is the panic value raised when an animation hook is
// called on a kind that declares no timed states.
var ErrNoAnimationTiming = errors.New("controller: kind declares no animation timing")

// AnimationTimers keeps one elapsed-time counter per timed state. Only the
// current state's counter moves.
type AnimationTimers[S fsm.Tag] struct {
	state    func() S
	timed    map[S]bool
	counters map[S]float64
}

func NewAnimationTimers[S fsm.Tag](state func() S, timed ...S) *AnimationTimers[S] {
	a := &AnimationTimers[S]{
		state:    state,
		timed:    make(map[S]bool, len(timed)),
		counters: make(map[S]float64, len(timed)),
	}
	for _, s := range timed {
		a.timed[s] = true
	}
	return a
}

func (a *AnimationTimers[S]) Uses(s S) bool {
	return a.timed[s]
}

func (a *AnimationTimers[S]) Age(dt float64) {
	s := a.state()
	if !a.timed[s] {
		return
	}
	a.counters[s] += dt
}

// Get returns the current state's counter, or 0 for an untimed state.
func (a *AnimationTimers[S]) Get() float64 {
	s := a.state()
	if !a.timed[s] {
		return 0
	}
	return a.counters[s]
}

func (a *AnimationTimers[S]) Reset() {
	a.Enter(a.state())
}

// Enter zeroes s's counter when s is timed. It is wired to the machine's
// OnEnter hook.
func (a *AnimationTimers[S]) Enter(s S) {
	if a.timed[s] {
		a.counters[s] = 0
	}
}
