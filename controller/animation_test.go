package controller

import (
	"errors"
	"testing"

	"github.com/milk9111/herbicide/ecs"
	"github.com/milk9111/herbicide/ecs/component"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func recoverError(t *testing.T, fn func()) (err error) {
	t.Helper()
	defer func() {
		r := recover()
		require.NotNil(t, r, "expected a panic")
		var ok bool
		err, ok = r.(error)
		require.True(t, ok, "panic value should be an error, got %T", r)
	}()
	fn()
	return nil
}

func TestAnimationHooksPanicWithoutTiming(t *testing.T) {
	h := newHarness(t)
	tree := h.spawn(t, component.KindBasicTree, 0, 0).(*Tree)

	hooks := map[string]func(){
		"age":   func() { tree.AgeAnimationCounter(1) },
		"get":   func() { tree.GetAnimationCounter() },
		"reset": func() { tree.ResetAnimationCounter() },
	}
	for name, hook := range hooks {
		t.Run(name, func(t *testing.T) {
			err := recoverError(t, hook)
			assert.True(t, errors.Is(err, ErrNoAnimationTiming))
			assert.Contains(t, err.Error(), string(component.KindBasicTree))
		})
	}

	assert.NotPanics(t, func() { h.ticks(3, 0.1) }, "untimed kinds still tick")
}

func TestAnimationTimersPerState(t *testing.T) {
	h := newHarness(t)
	d := h.spawn(t, component.KindSquirrel, 0, 0).(*Defender)
	target := h.dummy(t, component.FactionHostile, 1, 0, 1000)

	d.AgeAnimationCounter(5)
	assert.Zero(t, d.GetAnimationCounter(), "SPAWN is untimed")

	h.tick(0.1)
	require.Equal(t, DefenderIdle, d.GetState())
	assert.InDelta(t, 0.1, d.GetAnimationCounter(), 1e-9)

	d.AgeAnimationCounter(0.4)
	assert.InDelta(t, 0.5, d.GetAnimationCounter(), 1e-9)

	h.tick(0.1)
	require.Equal(t, DefenderAttack, d.GetState())
	assert.InDelta(t, 0.1, d.GetAnimationCounter(), 1e-9, "entering ATTACK resets its counter")

	require.True(t, h.w.DestroyEntity(target))
	h.tick(0.1)
	require.Equal(t, DefenderIdle, d.GetState())
	assert.InDelta(t, 0.1, d.GetAnimationCounter(), 1e-9, "re-entering IDLE starts from zero")

	d.ResetAnimationCounter()
	assert.Zero(t, d.GetAnimationCounter())
}

func TestAnimationFrameFollowsCounter(t *testing.T) {
	h := newHarness(t)
	d := h.spawn(t, component.KindSquirrel, 0, 0).(*Defender)

	// idle: 4 frames over 0.8s
	h.ticks(5, 0.1)
	anim, ok := ecs.Get(h.w, d.Entity(), component.AnimationComponent)
	require.True(t, ok)
	assert.Equal(t, "idle", anim.Current)
	assert.Equal(t, 2, anim.Frame)

	h.ticks(4, 0.1)
	assert.Equal(t, 0, anim.Frame, "frames wrap")
}

func TestAnimationTimersUntimedStateStaysZero(t *testing.T) {
	state := EnemyIdle
	timers := NewAnimationTimers(func() EnemyState { return state }, EnemyChase)

	timers.Age(3)
	assert.Zero(t, timers.Get())
	assert.False(t, timers.Uses(EnemyIdle))

	state = EnemyChase
	timers.Age(1.5)
	assert.Equal(t, 1.5, timers.Get())

	state = EnemyIdle
	timers.Age(2)
	state = EnemyChase
	assert.Equal(t, 1.5, timers.Get(), "only the current state's counter moves")
}
