package ecs

import (
	"fmt"

	"github.com/milk9111/herbicide/ecs/component"
)

// Add stores a copy of value on e. Get returns a pointer to that copy, so
// callers mutate components in place.
func Add[T any](w *World, e Entity, handle component.ComponentHandle[T], value T) error {
	kind := handle.Kind()
	if !kind.Valid() {
		return fmt.Errorf("add %s: %w", handle, component.ErrInvalidComponentKind)
	}
	if !w.IsAlive(e) {
		return fmt.Errorf("add %s to %s: %w", handle, e, component.ErrEntityNotAlive)
	}
	v := value
	w.store(kind.ID(), true).Set(e, &v)
	return nil
}

func Remove[T any](w *World, e Entity, handle component.ComponentHandle[T]) bool {
	return w.store(handle.Kind().ID(), false).Remove(e)
}

func Has[T any](w *World, e Entity, handle component.ComponentHandle[T]) bool {
	if !w.IsAlive(e) {
		return false
	}
	return w.store(handle.Kind().ID(), false).Has(e)
}

func Get[T any](w *World, e Entity, handle component.ComponentHandle[T]) (*T, bool) {
	if !w.IsAlive(e) {
		return nil, false
	}
	value := w.store(handle.Kind().ID(), false).Get(e)
	if value == nil {
		return nil, false
	}
	cast, ok := value.(*T)
	return cast, ok
}

// Query returns the live entities that carry handle, in storage order. The
// returned slice is a copy and is safe to keep for the current tick.
func Query[T any](w *World, handle component.ComponentHandle[T]) []Entity {
	s := w.store(handle.Kind().ID(), false)
	if s.Len() == 0 {
		return nil
	}
	out := make([]Entity, 0, s.Len())
	for _, e := range s.Entities() {
		if w.IsAlive(e) {
			out = append(out, e)
		}
	}
	return out
}

// ForEach calls fn for every entity carrying handle. fn must not add or
// remove components of the same kind.
func ForEach[T any](w *World, handle component.ComponentHandle[T], fn func(Entity, *T)) {
	s := w.store(handle.Kind().ID(), false)
	if s == nil || fn == nil {
		return
	}
	for _, e := range s.Entities() {
		if v, ok := s.Get(e).(*T); ok {
			fn(e, v)
		}
	}
}
