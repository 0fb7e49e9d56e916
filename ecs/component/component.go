// Package component holds the data attached to entities. Each file declares
// one or two plain structs and the package-level handle used to store them.
package component

import (
	"errors"
	"fmt"
	"sync/atomic"
)

var (
	ErrEntityNotAlive       = errors.New("ecs: entity not alive")
	ErrInvalidComponentKind = errors.New("ecs: invalid component kind")
)

// ComponentID keys one component storage. Zero is never handed out.
type ComponentID uint32

var nextComponentID atomic.Uint32

type ComponentKind[T any] struct {
	id ComponentID
}

func (k ComponentKind[T]) ID() ComponentID {
	return k.id
}

func (k ComponentKind[T]) Valid() bool {
	return k.id != 0
}

// ComponentHandle is the exported key for a component type, such as
// HealthComponent. The zero handle is invalid.
type ComponentHandle[T any] struct {
	kind ComponentKind[T]
	name string
}

// NewComponent allocates a storage id for T. Declare it once per type in a
// package-level var.
func NewComponent[T any]() ComponentHandle[T] {
	var zero T
	return ComponentHandle[T]{
		kind: ComponentKind[T]{id: ComponentID(nextComponentID.Add(1))},
		name: fmt.Sprintf("%T", zero),
	}
}

func (h ComponentHandle[T]) Kind() ComponentKind[T] {
	return h.kind
}

// String names the stored type for logs and errors.
func (h ComponentHandle[T]) String() string {
	if !h.kind.Valid() {
		return "invalid component"
	}
	return h.name
}
