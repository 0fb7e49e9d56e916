// Package fsm implements small table-driven state machines over a closed set
// of state tags.
//
// A Table lists, for every tag, the guarded edges leaving it. Edges are
// evaluated in declaration order and the first edge whose guard holds is
// taken; a tag with no edges stays put. New rejects tables that leave a tag
// without a rule, so a missing case fails when the controller is built
// rather than in the middle of a game.
package fsm

// Tag is a state identifier. Implementations are small integer enums with a
// String method.
type Tag interface {
	comparable
	String() string
}

// Guard reports whether an edge may be taken this step. A nil guard always
// holds.
type Guard func() bool

type Edge[S Tag] struct {
	To   S
	When Guard
}

// Always builds an unconditional edge.
func Always[S Tag](to S) Edge[S] {
	return Edge[S]{To: to}
}

// When builds an edge taken while guard holds.
func When[S Tag](to S, guard Guard) Edge[S] {
	return Edge[S]{To: to, When: guard}
}

// Stay is the explicit rule for a tag that never leaves on its own.
func Stay[S Tag]() []Edge[S] {
	return []Edge[S]{}
}

// Table maps each tag to its outgoing edges.
type Table[S Tag] map[S][]Edge[S]

// Allows reports whether from -> to is a declared transition. Staying in
// place is always allowed.
func (t Table[S]) Allows(from, to S) bool {
	if from == to {
		return true
	}
	for _, e := range t[from] {
		if e.To == to {
			return true
		}
	}
	return false
}
