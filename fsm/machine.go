package fsm

// Machine holds exactly one current tag and moves only inside Step.
type Machine[S Tag] struct {
	current  S
	tags     []S
	table    Table[S]
	stepping bool
	onEnter  []func(S)
	observe  func(from, to S)
}

// New validates table against tags and returns a machine in initial. It
// panics with *IncompleteTableError when a tag lacks a rule, when an edge
// points outside tags, or when initial is not declared.
func New[S Tag](initial S, tags []S, table Table[S]) *Machine[S] {
	declared := make(map[S]bool, len(tags))
	for _, tag := range tags {
		declared[tag] = true
	}
	if !declared[initial] {
		panic(&IncompleteTableError{Tag: initial.String(), Reason: "initial state not declared"})
	}
	for _, tag := range tags {
		edges, ok := table[tag]
		if !ok {
			panic(&IncompleteTableError{Tag: tag.String(), Reason: "no transition rule"})
		}
		for _, e := range edges {
			if !declared[e.To] {
				panic(&IncompleteTableError{Tag: tag.String(), Reason: "edge to undeclared state " + e.To.String()})
			}
		}
	}
	for tag := range table {
		if !declared[tag] {
			panic(&IncompleteTableError{Tag: tag.String(), Reason: "rule for undeclared state"})
		}
	}

	return &Machine[S]{
		current: initial,
		tags:    append([]S(nil), tags...),
		table:   table,
	}
}

// State returns the current tag.
func (m *Machine[S]) State() S {
	return m.current
}

func (m *Machine[S]) Equals(a, b S) bool {
	return a == b
}

func (m *Machine[S]) Tags() []S {
	return append([]S(nil), m.tags...)
}

func (m *Machine[S]) Table() Table[S] {
	return m.table
}

// OnEnter registers fn to run after every committed transition, with the
// newly entered tag.
func (m *Machine[S]) OnEnter(fn func(S)) {
	if fn != nil {
		m.onEnter = append(m.onEnter, fn)
	}
}

// Observe registers a single transition observer.
func (m *Machine[S]) Observe(fn func(from, to S)) {
	m.observe = fn
}

// Step evaluates the current tag's edges once and takes at most one of them.
func (m *Machine[S]) Step() {
	edges, ok := m.table[m.current]
	if !ok {
		panic(&UnhandledStateError[S]{State: m.current})
	}

	m.stepping = true
	defer func() { m.stepping = false }()

	for _, e := range edges {
		if e.When == nil || e.When() {
			m.SetState(e.To)
			return
		}
	}
}

// SetState commits a transition. It is only legal while Step is running.
func (m *Machine[S]) SetState(next S) {
	if !m.stepping {
		panic(ErrSetOutsideStep)
	}
	if _, ok := m.table[next]; !ok {
		panic(&UnhandledStateError[S]{State: next})
	}
	if next == m.current {
		return
	}

	prev := m.current
	m.current = next
	if m.observe != nil {
		m.observe(prev, next)
	}
	for _, fn := range m.onEnter {
		fn(next)
	}
}
