package ecs

// CollisionEvent reports that the collider of A started overlapping the
// collider of B.
type CollisionEvent struct {
	A Entity
	B Entity
}

// EventQueue is a simple FIFO queue of collision events.
type EventQueue struct {
	items []CollisionEvent
}

// Push adds an event.
func (q *EventQueue) Push(evt CollisionEvent) {
	if q == nil {
		return
	}
	q.items = append(q.items, evt)
}

// Drain returns all events and clears the queue.
func (q *EventQueue) Drain() []CollisionEvent {
	if q == nil || len(q.items) == 0 {
		return nil
	}
	out := q.items
	q.items = nil
	return out
}

func (q *EventQueue) Len() int {
	if q == nil {
		return 0
	}
	return len(q.items)
}
