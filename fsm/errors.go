package fsm

import (
	"errors"
	"fmt"
)

// ErrSetOutsideStep is raised when a transition is committed anywhere but
// inside Machine.Step.
var ErrSetOutsideStep = errors.New("fsm: SetState called outside Step")

// IncompleteTableError is raised by New when the table is not total over
// the declared tags.
type IncompleteTableError struct {
	Tag    string
	Reason string
}

func (e *IncompleteTableError) Error() string {
	return fmt.Sprintf("fsm: state %s: %s", e.Tag, e.Reason)
}

// UnhandledStateError is raised when a machine reaches a tag that has no
// rule.
type UnhandledStateError[S Tag] struct {
	State S
}

func (e *UnhandledStateError[S]) Error() string {
	return fmt.Sprintf("fsm: unhandled state %s", e.State.String())
}
