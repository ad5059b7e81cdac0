package circuit

import "github.com/consensys/gnark/constraint"

type valueState uint8

const (
	stateUnknown valueState = iota
	stateKnown
	statePoisoned
)

// Value is the three-state witness value handed to assignment calls: a
// concrete field element, "not known yet" (shape-only synthesis), or
// poisoned by an earlier error.
type Value struct {
	state valueState
	v     constraint.Element
	err   error
}

// Known wraps a concrete field element.
func Known(v constraint.Element) Value {
	return Value{state: stateKnown, v: v}
}

// Unknown is a value that is not known yet. Assigning it leaves the target
// cell unset.
func Unknown() Value {
	return Value{state: stateUnknown}
}

// Poisoned marks a value unusable because computing it failed. Assigning a
// poisoned value aborts synthesis with err.
func Poisoned(err error) Value {
	return Value{state: statePoisoned, err: err}
}

// Get returns the concrete element and whether it is known.
func (val Value) Get() (constraint.Element, bool) {
	return val.v, val.state == stateKnown
}

func (val Value) IsKnown() bool {
	return val.state == stateKnown
}

// Err returns the poisoning error, if any.
func (val Value) Err() error {
	if val.state == statePoisoned {
		return val.err
	}
	return nil
}
