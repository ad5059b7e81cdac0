package checker

import (
	"fmt"

	"github.com/PolyhedraZK/plonkish/circuit"
	"github.com/PolyhedraZK/plonkish/cs"
	"github.com/PolyhedraZK/plonkish/field"
	"github.com/consensys/gnark/constraint"
)

// evaluator computes the concrete value of a symbolic expression at an
// absolute row, reading the immutable witness grid.
type evaluator struct {
	grid  *circuit.Assignment
	field field.Field
}

func (e *evaluator) eval(x cs.Expression, row int) (constraint.Element, error) {
	switch t := x.(type) {
	case cs.Constant:
		return t.Value, nil
	case cs.Query:
		r := row + int(t.Rotation)
		if r < 0 || r >= e.grid.Height() {
			return constraint.Element{}, fmt.Errorf("%v rotated %d from row %d: %w",
				t.Column, t.Rotation, row, circuit.ErrRowOutOfRange)
		}
		return e.grid.Get(t.Column, r)
	case cs.SelectorQuery:
		if e.grid.SelectorEnabled(t.Selector, row) {
			return e.field.One(), nil
		}
		return constraint.Element{}, nil
	case cs.Negated:
		v, err := e.eval(t.Inner, row)
		if err != nil {
			return constraint.Element{}, err
		}
		return e.field.Neg(v), nil
	case cs.Sum:
		l, err := e.eval(t.L, row)
		if err != nil {
			return constraint.Element{}, err
		}
		r, err := e.eval(t.R, row)
		if err != nil {
			return constraint.Element{}, err
		}
		return e.field.Add(l, r), nil
	case cs.Product:
		l, err := e.eval(t.L, row)
		if err != nil {
			return constraint.Element{}, err
		}
		r, err := e.eval(t.R, row)
		if err != nil {
			return constraint.Element{}, err
		}
		return e.field.Mul(l, r), nil
	case cs.Scaled:
		v, err := e.eval(t.Inner, row)
		if err != nil {
			return constraint.Element{}, err
		}
		return e.field.Mul(v, t.Coeff), nil
	}
	panic(fmt.Sprintf("unknown expression node %T", x))
}
