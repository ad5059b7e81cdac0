package circuit

import (
	"fmt"

	"github.com/PolyhedraZK/plonkish/cs"
	"github.com/consensys/gnark/constraint"
)

// Region is the assignment handle passed to AssignRegion closures. All
// rows are region-relative; the layouter translates them to absolute grid
// rows and grows the region as offsets are touched.
type Region struct {
	name   string
	start  int
	height int
	l      *Layouter
}

func (r *Region) abs(offset int) int {
	return r.start + offset
}

func (r *Region) touch(offset int) {
	if offset+1 > r.height {
		r.height = offset + 1
	}
}

func (r *Region) assign(c cs.Column, offset int, val Value) (AssignedCell, error) {
	if offset < 0 {
		return AssignedCell{}, fmt.Errorf("region %q: negative offset %d", r.name, offset)
	}
	if err := val.Err(); err != nil {
		return AssignedCell{}, fmt.Errorf("region %q: %v@%d: %w", r.name, c, offset, err)
	}
	cell := Cell{Column: c, Row: r.abs(offset)}
	if v, ok := val.Get(); ok {
		if err := r.l.grid.set(c, cell.Row, v); err != nil {
			return AssignedCell{}, fmt.Errorf("region %q: %w", r.name, err)
		}
	}
	r.touch(offset)
	return AssignedCell{Cell: cell, value: val}, nil
}

// AssignAdvice writes val into the advice column c at the given relative
// row.
func (r *Region) AssignAdvice(c cs.Column, offset int, val Value) (AssignedCell, error) {
	if c.Kind != cs.Advice {
		return AssignedCell{}, fmt.Errorf("region %q: assign advice on %v", r.name, c)
	}
	return r.assign(c, offset, val)
}

// AssignFixed writes val into the fixed column c at the given relative row.
func (r *Region) AssignFixed(c cs.Column, offset int, val Value) (AssignedCell, error) {
	if c.Kind != cs.Fixed {
		return AssignedCell{}, fmt.Errorf("region %q: assign fixed on %v", r.name, c)
	}
	return r.assign(c, offset, val)
}

// AssignAdviceFromInstance copies the public input at (instCol, instRow)
// into the advice column c and records the equality constraint between the
// two cells.
func (r *Region) AssignAdviceFromInstance(instCol cs.Column, instRow int, c cs.Column, offset int) (AssignedCell, error) {
	if instCol.Kind != cs.Instance {
		return AssignedCell{}, fmt.Errorf("region %q: %v is not an instance column", r.name, instCol)
	}
	v, err := r.l.grid.Get(instCol, instRow)
	if err != nil {
		return AssignedCell{}, fmt.Errorf("region %q: %w", r.name, err)
	}
	cell, err := r.AssignAdvice(c, offset, Known(v))
	if err != nil {
		return AssignedCell{}, err
	}
	if err := r.l.recordCopy(cell.Cell, Cell{Column: instCol, Row: instRow}); err != nil {
		return AssignedCell{}, fmt.Errorf("region %q: %w", r.name, err)
	}
	return cell, nil
}

// AssignAdviceFromConstant loads the constant into the designated fixed
// constant column at the same absolute row, writes it into the advice
// column c, and equality-links the two cells.
func (r *Region) AssignAdviceFromConstant(c cs.Column, offset int, v constraint.Element) (AssignedCell, error) {
	consts := r.l.meta.ConstantColumns()
	if len(consts) == 0 {
		return AssignedCell{}, fmt.Errorf("region %q: %w", r.name, ErrNoConstantColumn)
	}
	fixedCell, err := r.AssignFixed(consts[0], offset, Known(v))
	if err != nil {
		return AssignedCell{}, err
	}
	cell, err := r.AssignAdvice(c, offset, Known(v))
	if err != nil {
		return AssignedCell{}, err
	}
	if err := r.l.recordCopy(cell.Cell, fixedCell.Cell); err != nil {
		return AssignedCell{}, fmt.Errorf("region %q: %w", r.name, err)
	}
	return cell, nil
}

// CopyAdvice writes src's value into the advice column c and records an
// equality constraint between source and target. This is how a value
// threads from one region to the next without being re-derived.
func (r *Region) CopyAdvice(src AssignedCell, c cs.Column, offset int) (AssignedCell, error) {
	cell, err := r.AssignAdvice(c, offset, src.value)
	if err != nil {
		return AssignedCell{}, err
	}
	if err := r.l.recordCopy(src.Cell, cell.Cell); err != nil {
		return AssignedCell{}, fmt.Errorf("region %q: %w", r.name, err)
	}
	return cell, nil
}

// ConstrainEqual records an equality constraint between two cells without
// touching their values. Both columns must have equality enabled.
func (r *Region) ConstrainEqual(a, b Cell) error {
	if err := r.l.recordCopy(a, b); err != nil {
		return fmt.Errorf("region %q: %w", r.name, err)
	}
	return nil
}

// EnableSelector enables s at the given relative row. Enabling is
// idempotent.
func (r *Region) EnableSelector(s cs.Selector, offset int) error {
	if offset < 0 {
		return fmt.Errorf("region %q: negative offset %d", r.name, offset)
	}
	if err := r.l.grid.enableSelector(s, r.abs(offset)); err != nil {
		return fmt.Errorf("region %q: %w", r.name, err)
	}
	r.touch(offset)
	return nil
}
