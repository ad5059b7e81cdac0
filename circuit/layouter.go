package circuit

import (
	"fmt"

	"github.com/PolyhedraZK/plonkish/cs"
	"github.com/PolyhedraZK/plonkish/logger"
)

// RegionInfo records where a region ended up on the grid.
type RegionInfo struct {
	Name   string
	Start  int
	Height int
}

// InstanceBinding asserts that a cell equals the public input at
// (Column, Row).
type InstanceBinding struct {
	Cell   Cell
	Column cs.Column
	Row    int
}

// Layouter drives synthesis against a fixed constraint system. Regions are
// laid out sequentially: each AssignRegion call claims the next free row
// range, so regions never share rows. Any assignment failure aborts the
// whole synthesis.
type Layouter struct {
	meta *cs.ConstraintSystem
	grid *Assignment

	cursor   int
	regions  []RegionInfo
	copies   [][2]Cell
	bindings []InstanceBinding
}

func NewLayouter(meta *cs.ConstraintSystem, grid *Assignment) *Layouter {
	return &Layouter{
		meta: meta,
		grid: grid,
	}
}

// AssignRegion allocates the next free row range and invokes f with a
// region-relative assignment handle.
func (l *Layouter) AssignRegion(name string, f func(*Region) error) error {
	r := &Region{
		name:  name,
		start: l.cursor,
		l:     l,
	}
	if err := f(r); err != nil {
		return err
	}
	l.cursor += r.height
	l.regions = append(l.regions, RegionInfo{Name: name, Start: r.start, Height: r.height})
	log := logger.Logger()
	log.Debug().Str("region", name).Int("start", r.start).Int("height", r.height).Msg("region laid out")
	return nil
}

// AssignTable invokes f with a table-loading handle. Table rows are keyed
// from 0 and are independent of region layout; a table must be fully
// loaded before any lookup referencing it is checked.
func (l *Layouter) AssignTable(name string, f func(*Table) error) error {
	t := &Table{name: name, l: l}
	if err := f(t); err != nil {
		return err
	}
	log := logger.Logger()
	log.Debug().Str("table", name).Msg("table loaded")
	return nil
}

// ConstrainInstance records that cell must equal the public input at
// (instCol, instRow).
func (l *Layouter) ConstrainInstance(cell Cell, instCol cs.Column, instRow int) error {
	if instCol.Kind != cs.Instance {
		return fmt.Errorf("constrain instance: %v is not an instance column", instCol)
	}
	if !l.meta.CanEqualityConstrain(cell.Column) {
		return fmt.Errorf("%v: %w", cell.Column, ErrColumnNotPermuted)
	}
	if !l.meta.CanEqualityConstrain(instCol) {
		return fmt.Errorf("%v: %w", instCol, ErrColumnNotPermuted)
	}
	l.bindings = append(l.bindings, InstanceBinding{Cell: cell, Column: instCol, Row: instRow})
	return nil
}

func (l *Layouter) recordCopy(a, b Cell) error {
	if !l.meta.CanEqualityConstrain(a.Column) {
		return fmt.Errorf("%v: %w", a.Column, ErrColumnNotPermuted)
	}
	if !l.meta.CanEqualityConstrain(b.Column) {
		return fmt.Errorf("%v: %w", b.Column, ErrColumnNotPermuted)
	}
	l.copies = append(l.copies, [2]Cell{a, b})
	return nil
}

// Grid returns the witness grid under assignment.
func (l *Layouter) Grid() *Assignment {
	return l.grid
}

// Copies returns every recorded equality-constraint pair.
func (l *Layouter) Copies() [][2]Cell {
	return l.copies
}

// Bindings returns every recorded instance binding.
func (l *Layouter) Bindings() []InstanceBinding {
	return l.bindings
}

// Regions returns the laid-out regions in allocation order.
func (l *Layouter) Regions() []RegionInfo {
	return l.regions
}

// Table is the handle passed to AssignTable closures.
type Table struct {
	name string
	l    *Layouter
}

// AssignCell writes val into table column c at the given table row.
// Re-assigning a row with a different value is an error.
func (t *Table) AssignCell(c cs.Column, row int, val Value) error {
	if c.Kind != cs.Table {
		return fmt.Errorf("table %q: %v is not a table column", t.name, c)
	}
	v, ok := val.Get()
	if !ok {
		if err := val.Err(); err != nil {
			return fmt.Errorf("table %q: %v@%d: %w", t.name, c, row, err)
		}
		return fmt.Errorf("table %q: %v@%d: table values must be known", t.name, c, row)
	}
	if err := t.l.grid.setTableCell(c, row, v); err != nil {
		return fmt.Errorf("table %q: %w", t.name, err)
	}
	return nil
}
