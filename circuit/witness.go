package circuit

import (
	"fmt"

	"github.com/PolyhedraZK/plonkish/cs"
	"github.com/bits-and-blooms/bitset"
	"github.com/consensys/gnark/constraint"
)

// Assignment is the witness grid: a sparse (column, row) -> element store,
// the enabled rows of every selector, the loaded rows of every table
// column, and the public instance values. An unassigned cell is distinct
// from a zero-valued cell.
type Assignment struct {
	n int

	values    map[cs.Column]map[int]constraint.Element
	selectors []*bitset.BitSet

	tables    [][]constraint.Element
	tableSet  []*bitset.BitSet
	instances [][]constraint.Element
}

func NewAssignment(n, nbSelectors, nbTables int, instances [][]constraint.Element) *Assignment {
	selectors := make([]*bitset.BitSet, nbSelectors)
	for i := range selectors {
		selectors[i] = bitset.New(uint(n))
	}
	tableSet := make([]*bitset.BitSet, nbTables)
	for i := range tableSet {
		tableSet[i] = bitset.New(64)
	}
	return &Assignment{
		n:         n,
		values:    make(map[cs.Column]map[int]constraint.Element),
		selectors: selectors,
		tables:    make([][]constraint.Element, nbTables),
		tableSet:  tableSet,
		instances: instances,
	}
}

// Height is the number of grid rows, 2^k.
func (g *Assignment) Height() int {
	return g.n
}

// Get reads the value at (c, row). Fixed and advice cells read the sparse
// store, instance cells read the public inputs. Reading an unset cell
// fails with ErrUnassignedCell.
func (g *Assignment) Get(c cs.Column, row int) (constraint.Element, error) {
	if row < 0 || row >= g.n {
		return constraint.Element{}, fmt.Errorf("%v@%d: %w", c, row, ErrRowOutOfRange)
	}
	switch c.Kind {
	case cs.Instance:
		if c.Index >= len(g.instances) || row >= len(g.instances[c.Index]) {
			return constraint.Element{}, fmt.Errorf("%v@%d: %w", c, row, ErrUnassignedCell)
		}
		return g.instances[c.Index][row], nil
	case cs.Table:
		return constraint.Element{}, fmt.Errorf("%v: table columns are only readable through lookups", c)
	}
	v, ok := g.values[c][row]
	if !ok {
		return constraint.Element{}, fmt.Errorf("%v@%d: %w", c, row, ErrUnassignedCell)
	}
	return v, nil
}

// Has reports whether (c, row) holds a value.
func (g *Assignment) Has(c cs.Column, row int) bool {
	_, ok := g.values[c][row]
	return ok
}

// set writes v at (c, row). Re-assigning the same value is a no-op;
// re-assigning a different value fails with ErrShadowing.
func (g *Assignment) set(c cs.Column, row int, v constraint.Element) error {
	if row < 0 || row >= g.n {
		return fmt.Errorf("%v@%d: %w", c, row, ErrRowOutOfRange)
	}
	col, ok := g.values[c]
	if !ok {
		col = make(map[int]constraint.Element)
		g.values[c] = col
	}
	if prev, ok := col[row]; ok {
		if prev != v {
			return fmt.Errorf("%v@%d: %w", c, row, ErrShadowing)
		}
		return nil
	}
	col[row] = v
	return nil
}

func (g *Assignment) enableSelector(s cs.Selector, row int) error {
	if row < 0 || row >= g.n {
		return fmt.Errorf("%v@%d: %w", s, row, ErrRowOutOfRange)
	}
	g.selectors[s.Index].Set(uint(row))
	return nil
}

// SelectorEnabled reports whether s is enabled at row.
func (g *Assignment) SelectorEnabled(s cs.Selector, row int) bool {
	if row < 0 || row >= g.n {
		return false
	}
	return g.selectors[s.Index].Test(uint(row))
}

// SelectorRows returns the set of rows where s is enabled.
func (g *Assignment) SelectorRows(s cs.Selector) *bitset.BitSet {
	return g.selectors[s.Index]
}

func (g *Assignment) setTableCell(c cs.Column, row int, v constraint.Element) error {
	if row < 0 {
		return fmt.Errorf("%v@%d: %w", c, row, ErrRowOutOfRange)
	}
	t := g.tables[c.Index]
	for len(t) <= row {
		t = append(t, constraint.Element{})
	}
	g.tables[c.Index] = t
	if g.tableSet[c.Index].Test(uint(row)) {
		if t[row] != v {
			return fmt.Errorf("%v@%d: %w", c, row, ErrShadowing)
		}
		return nil
	}
	t[row] = v
	g.tableSet[c.Index].Set(uint(row))
	return nil
}

// TableRows returns the loaded rows of table column c. It fails with
// ErrTableNotLoaded when the loaded rows are not contiguous from row 0.
func (g *Assignment) TableRows(c cs.Column) ([]constraint.Element, error) {
	if c.Kind != cs.Table {
		return nil, fmt.Errorf("%v is not a table column", c)
	}
	t := g.tables[c.Index]
	if int(g.tableSet[c.Index].Count()) != len(t) {
		return nil, fmt.Errorf("%v: %w", c, ErrTableNotLoaded)
	}
	return t, nil
}
