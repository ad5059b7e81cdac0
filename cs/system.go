package cs

import (
	"fmt"

	"github.com/PolyhedraZK/plonkish/field"
)

// ConstraintSystem collects the columns, selectors, gates, lookup arguments
// and permutation metadata of a circuit shape. It is populated once during
// configuration and is immutable afterward; it never holds witness values.
type ConstraintSystem struct {
	field field.Field

	NbFixed    int
	NbAdvice   int
	NbInstance int
	NbTable    int
	NbSelector int

	Gates   []Gate
	Lookups []Lookup

	// columns eligible for equality constraints
	permuted map[Column]bool
	// fixed columns designated for constant loading
	constants []Column
}

func NewConstraintSystem(f field.Field) *ConstraintSystem {
	return &ConstraintSystem{
		field:    f,
		permuted: make(map[Column]bool),
	}
}

// Field returns the field collaborator the system was built over.
func (m *ConstraintSystem) Field() field.Field {
	return m.field
}

func (m *ConstraintSystem) AddFixedColumn() Column {
	c := Column{Kind: Fixed, Index: m.NbFixed}
	m.NbFixed++
	return c
}

func (m *ConstraintSystem) AddAdviceColumn() Column {
	c := Column{Kind: Advice, Index: m.NbAdvice}
	m.NbAdvice++
	return c
}

func (m *ConstraintSystem) AddInstanceColumn() Column {
	c := Column{Kind: Instance, Index: m.NbInstance}
	m.NbInstance++
	return c
}

func (m *ConstraintSystem) AddTableColumn() Column {
	c := Column{Kind: Table, Index: m.NbTable}
	m.NbTable++
	return c
}

// AddSelector allocates a simple selector, usable only to gate gates.
func (m *ConstraintSystem) AddSelector() Selector {
	s := Selector{Index: m.NbSelector, Simple: true}
	m.NbSelector++
	return s
}

// AddComplexSelector allocates a selector that may also gate lookup
// arguments.
func (m *ConstraintSystem) AddComplexSelector() Selector {
	s := Selector{Index: m.NbSelector, Simple: false}
	m.NbSelector++
	return s
}

// EnableEquality marks a column as eligible to participate in equality
// constraints.
func (m *ConstraintSystem) EnableEquality(c Column) {
	if c.Kind == Table {
		panic("table columns cannot participate in equality constraints")
	}
	m.permuted[c] = true
}

// CanEqualityConstrain reports whether EnableEquality was called on c.
func (m *ConstraintSystem) CanEqualityConstrain(c Column) bool {
	return m.permuted[c]
}

// EnableConstant designates a fixed column for constant loading. The column
// is implicitly enabled for equality so loaded constants can be copied.
func (m *ConstraintSystem) EnableConstant(c Column) {
	if c.Kind != Fixed {
		panic(fmt.Sprintf("enable constant on %v: only fixed columns can hold constants", c))
	}
	m.constants = append(m.constants, c)
	m.permuted[c] = true
}

// ConstantColumns returns the columns designated by EnableConstant, in
// declaration order.
func (m *ConstraintSystem) ConstantColumns() []Column {
	return m.constants
}

// CreateGate records one gate. The closure runs exactly once, now, against
// a purely symbolic query facility; it must not attempt to read witness
// values. A nil selector makes the gate always-on.
func (m *ConstraintSystem) CreateGate(name string, selector *Selector, f func(*VirtualCells) []Expression) {
	v := &VirtualCells{meta: m}
	polys := f(v)
	if len(polys) == 0 {
		panic(fmt.Sprintf("gate %q produced no polynomials", name))
	}
	m.Gates = append(m.Gates, Gate{
		Name:     name,
		Selector: selector,
		Polys:    polys,
	})
}

// CreateLookup records one lookup argument. The selector must be complex.
func (m *ConstraintSystem) CreateLookup(name string, selector Selector, f func(*VirtualCells) []LookupPair) {
	if selector.Simple {
		panic(fmt.Sprintf("lookup %q: simple selector %v cannot gate a lookup", name, selector))
	}
	v := &VirtualCells{meta: m}
	pairs := f(v)
	if len(pairs) == 0 {
		panic(fmt.Sprintf("lookup %q produced no pairs", name))
	}
	for _, p := range pairs {
		if p.Table.Kind != Table {
			panic(fmt.Sprintf("lookup %q: %v is not a table column", name, p.Table))
		}
	}
	m.Lookups = append(m.Lookups, Lookup{
		Name:     name,
		Selector: selector,
		Pairs:    pairs,
	})
}

// VirtualCells is the symbolic query facility handed to gate and lookup
// closures. It has no access to any grid.
type VirtualCells struct {
	meta *ConstraintSystem
}

func (v *VirtualCells) QueryAdvice(c Column, rot Rotation) Expression {
	if c.Kind != Advice {
		panic(fmt.Sprintf("query advice on %v", c))
	}
	return Query{Column: c, Rotation: rot}
}

func (v *VirtualCells) QueryFixed(c Column, rot Rotation) Expression {
	if c.Kind != Fixed {
		panic(fmt.Sprintf("query fixed on %v", c))
	}
	return Query{Column: c, Rotation: rot}
}

func (v *VirtualCells) QueryInstance(c Column, rot Rotation) Expression {
	if c.Kind != Instance {
		panic(fmt.Sprintf("query instance on %v", c))
	}
	return Query{Column: c, Rotation: rot}
}

func (v *VirtualCells) QuerySelector(s Selector) Expression {
	return SelectorQuery{Selector: s}
}

// Constant converts i to a field element expression, accepting anything the
// field's FromInterface accepts.
func (v *VirtualCells) Constant(i interface{}) Expression {
	return Constant{Value: v.meta.field.FromInterface(i)}
}
