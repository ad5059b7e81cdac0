package cs

import "strconv"

// ColumnKind discriminates the four column families of the grid.
type ColumnKind uint8

const (
	Fixed ColumnKind = iota
	Advice
	Instance
	Table
)

func (k ColumnKind) String() string {
	switch k {
	case Fixed:
		return "fixed"
	case Advice:
		return "advice"
	case Instance:
		return "instance"
	case Table:
		return "table"
	}
	return "unknown"
}

// Column identifies a typed column. Identity is (Kind, Index); indices are
// monotonically increasing within a kind and never reused.
type Column struct {
	Kind  ColumnKind
	Index int
}

func (c Column) String() string {
	switch c.Kind {
	case Fixed:
		return "f" + strconv.Itoa(c.Index)
	case Advice:
		return "a" + strconv.Itoa(c.Index)
	case Instance:
		return "i" + strconv.Itoa(c.Index)
	case Table:
		return "t" + strconv.Itoa(c.Index)
	}
	return "?" + strconv.Itoa(c.Index)
}

// Selector is a boolean column used to switch constraints on and off per
// row. Simple selectors may only gate gates; complex selectors may also
// gate lookup arguments.
type Selector struct {
	Index  int
	Simple bool
}

func (s Selector) String() string {
	return "s" + strconv.Itoa(s.Index)
}

// Rotation is a relative row offset used by column queries.
type Rotation int

const (
	RotationPrev Rotation = -1
	RotationCur  Rotation = 0
	RotationNext Rotation = 1
)
