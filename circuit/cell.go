package circuit

import (
	"fmt"

	"github.com/PolyhedraZK/plonkish/cs"
)

// Cell addresses one grid position by column and absolute row.
type Cell struct {
	Column cs.Column
	Row    int
}

func (c Cell) String() string {
	return fmt.Sprintf("%v@%d", c.Column, c.Row)
}

// AssignedCell is the result of an assignment call: the cell that was
// written and the value it was written with. It is what circuit code
// threads between regions via CopyAdvice.
type AssignedCell struct {
	Cell  Cell
	value Value
}

// Value returns the value the cell was assigned with.
func (a AssignedCell) Value() Value {
	return a.value
}
