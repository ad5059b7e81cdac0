package checker

import (
	"fmt"
	"strings"

	"github.com/PolyhedraZK/plonkish/circuit"
	"github.com/PolyhedraZK/plonkish/cs"
)

// GateFailure reports one gate polynomial that did not vanish at a row
// where the gate was active.
type GateFailure struct {
	Gate            string
	GateIndex       int
	ConstraintIndex int
	Row             int
	Reason          string
}

func (f GateFailure) String() string {
	return fmt.Sprintf("gate %q (constraint %d) at row %d: %s", f.Gate, f.ConstraintIndex, f.Row, f.Reason)
}

// LookupFailure reports an active lookup row whose input tuple is not
// contained in the table.
type LookupFailure struct {
	Lookup      string
	LookupIndex int
	Row         int
	Reason      string
}

func (f LookupFailure) String() string {
	return fmt.Sprintf("lookup %q at row %d: %s", f.Lookup, f.Row, f.Reason)
}

// PermutationFailure reports an equality equivalence class whose member
// cells do not all hold the same value.
type PermutationFailure struct {
	Cells []circuit.Cell
}

func (f PermutationFailure) String() string {
	cells := make([]string, len(f.Cells))
	for i, c := range f.Cells {
		cells[i] = c.String()
	}
	return fmt.Sprintf("copy constraint violated between cells [%s]", strings.Join(cells, " "))
}

// InstanceFailure reports a cell bound to a public input that holds a
// different value.
type InstanceFailure struct {
	Cell     circuit.Cell
	Column   cs.Column
	Row      int
	Expected string
	Actual   string
}

func (f InstanceFailure) String() string {
	return fmt.Sprintf("public input mismatch at %v row %d: expected %s, cell %v holds %s",
		f.Column, f.Row, f.Expected, f.Cell, f.Actual)
}

// Failures aggregates every violation found by Verify, ordered by category
// (gates, lookups, permutations, instances) and by ascending row within
// each category. It implements error.
type Failures struct {
	Gates        []GateFailure
	Lookups      []LookupFailure
	Permutations []PermutationFailure
	Instances    []InstanceFailure
}

// Len is the total number of recorded failures.
func (f *Failures) Len() int {
	return len(f.Gates) + len(f.Lookups) + len(f.Permutations) + len(f.Instances)
}

func (f *Failures) Error() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%d constraint violations:", f.Len())
	for _, x := range f.Gates {
		sb.WriteString("\n\t")
		sb.WriteString(x.String())
	}
	for _, x := range f.Lookups {
		sb.WriteString("\n\t")
		sb.WriteString(x.String())
	}
	for _, x := range f.Permutations {
		sb.WriteString("\n\t")
		sb.WriteString(x.String())
	}
	for _, x := range f.Instances {
		sb.WriteString("\n\t")
		sb.WriteString(x.String())
	}
	return sb.String()
}
