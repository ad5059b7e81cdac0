// Package checker decides, without producing any proof, whether a fully
// synthesized circuit satisfies its constraint system. It mirrors a
// debug-mode prover: every gate, lookup, equality class and instance
// binding is checked, and all violations are collected rather than
// stopping at the first one.
package checker

import (
	"fmt"
	"math/big"
	"sort"

	"github.com/PolyhedraZK/plonkish/circuit"
	"github.com/PolyhedraZK/plonkish/cs"
	"github.com/PolyhedraZK/plonkish/field"
	"github.com/PolyhedraZK/plonkish/logger"
	"github.com/PolyhedraZK/plonkish/utils"
	"github.com/consensys/gnark/constraint"
	"golang.org/x/sync/errgroup"
)

// failureLimit bounds the number of failures Verify reports.
const failureLimit = 256

// Checker holds a fixed constraint system and the finished witness grid.
type Checker struct {
	meta     *cs.ConstraintSystem
	grid     *circuit.Assignment
	layouter *circuit.Layouter
	field    field.Field

	// per lookup, per pair: the loaded table rows
	tableRows [][][]constraint.Element
}

// Run configures and synthesizes the circuit over a 2^k-row grid with the
// given public inputs (one slice per instance column). Configuration and
// synthesis errors are fatal; the returned checker holds the immutable
// grid ready for Verify.
func Run(order *big.Int, k int, c circuit.Circuit, instances ...[]constraint.Element) (*Checker, error) {
	if k < 1 {
		return nil, fmt.Errorf("k must be at least 1, got %d", k)
	}
	f := field.GetFieldFromOrder(order)
	meta := cs.NewConstraintSystem(f)
	c.Configure(meta)

	if len(instances) != meta.NbInstance {
		return nil, fmt.Errorf("%d instance columns declared, %d value slices provided",
			meta.NbInstance, len(instances))
	}
	n := 1 << uint(k)
	for i := range instances {
		if len(instances[i]) > n {
			return nil, fmt.Errorf("instance column %d: %d values exceed %d rows: %w",
				i, len(instances[i]), n, circuit.ErrRowOutOfRange)
		}
	}

	grid := circuit.NewAssignment(n, meta.NbSelector, meta.NbTable, instances)
	l := circuit.NewLayouter(meta, grid)
	if err := c.Synthesize(l); err != nil {
		return nil, fmt.Errorf("synthesis: %w", err)
	}

	// every table referenced by a lookup must be fully loaded by now
	tableRows := make([][][]constraint.Element, len(meta.Lookups))
	for li, lk := range meta.Lookups {
		rows := make([][]constraint.Element, len(lk.Pairs))
		height := -1
		for pi, p := range lk.Pairs {
			t, err := grid.TableRows(p.Table)
			if err != nil {
				return nil, fmt.Errorf("lookup %q: %w", lk.Name, err)
			}
			if height >= 0 && height != len(t) {
				return nil, fmt.Errorf("lookup %q: table column lengths differ: %w",
					lk.Name, circuit.ErrTableNotLoaded)
			}
			height = len(t)
			rows[pi] = t
		}
		if height == 0 {
			return nil, fmt.Errorf("lookup %q: empty table: %w", lk.Name, circuit.ErrTableNotLoaded)
		}
		tableRows[li] = rows
	}

	log := logger.Logger()
	log.Debug().
		Int("rows", n).
		Int("regions", len(l.Regions())).
		Int("gates", len(meta.Gates)).
		Int("lookups", len(meta.Lookups)).
		Msg("synthesis done")

	return &Checker{
		meta:      meta,
		grid:      grid,
		layouter:  l,
		field:     f,
		tableRows: tableRows,
	}, nil
}

// Verify checks every gate, lookup, equality class and instance binding.
// It returns nil when the witness satisfies the constraint system, and a
// *Failures error listing every violation otherwise. Per-row checks run in
// parallel; the report order is deterministic regardless.
func (ch *Checker) Verify() error {
	ev := &evaluator{grid: ch.grid, field: ch.field}

	gateFails := make([][]GateFailure, len(ch.meta.Gates))
	lookupFails := make([][]LookupFailure, len(ch.meta.Lookups))
	var permFails []PermutationFailure
	var instFails []InstanceFailure

	var g errgroup.Group
	for i := range ch.meta.Gates {
		i := i
		g.Go(func() error {
			gateFails[i] = ch.checkGate(i, ev)
			return nil
		})
	}
	for i := range ch.meta.Lookups {
		i := i
		g.Go(func() error {
			lookupFails[i] = ch.checkLookup(i, ev)
			return nil
		})
	}
	g.Go(func() error {
		permFails = ch.checkCopies()
		return nil
	})
	g.Go(func() error {
		instFails = ch.checkInstances()
		return nil
	})
	_ = g.Wait()

	var all Failures
	for _, fs := range gateFails {
		all.Gates = append(all.Gates, fs...)
	}
	sort.SliceStable(all.Gates, func(i, j int) bool {
		a, b := all.Gates[i], all.Gates[j]
		if a.Row != b.Row {
			return a.Row < b.Row
		}
		if a.GateIndex != b.GateIndex {
			return a.GateIndex < b.GateIndex
		}
		return a.ConstraintIndex < b.ConstraintIndex
	})
	for _, fs := range lookupFails {
		all.Lookups = append(all.Lookups, fs...)
	}
	sort.SliceStable(all.Lookups, func(i, j int) bool {
		a, b := all.Lookups[i], all.Lookups[j]
		if a.Row != b.Row {
			return a.Row < b.Row
		}
		return a.LookupIndex < b.LookupIndex
	})
	all.Permutations = permFails
	all.Instances = instFails
	all.truncate(failureLimit)

	log := logger.Logger()
	log.Debug().Int("failures", all.Len()).Msg("verification done")

	if all.Len() == 0 {
		return nil
	}
	return &all
}

func (ch *Checker) checkGate(gi int, ev *evaluator) []GateFailure {
	gate := ch.meta.Gates[gi]
	var fails []GateFailure

	checkRow := func(row int) {
		for ci, poly := range gate.Polys {
			if len(fails) >= failureLimit {
				return
			}
			v, err := ev.eval(poly, row)
			if err != nil {
				fails = append(fails, GateFailure{
					Gate:            gate.Name,
					GateIndex:       gi,
					ConstraintIndex: ci,
					Row:             row,
					Reason:          err.Error(),
				})
				continue
			}
			if !v.IsZero() {
				fails = append(fails, GateFailure{
					Gate:            gate.Name,
					GateIndex:       gi,
					ConstraintIndex: ci,
					Row:             row,
					Reason:          "nonzero",
				})
			}
		}
	}

	if gate.Selector == nil {
		for row := 0; row < ch.grid.Height(); row++ {
			checkRow(row)
		}
		return fails
	}
	rows := ch.grid.SelectorRows(*gate.Selector)
	for row, ok := rows.NextSet(0); ok; row, ok = rows.NextSet(row + 1) {
		checkRow(int(row))
	}
	return fails
}

// tuple is a row of evaluated lookup inputs or table cells, keyed by its
// exact limb contents.
type tuple []constraint.Element

func (t tuple) HashCode() uint64 {
	h := uint64(17)
	for _, e := range t {
		h = h*23 + (e[0] ^ e[1] ^ e[2] ^ e[3] ^ e[4] ^ e[5])
	}
	return h
}

func (t tuple) EqualI(o utils.Hashable) bool {
	u := o.(tuple)
	if len(t) != len(u) {
		return false
	}
	for i := range t {
		if t[i] != u[i] {
			return false
		}
	}
	return true
}

func (ch *Checker) checkLookup(li int, ev *evaluator) []LookupFailure {
	lk := ch.meta.Lookups[li]
	rows := ch.tableRows[li]

	set := make(utils.Map)
	for r := 0; r < len(rows[0]); r++ {
		tp := make(tuple, len(rows))
		for pi := range rows {
			tp[pi] = rows[pi][r]
		}
		set.Add(tp, r)
	}

	var fails []LookupFailure
	active := ch.grid.SelectorRows(lk.Selector)
	for row, ok := active.NextSet(0); ok; row, ok = active.NextSet(row + 1) {
		if len(fails) >= failureLimit {
			break
		}
		tp := make(tuple, len(lk.Pairs))
		evalErr := false
		for pi, p := range lk.Pairs {
			v, err := ev.eval(p.Input, int(row))
			if err != nil {
				fails = append(fails, LookupFailure{
					Lookup:      lk.Name,
					LookupIndex: li,
					Row:         int(row),
					Reason:      err.Error(),
				})
				evalErr = true
				break
			}
			tp[pi] = v
		}
		if evalErr {
			continue
		}
		if _, found := set.Find(tp); !found {
			fails = append(fails, LookupFailure{
				Lookup:      lk.Name,
				LookupIndex: li,
				Row:         int(row),
				Reason:      "not found in table",
			})
		}
	}
	return fails
}

func (ch *Checker) checkCopies() []PermutationFailure {
	uf := newUnionFind()
	for _, p := range ch.layouter.Copies() {
		uf.union(p[0], p[1])
	}

	var fails []PermutationFailure
	for _, class := range uf.classes() {
		if len(class) < 2 {
			continue
		}
		sortCells(class)
		ok := true
		var ref constraint.Element
		refSet := false
		for _, c := range class {
			v, err := ch.grid.Get(c.Column, c.Row)
			if err != nil {
				ok = false
				break
			}
			if !refSet {
				ref, refSet = v, true
			} else if v != ref {
				ok = false
				break
			}
		}
		if !ok {
			fails = append(fails, PermutationFailure{Cells: class})
		}
	}
	sort.Slice(fails, func(i, j int) bool {
		return cellLess(fails[i].Cells[0], fails[j].Cells[0])
	})
	return fails
}

func (ch *Checker) checkInstances() []InstanceFailure {
	var fails []InstanceFailure
	for _, b := range ch.layouter.Bindings() {
		expected, expErr := ch.grid.Get(b.Column, b.Row)
		actual, actErr := ch.grid.Get(b.Cell.Column, b.Cell.Row)
		if expErr == nil && actErr == nil && expected == actual {
			continue
		}
		f := InstanceFailure{
			Cell:     b.Cell,
			Column:   b.Column,
			Row:      b.Row,
			Expected: "unassigned",
			Actual:   "unassigned",
		}
		if expErr == nil {
			f.Expected = ch.field.String(expected)
		}
		if actErr == nil {
			f.Actual = ch.field.String(actual)
		}
		fails = append(fails, f)
	}
	sort.SliceStable(fails, func(i, j int) bool {
		a, b := fails[i], fails[j]
		if a.Row != b.Row {
			return a.Row < b.Row
		}
		return a.Column.Index < b.Column.Index
	})
	return fails
}

func cellLess(a, b circuit.Cell) bool {
	if a.Row != b.Row {
		return a.Row < b.Row
	}
	if a.Column.Kind != b.Column.Kind {
		return a.Column.Kind < b.Column.Kind
	}
	return a.Column.Index < b.Column.Index
}

func sortCells(cells []circuit.Cell) {
	sort.Slice(cells, func(i, j int) bool {
		return cellLess(cells[i], cells[j])
	})
}

func (f *Failures) truncate(limit int) {
	rem := limit
	clip := func(n int) int {
		if n > rem {
			n = rem
		}
		rem -= n
		return n
	}
	f.Gates = f.Gates[:clip(len(f.Gates))]
	f.Lookups = f.Lookups[:clip(len(f.Lookups))]
	f.Permutations = f.Permutations[:clip(len(f.Permutations))]
	f.Instances = f.Instances[:clip(len(f.Instances))]
}
